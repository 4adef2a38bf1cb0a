package draw

import (
	"errors"
	"time"
)

// option errors
var (
	ErrInvalidChips  = errors.New("starting chips must be positive")
	ErrInvalidBlinds = errors.New("blinds must be positive and the small blind cannot exceed the big blind")
	ErrInvalidAnte   = errors.New("ante cannot be negative")
)

// Options are the table rules for a game
type Options struct {
	// StartingChips is each player's initial stack
	StartingChips int

	SmallBlind int
	BigBlind   int

	// Ante is collected from every player before the blinds. Zero
	// disables antes.
	Ante int

	// MinBet is the minimum raise increment. Zero means the big blind.
	MinBet int

	// MaxRaiseMultiplier and MaxRaisesPerRound cap raising; zero means
	// uncapped
	MaxRaiseMultiplier int
	MaxRaisesPerRound  int

	// MaxRounds stops the game after this many hands. Zero means play
	// until one player holds all the chips.
	MaxRounds int

	// DecisionTimeout bounds every provider call
	DecisionTimeout time.Duration

	// RetryBudget is how many times an invalid decision is re-requested
	RetryBudget int

	// Seed makes the shuffle deterministic. Zero draws a seed from the
	// crypto source.
	Seed int64
}

// DefaultOptions returns the standard table rules
func DefaultOptions() Options {
	return Options{
		StartingChips:   1000,
		SmallBlind:      10,
		BigBlind:        20,
		DecisionTimeout: 30 * time.Second,
		RetryBudget:     3,
	}
}

// Validate checks the options and fills in defaulted values
func (o *Options) Validate() error {
	if o.StartingChips <= 0 {
		return ErrInvalidChips
	}

	if o.SmallBlind <= 0 || o.BigBlind <= 0 || o.SmallBlind > o.BigBlind {
		return ErrInvalidBlinds
	}

	if o.Ante < 0 {
		return ErrInvalidAnte
	}

	if o.MinBet == 0 {
		o.MinBet = o.BigBlind
	}

	return nil
}
