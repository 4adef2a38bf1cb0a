// Package bot provides baseline decision providers for simulations and
// tests. Bots never see anything beyond the snapshot they are handed.
package bot

import (
	"context"

	"drawpoker-server/internal/rng"
	"drawpoker-server/pkg/poker/action"
	"drawpoker-server/pkg/poker/betting"
	"drawpoker-server/pkg/poker/draw"
)

// Caller checks or calls every bet and never draws
type Caller struct{}

// Decide checks when possible, otherwise calls
func (Caller) Decide(_ context.Context, snapshot *betting.Snapshot) (action.Decision, error) {
	if snapshot.ToCall > 0 {
		return action.NewDecision(action.Call), nil
	}

	return action.NewDecision(action.Check), nil
}

// DrawDiscards stands pat
func (Caller) DrawDiscards(_ context.Context, _ *draw.DrawView) ([]int, error) {
	return nil, nil
}

// Random plays a uniformly random legal action and draws a random set
// of cards
type Random struct {
	rng rng.Generator
}

// NewRandom returns a random bot. A nil generator falls back to the
// crypto source.
func NewRandom(generator rng.Generator) *Random {
	if generator == nil {
		generator = rng.Crypto{}
	}

	return &Random{rng: generator}
}

// Decide picks one of the snapshot's valid actions
func (b *Random) Decide(_ context.Context, snapshot *betting.Snapshot) (action.Decision, error) {
	chosen := snapshot.Actions[b.rng.Intn(len(snapshot.Actions))]
	if chosen != action.Raise {
		return action.NewDecision(chosen), nil
	}

	amount, ok := b.raiseAmount(snapshot)
	if !ok {
		if snapshot.ToCall > 0 {
			return action.NewDecision(action.Call), nil
		}

		return action.NewDecision(action.Check), nil
	}

	return action.NewRaise(amount), nil
}

// raiseAmount picks a legal raise-to amount, preferring a random value
// between the minimum raise and the cap
func (b *Random) raiseAmount(snapshot *betting.Snapshot) (int, bool) {
	allIn := snapshot.RoundBet + snapshot.Chips
	maxTo := allIn
	if snapshot.MaxRaiseTo > 0 && snapshot.MaxRaiseTo < maxTo {
		maxTo = snapshot.MaxRaiseTo
	}

	if maxTo <= snapshot.CurrentBet {
		return 0, false
	}

	if maxTo < snapshot.MinRaiseTo {
		// only the short all-in raise remains
		if maxTo == allIn {
			return allIn, true
		}

		return 0, false
	}

	return snapshot.MinRaiseTo + b.rng.Intn(maxTo-snapshot.MinRaiseTo+1), true
}

// DrawDiscards keeps or throws each card on a coin flip
func (b *Random) DrawDiscards(_ context.Context, view *draw.DrawView) ([]int, error) {
	var positions []int
	for i := range view.Cards {
		if b.rng.Intn(2) == 1 {
			positions = append(positions, i)
		}
	}

	return positions, nil
}
