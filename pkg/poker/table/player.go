// Package table tracks per-player chip and bet state at a poker table.
package table

import (
	"drawpoker-server/pkg/poker/handeval"
)

// PlayerState is the table-side view of a single player. Chip counts only
// move through Bet, Win, and the reset methods so the bet ledgers stay in
// sync with the stack.
type PlayerState struct {
	ID       int64          `json:"id"`
	Name     string         `json:"name"`
	Position int            `json:"position"`
	Chips    int            `json:"chips"`
	RoundBet int            `json:"roundBet"`
	HandBet  int            `json:"handBet"`
	Folded   bool           `json:"folded"`
	AllIn    bool           `json:"allIn"`
	Hand     *handeval.Hand `json:"-"`
}

// NewPlayerState returns a player with the given starting stack
func NewPlayerState(id int64, name string, chips int) *PlayerState {
	return &PlayerState{
		ID:    id,
		Name:  name,
		Chips: chips,
	}
}

// Bet moves up to amount chips from the stack into the current bet.
// A bet for more than the stack is clamped to the stack and marks the
// player all-in. The amount actually bet is returned.
func (p *PlayerState) Bet(amount int) int {
	if amount < 0 {
		panic("bet amount cannot be negative")
	}

	if amount >= p.Chips {
		amount = p.Chips
		p.AllIn = true
	}

	p.Chips -= amount
	p.RoundBet += amount
	p.HandBet += amount

	return amount
}

// Win adds winnings to the stack
func (p *PlayerState) Win(amount int) {
	if amount < 0 {
		panic("win amount cannot be negative")
	}

	p.Chips += amount
}

// CanAct returns true if the player can still make betting decisions
func (p *PlayerState) CanAct() bool {
	return !p.Folded && !p.AllIn
}

// InHand returns true if the player has not folded
func (p *PlayerState) InHand() bool {
	return !p.Folded
}

// Broke returns true if the player has no chips and no live bet
func (p *PlayerState) Broke() bool {
	return p.Chips == 0 && p.HandBet == 0
}

// NewBettingRound clears the per-round bet ledger
func (p *PlayerState) NewBettingRound() {
	p.RoundBet = 0
}

// NewHand clears all per-hand state ahead of the next deal
func (p *PlayerState) NewHand() {
	p.RoundBet = 0
	p.HandBet = 0
	p.Folded = false
	p.AllIn = false
	p.Hand = nil
}
