package handeval

import (
	"fmt"

	"drawpoker-server/pkg/deck"
)

// Hand is a five-card draw hand with a cached evaluation.
// The cache is invalidated whenever the cards change.
type Hand struct {
	cards deck.Hand
	eval  *Evaluation
}

// NewHand returns a hand holding the given cards
func NewHand(cards ...*deck.Card) *Hand {
	h := &Hand{
		cards: make(deck.Hand, 0, HandSize),
	}
	h.AddCards(cards...)

	return h
}

// AddCards adds cards to the hand and invalidates the cached evaluation
func (h *Hand) AddCards(cards ...*deck.Card) {
	h.cards = append(h.cards, cards...)
	h.eval = nil
}

// Discard removes the cards at the given positions and returns them.
// Positions must be unique and within the hand.
func (h *Hand) Discard(positions []int) (deck.Hand, error) {
	uniq := make(map[int]bool, len(positions))
	for _, pos := range positions {
		if pos < 0 || pos >= len(h.cards) {
			return nil, fmt.Errorf("discard position %d is out of range", pos)
		}
		if uniq[pos] {
			return nil, fmt.Errorf("duplicate discard position %d", pos)
		}
		uniq[pos] = true
	}

	discarded := make(deck.Hand, 0, len(positions))
	kept := make(deck.Hand, 0, len(h.cards))
	for i, card := range h.cards {
		if uniq[i] {
			discarded = append(discarded, card)
		} else {
			kept = append(kept, card)
		}
	}

	h.cards = kept
	h.eval = nil

	return discarded, nil
}

// Cards returns a copy of the cards in the hand
func (h *Hand) Cards() deck.Hand {
	return h.cards.Clone()
}

// Size returns the number of cards in the hand
func (h *Hand) Size() int {
	return len(h.cards)
}

// Evaluation returns the hand's evaluation, computing it on first use.
// Repeated calls on an unmodified hand return the identical cached result.
func (h *Hand) Evaluation() (*Evaluation, error) {
	if h.eval != nil {
		return h.eval, nil
	}

	eval, err := Evaluate(h.cards)
	if err != nil {
		return nil, err
	}

	h.eval = eval
	return eval, nil
}

func (h *Hand) String() string {
	return h.cards.String()
}
