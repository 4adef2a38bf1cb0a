package draw

import (
	"context"

	"drawpoker-server/pkg/deck"
	"drawpoker-server/pkg/poker/betting"
)

// DrawView is the read-only view handed to a provider during the draw
// phase
type DrawView struct {
	PlayerID int64     `json:"playerId"`
	Position int       `json:"position"`
	Cards    deck.Hand `json:"cards"`
	Chips    int       `json:"chips"`
	Pot      int       `json:"pot"`
	Round    int       `json:"round"`
}

// Provider supplies both betting decisions and draw selections for a
// player. DrawDiscards returns the positions (0-4) of the cards to
// throw away; a timeout, error, or invalid selection keeps the hand as
// dealt.
type Provider interface {
	betting.DecisionProvider
	DrawDiscards(ctx context.Context, view *DrawView) ([]int, error)
}
