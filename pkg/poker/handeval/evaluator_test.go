package handeval

import (
	"testing"

	"drawpoker-server/pkg/deck"

	"github.com/stretchr/testify/assert"
)

func evaluate(t *testing.T, cards string) *Evaluation {
	t.Helper()

	eval, err := Evaluate(deck.CardsFromString(cards))
	assert.NoError(t, err)
	return eval
}

func TestEvaluate_categories(t *testing.T) {
	a := assert.New(t)

	eval := evaluate(t, "14s,13s,12s,11s,10s")
	a.Equal(RoyalFlush, eval.Category)
	a.Equal([]int{14, 13, 12, 11, 10}, eval.Tiebreakers)
	a.Equal("Royal flush", eval.Description)

	eval = evaluate(t, "9h,8h,7h,6h,5h")
	a.Equal(StraightFlush, eval.Category)
	a.Equal([]int{9, 8, 7, 6, 5}, eval.Tiebreakers)
	a.Equal("Straight flush, 9 high", eval.Description)

	eval = evaluate(t, "8c,8d,8h,8s,2c")
	a.Equal(FourOfAKind, eval.Category)
	a.Equal([]int{8, 2}, eval.Tiebreakers)
	a.Equal("Four of a kind, 8s", eval.Description)

	eval = evaluate(t, "13c,13d,13h,9s,9c")
	a.Equal(FullHouse, eval.Category)
	a.Equal([]int{13, 9}, eval.Tiebreakers)
	a.Equal("Full house, Ks over 9s", eval.Description)

	eval = evaluate(t, "14d,11d,9d,6d,3d")
	a.Equal(Flush, eval.Category)
	a.Equal([]int{14, 11, 9, 6, 3}, eval.Tiebreakers)
	a.Equal("Flush, A high", eval.Description)

	eval = evaluate(t, "10c,9d,8h,7s,6c")
	a.Equal(Straight, eval.Category)
	a.Equal([]int{10, 9, 8, 7, 6}, eval.Tiebreakers)
	a.Equal("Straight, 10 high", eval.Description)

	eval = evaluate(t, "12c,12d,12h,8s,4c")
	a.Equal(ThreeOfAKind, eval.Category)
	a.Equal([]int{12, 8, 4}, eval.Tiebreakers)
	a.Equal("Three of a kind, Qs", eval.Description)

	eval = evaluate(t, "11c,11d,4h,4s,9c")
	a.Equal(TwoPair, eval.Category)
	a.Equal([]int{11, 4, 9}, eval.Tiebreakers)
	a.Equal("Two pair, Js and 4s", eval.Description)

	eval = evaluate(t, "9c,9d,14h,7s,3c")
	a.Equal(OnePair, eval.Category)
	a.Equal([]int{9, 14, 7, 3}, eval.Tiebreakers)
	a.Equal("Pair of 9s", eval.Description)

	eval = evaluate(t, "13c,11d,9h,6s,2c")
	a.Equal(HighCard, eval.Category)
	a.Equal([]int{13, 11, 9, 6, 2}, eval.Tiebreakers)
	a.Equal("K high", eval.Description)
}

func TestEvaluate_wheel(t *testing.T) {
	a := assert.New(t)

	// ace plays low
	eval := evaluate(t, "14d,2c,3h,4s,5d")
	a.Equal(Straight, eval.Category)
	a.Equal([]int{5, 4, 3, 2, 1}, eval.Tiebreakers)
	a.Equal("Straight, 5 high", eval.Description)

	// the wheel ranks below a 6-high straight
	sixHigh := evaluate(t, "6d,5c,4h,3s,2d")
	a.Negative(Compare(eval, sixHigh))

	// a steel wheel is a straight flush, not a royal flush
	eval = evaluate(t, "14s,2s,3s,4s,5s")
	a.Equal(StraightFlush, eval.Category)
	a.Equal([]int{5, 4, 3, 2, 1}, eval.Tiebreakers)
}

func TestEvaluate_invalidHands(t *testing.T) {
	a := assert.New(t)

	eval, err := Evaluate(deck.CardsFromString("2c,3c,4c,5c"))
	a.Equal(ErrInvalidHand, err)
	a.Nil(eval)

	eval, err = Evaluate(deck.CardsFromString("2c,3c,4c,5c,6c,7c"))
	a.Equal(ErrInvalidHand, err)
	a.Nil(eval)

	eval, err = Evaluate(deck.CardsFromString("2c,2c,4c,5c,6c"))
	a.Equal(ErrInvalidHand, err)
	a.Nil(eval)
}

func TestCompare_categoryOrder(t *testing.T) {
	ordered := []string{
		"13c,11d,9h,6s,2c",  // high card
		"9c,9d,14h,7s,3c",   // pair
		"11c,11d,4h,4s,9c",  // two pair
		"12c,12d,12h,8s,4c", // trips
		"14d,2c,3h,4s,5d",   // wheel
		"10c,9d,8h,7s,6c",   // straight
		"14d,11d,9d,6d,3d",  // flush
		"13c,13d,13h,9s,9c", // full house
		"8c,8d,8h,8s,2c",    // quads
		"9h,8h,7h,6h,5h",    // straight flush
		"14s,13s,12s,11s,10s",
	}

	for i := 1; i < len(ordered); i++ {
		lower := evaluate(t, ordered[i-1])
		higher := evaluate(t, ordered[i])
		assert.Positive(t, Compare(higher, lower), "%s must beat %s", ordered[i], ordered[i-1])
		assert.Greater(t, higher.Strength(), lower.Strength())
	}
}

func TestCompare_tiebreakers(t *testing.T) {
	a := assert.New(t)

	// kicker decides
	a.Positive(Compare(evaluate(t, "9c,9d,14h,7s,3c"), evaluate(t, "9h,9s,13h,7d,3d")))

	// genuinely equal hands
	a.Zero(Compare(evaluate(t, "9c,9d,14h,7s,3c"), evaluate(t, "9h,9s,14d,7d,3d")))

	// higher pair beats lower pair
	a.Positive(Compare(evaluate(t, "10c,10d,2h,3s,4c"), evaluate(t, "9h,9s,14d,13d,12d")))
}
