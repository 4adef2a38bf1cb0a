package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHand(t *testing.T) {
	a := assert.New(t)

	hand := Hand{}
	hand.AddCard(CardFromString("2c"))
	hand.AddCard(CardFromString("3c"))

	a.True(hand.HasCard(CardFromString("2c")))
	a.False(hand.HasCard(CardFromString("4c")))

	a.True(hand.Discard(CardFromString("2c")))
	a.False(hand.Discard(CardFromString("2c")))
	a.Equal(1, len(hand))
	a.Equal("3c", hand.String())

	clone := hand.Clone()
	clone.AddCard(CardFromString("4c"))
	a.Equal(1, len(hand))
	a.Equal(2, len(clone))
}
