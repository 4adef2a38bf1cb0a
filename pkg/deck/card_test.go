package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCardFromString(t *testing.T) {
	a := assert.New(t)

	card := CardFromString("14s")
	a.Equal(Ace, card.Rank)
	a.Equal(Spades, card.Suit)
	a.Equal("A♠", card.String())
	a.Equal("14s", CardToString(card))

	a.Nil(CardFromString(""))

	a.PanicsWithValue("could not parse card: 15s", func() {
		CardFromString("15s")
	})
}

func TestCardsFromString(t *testing.T) {
	cards := CardsFromString("2c,13h,10d")
	assert.Equal(t, 3, len(cards))
	assert.Equal(t, "2c,13h,10d", CardsToString(cards))
	assert.Equal(t, "2♣", cards[0].String())
	assert.Equal(t, "K♡", cards[1].String())
	assert.Equal(t, "10♢", cards[2].String())
}

func TestCard_Equal(t *testing.T) {
	a := assert.New(t)
	a.True(CardFromString("5d").Equal(CardFromString("5d")))
	a.False(CardFromString("5d").Equal(CardFromString("5h")))
	a.False(CardFromString("5d").Equal(CardFromString("6d")))
}

func TestCard_AceLowRank(t *testing.T) {
	assert.Equal(t, 1, CardFromString("14c").AceLowRank())
	assert.Equal(t, 13, CardFromString("13c").AceLowRank())
}
