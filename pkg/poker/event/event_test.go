package event

import (
	"testing"

	"drawpoker-server/pkg/deck"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	a := assert.New(t)

	e := New(TypePlayerActed, "alice called ${20}").
		WithPlayer(4).
		WithAmount(20).
		WithRound(2)

	a.NotEmpty(e.UUID)
	a.False(e.Time.IsZero())
	a.Equal(TypePlayerActed, e.Type)
	a.Equal(int64(4), e.PlayerID)
	a.Equal(20, e.Amount)
	a.Equal(2, e.Round)
	a.Equal("alice called ${20}", e.Message)

	// distinct events get distinct identifiers
	a.NotEqual(e.UUID, New(TypePlayerActed, "again").UUID)
}

func TestChanSink(t *testing.T) {
	a := assert.New(t)

	sink := NewChanSink(1)
	first := New(TypeHandStarted, "hand 1")
	sink.Emit(first)
	sink.Emit(New(TypeHandStarted, "dropped")) // buffer full, must not block

	a.Same(first, <-sink.C())

	select {
	case e := <-sink.C():
		t.Fatalf("expected empty channel, got %v", e)
	default:
	}
}

func TestMultiSink(t *testing.T) {
	a := assert.New(t)

	s1 := NewChanSink(1)
	s2 := NewChanSink(1)
	MultiSink{s1, s2}.Emit(New(TypeCardsDealt, "dealt").WithCards(deck.CardsFromString("2c,3d")))

	e1 := <-s1.C()
	e2 := <-s2.C()
	a.Same(e1, e2)
	a.Equal("2c,3d", e1.Cards.String())
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() {
		Discard.Emit(New(TypeGameFinished, "done"))
	})
}
