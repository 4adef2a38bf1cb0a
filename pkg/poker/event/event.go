// Package event defines the game event stream and the sinks that
// consume it.
package event

import (
	"time"

	"drawpoker-server/pkg/deck"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Type identifies what happened
type Type string

// event types
const (
	TypeHandStarted   Type = "hand-started"
	TypeAntePosted    Type = "ante-posted"
	TypeBlindPosted   Type = "blind-posted"
	TypeCardsDealt    Type = "cards-dealt"
	TypePlayerActed   Type = "player-acted"
	TypeCardsDrawn    Type = "cards-drawn"
	TypeCardsShown    Type = "cards-shown"
	TypePhaseChanged  Type = "phase-changed"
	TypePotAwarded    Type = "pot-awarded"
	TypePlayerBusted  Type = "player-busted"
	TypeHandFinished  Type = "hand-finished"
	TypeGameFinished  Type = "game-finished"
	TypeDeckShuffled  Type = "deck-shuffled"
	TypeDecisionError Type = "decision-error"
)

// Event is a single entry in the game log
type Event struct {
	UUID     string    `json:"uuid"`
	Time     time.Time `json:"time"`
	Type     Type      `json:"type"`
	Round    int       `json:"round"`
	PlayerID int64     `json:"playerId,omitempty"`
	Amount   int       `json:"amount,omitempty"`
	Cards    deck.Hand `json:"cards,omitempty"`
	Message  string    `json:"message"`
}

// New returns an event stamped with a UUID and the current time
func New(eventType Type, message string) *Event {
	return &Event{
		UUID:    uuid.New().String(),
		Time:    time.Now(),
		Type:    eventType,
		Message: message,
	}
}

// WithPlayer attaches a player to the event
func (e *Event) WithPlayer(id int64) *Event {
	e.PlayerID = id
	return e
}

// WithAmount attaches a chip amount to the event
func (e *Event) WithAmount(amount int) *Event {
	e.Amount = amount
	return e
}

// WithCards attaches cards to the event
func (e *Event) WithCards(cards deck.Hand) *Event {
	e.Cards = cards
	return e
}

// WithRound attaches the hand number to the event
func (e *Event) WithRound(round int) *Event {
	e.Round = round
	return e
}

// Sink consumes game events. Emit must not block the game loop.
type Sink interface {
	Emit(event *Event)
}

// LogSink writes events to a structured logger
type LogSink struct {
	logger logrus.FieldLogger
}

// NewLogSink returns a sink backed by the given logger
func NewLogSink(logger logrus.FieldLogger) *LogSink {
	return &LogSink{logger: logger}
}

// Emit logs the event
func (s *LogSink) Emit(event *Event) {
	fields := logrus.Fields{
		"uuid":  event.UUID,
		"type":  event.Type,
		"round": event.Round,
	}
	if event.PlayerID > 0 {
		fields["playerId"] = event.PlayerID
	}
	if event.Amount > 0 {
		fields["amount"] = event.Amount
	}
	if len(event.Cards) > 0 {
		fields["cards"] = event.Cards.String()
	}

	s.logger.WithFields(fields).Info(event.Message)
}

// ChanSink forwards events to a channel, dropping them if the receiver
// falls behind
type ChanSink struct {
	ch chan *Event
}

// NewChanSink returns a sink with the given buffer size
func NewChanSink(size int) *ChanSink {
	return &ChanSink{ch: make(chan *Event, size)}
}

// Emit sends the event without blocking
func (s *ChanSink) Emit(event *Event) {
	select {
	case s.ch <- event:
	default:
	}
}

// C returns the receive side of the sink
func (s *ChanSink) C() <-chan *Event {
	return s.ch
}

// MultiSink fans events out to several sinks
type MultiSink []Sink

// Emit sends the event to every sink
func (s MultiSink) Emit(event *Event) {
	for _, sink := range s {
		sink.Emit(event)
	}
}

// Discard is a sink that drops everything
var Discard Sink = discard{}

type discard struct{}

func (discard) Emit(*Event) {}
