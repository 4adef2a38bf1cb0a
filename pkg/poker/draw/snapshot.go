package draw

import (
	"context"
	"time"

	"drawpoker-server/pkg/poker/potmanager"
)

var timeNow = time.Now

// PlayerSnapshot is a player's public state at a point in the hand
type PlayerSnapshot struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Chips    int    `json:"chips"`
	RoundBet int    `json:"roundBet"`
	HandBet  int    `json:"handBet"`
	Folded   bool   `json:"folded"`
	AllIn    bool   `json:"allIn"`
}

// Snapshot is the public game state emitted after every phase
type Snapshot struct {
	GameID  string             `json:"gameId"`
	Round   int                `json:"round"`
	Phase   Phase              `json:"phase"`
	Pot     int                `json:"pot"`
	Layers  []potmanager.Layer `json:"layers,omitempty"`
	Players []PlayerSnapshot   `json:"players"`
	Time    time.Time          `json:"time"`
}

// Recorder persists snapshots. Errors are logged by the game, never
// fatal to it.
type Recorder interface {
	Record(ctx context.Context, snapshot *Snapshot) error
}

// RecorderFunc adapts a function to the Recorder interface
type RecorderFunc func(ctx context.Context, snapshot *Snapshot) error

// Record calls the function
func (f RecorderFunc) Record(ctx context.Context, snapshot *Snapshot) error {
	return f(ctx, snapshot)
}

// MultiRecorder fans a snapshot out to several recorders
type MultiRecorder []Recorder

// Record sends the snapshot to every recorder, returning the first
// error encountered
func (m MultiRecorder) Record(ctx context.Context, snapshot *Snapshot) error {
	var firstErr error
	for _, r := range m {
		if err := r.Record(ctx, snapshot); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
