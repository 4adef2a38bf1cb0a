// Package mux provides the HTTP surface for observing running games:
// a health check, game listings, persisted snapshots, and a websocket
// event stream.
package mux

import (
	"context"
	"net/http"
	"sync"

	"drawpoker-server/pkg/poker/draw"
	"drawpoker-server/pkg/store"

	gmux "github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const uuidPattern = `{uuid:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}`

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version   string
	snapshots *store.SnapshotStore

	mu    sync.RWMutex
	games map[string]*LiveGame
}

// NewMux returns a new HTTP mux. snapshots may be nil when the server
// runs without a database.
func NewMux(version string, snapshots *store.SnapshotStore) *Mux {
	this := &Mux{
		Router:    gmux.NewRouter(),
		version:   version,
		snapshots: snapshots,
		games:     make(map[string]*LiveGame),
	}

	r := this.Router
	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	r.Methods(http.MethodGet).Path("/game").Handler(this.getGame())
	r.Methods(http.MethodGet).Path("/game/" + uuidPattern).Handler(this.getGameUUID())
	r.Methods(http.MethodGet).Path("/game/" + uuidPattern + "/snapshots").Handler(this.getGameUUIDSnapshots())
	r.Methods(http.MethodGet).Path("/game/" + uuidPattern + "/ws").Handler(this.getGameUUIDWS())

	return this
}

// LiveGame tracks one running game: its event hub and the latest
// recorded snapshot
type LiveGame struct {
	id  string
	hub *Hub

	mu     sync.RWMutex
	latest *draw.Snapshot
}

// Hub returns the game's event hub
func (lg *LiveGame) Hub() *Hub {
	return lg.hub
}

// Record caches the latest snapshot; it implements draw.Recorder
func (lg *LiveGame) Record(_ context.Context, snapshot *draw.Snapshot) error {
	lg.mu.Lock()
	lg.latest = snapshot
	lg.mu.Unlock()
	return nil
}

// Latest returns the most recent snapshot, or nil before the first
// phase completes
func (lg *LiveGame) Latest() *draw.Snapshot {
	lg.mu.RLock()
	defer lg.mu.RUnlock()
	return lg.latest
}

// RegisterGame makes a game visible over HTTP. Wire the returned
// LiveGame in as the game's recorder and its hub as an event sink.
func (m *Mux) RegisterGame(id string, logger logrus.FieldLogger) *LiveGame {
	lg := &LiveGame{
		id:  id,
		hub: NewHub(logger),
	}

	m.mu.Lock()
	m.games[id] = lg
	m.mu.Unlock()

	return lg
}

func (m *Mux) liveGame(id string) *LiveGame {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.games[id]
}

func (m *Mux) liveGames() []*LiveGame {
	m.mu.RLock()
	defer m.mu.RUnlock()

	games := make([]*LiveGame, 0, len(m.games))
	for _, lg := range m.games {
		games = append(games, lg)
	}

	return games
}
