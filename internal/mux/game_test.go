package mux

import (
	"context"
	"net/http/httptest"
	"testing"

	"drawpoker-server/pkg/poker/draw"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGameHandlers(t *testing.T) {
	a := assert.New(t)

	m := NewMux("v1", nil)
	ts := httptest.NewServer(m)
	defer ts.Close()

	gameID := uuid.New().String()
	lg := m.RegisterGame(gameID, nil)

	var summaries []gameSummary
	assertGet(t, ts, "/game", &summaries, 200)
	a.Len(summaries, 1)
	a.Equal(gameID, summaries[0].ID)
	a.Equal(0, summaries[0].Round)

	// before the first phase is recorded, only the summary is available
	var summary gameSummary
	assertGet(t, ts, "/game/"+gameID, &summary, 200)
	a.Equal(gameID, summary.ID)

	a.NoError(lg.Record(context.Background(), &draw.Snapshot{
		GameID: gameID,
		Round:  2,
		Phase:  draw.PhaseDraw,
		Pot:    40,
	}))

	var snapshot draw.Snapshot
	assertGet(t, ts, "/game/"+gameID, &snapshot, 200)
	a.Equal(2, snapshot.Round)
	a.Equal(draw.PhaseDraw, snapshot.Phase)
	a.Equal(40, snapshot.Pot)

	assertGet(t, ts, "/game/"+uuid.New().String(), nil, 404)

	// snapshot history requires a database
	assertGet(t, ts, "/game/"+gameID+"/snapshots", nil, 503)
}
