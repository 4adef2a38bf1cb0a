package store

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"drawpoker-server/pkg/poker/draw"
	"drawpoker-server/pkg/poker/potmanager"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// testDB connects to the database named by DP_TEST_PG_DSN, or skips
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("DP_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("DP_TEST_PG_DSN not set")
	}

	db, err := Connect(dsn)
	assert.NoError(t, err)
	assert.NoError(t, Migrate(db, "../../sql"))
	return db
}

func testSnapshot(gameID string, round int, phase draw.Phase) *draw.Snapshot {
	return &draw.Snapshot{
		GameID: gameID,
		Round:  round,
		Phase:  phase,
		Pot:    60,
		Layers: []potmanager.Layer{
			{Amount: 60, Eligible: []int64{1, 2}},
		},
		Players: []draw.PlayerSnapshot{
			{ID: 1, Name: "alice", Chips: 180, HandBet: 20},
			{ID: 2, Name: "bob", Chips: 160, HandBet: 40},
		},
		Time: time.Now().UTC(),
	}
}

func TestSnapshotStore_roundTrip(t *testing.T) {
	a := assert.New(t)

	store := NewSnapshotStore(testDB(t))
	ctx := context.Background()
	gameID := uuid.New().String()

	a.NoError(store.Record(ctx, testSnapshot(gameID, 1, draw.PhaseBlinds)))
	a.NoError(store.Record(ctx, testSnapshot(gameID, 1, draw.PhaseShowdown)))

	snapshots, err := store.GetSnapshots(ctx, gameID, 0, 10)
	a.NoError(err)
	a.Len(snapshots, 2)
	a.Equal(draw.PhaseBlinds, snapshots[0].Phase)
	a.Equal(60, snapshots[0].Pot)
	a.Equal([]int64{1, 2}, snapshots[0].Layers[0].Eligible)
	a.Equal("alice", snapshots[0].Players[0].Name)

	latest, err := store.LatestSnapshot(ctx, gameID)
	a.NoError(err)
	a.Equal(draw.PhaseShowdown, latest.Phase)

	pots, err := store.FinalPots(ctx)
	a.NoError(err)
	a.Equal(60, pots[gameID])
}

func TestPhaseFromString_roundTrip(t *testing.T) {
	a := assert.New(t)

	for p := draw.PhasePending; p <= draw.PhaseDone; p++ {
		parsed, err := draw.PhaseFromString(p.String())
		a.NoError(err)
		a.Equal(p, parsed)
	}

	_, err := draw.PhaseFromString("flop")
	a.EqualError(err, "unknown phase: flop")
}
