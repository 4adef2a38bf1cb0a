package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"drawpoker-server/pkg/poker/draw"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const pqDuplicateKeyErrorCode pq.ErrorCode = "23505"

// ErrDuplicateSnapshot happens when a snapshot is saved twice
var ErrDuplicateSnapshot = UserError("snapshot already recorded")

// UserError is an error whose message is safe to show to a client
type UserError string

func (u UserError) Error() string {
	return string(u)
}

const snapshotColumns = `
game_snapshots.id,
game_snapshots.game_id,
game_snapshots.round,
game_snapshots.phase,
game_snapshots.pot,
game_snapshots.layers,
game_snapshots.players,
game_snapshots.created`

// SnapshotStore persists game snapshots. It implements draw.Recorder.
type SnapshotStore struct {
	db *sql.DB
}

// NewSnapshotStore returns a store backed by the given database
func NewSnapshotStore(db *sql.DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// Record saves the snapshot
func (s *SnapshotStore) Record(ctx context.Context, snapshot *draw.Snapshot) error {
	layers, err := json.Marshal(snapshot.Layers)
	if err != nil {
		return err
	}

	players, err := json.Marshal(snapshot.Players)
	if err != nil {
		return err
	}

	const query = `
INSERT INTO game_snapshots (id, game_id, round, phase, pot, layers, players, created)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = s.db.ExecContext(ctx, query,
		uuid.New().String(),
		snapshot.GameID,
		snapshot.Round,
		snapshot.Phase.String(),
		snapshot.Pot,
		layers,
		players,
		snapshot.Time,
	)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == pqDuplicateKeyErrorCode {
		return ErrDuplicateSnapshot
	}

	return err
}

// Scanner is the part of sql.Row and sql.Rows a snapshot scans from
type Scanner interface {
	Scan(...interface{}) error
}

func snapshotFromRow(row Scanner) (*draw.Snapshot, error) {
	var (
		id       string
		phase    string
		layers   []byte
		players  []byte
		snapshot draw.Snapshot
	)

	if err := row.Scan(&id, &snapshot.GameID, &snapshot.Round, &phase, &snapshot.Pot, &layers, &players, &snapshot.Time); err != nil {
		return nil, err
	}

	p, err := draw.PhaseFromString(phase)
	if err != nil {
		return nil, err
	}
	snapshot.Phase = p

	if err := json.Unmarshal(layers, &snapshot.Layers); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(players, &snapshot.Players); err != nil {
		return nil, err
	}

	return &snapshot, nil
}

// GetSnapshots returns a page of a game's snapshots in play order
func (s *SnapshotStore) GetSnapshots(ctx context.Context, gameID string, start, rows int) ([]*draw.Snapshot, error) {
	const query = `
SELECT ` + snapshotColumns + `
FROM game_snapshots
WHERE game_id = $1
ORDER BY created, id
OFFSET $2 LIMIT $3`

	res, err := s.db.QueryContext(ctx, query, gameID, start, rows)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	var snapshots []*draw.Snapshot
	for res.Next() {
		snapshot, err := snapshotFromRow(res)
		if err != nil {
			return nil, err
		}

		snapshots = append(snapshots, snapshot)
	}

	return snapshots, res.Err()
}

// LatestSnapshot returns a game's most recent snapshot
func (s *SnapshotStore) LatestSnapshot(ctx context.Context, gameID string) (*draw.Snapshot, error) {
	const query = `
SELECT ` + snapshotColumns + `
FROM game_snapshots
WHERE game_id = $1
ORDER BY created DESC, id DESC
LIMIT 1`

	return snapshotFromRow(s.db.QueryRowContext(ctx, query, gameID))
}

// FinalPots returns each recorded game's last known pot size, keyed by
// game ID
func (s *SnapshotStore) FinalPots(ctx context.Context) (map[string]int, error) {
	const query = `
SELECT DISTINCT ON (game_id) game_id, pot
FROM game_snapshots
ORDER BY game_id, created DESC`

	res, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	pots := make(map[string]int)
	for res.Next() {
		var (
			gameID string
			pot    int
		)
		if err := res.Scan(&gameID, &pot); err != nil {
			return nil, err
		}

		pots[gameID] = pot
	}

	return pots, res.Err()
}

var _ draw.Recorder = (*SnapshotStore)(nil)
