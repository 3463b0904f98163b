// Package sqlite implements the snapshot store on modernc.org/sqlite, the
// default engine: a single file, no server, good enough for one dashboard.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/teamlens/teamlens/internal/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	fingerprint TEXT NOT NULL,
	created_at  TIMESTAMP NOT NULL,
	result      BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_created ON snapshots(created_at DESC);
`

// SnapshotStore implements storage.SnapshotStore using SQLite.
type SnapshotStore struct {
	db *sql.DB
}

// NewSnapshotStore opens (and if needed creates) the snapshot database at
// path. Use ":memory:" for an ephemeral store in tests.
func NewSnapshotStore(path string) (*SnapshotStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}
	return &SnapshotStore{db: db}, nil
}

// Save stores a snapshot.
func (s *SnapshotStore) Save(ctx context.Context, snap *storage.Snapshot) error {
	if snap == nil || snap.ID == "" {
		return fmt.Errorf("%w: snapshot id is required", storage.ErrInvalidInput)
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO snapshots (id, name, fingerprint, created_at, result)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			fingerprint = excluded.fingerprint,
			result = excluded.result`,
		snap.ID, snap.Name, snap.Fingerprint, snap.CreatedAt, []byte(snap.Result))
	if err != nil {
		return fmt.Errorf("sqlite: save snapshot %s: %w", snap.ID, err)
	}
	return nil
}

// Get retrieves a snapshot with its result payload.
func (s *SnapshotStore) Get(ctx context.Context, id string) (*storage.Snapshot, error) {
	var snap storage.Snapshot
	var result []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, fingerprint, created_at, result
		FROM snapshots WHERE id = ?`, id).
		Scan(&snap.ID, &snap.Name, &snap.Fingerprint, &snap.CreatedAt, &result)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get snapshot %s: %w", id, err)
	}
	snap.Result = result
	return &snap, nil
}

// List returns all snapshots newest first, without payloads.
func (s *SnapshotStore) List(ctx context.Context) ([]*storage.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, fingerprint, created_at
		FROM snapshots ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []*storage.Snapshot
	for rows.Next() {
		var snap storage.Snapshot
		if err := rows.Scan(&snap.ID, &snap.Name, &snap.Fingerprint, &snap.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scan snapshot: %w", err)
		}
		snaps = append(snaps, &snap)
	}
	return snaps, rows.Err()
}

// Delete removes a snapshot.
func (s *SnapshotStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: delete snapshot %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: delete snapshot %s: %w", id, err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// Close releases the database handle.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}
