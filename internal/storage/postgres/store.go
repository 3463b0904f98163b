// Package postgres implements the snapshot store on PostgreSQL and adds
// pgvector-backed participant similarity lookup, which the SQLite backend
// does not offer.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/teamlens/teamlens/internal/storage"
	"github.com/teamlens/teamlens/pkg/types"
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	fingerprint TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL,
	result      JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_created ON snapshots(created_at DESC);
`

const vectorSchema = `
CREATE EXTENSION IF NOT EXISTS vector;
CREATE TABLE IF NOT EXISTS person_vectors (
	person_id TEXT PRIMARY KEY,
	name      TEXT NOT NULL,
	team_id   TEXT NOT NULL,
	features  vector(%d) NOT NULL
);
`

// Store implements storage.SnapshotStore and storage.VectorStore using
// PostgreSQL. The vector side requires the pgvector extension; when it
// cannot be installed the store still works for snapshots and
// SimilarPersons reports the missing capability.
type Store struct {
	db             *sql.DB
	vectorsEnabled bool
}

// NewStore connects to PostgreSQL and applies the schema. The pgvector
// extension is attempted but optional.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: apply schema: %w", err)
	}

	store := &Store{db: db}
	if _, err := db.Exec(fmt.Sprintf(vectorSchema, types.NumDims)); err == nil {
		store.vectorsEnabled = true
	}
	return store, nil
}

// VectorsEnabled reports whether pgvector similarity lookup is available.
func (s *Store) VectorsEnabled() bool { return s.vectorsEnabled }

// Save stores a snapshot.
func (s *Store) Save(ctx context.Context, snap *storage.Snapshot) error {
	if snap == nil || snap.ID == "" {
		return fmt.Errorf("%w: snapshot id is required", storage.ErrInvalidInput)
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO snapshots (id, name, fingerprint, created_at, result)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			fingerprint = excluded.fingerprint,
			result = excluded.result`,
		snap.ID, snap.Name, snap.Fingerprint, snap.CreatedAt, []byte(snap.Result))
	if err != nil {
		return fmt.Errorf("postgres: save snapshot %s: %w", snap.ID, err)
	}
	return nil
}

// Get retrieves a snapshot with its result payload.
func (s *Store) Get(ctx context.Context, id string) (*storage.Snapshot, error) {
	var snap storage.Snapshot
	var result []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, fingerprint, created_at, result
		FROM snapshots WHERE id = $1`, id).
		Scan(&snap.ID, &snap.Name, &snap.Fingerprint, &snap.CreatedAt, &result)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: get snapshot %s: %w", id, err)
	}
	snap.Result = result
	return &snap, nil
}

// List returns all snapshots newest first, without payloads.
func (s *Store) List(ctx context.Context) ([]*storage.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, fingerprint, created_at
		FROM snapshots ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("postgres: list snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []*storage.Snapshot
	for rows.Next() {
		var snap storage.Snapshot
		if err := rows.Scan(&snap.ID, &snap.Name, &snap.Fingerprint, &snap.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgres: scan snapshot: %w", err)
		}
		snaps = append(snaps, &snap)
	}
	return snaps, rows.Err()
}

// Delete removes a snapshot.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres: delete snapshot %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("postgres: delete snapshot %s: %w", id, err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveVectors replaces all stored participant vectors.
func (s *Store) SaveVectors(ctx context.Context, vectors []storage.PersonVector) error {
	if !s.vectorsEnabled {
		return fmt.Errorf("postgres: pgvector extension not available")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM person_vectors`); err != nil {
		return fmt.Errorf("postgres: clear vectors: %w", err)
	}
	for _, v := range vectors {
		f32 := make([]float32, len(v.Vector))
		for i, x := range v.Vector {
			f32[i] = float32(x)
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO person_vectors (person_id, name, team_id, features)
			VALUES ($1, $2, $3, $4)`,
			v.PersonID, v.Name, v.TeamID, pgvector.NewVector(f32))
		if err != nil {
			return fmt.Errorf("postgres: insert vector %s: %w", v.PersonID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit vectors: %w", err)
	}
	return nil
}

// SimilarPersons returns the participants whose feature vectors are closest
// to the given person, by Euclidean distance, excluding the person.
func (s *Store) SimilarPersons(ctx context.Context, personID string, limit int) ([]storage.PersonVector, error) {
	if !s.vectorsEnabled {
		return nil, fmt.Errorf("postgres: pgvector extension not available")
	}
	if limit <= 0 {
		limit = 5
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.person_id, p.name, p.team_id,
		       p.features <-> t.features AS distance
		FROM person_vectors p,
		     (SELECT features FROM person_vectors WHERE person_id = $1) t
		WHERE p.person_id != $1
		ORDER BY distance ASC
		LIMIT $2`, personID, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: similar persons %s: %w", personID, err)
	}
	defer rows.Close()

	var out []storage.PersonVector
	for rows.Next() {
		var v storage.PersonVector
		if err := rows.Scan(&v.PersonID, &v.Name, &v.TeamID, &v.Distance); err != nil {
			return nil, fmt.Errorf("postgres: scan similar person: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
