// Package storage defines the persistence interfaces for analysis
// snapshots. A snapshot is one frozen analysis result tied to a dataset
// fingerprint, saved so runs can be compared across dataset revisions.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Common storage errors.
var (
	// ErrNotFound is returned when a snapshot does not exist.
	ErrNotFound = errors.New("storage: not found")

	// ErrInvalidInput is returned for malformed arguments.
	ErrInvalidInput = errors.New("storage: invalid input")
)

// Snapshot is one saved analysis result.
type Snapshot struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Fingerprint string          `json:"fingerprint"`
	CreatedAt   time.Time       `json:"createdAt"`
	Result      json.RawMessage `json:"result,omitempty"`
}

// SnapshotStore persists analysis snapshots.
type SnapshotStore interface {
	// Save stores a snapshot. The ID must be set by the caller.
	Save(ctx context.Context, snap *Snapshot) error

	// Get retrieves a snapshot with its full result payload.
	// Returns ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*Snapshot, error)

	// List returns all snapshots newest first, without result payloads.
	List(ctx context.Context) ([]*Snapshot, error)

	// Delete removes a snapshot. Returns ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error

	// Close releases the underlying database handle.
	Close() error
}

// PersonVector is a participant's feature encoding persisted for
// similarity lookup.
type PersonVector struct {
	PersonID string    `json:"personId"`
	Name     string    `json:"name"`
	TeamID   string    `json:"teamId"`
	Vector   []float64 `json:"vector"`
	Distance float64   `json:"distance,omitempty"`
}

// VectorStore persists participant feature vectors and answers
// nearest-neighbor queries. Only the Postgres backend implements it; the
// server degrades the similar-participants panel gracefully when the
// configured store does not.
type VectorStore interface {
	// SaveVectors replaces all stored vectors with the given set.
	SaveVectors(ctx context.Context, vectors []PersonVector) error

	// SimilarPersons returns the closest stored vectors to the given
	// person, excluding the person itself.
	SimilarPersons(ctx context.Context, personID string, limit int) ([]PersonVector, error)
}
