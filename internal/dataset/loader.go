// Package dataset loads the team experiment export and keeps the computed
// analysis in sync with it: a file loader, an optional HTTP fetcher behind a
// circuit breaker, an fsnotify watcher for live reloads, and a manager that
// memoizes analysis results by dataset fingerprint.
package dataset

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/teamlens/teamlens/pkg/types"
)

// Load reads a team export file. The export is either a bare JSON array of
// teams or an object with a top-level "teams" key; both forms are accepted.
func Load(path string) ([]types.Team, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: read %s: %w", path, err)
	}
	teams, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("dataset: parse %s: %w", path, err)
	}
	return teams, nil
}

// Parse decodes raw export bytes into teams.
func Parse(data []byte) ([]types.Team, error) {
	var teams []types.Team
	if err := json.Unmarshal(data, &teams); err == nil {
		return teams, nil
	}
	var wrapped struct {
		Teams []types.Team `json:"teams"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("dataset: not a team export: %w", err)
	}
	return wrapped.Teams, nil
}

// Fingerprint identifies a dataset revision by the SHA-256 of its raw
// bytes. Identical bytes always produce identical analysis, so the
// fingerprint doubles as the memoization key.
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
