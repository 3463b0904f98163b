package dataset

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/teamlens/teamlens/internal/analysis"
	"github.com/teamlens/teamlens/pkg/types"
)

// Manager holds the current dataset and its analysis. Analysis is memoized
// by dataset fingerprint: reloading an unchanged file reuses the previous
// result instead of recomputing the whole pipeline.
type Manager struct {
	path    string
	fetcher *Fetcher

	mu          sync.RWMutex
	clusterK    int
	clusterSeed int64
	teams       []types.Team
	fingerprint string
	result      *analysis.Result
}

// NewManager creates a manager for the export at path. fetcher is optional;
// when set, Refresh pulls from the remote endpoint instead of the file.
func NewManager(path string, fetcher *Fetcher) *Manager {
	return &Manager{
		path:        path,
		fetcher:     fetcher,
		clusterK:    analysis.DefaultClusterK,
		clusterSeed: analysis.DefaultClusterSeed,
	}
}

// SetClustering overrides the clustering parameters used by subsequent
// reloads. Non-positive k falls back to the default. Call before the first
// Reload so the memoized result reflects the configuration.
func (m *Manager) SetClustering(k int, seed int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if k <= 0 {
		k = analysis.DefaultClusterK
	}
	m.clusterK = k
	m.clusterSeed = seed
}

// Reload reads the export file and recomputes the analysis if its content
// changed. It reports whether anything changed.
func (m *Manager) Reload() (bool, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return false, fmt.Errorf("dataset: read %s: %w", m.path, err)
	}
	return m.apply(data)
}

// Refresh pulls the export from the remote endpoint, falling back to an
// error when no fetcher is configured.
func (m *Manager) Refresh(ctx context.Context) (bool, error) {
	if m.fetcher == nil {
		return false, fmt.Errorf("dataset: no refresh endpoint configured")
	}
	_, data, err := m.fetcher.Fetch(ctx)
	if err != nil {
		return false, err
	}
	return m.apply(data)
}

func (m *Manager) apply(data []byte) (bool, error) {
	fp := Fingerprint(data)

	m.mu.RLock()
	unchanged := fp == m.fingerprint
	clusterK, clusterSeed := m.clusterK, m.clusterSeed
	m.mu.RUnlock()
	if unchanged {
		return false, nil
	}

	teams, err := Parse(data)
	if err != nil {
		return false, err
	}
	result := analysis.AnalyzeWith(teams, clusterK, clusterSeed)

	m.mu.Lock()
	m.teams = teams
	m.fingerprint = fp
	m.result = result
	m.mu.Unlock()
	return true, nil
}

// Teams returns the current dataset.
func (m *Manager) Teams() []types.Team {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.teams
}

// Fingerprint returns the current dataset fingerprint, empty before the
// first load.
func (m *Manager) Fingerprint() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fingerprint
}

// Result returns the memoized analysis, nil before the first load.
func (m *Manager) Result() *analysis.Result {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.result
}
