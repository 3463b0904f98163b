package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleExport = `[
  {
    "team_id": "team_1",
    "owner_info": {"id": "owner_1", "name": "김철수"},
    "team_info": {"teamName": "Team 1", "createdAt": "2025-03-01T09:00:00Z"},
    "agents": [{"agentId": "agent_1", "agent_info": {"name": "에이전트"}}],
    "ideas": [{"id": "i1", "creator": "agent_1", "content": {"object": "로봇"}}],
    "chat": []
  }
]`

func writeExport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "teams.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write export: %v", err)
	}
	return path
}

func TestLoadBareArray(t *testing.T) {
	teams, err := Load(writeExport(t, sampleExport))
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, "team_1", teams[0].TeamID)
	assert.Len(t, teams[0].Agents, 1)
}

func TestParseWrappedObject(t *testing.T) {
	teams, err := Parse([]byte(`{"teams": ` + sampleExport + `}`))
	require.NoError(t, err)
	assert.Len(t, teams, 1)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse([]byte(`not json`))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestFingerprintStable(t *testing.T) {
	a := Fingerprint([]byte(sampleExport))
	b := Fingerprint([]byte(sampleExport))
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, Fingerprint([]byte("[]")))
}

func TestManagerMemoizesByFingerprint(t *testing.T) {
	path := writeExport(t, sampleExport)
	m := NewManager(path, nil)

	changed, err := m.Reload()
	require.NoError(t, err)
	assert.True(t, changed)
	require.NotNil(t, m.Result())
	first := m.Result()

	// Unchanged file: same fingerprint, same memoized result.
	changed, err = m.Reload()
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Same(t, first, m.Result())

	// Changed file: recompute.
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o600))
	changed, err = m.Reload()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.NotSame(t, first, m.Result())
	assert.Zero(t, m.Result().Meta.Teams)
}

func TestManagerUsesConfiguredClustering(t *testing.T) {
	m := NewManager(writeExport(t, sampleExport), nil)
	m.SetClustering(3, 42)

	_, err := m.Reload()
	require.NoError(t, err)
	assert.Equal(t, 3, m.Result().Meta.ClusterK)
	assert.Equal(t, int64(42), m.Result().Meta.ClusterSeed)
}

func TestManagerRefreshWithoutFetcher(t *testing.T) {
	m := NewManager("unused", nil)
	_, err := m.Refresh(t.Context())
	assert.Error(t, err)
}

func TestWatcherStopWithoutStart(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "teams.json"), nil)
	w.Stop() // must not block
}

func TestWatcherStopAfterFailedStart(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "missing", "teams.json"), nil)
	require.Error(t, w.Start())
	w.Stop() // must not block
}
