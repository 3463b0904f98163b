package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamlens/teamlens/internal/config"
	"github.com/teamlens/teamlens/internal/dataset"
	"github.com/teamlens/teamlens/internal/storage/sqlite"
)

const sampleExport = `[
  {
    "team_id": "team_1",
    "owner_info": {"id": "owner_1", "name": "김철수"},
    "team_info": {"teamName": "Team 1", "createdAt": "2025-03-01T09:00:00Z"},
    "agents": [{"agentId": "agent_1", "agent_info": {"name": "에이전트"}}],
    "ideas": [],
    "chat": []
  }
]`

func startTestServer(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	exportPath := filepath.Join(dir, "teams.json")
	require.NoError(t, os.WriteFile(exportPath, []byte(sampleExport), 0o600))

	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Server.Port = 0 // pick a free port
	cfg.Dataset.Path = exportPath
	cfg.Dataset.Watch = false

	manager := dataset.NewManager(exportPath, nil)
	_, err = manager.Reload()
	require.NoError(t, err)

	store, err := sqlite.NewSnapshotStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	addr, _, err := Start(ctx, cfg, manager, store, nil)
	require.NoError(t, err)
	return addr
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(url)
	require.NoError(t, err)
	return resp
}

func TestServerHealthAndSummary(t *testing.T) {
	addr := startTestServer(t)

	resp := get(t, fmt.Sprintf("http://%s/api/health", addr))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp2 := get(t, fmt.Sprintf("http://%s/api/summary", addr))
	defer resp2.Body.Close()
	require.Equal(t, http.StatusOK, resp2.StatusCode)

	var summary struct {
		Teams int `json:"teams"`
	}
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&summary))
	assert.Equal(t, 1, summary.Teams)
}

func TestServerSecurityHeaders(t *testing.T) {
	addr := startTestServer(t)

	resp := get(t, fmt.Sprintf("http://%s/api/health", addr))
	defer resp.Body.Close()
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
}

func TestServerUnknownRoute(t *testing.T) {
	addr := startTestServer(t)

	resp := get(t, fmt.Sprintf("http://%s/definitely-not-here", addr))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
