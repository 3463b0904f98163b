package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamlens/teamlens/internal/config"
	"github.com/teamlens/teamlens/internal/dataset"
	"github.com/teamlens/teamlens/internal/storage"
)

const sampleExport = `[
  {
    "team_id": "team_1",
    "owner_info": {"id": "owner_1", "name": "김철수"},
    "team_info": {"teamName": "Team 1", "createdAt": "2025-03-01T09:00:00Z"},
    "agents": [{"agentId": "agent_1", "agent_info": {"name": "에이전트", "personality": "ENTP"}}],
    "ideas": [{"id": "i1", "creator": "agent_1", "content": {"object": "로봇"}}],
    "chat": [{"type": "make_request", "sender": "나", "payload": {"requestType": "generate", "content": "아이디어"}}]
  }
]`

// mockSnapshotStore implements storage.SnapshotStore in memory.
type mockSnapshotStore struct {
	snaps map[string]*storage.Snapshot
}

func newMockSnapshotStore() *mockSnapshotStore {
	return &mockSnapshotStore{snaps: make(map[string]*storage.Snapshot)}
}

func (m *mockSnapshotStore) Save(_ context.Context, snap *storage.Snapshot) error {
	m.snaps[snap.ID] = snap
	return nil
}

func (m *mockSnapshotStore) Get(_ context.Context, id string) (*storage.Snapshot, error) {
	snap, ok := m.snaps[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return snap, nil
}

func (m *mockSnapshotStore) List(_ context.Context) ([]*storage.Snapshot, error) {
	var out []*storage.Snapshot
	for _, snap := range m.snaps {
		out = append(out, snap)
	}
	return out, nil
}

func (m *mockSnapshotStore) Delete(_ context.Context, id string) error {
	if _, ok := m.snaps[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.snaps, id)
	return nil
}

func (m *mockSnapshotStore) Close() error { return nil }

func newTestHandlers(t *testing.T) (*APIHandlers, *mockSnapshotStore) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "teams.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleExport), 0o600))

	manager := dataset.NewManager(path, nil)
	_, err := manager.Reload()
	require.NoError(t, err)

	cfg, err := config.Load("")
	require.NoError(t, err)

	store := newMockSnapshotStore()
	return NewAPIHandlers(manager, store, cfg, nil), store
}

func TestHealth(t *testing.T) {
	h, _ := newTestHandlers(t)
	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestSummary(t *testing.T) {
	h, _ := newTestHandlers(t)
	rec := httptest.NewRecorder()
	h.Summary(rec, httptest.NewRequest(http.MethodGet, "/api/summary", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SummaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Teams)
	assert.Equal(t, 1, resp.Owners)
	assert.Equal(t, 1, resp.Agents)
	assert.Equal(t, 2, resp.Persons)
	assert.Len(t, resp.Fingerprint, 64)
}

func TestSummaryBeforeLoad(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	h := NewAPIHandlers(dataset.NewManager("missing.json", nil), newMockSnapshotStore(), cfg, nil)

	rec := httptest.NewRecorder()
	h.Summary(rec, httptest.NewRequest(http.MethodGet, "/api/summary", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestActivityEndpoint(t *testing.T) {
	h, _ := newTestHandlers(t)
	rec := httptest.NewRecorder()
	h.Activity(rec, httptest.NewRequest(http.MethodGet, "/api/activity", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Structural struct {
			Total struct {
				IdeaGeneration int `json:"ideaGeneration"`
				Request        int `json:"request"`
			} `json:"total"`
		} `json:"structural"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Structural.Total.IdeaGeneration)
	assert.Equal(t, 1, resp.Structural.Total.Request)
}

func TestDiffEndpoint(t *testing.T) {
	h, _ := newTestHandlers(t)
	body := strings.NewReader(`{"before":"나는 학생 입니다","after":"나는 대학생 입니다"}`)
	rec := httptest.NewRecorder()
	h.Diff(rec, httptest.NewRequest(http.MethodPost, "/api/diff", body))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp DiffResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Spans)
	assert.NotEmpty(t, resp.BeforeView)
	assert.NotEmpty(t, resp.AfterView)
	assert.Greater(t, resp.Similarity, 0.0)
}

func TestDiffEndpointBadBody(t *testing.T) {
	h, _ := newTestHandlers(t)
	rec := httptest.NewRecorder()
	h.Diff(rec, httptest.NewRequest(http.MethodPost, "/api/diff", strings.NewReader("{broken")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClustersSeedQuery(t *testing.T) {
	h, _ := newTestHandlers(t)

	rec := httptest.NewRecorder()
	h.Clusters(rec, httptest.NewRequest(http.MethodGet, "/api/clusters?seed=99", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ClustersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(99), resp.Seed)
	assert.NotEmpty(t, resp.Clusters)

	rec = httptest.NewRecorder()
	h.Clusters(rec, httptest.NewRequest(http.MethodGet, "/api/clusters?seed=abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClustersDefaultReflectsConfiguredSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teams.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleExport), 0o600))

	manager := dataset.NewManager(path, nil)
	manager.SetClustering(2, 42)
	_, err := manager.Reload()
	require.NoError(t, err)

	cfg, err := config.Load("")
	require.NoError(t, err)
	h := NewAPIHandlers(manager, newMockSnapshotStore(), cfg, nil)

	rec := httptest.NewRecorder()
	h.Clusters(rec, httptest.NewRequest(http.MethodGet, "/api/clusters", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ClustersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.Seed)
	assert.Equal(t, 2, resp.K)
}

func TestSnapshotLifecycle(t *testing.T) {
	h, store := newTestHandlers(t)

	// Save.
	rec := httptest.NewRecorder()
	h.Snapshots(rec, httptest.NewRequest(http.MethodPost, "/api/snapshots", strings.NewReader(`{"name":"baseline"}`)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var saved storage.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	assert.Equal(t, "baseline", saved.Name)
	assert.NotEmpty(t, saved.ID)
	assert.Len(t, store.snaps, 1)

	// List.
	rec = httptest.NewRecorder()
	h.Snapshots(rec, httptest.NewRequest(http.MethodGet, "/api/snapshots", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	// Get by id.
	req := httptest.NewRequest(http.MethodGet, "/api/snapshots/"+saved.ID, nil)
	req.SetPathValue("id", saved.ID)
	rec = httptest.NewRecorder()
	h.SnapshotByID(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Delete.
	req = httptest.NewRequest(http.MethodDelete, "/api/snapshots/"+saved.ID, nil)
	req.SetPathValue("id", saved.ID)
	rec = httptest.NewRecorder()
	h.SnapshotByID(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, store.snaps)

	// Get after delete.
	req = httptest.NewRequest(http.MethodGet, "/api/snapshots/"+saved.ID, nil)
	req.SetPathValue("id", saved.ID)
	rec = httptest.NewRecorder()
	h.SnapshotByID(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReloadEndpoint(t *testing.T) {
	h, _ := newTestHandlers(t)

	// Unchanged file: no change reported.
	rec := httptest.NewRecorder()
	h.Reload(rec, httptest.NewRequest(http.MethodPost, "/api/reload", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ReloadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Changed)
	assert.NotEmpty(t, resp.Fingerprint)
}

func TestSimilarPersonsWithoutVectorStore(t *testing.T) {
	h, _ := newTestHandlers(t)
	req := httptest.NewRequest(http.MethodGet, "/api/persons/p1/similar", nil)
	req.SetPathValue("id", "p1")
	rec := httptest.NewRecorder()
	h.SimilarPersons(rec, req)
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}
