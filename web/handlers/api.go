// Package handlers provides the HTTP handlers and middleware for the
// TeamLens dashboard API.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/teamlens/teamlens/internal/analysis"
	"github.com/teamlens/teamlens/internal/config"
	"github.com/teamlens/teamlens/internal/dataset"
	"github.com/teamlens/teamlens/internal/storage"
	"github.com/teamlens/teamlens/pkg/types"
)

// APIHandlers contains the HTTP handlers for the dashboard API.
type APIHandlers struct {
	manager *dataset.Manager
	store   storage.SnapshotStore
	vectors storage.VectorStore // nil unless the postgres backend is active
	config  *config.Config
	hub     *WebSocketHub
}

// NewAPIHandlers creates handlers over the dataset manager and snapshot
// store. hub may be nil in tests; broadcasts are then skipped.
func NewAPIHandlers(manager *dataset.Manager, store storage.SnapshotStore, cfg *config.Config, hub *WebSocketHub) *APIHandlers {
	return &APIHandlers{manager: manager, store: store, config: cfg, hub: hub}
}

// SetVectorStore enables the similar-participants endpoint.
func (h *APIHandlers) SetVectorStore(vs storage.VectorStore) {
	h.vectors = vs
}

// result returns the current analysis or writes a 503 when no dataset has
// been loaded yet.
func (h *APIHandlers) result(w http.ResponseWriter) *analysis.Result {
	result := h.manager.Result()
	if result == nil {
		respondError(w, http.StatusServiceUnavailable, "dataset not loaded", nil)
	}
	return result
}

// Health handles GET /api/health.
func (h *APIHandlers) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Summary handles GET /api/summary.
func (h *APIHandlers) Summary(w http.ResponseWriter, r *http.Request) {
	result := h.result(w)
	if result == nil {
		return
	}
	respondJSON(w, http.StatusOK, SummaryResponse{
		Teams:       result.Meta.Teams,
		Owners:      result.Meta.Owners,
		Agents:      result.Meta.Agents,
		Persons:     result.Meta.Persons,
		Fingerprint: h.manager.Fingerprint(),
	})
}

// Activity handles GET /api/activity.
func (h *APIHandlers) Activity(w http.ResponseWriter, r *http.Request) {
	result := h.result(w)
	if result == nil {
		return
	}
	respondJSON(w, http.StatusOK, result.Activity)
}

// Structure handles GET /api/structure.
func (h *APIHandlers) Structure(w http.ResponseWriter, r *http.Request) {
	result := h.result(w)
	if result == nil {
		return
	}
	respondJSON(w, http.StatusOK, newStructureResponse(result.Structure))
}

// Results handles GET /api/results.
func (h *APIHandlers) Results(w http.ResponseWriter, r *http.Request) {
	result := h.result(w)
	if result == nil {
		return
	}
	respondJSON(w, http.StatusOK, result.Results)
}

// MentalModels handles GET /api/mental-models.
func (h *APIHandlers) MentalModels(w http.ResponseWriter, r *http.Request) {
	result := h.result(w)
	if result == nil {
		return
	}
	respondJSON(w, http.StatusOK, result.MentalModels)
}

// Diff handles POST /api/diff: word-level diff of two texts.
func (h *APIHandlers) Diff(w http.ResponseWriter, r *http.Request) {
	var req DiffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid diff request", err)
		return
	}
	spans := analysis.Diff(req.Before, req.After)
	respondJSON(w, http.StatusOK, DiffResponse{
		Spans:      spans,
		BeforeView: analysis.MergeForDisplay(spans, types.DiffDeleted),
		AfterView:  analysis.MergeForDisplay(spans, types.DiffAdded),
		Similarity: analysis.Round2(analysis.Similarity(req.Before, req.After)),
	})
}

// Clusters handles GET /api/clusters. An optional seed query parameter
// recomputes the clusters with a specific RNG seed; without it the memoized
// default-seed clusters are served.
func (h *APIHandlers) Clusters(w http.ResponseWriter, r *http.Request) {
	result := h.result(w)
	if result == nil {
		return
	}
	seedParam := r.URL.Query().Get("seed")
	if seedParam == "" {
		respondJSON(w, http.StatusOK, ClustersResponse{
			Seed:     result.Meta.ClusterSeed,
			K:        result.Meta.ClusterK,
			Clusters: result.Clusters,
		})
		return
	}
	seed, err := strconv.ParseInt(seedParam, 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid seed", err)
		return
	}
	persons := analysis.CollectPersons(h.manager.Teams())
	clusters := analysis.ClusterPersons(persons, h.config.Analysis.ClusterK, rand.New(rand.NewSource(seed)))
	respondJSON(w, http.StatusOK, ClustersResponse{
		Seed:     seed,
		K:        h.config.Analysis.ClusterK,
		Clusters: clusters,
	})
}

// Roles handles GET /api/roles.
func (h *APIHandlers) Roles(w http.ResponseWriter, r *http.Request) {
	result := h.result(w)
	if result == nil {
		return
	}
	respondJSON(w, http.StatusOK, result.Roles)
}

// Personality handles GET /api/personality.
func (h *APIHandlers) Personality(w http.ResponseWriter, r *http.Request) {
	result := h.result(w)
	if result == nil {
		return
	}
	respondJSON(w, http.StatusOK, result.Personality)
}

// Performance handles GET /api/performance.
func (h *APIHandlers) Performance(w http.ResponseWriter, r *http.Request) {
	result := h.result(w)
	if result == nil {
		return
	}
	respondJSON(w, http.StatusOK, result.Performance)
}

// Snapshots handles GET (list) and POST (save) on /api/snapshots.
func (h *APIHandlers) Snapshots(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listSnapshots(w, r)
	case http.MethodPost:
		h.saveSnapshot(w, r)
	default:
		respondError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
	}
}

func (h *APIHandlers) listSnapshots(w http.ResponseWriter, r *http.Request) {
	snaps, err := h.store.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list snapshots", err)
		return
	}
	if snaps == nil {
		snaps = []*storage.Snapshot{}
	}
	respondJSON(w, http.StatusOK, snaps)
}

func (h *APIHandlers) saveSnapshot(w http.ResponseWriter, r *http.Request) {
	result := h.result(w)
	if result == nil {
		return
	}
	var req SaveSnapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid snapshot request", err)
		return
	}
	if req.Name == "" {
		req.Name = fmt.Sprintf("snapshot-%s", time.Now().UTC().Format("20060102-150405"))
	}
	payload, err := json.Marshal(result)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to encode analysis", err)
		return
	}
	snap := &storage.Snapshot{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Fingerprint: h.manager.Fingerprint(),
		CreatedAt:   time.Now().UTC(),
		Result:      payload,
	}
	if err := h.store.Save(r.Context(), snap); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save snapshot", err)
		return
	}
	h.broadcast(WSEvent{Type: EventSnapshotSaved, Data: map[string]string{"id": snap.ID, "name": snap.Name}})
	respondJSON(w, http.StatusCreated, snap)
}

// SnapshotByID handles GET and DELETE on /api/snapshots/{id}.
func (h *APIHandlers) SnapshotByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "snapshot id is required", nil)
		return
	}
	switch r.Method {
	case http.MethodGet:
		snap, err := h.store.Get(r.Context(), id)
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "snapshot not found", nil)
			return
		}
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to load snapshot", err)
			return
		}
		respondJSON(w, http.StatusOK, snap)
	case http.MethodDelete:
		err := h.store.Delete(r.Context(), id)
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "snapshot not found", nil)
			return
		}
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to delete snapshot", err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"deleted": id})
	default:
		respondError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
	}
}

// Reload handles POST /api/reload: force a dataset reload from disk.
func (h *APIHandlers) Reload(w http.ResponseWriter, r *http.Request) {
	changed, err := h.manager.Reload()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to reload dataset", err)
		return
	}
	if changed {
		h.broadcast(WSEvent{Type: EventDatasetReloaded, Data: map[string]string{"fingerprint": h.manager.Fingerprint()}})
	}
	respondJSON(w, http.StatusOK, ReloadResponse{Changed: changed, Fingerprint: h.manager.Fingerprint()})
}

// SimilarPersons handles GET /api/persons/{id}/similar. Requires the
// postgres vector store; other backends report the capability as missing.
func (h *APIHandlers) SimilarPersons(w http.ResponseWriter, r *http.Request) {
	if h.vectors == nil {
		respondError(w, http.StatusNotImplemented, "similarity lookup requires the postgres backend", nil)
		return
	}
	id := r.PathValue("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "person id is required", nil)
		return
	}
	limit := parseInt(r.URL.Query().Get("limit"), 5)
	similar, err := h.vectors.SimilarPersons(r.Context(), id, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to query similar persons", err)
		return
	}
	if similar == nil {
		similar = []storage.PersonVector{}
	}
	respondJSON(w, http.StatusOK, similar)
}

// SyncVectors pushes the current participant vectors into the vector store.
// Called by the server after each dataset change.
func (h *APIHandlers) SyncVectors(ctx context.Context) error {
	if h.vectors == nil {
		return nil
	}
	persons := analysis.CollectPersons(h.manager.Teams())
	vectors := make([]storage.PersonVector, 0, len(persons))
	for _, p := range persons {
		fv := analysis.Vectorize(p.Profile)
		vectors = append(vectors, storage.PersonVector{
			PersonID: p.ID,
			Name:     p.Name,
			TeamID:   p.TeamID,
			Vector:   fv[:],
		})
	}
	return h.vectors.SaveVectors(ctx, vectors)
}

func (h *APIHandlers) broadcast(event WSEvent) {
	if h.hub != nil {
		h.hub.Broadcast(event)
	}
}

// parseInt parses s, falling back to defaultValue for empty or invalid
// input.
func parseInt(s string, defaultValue int) int {
	if s == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}
	return val
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers already sent; nothing more to do.
		fmt.Printf("failed to encode JSON response: %v\n", err)
	}
}

// respondError writes an error response with the given status code.
func respondError(w http.ResponseWriter, statusCode int, message string, err error) {
	errResp := ErrorResponse{
		Error: message,
		Code:  http.StatusText(statusCode),
	}
	if err != nil {
		errResp.Details = map[string]interface{}{"error": err.Error()}
	}
	respondJSON(w, statusCode, errResp)
}
