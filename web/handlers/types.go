package handlers

import (
	"github.com/teamlens/teamlens/internal/analysis"
	"github.com/teamlens/teamlens/pkg/types"
)

// ErrorResponse is the JSON shape of every API error.
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// SummaryResponse describes the loaded dataset.
type SummaryResponse struct {
	Teams       int    `json:"teams"`
	Owners      int    `json:"owners"`
	Agents      int    `json:"agents"`
	Persons     int    `json:"persons"`
	Fingerprint string `json:"fingerprint"`
}

// DiffRequest carries the two texts to compare.
type DiffRequest struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

// DiffResponse carries the computed spans plus the per-side display
// variants the dashboard renders.
type DiffResponse struct {
	Spans      []types.DiffSpan `json:"spans"`
	BeforeView []types.DiffSpan `json:"beforeView"`
	AfterView  []types.DiffSpan `json:"afterView"`
	Similarity float64          `json:"similarity"`
}

// ClustersResponse wraps the cluster report with the seed that produced it.
type ClustersResponse struct {
	Seed     int64           `json:"seed"`
	K        int             `json:"k"`
	Clusters []types.Cluster `json:"clusters"`
}

// SaveSnapshotRequest names a snapshot to save.
type SaveSnapshotRequest struct {
	Name string `json:"name"`
}

// ReloadResponse reports the outcome of a forced dataset reload.
type ReloadResponse struct {
	Changed     bool   `json:"changed"`
	Fingerprint string `json:"fingerprint"`
}

// WSEvent is one broadcast message on the WebSocket channel.
type WSEvent struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// WebSocket event types.
const (
	EventDatasetReloaded = "dataset_reloaded"
	EventSnapshotSaved   = "snapshot_saved"
)

// roundedCycleStats rounds a cycle table for display.
func roundedCycleStats(cs types.CycleStats) types.CycleStats {
	return types.CycleStats{
		Cycle1: analysis.RoundSummary(cs.Cycle1),
		Cycle2: analysis.RoundSummary(cs.Cycle2),
		Cycle3: analysis.RoundSummary(cs.Cycle3),
		Total:  analysis.RoundSummary(cs.Total),
	}
}

// StructureResponse is the structure report with display rounding applied.
type StructureResponse struct {
	TeamSizes     types.CycleStats `json:"teamSizes"`
	IdeaCounts    types.CycleStats `json:"ideaCounts"`
	ChatCounts    types.CycleStats `json:"chatCounts"`
	NewIdeas      types.CycleStats `json:"newIdeas"`
	UpdatedIdeas  types.CycleStats `json:"updatedIdeas"`
	IdeasPerAgent types.CycleStats `json:"ideasPerAgent"`
}

func newStructureResponse(r analysis.StructureReport) StructureResponse {
	return StructureResponse{
		TeamSizes:     roundedCycleStats(r.TeamSizes),
		IdeaCounts:    roundedCycleStats(r.IdeaCounts),
		ChatCounts:    roundedCycleStats(r.ChatCounts),
		NewIdeas:      roundedCycleStats(r.NewIdeas),
		UpdatedIdeas:  roundedCycleStats(r.UpdatedIdeas),
		IdeasPerAgent: roundedCycleStats(r.IdeasPerAgent),
	}
}
