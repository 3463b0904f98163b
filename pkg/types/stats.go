package types

// StatSummary is the single statistical summary shape shared by every
// report: average, minimum, maximum, and population standard deviation.
// Values retain full precision internally; rounding for display happens at
// the API boundary.
type StatSummary struct {
	Avg   float64 `json:"avg"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Stdev float64 `json:"stdev"`
	N     int     `json:"n"`
}

// CycleStats holds one StatSummary per team cycle plus the combined total.
type CycleStats struct {
	Cycle1 StatSummary `json:"cycle1"`
	Cycle2 StatSummary `json:"cycle2"`
	Cycle3 StatSummary `json:"cycle3"`
	Total  StatSummary `json:"total"`
}

// ActivityCounts are the four structural activity counters for a team or a
// team set. Aggregation is plain field-wise addition.
type ActivityCounts struct {
	IdeaGeneration int `json:"ideaGeneration"`
	Evaluation     int `json:"evaluation"`
	Feedback       int `json:"feedback"`
	Request        int `json:"request"`
}

// Add accumulates other into c field-wise.
func (c *ActivityCounts) Add(other ActivityCounts) {
	c.IdeaGeneration += other.IdeaGeneration
	c.Evaluation += other.Evaluation
	c.Feedback += other.Feedback
	c.Request += other.Request
}

// Sum returns the total across all four counters.
func (c ActivityCounts) Sum() int {
	return c.IdeaGeneration + c.Evaluation + c.Feedback + c.Request
}

// ActivityStats is the per-cycle activity table served by /api/activity.
type ActivityStats struct {
	Total  ActivityCounts `json:"total"`
	Cycle1 ActivityCounts `json:"cycle1"`
	Cycle2 ActivityCounts `json:"cycle2"`
	Cycle3 ActivityCounts `json:"cycle3"`
}

// Actor distinguishes human from AI activity. Classification is exhaustive:
// every event is attributed to exactly one of the two.
type Actor string

// Actor constants.
const (
	ActorUser  Actor = "user"
	ActorAgent Actor = "agent"
)

// DiffSpanType is the kind of a diff span.
type DiffSpanType string

// Diff span types.
const (
	DiffSame    DiffSpanType = "same"
	DiffDeleted DiffSpanType = "deleted"
	DiffAdded   DiffSpanType = "added"
)

// DiffSpan is one run of tokens in a word-level diff between two text
// revisions.
type DiffSpan struct {
	Type    DiffSpanType `json:"type"`
	Content string       `json:"content"`
}
