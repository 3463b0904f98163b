package types

import (
	"encoding/json"
	"strconv"
)

// FlexID is an identifier that arrives as either a JSON string or a JSON
// number in the export. It unmarshals both forms to a string.
type FlexID string

// UnmarshalJSON accepts string, integer, and float encodings.
func (f *FlexID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexID(n.String())
		return nil
	}
	// null or any other shape degrades to empty
	*f = ""
	return nil
}

// String returns the identifier as a plain string.
func (f FlexID) String() string { return string(f) }

// Idea is one decoded element of a team's ideas array. The author identity
// appears under several historical field names; AuthorIdentifier resolves
// them in precedence order.
type Idea struct {
	ID          FlexID          `json:"id,omitempty"`
	Author      string          `json:"author,omitempty"`
	Creator     string          `json:"creator,omitempty"`
	Sender      string          `json:"sender,omitempty"`
	UserID      string          `json:"user_id,omitempty"`
	Timestamp   string          `json:"timestamp,omitempty"`
	Content     IdeaContent     `json:"content"`
	Evaluations json.RawMessage `json:"evaluations,omitempty"` // []Evaluation, possibly JSON-encoded as a string
}

// AuthorIdentifier returns the first non-empty author field, in the order
// creator, sender, author, user_id.
func (i Idea) AuthorIdentifier() string {
	for _, s := range []string{i.Creator, i.Sender, i.Author, i.UserID} {
		if s != "" {
			return s
		}
	}
	return ""
}

// IdeaContent holds the four descriptive attributes of an idea. Behavior and
// Structure are themselves JSON-encoded key-value trees in most records;
// analysis.FlattenTree extracts their text.
type IdeaContent struct {
	Object    string `json:"object,omitempty"`
	Function  string `json:"function,omitempty"`
	Behavior  string `json:"behavior,omitempty"`
	Structure string `json:"structure,omitempty"`
}

// Evaluation is one evaluation attached to an idea.
type Evaluation struct {
	Evaluator string           `json:"evaluator,omitempty"`
	Scores    EvaluationScores `json:"scores"`
	Comment   string           `json:"comment,omitempty"`
	Timestamp string           `json:"timestamp,omitempty"`
}

// EvaluationScores are the three 1-7 rating criteria.
type EvaluationScores struct {
	Novelty      *int `json:"novelty,omitempty"`
	Completeness *int `json:"completeness,omitempty"`
	Quality      *int `json:"quality,omitempty"`
}

// ScoreRange bounds for evaluation criteria.
const (
	ScoreMin = 1
	ScoreMax = 7
)

// Valid reports whether n is a legal criterion score.
func ValidScore(n int) bool { return n >= ScoreMin && n <= ScoreMax }

// ParseAge converts a free-text age field to an integer, returning ok=false
// for missing or non-numeric values.
func ParseAge(age string) (int, bool) {
	n, err := strconv.Atoi(age)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
