// Package analysis implements the pure aggregation pipeline over the team
// experiment export: activity counting, cycle partitioning, text metrics,
// profile vectorization, clustering, role classification, and the report
// assemblers that feed the dashboard API. Everything here is deterministic
// given its inputs (the clusterer takes an explicit RNG) and never touches
// ambient state.
package analysis

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/teamlens/teamlens/pkg/types"
)

// decode unpacks a raw export field into v. Fields in the export arrive in
// two forms: directly structured JSON, or a JSON string whose content is
// itself JSON (the platform stringified nested values before saving). Both
// are accepted; anything else reports false.
func decode(raw json.RawMessage, v any) bool {
	if len(raw) == 0 {
		return false
	}
	if json.Unmarshal(raw, v) == nil {
		return true
	}
	var s string
	if json.Unmarshal(raw, &s) != nil || s == "" {
		return false
	}
	return json.Unmarshal([]byte(s), v) == nil
}

// ResolveMembers decodes team_info.members. Malformed input yields nil.
func ResolveMembers(raw json.RawMessage) []types.Member {
	var members []types.Member
	if !decode(raw, &members) {
		return nil
	}
	return members
}

// ResolveRelationships decodes team_info.relationships. Malformed input
// yields nil.
func ResolveRelationships(raw json.RawMessage) []types.Relationship {
	var rels []types.Relationship
	if !decode(raw, &rels) {
		return nil
	}
	return rels
}

// ResolveNodePositions decodes team_info.nodePositions. Malformed input
// yields nil.
func ResolveNodePositions(raw json.RawMessage) map[string]types.Position {
	var pos map[string]types.Position
	if !decode(raw, &pos) {
		return nil
	}
	return pos
}

// ResolveIdea decodes one element of a team's ideas array. The second
// return is false when the element cannot be decoded at all.
func ResolveIdea(raw json.RawMessage) (types.Idea, bool) {
	var idea types.Idea
	if !decode(raw, &idea) {
		return types.Idea{}, false
	}
	return idea, true
}

// ResolveIdeas decodes every element of a team's ideas array, dropping
// undecodable entries.
func ResolveIdeas(team types.Team) []types.Idea {
	ideas := make([]types.Idea, 0, len(team.Ideas))
	for _, raw := range team.Ideas {
		if idea, ok := ResolveIdea(raw); ok {
			ideas = append(ideas, idea)
		}
	}
	return ideas
}

// ResolveEvaluations decodes an idea's evaluations field, which may be a
// plain array or a JSON-encoded string. Malformed input yields nil.
func ResolveEvaluations(raw json.RawMessage) []types.Evaluation {
	var evals []types.Evaluation
	if !decode(raw, &evals) {
		return nil
	}
	return evals
}

// ResolveChatEvent decodes one element of a team's chat array. Entries whose
// type is not one of the known constants come back as ChatUnknown with the
// original bytes preserved in Raw.
func ResolveChatEvent(raw json.RawMessage) types.ChatEvent {
	var ev types.ChatEvent
	if !decode(raw, &ev) {
		return types.ChatEvent{Type: types.ChatUnknown, Raw: raw}
	}
	switch ev.Type {
	case types.ChatSystem, types.ChatMessage, types.ChatMakeRequest,
		types.ChatGiveFeedback, types.ChatFeedbackSessionSummary:
	default:
		ev.Type = types.ChatUnknown
	}
	ev.Raw = raw
	return ev
}

// ResolveChat decodes every element of a team's chat array.
func ResolveChat(team types.Team) []types.ChatEvent {
	events := make([]types.ChatEvent, 0, len(team.Chat))
	for _, raw := range team.Chat {
		events = append(events, ResolveChatEvent(raw))
	}
	return events
}

// FlattenTree extracts the text of an idea's behavior or structure
// attribute. These attributes are JSON-encoded key-value trees in most
// records; every string leaf is collected in key order and joined with
// spaces. Input that is not a JSON tree is returned as-is.
func FlattenTree(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}
	var node any
	if err := json.Unmarshal([]byte(trimmed), &node); err != nil {
		return s
	}
	var leaves []string
	collectLeaves(node, &leaves)
	if len(leaves) == 0 {
		return s
	}
	return strings.Join(leaves, " ")
}

func collectLeaves(node any, out *[]string) {
	switch v := node.(type) {
	case string:
		if v != "" {
			*out = append(*out, v)
		}
	case []any:
		for _, item := range v {
			collectLeaves(item, out)
		}
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			collectLeaves(v[k], out)
		}
	}
}
