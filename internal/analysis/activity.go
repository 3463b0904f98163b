package analysis

import (
	"strings"

	"github.com/teamlens/teamlens/pkg/types"
)

// CountActivity computes the four structural activity counters for one
// team. Structural counting is the ground truth: ideas are counted from the
// ideas array, evaluations from each idea's evaluations list, and feedback
// sessions and requests from typed chat events. The older textual method
// (see LegacyActivityCount) survives only for the per-agent performance
// report.
func CountActivity(team types.Team) types.ActivityCounts {
	var counts types.ActivityCounts
	ideas := ResolveIdeas(team)
	counts.IdeaGeneration = len(ideas)
	for _, idea := range ideas {
		counts.Evaluation += len(ResolveEvaluations(idea.Evaluations))
	}
	for _, ev := range ResolveChat(team) {
		switch ev.Type {
		case types.ChatFeedbackSessionSummary:
			counts.Feedback++
		case types.ChatMakeRequest:
			counts.Request++
		}
	}
	return counts
}

// SumActivity aggregates structural counts across teams.
func SumActivity(teams []types.Team) types.ActivityCounts {
	var total types.ActivityCounts
	for _, team := range teams {
		total.Add(CountActivity(team))
	}
	return total
}

// Markers the platform embeds in system messages when an action completes.
// Only the evaluation marker is reliable enough to count; the others appear
// inconsistently across export versions.
const evalCompletedMarker = "평가했습니다"

// LegacyActivityCount counts activity from system message text instead of
// structure. Less reliable than CountActivity (the platform changed its
// message templates between export versions) and kept only because the
// per-agent performance report needs sender attribution that the structural
// counters cannot provide for evaluations.
func LegacyActivityCount(team types.Team) types.ActivityCounts {
	var counts types.ActivityCounts
	for _, ev := range ResolveChat(team) {
		switch ev.Type {
		case types.ChatSystem:
			if strings.Contains(ev.Payload.Content, evalCompletedMarker) {
				counts.Evaluation++
			}
		case types.ChatFeedbackSessionSummary:
			counts.Feedback++
		case types.ChatMakeRequest:
			counts.Request++
		}
	}
	counts.IdeaGeneration = len(team.Ideas)
	return counts
}

// EvaluationEvents returns the system events announcing a completed
// evaluation, with their senders. Used by the per-agent performance report.
func EvaluationEvents(team types.Team) []types.ChatEvent {
	var out []types.ChatEvent
	for _, ev := range ResolveChat(team) {
		if ev.Type == types.ChatSystem && strings.Contains(ev.Payload.Content, evalCompletedMarker) {
			out = append(out, ev)
		}
	}
	return out
}
