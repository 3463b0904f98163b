package analysis

import (
	"github.com/teamlens/teamlens/pkg/types"
)

// FeedbackReport summarizes feedback sessions across a team set.
type FeedbackReport struct {
	Sessions      int                 `json:"sessions"`
	ByInitiator   map[types.Actor]int `json:"byInitiator"`
	TurnCounts    types.StatSummary   `json:"turnCounts"`
	UserTurns     int                 `json:"userTurns"`
	AgentTurns    int                 `json:"agentTurns"`
	TurnsBySender map[types.Actor]int `json:"turnsBySender"`
}

// sessionInitiator infers who started a feedback session: the sender of the
// first message inside the session summary, falling back to the sender of
// the summary event itself.
func sessionInitiator(ev types.ChatEvent, userName string) types.Actor {
	if len(ev.Payload.SessionMessages) > 0 {
		return ClassifyActor(ev.Payload.SessionMessages[0].Sender, userName)
	}
	return ClassifyActor(ev.Sender, userName)
}

// AnalyzeFeedback builds the feedback session report for a team set.
func AnalyzeFeedback(teams []types.Team) FeedbackReport {
	report := FeedbackReport{
		ByInitiator:   map[types.Actor]int{types.ActorUser: 0, types.ActorAgent: 0},
		TurnsBySender: map[types.Actor]int{types.ActorUser: 0, types.ActorAgent: 0},
	}
	var turnCounts []float64
	for _, team := range teams {
		userName := UserDisplayName(team)
		for _, ev := range ResolveChat(team) {
			if ev.Type != types.ChatFeedbackSessionSummary {
				continue
			}
			report.Sessions++
			report.ByInitiator[sessionInitiator(ev, userName)]++
			turnCounts = append(turnCounts, float64(len(ev.Payload.SessionMessages)))
			for _, msg := range ev.Payload.SessionMessages {
				actor := ClassifyActor(msg.Sender, userName)
				report.TurnsBySender[actor]++
				if actor == types.ActorUser {
					report.UserTurns++
				} else {
					report.AgentTurns++
				}
			}
		}
	}
	report.TurnCounts = Summarize(turnCounts)
	return report
}
