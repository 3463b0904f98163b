package analysis

import (
	"github.com/teamlens/teamlens/pkg/types"
)

// RolePerformance compares assigned roles against observed behavior for one
// activity: how many agents held the role and acted on it, held it but
// stayed idle, or acted without holding it.
type RolePerformance struct {
	Role          string `json:"role"`
	HadRoleAndDid int    `json:"hadRoleAndDid"`
	HadRoleIdle   int    `json:"hadRoleIdle"`
	DidWithout    int    `json:"didWithout"`
}

// PerformanceReport is the role-versus-behavior comparison across all
// agents. Evaluation behavior is attributed from system message senders
// (the legacy textual signal), the only place per-agent evaluation
// attribution exists in the export.
type PerformanceReport struct {
	Generate RolePerformance `json:"generate"`
	Evaluate RolePerformance `json:"evaluate"`
	Feedback RolePerformance `json:"feedback"`
	Request  RolePerformance `json:"request"`
}

func hasRole(agent types.Agent, label string) bool {
	for _, r := range agent.Roles {
		if r == label {
			return true
		}
	}
	return false
}

func buildPerformanceReport(teams []types.Team) PerformanceReport {
	report := PerformanceReport{
		Generate: RolePerformance{Role: types.RoleLabelGenerate},
		Evaluate: RolePerformance{Role: types.RoleLabelEvaluate},
		Feedback: RolePerformance{Role: types.RoleLabelFeedback},
		Request:  RolePerformance{Role: types.RoleLabelRequest},
	}

	for _, team := range teams {
		// Which agents were observed doing each activity.
		did := map[string]map[string]bool{
			types.RoleLabelGenerate: {},
			types.RoleLabelEvaluate: {},
			types.RoleLabelFeedback: {},
			types.RoleLabelRequest:  {},
		}
		for _, idea := range ResolveIdeas(team) {
			if author := idea.AuthorIdentifier(); author != "" {
				did[types.RoleLabelGenerate][author] = true
			}
		}
		for _, ev := range EvaluationEvents(team) {
			if ev.Sender != "" {
				did[types.RoleLabelEvaluate][ev.Sender] = true
			}
		}
		for _, ev := range ResolveChat(team) {
			switch ev.Type {
			case types.ChatMakeRequest:
				if ev.Sender != "" {
					did[types.RoleLabelRequest][ev.Sender] = true
				}
			case types.ChatFeedbackSessionSummary:
				for _, msg := range ev.Payload.SessionMessages {
					if msg.Sender != "" {
						did[types.RoleLabelFeedback][msg.Sender] = true
					}
				}
			}
		}

		score := func(rp *RolePerformance, label string) {
			for _, agent := range team.Agents {
				held := hasRole(agent, label)
				acted := did[label][agent.AgentID] || (agent.AgentInfo.Name != "" && did[label][agent.AgentInfo.Name])
				switch {
				case held && acted:
					rp.HadRoleAndDid++
				case held:
					rp.HadRoleIdle++
				case acted:
					rp.DidWithout++
				}
			}
		}
		score(&report.Generate, types.RoleLabelGenerate)
		score(&report.Evaluate, types.RoleLabelEvaluate)
		score(&report.Feedback, types.RoleLabelFeedback)
		score(&report.Request, types.RoleLabelRequest)
	}
	return report
}
