package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teamlens/teamlens/pkg/types"
)

func TestPerformanceReportNoRolesAssigned(t *testing.T) {
	report := buildPerformanceReport([]types.Team{fixtureTeam(t)})

	// Nobody holds a role, so every observed activity is "did without".
	assert.Equal(t, 1, report.Generate.DidWithout) // agent_1 created idea_1
	assert.Zero(t, report.Generate.HadRoleAndDid)
	assert.Equal(t, 1, report.Evaluate.DidWithout) // agent_2 via system message
	assert.Equal(t, 1, report.Feedback.DidWithout) // agent_2 in the session
	assert.Equal(t, 1, report.Request.DidWithout)  // agent_1 sent a request
}

func TestPerformanceReportRoleVsBehavior(t *testing.T) {
	team := fixtureTeam(t)
	team.Agents[0].Roles = []string{types.RoleLabelGenerate}
	team.Agents[1].Roles = []string{types.RoleLabelFeedback, types.RoleLabelRequest}

	report := buildPerformanceReport([]types.Team{team})

	assert.Equal(t, 1, report.Generate.HadRoleAndDid)
	assert.Zero(t, report.Generate.HadRoleIdle)

	assert.Equal(t, 1, report.Feedback.HadRoleAndDid)
	assert.Zero(t, report.Feedback.DidWithout)

	// agent_2 holds the request role but never requested; agent_1 did the
	// opposite.
	assert.Equal(t, 1, report.Request.HadRoleIdle)
	assert.Equal(t, 1, report.Request.DidWithout)
	assert.Zero(t, report.Request.HadRoleAndDid)

	assert.Equal(t, 1, report.Evaluate.DidWithout)
}

func TestPerformanceReportMatchesAgentsByName(t *testing.T) {
	team := fixtureTeam(t)
	team.Agents[0].Roles = []string{types.RoleLabelGenerate}
	// Attribute the idea to the agent's display name instead of its id.
	team.Ideas = team.Ideas[:0]
	team.Ideas = append(team.Ideas, rawJSON(t, map[string]any{
		"id":      "idea_1",
		"creator": "에이전트일",
	}))

	report := buildPerformanceReport([]types.Team{team})
	assert.Equal(t, 1, report.Generate.HadRoleAndDid)
}
