package analysis

import (
	"strings"

	"github.com/teamlens/teamlens/pkg/types"
)

// ClassifyActor attributes a sender identifier to the human user or to an
// agent. userName is the resolved display name from UserDisplayName. The
// classification is exhaustive: anything that is not recognizably the user
// counts as agent activity, so totals always reconcile.
func ClassifyActor(sender, userName string) types.Actor {
	if sender == types.SelfMarker {
		return types.ActorUser
	}
	if userName != "" && userName != "Unknown" && sender == userName {
		return types.ActorUser
	}
	lower := strings.ToLower(sender)
	if strings.HasPrefix(sender, types.AgentIDPrefix) || strings.Contains(lower, "agent") {
		return types.ActorAgent
	}
	if strings.Contains(lower, "user") {
		return types.ActorUser
	}
	return types.ActorAgent
}

// UserDisplayName resolves the human participant's display name for a team.
// The export never stores it in one canonical place, so resolution walks a
// fixed fallback chain:
//
//  1. a members entry with isUser set and a named userProfile
//  2. the self marker appearing in any relationship endpoint
//  3. the self marker appearing as a nodePositions key
//  4. a relationship endpoint that is not an agent id and not "Unknown"
//  5. owner_info.name
//  6. "Unknown"
func UserDisplayName(team types.Team) string {
	for _, m := range ResolveMembers(team.TeamInfo.Members) {
		if m.IsUser && m.UserProfile != nil && m.UserProfile.Name != "" {
			return m.UserProfile.Name
		}
	}

	rels := ResolveRelationships(team.TeamInfo.Relationships)
	for _, r := range rels {
		if r.From == types.SelfMarker || r.To == types.SelfMarker {
			return types.SelfMarker
		}
	}

	if pos := ResolveNodePositions(team.TeamInfo.NodePositions); pos != nil {
		if _, ok := pos[types.SelfMarker]; ok {
			return types.SelfMarker
		}
	}

	for _, r := range rels {
		for _, node := range []string{r.From, r.To} {
			if node == "" || node == "Unknown" {
				continue
			}
			if strings.HasPrefix(node, types.AgentIDPrefix) {
				continue
			}
			return node
		}
	}

	if team.OwnerInfo.Name != "" {
		return team.OwnerInfo.Name
	}
	return "Unknown"
}
