package analysis

import (
	"strings"

	"github.com/teamlens/teamlens/pkg/types"
)

// ClassifyRole assigns a participant one of the nine Belbin team roles.
// Each profile field contributes additive points to the roles its keywords
// suggest; the highest-scoring role wins, with ties broken by the fixed
// taxonomy order in types.AllRoles.
func ClassifyRole(p types.Profile) types.Role {
	scores := make(map[types.Role]int)

	personality := strings.ToLower(p.Personality)
	switch {
	case strings.Contains(personality, "entp") || strings.Contains(personality, "enfp"):
		scores[types.RolePlant] += 3
		scores[types.RoleResourceInvestigator] += 2
	case strings.Contains(personality, "estj") || strings.Contains(personality, "entj"):
		scores[types.RoleCoordinator] += 3
		scores[types.RoleShaper] += 2
	case strings.Contains(personality, "intp") || strings.Contains(personality, "intj"):
		scores[types.RoleMonitorEvaluator] += 3
		scores[types.RolePlant]++
	case strings.Contains(personality, "isfj") || strings.Contains(personality, "esfj"):
		scores[types.RoleTeamworker] += 3
		scores[types.RoleImplementer] += 2
	case strings.Contains(personality, "istj") || strings.Contains(personality, "isfp"):
		scores[types.RoleImplementer] += 3
		scores[types.RoleFinisher] += 2
	}
	if containsAny(p.Personality, "창의", "혁신") {
		scores[types.RolePlant] += 2
	}
	if containsAny(p.Personality, "리더", "지도") {
		scores[types.RoleCoordinator] += 2
		scores[types.RoleShaper]++
	}
	if containsAny(p.Personality, "분석", "논리") {
		scores[types.RoleMonitorEvaluator] += 2
	}
	if containsAny(p.Personality, "협력", "팀워크") {
		scores[types.RoleTeamworker] += 2
	}
	if containsAny(p.Personality, "완벽", "세심") {
		scores[types.RoleFinisher] += 2
	}

	if containsAny(p.Skills, "프로그래밍", "개발") {
		scores[types.RoleSpecialist] += 2
		scores[types.RoleImplementer]++
	}
	if containsAny(p.Skills, "디자인", "창작") {
		scores[types.RolePlant] += 2
	}
	if containsAny(p.Skills, "관리", "기획") {
		scores[types.RoleCoordinator] += 2
	}
	if containsAny(p.Skills, "분석", "데이터") {
		scores[types.RoleMonitorEvaluator] += 2
		scores[types.RoleSpecialist]++
	}
	if containsAny(p.Skills, "소통", "커뮤니케이션") {
		scores[types.RoleResourceInvestigator] += 2
		scores[types.RoleTeamworker]++
	}

	if containsAny(p.Professional, "개발자", "엔지니어") {
		scores[types.RoleSpecialist] += 2
		scores[types.RoleImplementer]++
	}
	if containsAny(p.Professional, "매니저", "팀장") {
		scores[types.RoleCoordinator] += 3
	}
	if containsAny(p.Professional, "연구", "분석") {
		scores[types.RoleMonitorEvaluator] += 2
		scores[types.RoleSpecialist]++
	}
	if containsAny(p.Professional, "디자인", "기획") {
		scores[types.RolePlant] += 2
	}
	if containsAny(p.Professional, "영업", "마케팅") {
		scores[types.RoleResourceInvestigator] += 3
	}

	if containsAny(p.Preferences, "새로운", "창의") {
		scores[types.RolePlant]++
	}
	if containsAny(p.Preferences, "협력", "팀") {
		scores[types.RoleTeamworker]++
	}
	if containsAny(p.Preferences, "체계", "계획") {
		scores[types.RoleImplementer]++
		scores[types.RoleFinisher]++
	}

	best := types.AllRoles[0]
	bestScore := scores[best]
	for _, role := range types.AllRoles[1:] {
		if scores[role] > bestScore {
			best = role
			bestScore = scores[role]
		}
	}
	return best
}

// RoleGroup is one Belbin bucket with its members.
type RoleGroup struct {
	Role    types.Role     `json:"role"`
	Name    string         `json:"name"`
	Members []types.Person `json:"members"`
	Size    int            `json:"size"`
}

// GroupRoles classifies every participant and buckets them by role, in
// taxonomy order. Empty buckets are included so the dashboard can render a
// stable nine-slot chart.
func GroupRoles(persons []types.Person) []RoleGroup {
	byRole := make(map[types.Role][]types.Person)
	for _, p := range persons {
		role := ClassifyRole(p.Profile)
		byRole[role] = append(byRole[role], p)
	}
	groups := make([]RoleGroup, 0, len(types.AllRoles))
	for _, role := range types.AllRoles {
		groups = append(groups, RoleGroup{
			Role:    role,
			Name:    types.RoleNames[role],
			Members: byRole[role],
			Size:    len(byRole[role]),
		})
	}
	return groups
}
