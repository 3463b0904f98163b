package analysis

import (
	"github.com/teamlens/teamlens/pkg/types"
)

// PersonalityReport covers participant demographics and profile quality.
type PersonalityReport struct {
	AgeBands         map[string]int    `json:"ageBands"`
	Genders          map[string]int    `json:"genders"`
	Educations       map[string]int    `json:"educations"`
	Professions      map[string]int    `json:"professions"`
	Personalities    map[string]int    `json:"personalities"`
	MemberRoleCounts map[string]int    `json:"memberRoleCounts"`
	UserCompleteness types.StatSummary `json:"userCompleteness"`
	MissingByField   map[string]int    `json:"missingByField"`
}

func ageBand(age string) string {
	n, ok := types.ParseAge(age)
	if !ok {
		return "unknown"
	}
	switch {
	case n < 25:
		return "under25"
	case n < 35:
		return "25-34"
	case n < 45:
		return "35-44"
	default:
		return "45plus"
	}
}

func tally(m map[string]int, key string) {
	if key == "" {
		key = "unknown"
	}
	m[key]++
}

func buildPersonalityReport(teams []types.Team, persons []types.Person) PersonalityReport {
	report := PersonalityReport{
		AgeBands:         map[string]int{},
		Genders:          map[string]int{},
		Educations:       map[string]int{},
		Professions:      map[string]int{},
		Personalities:    map[string]int{},
		MemberRoleCounts: map[string]int{},
		MissingByField:   map[string]int{},
	}

	var ownerFilled []float64
	for _, p := range persons {
		tally(report.AgeBands, ageBand(p.Profile.Age))
		tally(report.Genders, p.Profile.Gender)
		tally(report.Educations, p.Profile.Education)
		tally(report.Professions, p.Profile.Professional)
		tally(report.Personalities, p.Profile.Personality)

		filled, missing := ProfileCompleteness(p.Profile)
		for _, field := range missing {
			report.MissingByField[field]++
		}
		if p.Source == types.SourceOwner {
			ownerFilled = append(ownerFilled, float64(filled))
		}
	}
	report.UserCompleteness = Summarize(ownerFilled)

	for _, team := range teams {
		for _, member := range ResolveMembers(team.TeamInfo.Members) {
			for _, role := range member.Roles {
				tally(report.MemberRoleCounts, role)
			}
		}
		for _, agent := range team.Agents {
			for _, role := range agent.Roles {
				tally(report.MemberRoleCounts, role)
			}
		}
	}
	return report
}
