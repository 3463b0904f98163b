package analysis

import (
	"fmt"

	"github.com/teamlens/teamlens/pkg/types"
)

// CollectPersons flattens every participant profile in the dataset into one
// list: each team contributes its owner and all of its agents. Owners are
// deduplicated by owner id (the same human runs three cycles) so they
// appear once; agents are always distinct per team.
func CollectPersons(teams []types.Team) []types.Person {
	var persons []types.Person
	seenOwners := make(map[string]bool)
	for i, team := range teams {
		ownerID := OwnerID(team, i)
		if !seenOwners[ownerID] {
			seenOwners[ownerID] = true
			name := team.OwnerInfo.Name
			if name == "" {
				name = UserDisplayName(team)
			}
			persons = append(persons, types.Person{
				ID:      ownerID,
				Name:    name,
				Source:  types.SourceOwner,
				TeamID:  team.TeamID,
				Profile: team.OwnerInfo,
			})
		}
		for _, agent := range team.Agents {
			id := agent.AgentID
			if id == "" {
				id = fmt.Sprintf("%s_agent_%d", team.TeamID, len(persons))
			}
			persons = append(persons, types.Person{
				ID:      id,
				Name:    agent.AgentInfo.Name,
				Source:  types.SourceAgent,
				TeamID:  team.TeamID,
				Profile: agent.AgentInfo,
			})
		}
	}
	return persons
}

// RequiredProfileFields are the attributes a complete participant profile
// fills in.
var RequiredProfileFields = []string{
	"name", "age", "gender", "nationality", "major", "education",
	"professional", "skills", "personality", "workStyle", "preferences",
	"dislikes",
}

// ProfileCompleteness returns how many of the required fields a profile
// fills and the names of the missing ones.
func ProfileCompleteness(p types.Profile) (filled int, missing []string) {
	values := map[string]string{
		"name": p.Name, "age": p.Age, "gender": p.Gender,
		"nationality": p.Nationality, "major": p.Major,
		"education": p.Education, "professional": p.Professional,
		"skills": p.Skills, "personality": p.Personality,
		"workStyle": p.WorkStyle, "preferences": p.Preferences,
		"dislikes": p.Dislikes,
	}
	for _, field := range RequiredProfileFields {
		if values[field] != "" {
			filled++
		} else {
			missing = append(missing, field)
		}
	}
	return filled, missing
}
