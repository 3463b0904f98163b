package analysis

import (
	"sort"

	"github.com/teamlens/teamlens/pkg/types"
)

// IdeaFlow splits a team's ideas into new and updated. Ideas share an id
// across revisions; walking them in timestamp order, the first appearance
// of an id is a new idea and every later appearance is an update. Ideas
// without an id always count as new.
type IdeaFlow struct {
	New     int `json:"new"`
	Updated int `json:"updated"`
}

// CountIdeaFlow computes the new/updated split for one team.
func CountIdeaFlow(team types.Team) IdeaFlow {
	ideas := ResolveIdeas(team)
	sort.SliceStable(ideas, func(i, j int) bool {
		return ideas[i].Timestamp < ideas[j].Timestamp
	})
	seen := make(map[string]bool)
	var flow IdeaFlow
	for _, idea := range ideas {
		id := idea.ID.String()
		if id == "" || !seen[id] {
			flow.New++
			seen[id] = true
		} else {
			flow.Updated++
		}
	}
	return flow
}

// IdeasPerAgent counts ideas authored by each agent that holds the idea
// generation role. Agents with the role but no ideas appear with a zero
// count so inactive generators are visible.
func IdeasPerAgent(team types.Team) map[string]int {
	counts := make(map[string]int)
	for _, agent := range team.Agents {
		for _, role := range agent.Roles {
			if role == types.RoleLabelGenerate {
				counts[agent.AgentID] = 0
			}
		}
	}
	for _, idea := range ResolveIdeas(team) {
		author := idea.AuthorIdentifier()
		if author == "" {
			continue
		}
		if _, tracked := counts[author]; tracked {
			counts[author]++
		}
	}
	return counts
}

// IdeaAttributeLengths carries per-attribute syllable length samples for a
// team set.
type IdeaAttributeLengths struct {
	Object    []float64
	Function  []float64
	Behavior  []float64
	Structure []float64
	Combined  []float64
}

// CollectIdeaLengths gathers syllable lengths of every idea attribute
// across teams. Behavior and structure trees are flattened to their text
// leaves before measuring.
func CollectIdeaLengths(teams []types.Team) IdeaAttributeLengths {
	var lengths IdeaAttributeLengths
	for _, team := range teams {
		for _, idea := range ResolveIdeas(team) {
			object := idea.Content.Object
			function := idea.Content.Function
			behavior := FlattenTree(idea.Content.Behavior)
			structure := FlattenTree(idea.Content.Structure)

			o := float64(SyllableLength(object))
			f := float64(SyllableLength(function))
			b := float64(SyllableLength(behavior))
			s := float64(SyllableLength(structure))

			lengths.Object = append(lengths.Object, o)
			lengths.Function = append(lengths.Function, f)
			lengths.Behavior = append(lengths.Behavior, b)
			lengths.Structure = append(lengths.Structure, s)
			lengths.Combined = append(lengths.Combined, o+f+b+s)
		}
	}
	return lengths
}

// IdeaActorCounts counts ideas authored by the user versus agents for a
// team set.
func IdeaActorCounts(teams []types.Team) map[types.Actor]int {
	counts := map[types.Actor]int{types.ActorUser: 0, types.ActorAgent: 0}
	for _, team := range teams {
		userName := UserDisplayName(team)
		for _, idea := range ResolveIdeas(team) {
			counts[ClassifyActor(idea.AuthorIdentifier(), userName)]++
		}
	}
	return counts
}
