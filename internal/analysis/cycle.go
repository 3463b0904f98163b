package analysis

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/teamlens/teamlens/pkg/types"
)

// NumCycles is how many experiment cycles each owner runs. Every owner
// creates one team per cycle; the n-th team an owner created belongs to
// cycle n.
const NumCycles = 3

// OwnerID returns the identifier that groups an owner's teams. The export
// stores it in owner_info.id, falling back to team_info.ownerId; teams with
// neither get a synthetic per-index key so they still form their own group
// instead of being merged.
func OwnerID(team types.Team, index int) string {
	if team.OwnerInfo.ID != "" {
		return team.OwnerInfo.ID
	}
	if team.TeamInfo.OwnerID != "" {
		return team.TeamInfo.OwnerID
	}
	return fmt.Sprintf("unknown_%d", index)
}

// PartitionByOwner groups teams by owner, each group sorted ascending by
// creation time. Teams without a parseable createdAt sort first.
func PartitionByOwner(teams []types.Team) map[string][]types.Team {
	byOwner := make(map[string][]types.Team)
	for i, team := range teams {
		id := OwnerID(team, i)
		byOwner[id] = append(byOwner[id], team)
	}
	for _, group := range byOwner {
		sort.SliceStable(group, func(i, j int) bool {
			return createdAt(group[i]).Before(createdAt(group[j]))
		})
	}
	return byOwner
}

func createdAt(team types.Team) time.Time {
	raw := team.TeamInfo.CreatedAt
	if raw == "" {
		return time.Unix(0, 0)
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Unix(0, 0)
}

// Cycle returns every owner's n-th team (1-indexed). Owners with fewer than
// n teams contribute nothing, so cycle sizes can differ.
func Cycle(partition map[string][]types.Team, n int) []types.Team {
	var out []types.Team
	owners := make([]string, 0, len(partition))
	for id := range partition {
		owners = append(owners, id)
	}
	sort.Strings(owners)
	for _, id := range owners {
		group := partition[id]
		if n >= 1 && n <= len(group) {
			out = append(out, group[n-1])
		}
	}
	return out
}

// Cycles returns all three cycles from a partition, in order.
func Cycles(partition map[string][]types.Team) [NumCycles][]types.Team {
	var out [NumCycles][]types.Team
	for n := 1; n <= NumCycles; n++ {
		out[n-1] = Cycle(partition, n)
	}
	return out
}

// LegacyCycleKey infers a cycle from the team name, the heuristic the first
// dashboard version used before owner partitioning existed. Team names that
// mention a cycle digit map to it; everything else falls back to position.
// Used only by the legacy activity report.
func LegacyCycleKey(team types.Team, index int) int {
	name := team.TeamInfo.DisplayName()
	switch {
	case strings.Contains(name, "1"):
		return 1
	case strings.Contains(name, "2"):
		return 2
	case strings.Contains(name, "3"):
		return 3
	}
	return index%NumCycles + 1
}
