package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamlens/teamlens/pkg/types"
)

func TestAnalyzeEmptyDataset(t *testing.T) {
	result := Analyze(nil)
	require.NotNil(t, result)
	assert.Zero(t, result.Meta.Teams)
	assert.Zero(t, result.Activity.Structural.Total.Sum())
	assert.Empty(t, result.Clusters)
	assert.Len(t, result.Roles, len(types.AllRoles))
}

func TestAnalyzeMeta(t *testing.T) {
	team := fixtureTeam(t)
	result := Analyze([]types.Team{team})
	assert.Equal(t, 1, result.Meta.Teams)
	assert.Equal(t, 1, result.Meta.Owners)
	assert.Equal(t, 2, result.Meta.Agents)
	// One owner plus two agents.
	assert.Equal(t, 3, result.Meta.Persons)
}

func TestAnalyzeSumConsistency(t *testing.T) {
	team := fixtureTeam(t)
	result := Analyze([]types.Team{team})

	// Cycle totals reconcile with the overall total.
	s := result.Activity.Structural
	assert.Equal(t, s.Total.Sum(), s.Cycle1.Sum()+s.Cycle2.Sum()+s.Cycle3.Sum())

	// Actor counts cover every idea.
	byActor := result.Results.IdeasByActor
	assert.Equal(t, s.Total.IdeaGeneration, byActor[types.ActorUser]+byActor[types.ActorAgent])

	// Role buckets cover every person.
	roleTotal := 0
	for _, g := range result.Roles {
		roleTotal += g.Size
	}
	assert.Equal(t, result.Meta.Persons, roleTotal)

	// Clusters cover every person.
	clusterTotal := 0
	for _, c := range result.Clusters {
		clusterTotal += c.Size
	}
	assert.Equal(t, result.Meta.Persons, clusterTotal)
}

func TestAnalyzeDeterministic(t *testing.T) {
	teams := []types.Team{fixtureTeam(t)}
	a := Analyze(teams)
	b := Analyze(teams)
	assert.Equal(t, a.Meta, b.Meta)
	assert.Equal(t, a.Activity, b.Activity)
	require.Equal(t, len(a.Clusters), len(b.Clusters))
	for i := range a.Clusters {
		assert.Equal(t, a.Clusters[i].Name, b.Clusters[i].Name)
	}
}

func TestAnalyzeWithClusterParams(t *testing.T) {
	teams := []types.Team{fixtureTeam(t)}

	result := AnalyzeWith(teams, 2, 42)
	assert.Equal(t, 2, result.Meta.ClusterK)
	assert.Equal(t, int64(42), result.Meta.ClusterSeed)

	// Same parameters reproduce the same clusters.
	again := AnalyzeWith(teams, 2, 42)
	assert.Equal(t, result.Clusters, again.Clusters)

	// Analyze records the defaults it used.
	def := Analyze(teams)
	assert.Equal(t, DefaultClusterK, def.Meta.ClusterK)
	assert.Equal(t, int64(DefaultClusterSeed), def.Meta.ClusterSeed)

	// Non-positive k falls back to the default.
	fallback := AnalyzeWith(teams, 0, 42)
	assert.Equal(t, DefaultClusterK, fallback.Meta.ClusterK)
}

func TestCollectPersonsDeduplicatesOwners(t *testing.T) {
	team1 := fixtureTeam(t)
	team2 := fixtureTeam(t)
	team2.TeamID = "team_2"
	persons := CollectPersons([]types.Team{team1, team2})

	owners := 0
	for _, p := range persons {
		if p.Source == types.SourceOwner {
			owners++
		}
	}
	assert.Equal(t, 1, owners)
	// Agents stay distinct per team.
	assert.Len(t, persons, 5)
}

func TestProfileCompleteness(t *testing.T) {
	filled, missing := ProfileCompleteness(types.Profile{})
	assert.Zero(t, filled)
	assert.Len(t, missing, len(RequiredProfileFields))

	full := types.Profile{
		Name: "a", Age: "30", Gender: "남성", Nationality: "한국", Major: "전산",
		Education: "대학교", Professional: "개발자", Skills: "개발",
		Personality: "INTP", WorkStyle: "계획", Preferences: "팀", Dislikes: "갈등",
	}
	filled, missing = ProfileCompleteness(full)
	assert.Equal(t, len(RequiredProfileFields), filled)
	assert.Empty(t, missing)
}
