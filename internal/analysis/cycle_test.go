package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamlens/teamlens/pkg/types"
)

func ownedTeam(owner, teamID, createdAt string) types.Team {
	return types.Team{
		TeamID:    teamID,
		OwnerInfo: types.Profile{ID: owner},
		TeamInfo:  types.TeamInfo{CreatedAt: createdAt},
	}
}

func TestPartitionByOwnerSortsByCreation(t *testing.T) {
	teams := []types.Team{
		ownedTeam("alice", "a2", "2025-03-02T09:00:00Z"),
		ownedTeam("bob", "b1", "2025-03-01T08:00:00Z"),
		ownedTeam("alice", "a1", "2025-03-01T09:00:00Z"),
		ownedTeam("alice", "a3", "2025-03-03T09:00:00Z"),
	}
	partition := PartitionByOwner(teams)
	require.Len(t, partition, 2)

	alice := partition["alice"]
	require.Len(t, alice, 3)
	assert.Equal(t, "a1", alice[0].TeamID)
	assert.Equal(t, "a2", alice[1].TeamID)
	assert.Equal(t, "a3", alice[2].TeamID)
}

func TestPartitionMissingCreatedAtSortsFirst(t *testing.T) {
	teams := []types.Team{
		ownedTeam("alice", "dated", "2025-03-01T09:00:00Z"),
		ownedTeam("alice", "undated", ""),
	}
	partition := PartitionByOwner(teams)
	assert.Equal(t, "undated", partition["alice"][0].TeamID)
}

func TestOwnerIDFallbacks(t *testing.T) {
	assert.Equal(t, "from_owner", OwnerID(types.Team{OwnerInfo: types.Profile{ID: "from_owner"}}, 0))
	assert.Equal(t, "from_info", OwnerID(types.Team{TeamInfo: types.TeamInfo{OwnerID: "from_info"}}, 0))
	assert.Equal(t, "unknown_4", OwnerID(types.Team{}, 4))
}

func TestCycleSkipsShortOwners(t *testing.T) {
	teams := []types.Team{
		ownedTeam("alice", "a1", "2025-03-01T09:00:00Z"),
		ownedTeam("alice", "a2", "2025-03-02T09:00:00Z"),
		ownedTeam("alice", "a3", "2025-03-03T09:00:00Z"),
		ownedTeam("bob", "b1", "2025-03-01T10:00:00Z"),
	}
	partition := PartitionByOwner(teams)

	cycle1 := Cycle(partition, 1)
	require.Len(t, cycle1, 2)

	cycle2 := Cycle(partition, 2)
	require.Len(t, cycle2, 1)
	assert.Equal(t, "a2", cycle2[0].TeamID)

	cycle3 := Cycle(partition, 3)
	require.Len(t, cycle3, 1)
	assert.Equal(t, "a3", cycle3[0].TeamID)

	assert.Empty(t, Cycle(partition, 4))
	assert.Empty(t, Cycle(partition, 0))
}

func TestLegacyCycleKey(t *testing.T) {
	assert.Equal(t, 1, LegacyCycleKey(types.Team{TeamInfo: types.TeamInfo{TeamName: "1차 팀"}}, 9))
	assert.Equal(t, 2, LegacyCycleKey(types.Team{TeamInfo: types.TeamInfo{TeamName: "사이클 2"}}, 9))
	assert.Equal(t, 3, LegacyCycleKey(types.Team{TeamInfo: types.TeamInfo{Name: "팀 3"}}, 9))
	// No digit in the name: position fallback.
	assert.Equal(t, 1, LegacyCycleKey(types.Team{TeamInfo: types.TeamInfo{TeamName: "이름없음"}}, 0))
	assert.Equal(t, 2, LegacyCycleKey(types.Team{TeamInfo: types.TeamInfo{TeamName: "이름없음"}}, 1))
	assert.Equal(t, 3, LegacyCycleKey(types.Team{TeamInfo: types.TeamInfo{TeamName: "이름없음"}}, 2))
}
