package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teamlens/teamlens/pkg/types"
)

func TestClassifyRoleENTP(t *testing.T) {
	// ENTP scores Plant 3 and Resource Investigator 2; Plant wins.
	role := ClassifyRole(types.Profile{Personality: "ENTP"})
	assert.Equal(t, types.RolePlant, role)
}

func TestClassifyRoleByProfession(t *testing.T) {
	assert.Equal(t, types.RoleCoordinator, ClassifyRole(types.Profile{Professional: "프로젝트 매니저"}))
	assert.Equal(t, types.RoleResourceInvestigator, ClassifyRole(types.Profile{Professional: "영업 담당"}))
	assert.Equal(t, types.RoleSpecialist, ClassifyRole(types.Profile{Professional: "백엔드 개발자"}))
}

func TestClassifyRoleEmptyProfileTieBreak(t *testing.T) {
	// No signal at all: every role scores zero and the first role in the
	// taxonomy order wins.
	assert.Equal(t, types.RolePlant, ClassifyRole(types.Profile{}))
}

func TestClassifyRoleCombinedSignals(t *testing.T) {
	p := types.Profile{
		Personality:  "ISTJ 꼼꼼하고 완벽주의",
		Skills:       "프로그래밍, 데이터 분석",
		Professional: "개발자",
		Preferences:  "체계적인 계획",
	}
	// ISTJ: Implementer 3 Finisher 2; 완벽: Finisher +2; skills: Specialist
	// +2+1 Implementer +1 MonitorEvaluator +2; professional: Specialist +2
	// Implementer +1; preferences: Implementer +1 Finisher +1.
	// Implementer 6, Specialist 5, Finisher 5.
	assert.Equal(t, types.RoleImplementer, ClassifyRole(p))
}

func TestGroupRolesStableBuckets(t *testing.T) {
	persons := []types.Person{
		{ID: "p1", Profile: types.Profile{Personality: "ENTP"}},
		{ID: "p2", Profile: types.Profile{Professional: "매니저"}},
	}
	groups := GroupRoles(persons)
	assert.Len(t, groups, len(types.AllRoles))

	total := 0
	for i, g := range groups {
		assert.Equal(t, types.AllRoles[i], g.Role)
		assert.Equal(t, len(g.Members), g.Size)
		total += g.Size
	}
	assert.Equal(t, len(persons), total)
}
