package types

// PersonSource tells whether a Person row came from a team owner or an agent.
type PersonSource string

// Person sources.
const (
	SourceOwner PersonSource = "owner"
	SourceAgent PersonSource = "agent"
)

// Person is a flattened participant profile used by the vectorizer, the
// clusterer, and the Belbin classifier. One Person per owner and per agent,
// across all teams.
type Person struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Source  PersonSource `json:"source"`
	TeamID  string       `json:"teamId"`
	Profile Profile      `json:"profile"`
}

// Feature vector dimension indices. Every profile vectorizes to exactly
// nine dimensions; a missing source field maps to -1.
const (
	DimAge = iota
	DimGender
	DimEducation
	DimPersonality
	DimSkills
	DimProfessional
	DimPreferences
	DimDislikes
	DimWorkStyle
	NumDims
)

// FeatureVector is the fixed 9-dimension numeric encoding of a Person.
type FeatureVector [NumDims]float64

// Cluster is one named group of persons produced by the clusterer.
type Cluster struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Members []Person `json:"members"`
	Size    int      `json:"size"`
}

// Role is one of the nine Belbin team roles.
type Role string

// Belbin roles. The order here is the tie-break order of the classifier:
// when two roles score equally, the one listed first wins.
const (
	RolePlant                Role = "plant"
	RoleResourceInvestigator Role = "resource_investigator"
	RoleCoordinator          Role = "coordinator"
	RoleShaper               Role = "shaper"
	RoleMonitorEvaluator     Role = "monitor_evaluator"
	RoleSpecialist           Role = "specialist"
	RoleImplementer          Role = "implementer"
	RoleTeamworker           Role = "teamworker"
	RoleFinisher             Role = "finisher"
)

// AllRoles lists every Belbin role in classifier tie-break order.
var AllRoles = []Role{
	RolePlant,
	RoleResourceInvestigator,
	RoleCoordinator,
	RoleShaper,
	RoleMonitorEvaluator,
	RoleSpecialist,
	RoleImplementer,
	RoleTeamworker,
	RoleFinisher,
}

// RoleNames maps each role to its Korean display name.
var RoleNames = map[Role]string{
	RolePlant:                "창조자 (Plant)",
	RoleResourceInvestigator: "자원탐색가 (Resource Investigator)",
	RoleCoordinator:          "조정자 (Coordinator)",
	RoleShaper:               "추진자 (Shaper)",
	RoleMonitorEvaluator:     "평가자 (Monitor Evaluator)",
	RoleSpecialist:           "전문가 (Specialist)",
	RoleImplementer:          "실행자 (Implementer)",
	RoleTeamworker:           "팀워커 (Teamworker)",
	RoleFinisher:             "완결자 (Completer Finisher)",
}
