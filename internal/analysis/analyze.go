package analysis

import (
	"math/rand"

	"github.com/teamlens/teamlens/pkg/types"
)

// DefaultClusterSeed seeds the clusterer when no explicit seed is given, so
// repeated analyses of the same dataset name the same clusters.
const DefaultClusterSeed = 1

// Result is the full analysis output for one dataset. It is pure data:
// computing it has no side effects and two runs over the same dataset are
// identical.
type Result struct {
	Meta         Meta              `json:"meta"`
	Structure    StructureReport   `json:"structure"`
	Activity     ActivityReport    `json:"activity"`
	Results      ResultsReport     `json:"results"`
	MentalModels MentalModelReport `json:"mentalModels"`
	Clusters     []types.Cluster   `json:"clusters"`
	Roles        []RoleGroup       `json:"roles"`
	Personality  PersonalityReport `json:"personality"`
	Performance  PerformanceReport `json:"performance"`
}

// Meta describes the dataset and the clustering parameters that produced
// this result.
type Meta struct {
	Teams       int   `json:"teams"`
	Owners      int   `json:"owners"`
	Agents      int   `json:"agents"`
	Persons     int   `json:"persons"`
	ClusterK    int   `json:"clusterK"`
	ClusterSeed int64 `json:"clusterSeed"`
}

// StructureReport covers team composition and idea production volume.
type StructureReport struct {
	TeamSizes     types.CycleStats `json:"teamSizes"`
	IdeaCounts    types.CycleStats `json:"ideaCounts"`
	ChatCounts    types.CycleStats `json:"chatCounts"`
	NewIdeas      types.CycleStats `json:"newIdeas"`
	UpdatedIdeas  types.CycleStats `json:"updatedIdeas"`
	IdeasPerAgent types.CycleStats `json:"ideasPerAgent"`
}

// ActivityReport covers who did what, per cycle.
type ActivityReport struct {
	Structural   types.ActivityStats `json:"structural"`
	UserActivity types.ActivityStats `json:"userActivity"`
}

// ResultsReport covers outcome quality: idea content, evaluation scores,
// requests, and feedback sessions.
type ResultsReport struct {
	IdeasByActor     map[types.Actor]int   `json:"ideasByActor"`
	ObjectLengths    types.CycleStats      `json:"objectLengths"`
	FunctionLengths  types.CycleStats      `json:"functionLengths"`
	BehaviorLengths  types.CycleStats      `json:"behaviorLengths"`
	StructureLengths types.CycleStats      `json:"structureLengths"`
	CombinedLengths  types.CycleStats      `json:"combinedLengths"`
	Evaluations      EvaluationScoreReport `json:"evaluations"`
	Requests         RequestReport         `json:"requests"`
	Feedback         FeedbackReport        `json:"feedback"`
}

// Analyze runs the complete pipeline over a dataset with the default
// clustering parameters.
func Analyze(teams []types.Team) *Result {
	return AnalyzeWith(teams, DefaultClusterK, DefaultClusterSeed)
}

// AnalyzeWith runs the complete pipeline with explicit clustering
// parameters. clusterK values below one fall back to the default.
func AnalyzeWith(teams []types.Team, clusterK int, clusterSeed int64) *Result {
	if clusterK <= 0 {
		clusterK = DefaultClusterK
	}
	partition := PartitionByOwner(teams)
	cycles := Cycles(partition)
	persons := CollectPersons(teams)

	agents := 0
	for _, team := range teams {
		agents += len(team.Agents)
	}

	result := &Result{
		Meta: Meta{
			Teams:       len(teams),
			Owners:      len(partition),
			Agents:      agents,
			Persons:     len(persons),
			ClusterK:    clusterK,
			ClusterSeed: clusterSeed,
		},
		Structure:    buildStructureReport(teams, cycles),
		Activity:     buildActivityReport(teams, cycles),
		Results:      buildResultsReport(teams, cycles),
		MentalModels: MentalModelChanges(partition),
		Clusters:     ClusterPersons(persons, clusterK, rand.New(rand.NewSource(clusterSeed))),
		Roles:        GroupRoles(persons),
		Personality:  buildPersonalityReport(teams, persons),
		Performance:  buildPerformanceReport(teams),
	}
	return result
}

// cycleStats applies a per-team sample extractor across the three cycles
// and the full set, funneling everything through the one Summarize
// primitive so totals reconcile across views.
func cycleStats(teams []types.Team, cycles [NumCycles][]types.Team, sample func(types.Team) []float64) types.CycleStats {
	collect := func(set []types.Team) types.StatSummary {
		var values []float64
		for _, team := range set {
			values = append(values, sample(team)...)
		}
		return Summarize(values)
	}
	return types.CycleStats{
		Cycle1: collect(cycles[0]),
		Cycle2: collect(cycles[1]),
		Cycle3: collect(cycles[2]),
		Total:  collect(teams),
	}
}

func one(v float64) []float64 { return []float64{v} }

func buildStructureReport(teams []types.Team, cycles [NumCycles][]types.Team) StructureReport {
	return StructureReport{
		TeamSizes: cycleStats(teams, cycles, func(t types.Team) []float64 {
			return one(float64(len(t.Agents) + 1))
		}),
		IdeaCounts: cycleStats(teams, cycles, func(t types.Team) []float64 {
			return one(float64(len(ResolveIdeas(t))))
		}),
		ChatCounts: cycleStats(teams, cycles, func(t types.Team) []float64 {
			return one(float64(len(t.Chat)))
		}),
		NewIdeas: cycleStats(teams, cycles, func(t types.Team) []float64 {
			return one(float64(CountIdeaFlow(t).New))
		}),
		UpdatedIdeas: cycleStats(teams, cycles, func(t types.Team) []float64 {
			return one(float64(CountIdeaFlow(t).Updated))
		}),
		IdeasPerAgent: cycleStats(teams, cycles, func(t types.Team) []float64 {
			var values []float64
			for _, n := range IdeasPerAgent(t) {
				values = append(values, float64(n))
			}
			return values
		}),
	}
}

func buildActivityReport(teams []types.Team, cycles [NumCycles][]types.Team) ActivityReport {
	structural := types.ActivityStats{
		Total:  SumActivity(teams),
		Cycle1: SumActivity(cycles[0]),
		Cycle2: SumActivity(cycles[1]),
		Cycle3: SumActivity(cycles[2]),
	}
	userFor := func(set []types.Team) types.ActivityCounts {
		var total types.ActivityCounts
		for _, team := range set {
			total.Add(userActivity(team))
		}
		return total
	}
	user := types.ActivityStats{
		Total:  userFor(teams),
		Cycle1: userFor(cycles[0]),
		Cycle2: userFor(cycles[1]),
		Cycle3: userFor(cycles[2]),
	}
	return ActivityReport{Structural: structural, UserActivity: user}
}

// userActivity counts the four activities authored by the human member of
// one team.
func userActivity(team types.Team) types.ActivityCounts {
	userName := UserDisplayName(team)
	var counts types.ActivityCounts
	for _, idea := range ResolveIdeas(team) {
		if ClassifyActor(idea.AuthorIdentifier(), userName) == types.ActorUser {
			counts.IdeaGeneration++
		}
		for _, eval := range ResolveEvaluations(idea.Evaluations) {
			if ClassifyActor(eval.Evaluator, userName) == types.ActorUser {
				counts.Evaluation++
			}
		}
	}
	for _, ev := range ResolveChat(team) {
		switch ev.Type {
		case types.ChatMakeRequest:
			if ClassifyActor(ev.Sender, userName) == types.ActorUser {
				counts.Request++
			}
		case types.ChatFeedbackSessionSummary:
			if sessionInitiator(ev, userName) == types.ActorUser {
				counts.Feedback++
			}
		}
	}
	return counts
}

func buildResultsReport(teams []types.Team, cycles [NumCycles][]types.Team) ResultsReport {
	attr := func(pick func(IdeaAttributeLengths) []float64) types.CycleStats {
		collect := func(set []types.Team) types.StatSummary {
			return Summarize(pick(CollectIdeaLengths(set)))
		}
		return types.CycleStats{
			Cycle1: collect(cycles[0]),
			Cycle2: collect(cycles[1]),
			Cycle3: collect(cycles[2]),
			Total:  collect(teams),
		}
	}
	return ResultsReport{
		IdeasByActor:     IdeaActorCounts(teams),
		ObjectLengths:    attr(func(l IdeaAttributeLengths) []float64 { return l.Object }),
		FunctionLengths:  attr(func(l IdeaAttributeLengths) []float64 { return l.Function }),
		BehaviorLengths:  attr(func(l IdeaAttributeLengths) []float64 { return l.Behavior }),
		StructureLengths: attr(func(l IdeaAttributeLengths) []float64 { return l.Structure }),
		CombinedLengths:  attr(func(l IdeaAttributeLengths) []float64 { return l.Combined }),
		Evaluations:      AnalyzeEvaluations(teams),
		Requests:         AnalyzeRequests(teams),
		Feedback:         AnalyzeFeedback(teams),
	}
}
