package analysis

import (
	"github.com/teamlens/teamlens/pkg/types"
)

// RequestCategory is the coarse bucket a make_request event falls into.
type RequestCategory string

// Request categories.
const (
	RequestCategoryGenerate RequestCategory = "generate"
	RequestCategoryEvaluate RequestCategory = "evaluate"
	RequestCategoryFeedback RequestCategory = "feedback"
	RequestCategoryOther    RequestCategory = "other"
)

// maxOtherExamples caps how many uncategorized request texts the report
// carries for manual inspection.
const maxOtherExamples = 10

// RequestReport summarizes make_request events across a team set.
type RequestReport struct {
	Total          int                     `json:"total"`
	ByCategory     map[RequestCategory]int `json:"byCategory"`
	ByActor        map[types.Actor]int     `json:"byActor"`
	ContentLengths types.StatSummary       `json:"contentLengths"`
	OtherExamples  []string                `json:"otherExamples,omitempty"`
}

// ideaGenerationKeywords mark a request as an idea-generation ask when the
// event carries no explicit requestType.
var ideaGenerationKeywords = []string{
	"아이디어", "생성", "만들", "제안", "idea", "generate",
}

var evaluateKeywords = []string{"평가", "evaluate", "점수"}
var feedbackKeywords = []string{"피드백", "feedback", "의견"}

// CategorizeRequest buckets a make_request event. The explicit requestType
// field wins; when it is empty the request content is scanned for category
// keywords, and anything still unmatched is other.
func CategorizeRequest(ev types.ChatEvent) RequestCategory {
	switch ev.Payload.RequestType {
	case types.RequestGenerate, types.RequestGenerateIdea:
		return RequestCategoryGenerate
	case types.RequestEvaluate, types.RequestEvaluateIdea:
		return RequestCategoryEvaluate
	case types.RequestGiveFeedback:
		return RequestCategoryFeedback
	}
	if ev.Payload.RequestType != "" {
		return RequestCategoryOther
	}
	content := ev.Payload.Content
	if containsAny(content, ideaGenerationKeywords...) {
		return RequestCategoryGenerate
	}
	if containsAny(content, evaluateKeywords...) {
		return RequestCategoryEvaluate
	}
	if containsAny(content, feedbackKeywords...) {
		return RequestCategoryFeedback
	}
	return RequestCategoryOther
}

// AnalyzeRequests builds the request report for a team set.
func AnalyzeRequests(teams []types.Team) RequestReport {
	report := RequestReport{
		ByCategory: map[RequestCategory]int{
			RequestCategoryGenerate: 0,
			RequestCategoryEvaluate: 0,
			RequestCategoryFeedback: 0,
			RequestCategoryOther:    0,
		},
		ByActor: map[types.Actor]int{types.ActorUser: 0, types.ActorAgent: 0},
	}
	var lengths []float64
	for _, team := range teams {
		userName := UserDisplayName(team)
		for _, ev := range ResolveChat(team) {
			if ev.Type != types.ChatMakeRequest {
				continue
			}
			report.Total++
			category := CategorizeRequest(ev)
			report.ByCategory[category]++
			report.ByActor[ClassifyActor(ev.Sender, userName)]++
			lengths = append(lengths, float64(SyllableLength(ev.Payload.Content)))
			if category == RequestCategoryOther && len(report.OtherExamples) < maxOtherExamples {
				report.OtherExamples = append(report.OtherExamples, ev.Payload.Content)
			}
		}
	}
	report.ContentLengths = Summarize(lengths)
	return report
}

// EvaluationScoreReport summarizes evaluation scores per criterion, split
// by whether the evaluator was the user or an agent.
type EvaluationScoreReport struct {
	Novelty        map[types.Actor]types.StatSummary `json:"novelty"`
	Completeness   map[types.Actor]types.StatSummary `json:"completeness"`
	Quality        map[types.Actor]types.StatSummary `json:"quality"`
	CommentLengths map[types.Actor]types.StatSummary `json:"commentLengths"`
	Total          int                               `json:"total"`
}

// AnalyzeEvaluations builds the evaluation score report for a team set.
func AnalyzeEvaluations(teams []types.Team) EvaluationScoreReport {
	samples := map[string]map[types.Actor][]float64{
		"novelty":      {},
		"completeness": {},
		"quality":      {},
		"comments":     {},
	}
	total := 0
	for _, team := range teams {
		userName := UserDisplayName(team)
		for _, idea := range ResolveIdeas(team) {
			for _, eval := range ResolveEvaluations(idea.Evaluations) {
				total++
				actor := ClassifyActor(eval.Evaluator, userName)
				if s := eval.Scores.Novelty; s != nil && types.ValidScore(*s) {
					samples["novelty"][actor] = append(samples["novelty"][actor], float64(*s))
				}
				if s := eval.Scores.Completeness; s != nil && types.ValidScore(*s) {
					samples["completeness"][actor] = append(samples["completeness"][actor], float64(*s))
				}
				if s := eval.Scores.Quality; s != nil && types.ValidScore(*s) {
					samples["quality"][actor] = append(samples["quality"][actor], float64(*s))
				}
				if eval.Comment != "" {
					samples["comments"][actor] = append(samples["comments"][actor], float64(SyllableLength(eval.Comment)))
				}
			}
		}
	}
	summarize := func(key string) map[types.Actor]types.StatSummary {
		return map[types.Actor]types.StatSummary{
			types.ActorUser:  Summarize(samples[key][types.ActorUser]),
			types.ActorAgent: Summarize(samples[key][types.ActorAgent]),
		}
	}
	return EvaluationScoreReport{
		Novelty:        summarize("novelty"),
		Completeness:   summarize("completeness"),
		Quality:        summarize("quality"),
		CommentLengths: summarize("comments"),
		Total:          total,
	}
}
