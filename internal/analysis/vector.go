package analysis

import (
	"strings"

	"github.com/teamlens/teamlens/pkg/types"
)

// Vectorize encodes a participant profile into the fixed 9-dimension
// feature vector used by the clusterer. Every dimension has a documented
// bucketing or keyword-scoring rule; a missing source field encodes as the
// -1 sentinel so clusters can separate sparse profiles from genuinely
// low-scoring ones.
func Vectorize(p types.Profile) types.FeatureVector {
	var v types.FeatureVector
	v[types.DimAge] = encodeAge(p.Age)
	v[types.DimGender] = encodeGender(p.Gender)
	v[types.DimEducation] = encodeEducation(p.Education)
	v[types.DimPersonality] = encodePersonality(p.Personality)
	v[types.DimSkills] = encodeSkills(p.Skills)
	v[types.DimProfessional] = encodeProfessional(p.Professional)
	v[types.DimPreferences] = encodePreferences(p.Preferences)
	v[types.DimDislikes] = encodeDislikes(p.Dislikes)
	v[types.DimWorkStyle] = encodeWorkStyle(p.WorkStyle)
	return v
}

func encodeAge(age string) float64 {
	n, ok := types.ParseAge(age)
	if !ok {
		return -1
	}
	switch {
	case n < 25:
		return 0
	case n < 35:
		return 1
	case n < 45:
		return 2
	default:
		return 3
	}
}

func encodeGender(gender string) float64 {
	switch {
	case strings.Contains(gender, "남성"):
		return 0
	case strings.Contains(gender, "여성"):
		return 1
	default:
		return -1
	}
}

func encodeEducation(education string) float64 {
	if education == "" {
		return -1
	}
	switch {
	case strings.Contains(education, "박사"):
		return 3
	case strings.Contains(education, "대학원") || strings.Contains(education, "석사"):
		return 2
	case strings.Contains(education, "고등학교"):
		return 0
	case strings.Contains(education, "대학교"):
		return 1
	default:
		return 1
	}
}

// containsAny reports whether the lowercased text mentions any keyword.
func containsAny(text string, keywords ...string) bool {
	lower := strings.ToLower(text)
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// encodePersonality maps MBTI-style or descriptive personality text onto a
// 4-bit score: extraversion 1, intuition 2, thinking 4, judging 8.
func encodePersonality(personality string) float64 {
	if personality == "" {
		return -1
	}
	score := 0.0
	if containsAny(personality, "e", "외향", "활발", "사교") {
		score += 1
	}
	if containsAny(personality, "n", "직관", "창의", "혁신") {
		score += 2
	}
	if containsAny(personality, "t", "논리", "분석", "객관") {
		score += 4
	}
	if containsAny(personality, "j", "체계", "계획", "조직") {
		score += 8
	}
	if score > 15 {
		score = 15
	}
	return score
}

func encodeSkills(skills string) float64 {
	if skills == "" {
		return -1
	}
	items := splitList(skills)
	score := 0.0
	for _, item := range items {
		switch {
		case containsAny(item, "프로그래밍", "개발", "코딩", "python", "java", "javascript", "sql", "데이터"):
			score += 3
		case containsAny(item, "디자인", "설계", "창작"):
			score += 2
		case containsAny(item, "관리", "기획", "리더십", "커뮤니케이션"):
			score += 2
		default:
			score += 1
		}
	}
	score += float64(len(items))
	if score > 20 {
		score = 20
	}
	return score
}

func splitList(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '、' || r == '/' || r == ';'
	})
	var out []string
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func encodeProfessional(professional string) float64 {
	if professional == "" {
		return -1
	}
	switch {
	case containsAny(professional, "의사", "변호사", "교수", "박사"):
		return 5
	case containsAny(professional, "개발자", "연구원", "컨설턴트", "아키텍트"):
		return 4
	case containsAny(professional, "매니저", "팀장", "이사", "임원"):
		return 4
	case containsAny(professional, "디자이너", "기획", "분석", "마케팅"):
		return 3
	case containsAny(professional, "사무", "직원", "assistant"):
		return 2
	case containsAny(professional, "학생", "인턴"):
		return 1
	default:
		return 2
	}
}

func encodePreferences(preferences string) float64 {
	if preferences == "" {
		return -1
	}
	score := 0.0
	if containsAny(preferences, "팀", "협력", "소통", "함께") {
		score += 2
	}
	if containsAny(preferences, "회의", "토론", "브레인스토밍") {
		score += 1
	}
	if containsAny(preferences, "창의", "혁신", "새로운", "도전") {
		score += 2
	}
	if containsAny(preferences, "계획", "체계", "안정", "규칙") {
		score += 1
	}
	if score > 10 {
		score = 10
	}
	return score
}

func encodeDislikes(dislikes string) float64 {
	if dislikes == "" {
		return -1
	}
	score := 0.0
	if containsAny(dislikes, "갈등", "스트레스", "압박") {
		score += 3
	}
	if containsAny(dislikes, "반복", "단조", "루틴") {
		score += 2
	}
	if containsAny(dislikes, "늦은", "복잡", "불확실") {
		score += 1
	}
	if score > 10 {
		score = 10
	}
	return score
}

// encodeWorkStyle weighs systematic habits double against flexible ones so
// planners and improvisers land in distinct value ranges.
func encodeWorkStyle(workStyle string) float64 {
	if workStyle == "" {
		return -1
	}
	systematic := 0.0
	if containsAny(workStyle, "계획", "체계", "단계") {
		systematic += 2
	}
	if containsAny(workStyle, "순서", "정리", "문서") {
		systematic += 1
	}
	flexible := 0.0
	if containsAny(workStyle, "유연", "즉흥", "자유") {
		flexible += 2
	}
	if containsAny(workStyle, "적응", "변화") {
		flexible += 1
	}
	score := systematic*2 + flexible
	if score > 10 {
		score = 10
	}
	return score
}
