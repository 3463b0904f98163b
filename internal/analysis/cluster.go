package analysis

import (
	"math"
	"math/rand"
	"strings"

	"github.com/teamlens/teamlens/pkg/types"
)

// DefaultClusterK is how many centroids the participant clusterer samples.
const DefaultClusterK = 7

// ClusterPersons groups participants by profile similarity: k centroids are
// sampled from the existing feature vectors and every person joins the
// nearest one in a single assignment pass. The single pass is intentional;
// the dashboard presents clusters as a coarse overview, and one pass over
// real member vectors keeps every centroid interpretable as an actual
// participant. Pass a seeded rand.Rand for reproducible output. Empty
// clusters are dropped.
func ClusterPersons(persons []types.Person, k int, rng *rand.Rand) []types.Cluster {
	if len(persons) == 0 {
		return nil
	}
	if k <= 0 {
		k = DefaultClusterK
	}
	if k > len(persons) {
		k = len(persons)
	}

	vectors := make([]types.FeatureVector, len(persons))
	for i, p := range persons {
		vectors[i] = Vectorize(p.Profile)
	}

	centroids := make([]types.FeatureVector, k)
	for i := range centroids {
		centroids[i] = vectors[rng.Intn(len(vectors))]
	}

	assignments := make([][]types.Person, k)
	for i, p := range persons {
		best := 0
		bestDist := math.Inf(1)
		for c, centroid := range centroids {
			d := distance(vectors[i], centroid)
			if d < bestDist {
				bestDist = d
				best = c
			}
		}
		assignments[best] = append(assignments[best], p)
	}

	var clusters []types.Cluster
	used := make(map[string]bool)
	for c, members := range assignments {
		if len(members) == 0 {
			continue
		}
		clusters = append(clusters, types.Cluster{
			ID:      len(clusters),
			Name:    clusterName(members, c, used),
			Members: members,
			Size:    len(members),
		})
	}
	return clusters
}

// distance is Euclidean over the nine dimensions. The -1 missing sentinel
// is treated as 0 here so sparse profiles cluster near low scorers rather
// than forming an artificial far corner.
func distance(a, b types.FeatureVector) float64 {
	sum := 0.0
	for i := 0; i < types.NumDims; i++ {
		va, vb := a[i], b[i]
		if va < 0 {
			va = 0
		}
		if vb < 0 {
			vb = 0
		}
		d := va - vb
		sum += d * d
	}
	return math.Sqrt(sum)
}

// traitScores tallies how strongly a cluster's member profiles express each
// nameable trait.
func traitScores(members []types.Person) map[string]int {
	scores := map[string]int{}
	for _, m := range members {
		text := strings.ToLower(strings.Join([]string{
			m.Profile.Skills, m.Profile.Personality, m.Profile.Professional,
			m.Profile.Preferences, m.Profile.WorkStyle,
		}, " "))
		for trait, keywords := range traitKeywords {
			for _, k := range keywords {
				if strings.Contains(text, k) {
					scores[trait]++
					break
				}
			}
		}
	}
	return scores
}

var traitKeywords = map[string][]string{
	"tech":          {"프로그래밍", "개발", "코딩", "데이터", "python", "java"},
	"creative":      {"창의", "디자인", "창작", "혁신"},
	"leadership":    {"리더", "관리", "매니저", "팀장"},
	"analytical":    {"분석", "논리", "연구", "객관"},
	"collaborative": {"협력", "팀워크", "소통", "함께"},
	"innovative":    {"새로운", "도전", "혁신", "변화"},
	"systematic":    {"계획", "체계", "단계", "정리"},
	"flexible":      {"유연", "즉흥", "자유", "적응"},
}

// nameCatalog lists candidate cluster names in priority order. The first
// entry whose trait matches the cluster's dominant trait and whose name is
// still unused wins.
var nameCatalog = []struct {
	trait string
	name  string
}{
	{"tech", "테크 마스터즈"},
	{"creative", "크리에이티브 씽커즈"},
	{"leadership", "리더십 그룹"},
	{"analytical", "애널리틱 마인즈"},
	{"collaborative", "팀 플레이어즈"},
	{"innovative", "이노베이터즈"},
	{"systematic", "플래너즈"},
	{"flexible", "프리 스피릿츠"},
	{"tech", "디지털 네이티브즈"},
	{"creative", "아이디어 뱅크"},
	{"analytical", "딥 씽커즈"},
	{"collaborative", "하모니 그룹"},
}

// clusterName picks a display name for a cluster from its dominant traits,
// prefixed with an age-band marker. Names already taken by earlier clusters
// are skipped; ties among equally strong traits rotate by cluster index so
// two similar clusters do not fight over one name.
func clusterName(members []types.Person, clusterIndex int, used map[string]bool) string {
	scores := traitScores(members)

	best := 0
	for _, s := range scores {
		if s > best {
			best = s
		}
	}
	var top []string
	if best > 0 {
		for trait, s := range scores {
			if s == best {
				top = append(top, trait)
			}
		}
	}

	name := ""
	if len(top) > 0 {
		var candidates []string
		for _, entry := range nameCatalog {
			if used[entry.name] {
				continue
			}
			for _, trait := range top {
				if entry.trait == trait {
					candidates = append(candidates, entry.name)
					break
				}
			}
		}
		if len(candidates) > 0 {
			name = candidates[clusterIndex%len(candidates)]
		}
	}
	if name == "" {
		for _, entry := range nameCatalog {
			if !used[entry.name] {
				name = entry.name
				break
			}
		}
	}
	if name == "" {
		name = "그룹"
	}
	used[name] = true

	return ageMarker(members) + " " + name
}

// ageMarker returns an emoji marking the cluster's average age band.
func ageMarker(members []types.Person) string {
	sum, n := 0, 0
	for _, m := range members {
		if age, ok := types.ParseAge(m.Profile.Age); ok {
			sum += age
			n++
		}
	}
	if n == 0 {
		return "🎯"
	}
	avg := float64(sum) / float64(n)
	switch {
	case avg < 28:
		return "🌱"
	case avg < 38:
		return "⚡"
	default:
		return "🎯"
	}
}
