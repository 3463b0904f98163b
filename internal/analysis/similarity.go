package analysis

// Levenshtein returns the edit distance between two strings, computed over
// runes so multi-byte Hangul counts one edit per syllable.
func Levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// SignificantChangeThreshold is the similarity below which a mental-model
// revision counts as a significant rewrite.
const SignificantChangeThreshold = 0.7

// Similarity scores two texts in [0, 1] as 1 minus the normalized edit
// distance. Two empty texts are identical (1); exactly one empty text is
// maximally different (0).
func Similarity(a, b string) float64 {
	la := len([]rune(a))
	lb := len([]rune(b))
	if la == 0 && lb == 0 {
		return 1
	}
	if la == 0 || lb == 0 {
		return 0
	}
	longer := la
	if lb > longer {
		longer = lb
	}
	return 1 - float64(Levenshtein(a, b))/float64(longer)
}
