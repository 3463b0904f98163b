package analysis

import (
	"regexp"
	"strings"

	"github.com/teamlens/teamlens/pkg/types"
)

// tokenPattern splits text into words and delimiter runs. Delimiters (runs
// of whitespace, or runs of punctuation that is neither word character nor
// Hangul) are kept as their own tokens so a diff reconstructs the exact
// original text.
var tokenPattern = regexp.MustCompile(`\s+|[^\w\s가-힣]+`)

// tokenize returns the non-empty word and delimiter tokens of text, in
// order. Concatenating the tokens yields text unchanged.
func tokenize(text string) []string {
	if text == "" {
		return nil
	}
	var tokens []string
	last := 0
	for _, loc := range tokenPattern.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			tokens = append(tokens, text[last:loc[0]])
		}
		tokens = append(tokens, text[loc[0]:loc[1]])
		last = loc[1]
	}
	if last < len(text) {
		tokens = append(tokens, text[last:])
	}
	return tokens
}

// Diff computes a word-level diff between two text revisions as a sequence
// of same / deleted / added spans. Identical inputs yield a single same
// span. The deleted and same spans concatenate to before; the added and
// same spans concatenate to after.
func Diff(before, after string) []types.DiffSpan {
	a := tokenize(before)
	b := tokenize(after)
	if len(a) == 0 && len(b) == 0 {
		return nil
	}

	// LCS table over the two token sequences.
	n, m := len(a), len(b)
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			if a[i-1] == b[j-1] {
				lcs[i][j] = lcs[i-1][j-1] + 1
			} else if lcs[i-1][j] >= lcs[i][j-1] {
				lcs[i][j] = lcs[i-1][j]
			} else {
				lcs[i][j] = lcs[i][j-1]
			}
		}
	}

	// Walk the table backwards to build the edit script, then reverse.
	var rev []types.DiffSpan
	i, j := n, m
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && a[i-1] == b[j-1]:
			rev = append(rev, types.DiffSpan{Type: types.DiffSame, Content: a[i-1]})
			i--
			j--
		case j > 0 && (i == 0 || lcs[i][j-1] >= lcs[i-1][j]):
			rev = append(rev, types.DiffSpan{Type: types.DiffAdded, Content: b[j-1]})
			j--
		default:
			rev = append(rev, types.DiffSpan{Type: types.DiffDeleted, Content: a[i-1]})
			i--
		}
	}
	spans := make([]types.DiffSpan, 0, len(rev))
	for k := len(rev) - 1; k >= 0; k-- {
		spans = append(spans, rev[k])
	}
	return mergeSameType(spans)
}

// mergeSameType joins consecutive spans of the same type into one.
func mergeSameType(spans []types.DiffSpan) []types.DiffSpan {
	if len(spans) == 0 {
		return spans
	}
	merged := []types.DiffSpan{spans[0]}
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		if s.Type == last.Type {
			last.Content += s.Content
		} else {
			merged = append(merged, s)
		}
	}
	return merged
}

// MergeForDisplay prepares spans for one-sided rendering. keep selects the
// change type shown on this side (DiffDeleted for the before pane,
// DiffAdded for the after pane); spans of the opposite type are dropped,
// and changed spans separated only by whitespace same spans are merged into
// one highlight so the rendered text does not flicker between styles.
func MergeForDisplay(spans []types.DiffSpan, keep types.DiffSpanType) []types.DiffSpan {
	opposite := types.DiffAdded
	if keep == types.DiffAdded {
		opposite = types.DiffDeleted
	}
	var side []types.DiffSpan
	for _, s := range spans {
		if s.Type != opposite {
			side = append(side, s)
		}
	}

	var out []types.DiffSpan
	for i := 0; i < len(side); i++ {
		s := side[i]
		if s.Type != keep {
			out = append(out, s)
			continue
		}
		// Absorb whitespace gaps between adjacent changed spans.
		for i+2 < len(side) &&
			side[i+1].Type == types.DiffSame &&
			strings.TrimSpace(side[i+1].Content) == "" &&
			side[i+2].Type == keep {
			s.Content += side[i+1].Content + side[i+2].Content
			i += 2
		}
		out = append(out, s)
	}
	return mergeSameType(out)
}
