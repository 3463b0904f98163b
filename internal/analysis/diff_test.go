package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamlens/teamlens/pkg/types"
)

func reconstruct(spans []types.DiffSpan, skip types.DiffSpanType) string {
	var b strings.Builder
	for _, s := range spans {
		if s.Type != skip {
			b.WriteString(s.Content)
		}
	}
	return b.String()
}

func TestDiffIdenticalInputs(t *testing.T) {
	spans := Diff("같은 문장 입니다", "같은 문장 입니다")
	require.Len(t, spans, 1)
	assert.Equal(t, types.DiffSame, spans[0].Type)
	assert.Equal(t, "같은 문장 입니다", spans[0].Content)
}

func TestDiffKoreanWordChange(t *testing.T) {
	spans := Diff("나는 학생 입니다", "나는 대학생 입니다")

	var deleted, added []string
	for _, s := range spans {
		switch s.Type {
		case types.DiffDeleted:
			deleted = append(deleted, s.Content)
		case types.DiffAdded:
			added = append(added, s.Content)
		}
	}
	assert.Equal(t, []string{"학생"}, deleted)
	assert.Equal(t, []string{"대학생"}, added)

	// The surrounding words stay marked same.
	joined := reconstruct(spans, types.DiffDeleted)
	assert.Equal(t, "나는 대학생 입니다", joined)
}

func TestDiffRoundTrip(t *testing.T) {
	before := "The quick brown fox, so to speak."
	after := "The slow brown fox jumps, so to speak!"
	spans := Diff(before, after)

	assert.Equal(t, before, reconstruct(spans, types.DiffAdded))
	assert.Equal(t, after, reconstruct(spans, types.DiffDeleted))
}

func TestDiffEmptySides(t *testing.T) {
	assert.Nil(t, Diff("", ""))

	spans := Diff("", "새 내용")
	require.NotEmpty(t, spans)
	for _, s := range spans {
		assert.Equal(t, types.DiffAdded, s.Type)
	}

	spans = Diff("옛 내용", "")
	require.NotEmpty(t, spans)
	for _, s := range spans {
		assert.Equal(t, types.DiffDeleted, s.Type)
	}
}

func TestDiffMergesConsecutiveSpans(t *testing.T) {
	spans := Diff("a b c", "x y z")
	for i := 1; i < len(spans); i++ {
		if spans[i].Type == spans[i-1].Type {
			t.Fatalf("consecutive spans of type %s were not merged", spans[i].Type)
		}
	}
}

func TestMergeForDisplay(t *testing.T) {
	spans := []types.DiffSpan{
		{Type: types.DiffDeleted, Content: "one"},
		{Type: types.DiffSame, Content: " "},
		{Type: types.DiffDeleted, Content: "two"},
		{Type: types.DiffSame, Content: " rest"},
		{Type: types.DiffAdded, Content: "three"},
	}
	merged := MergeForDisplay(spans, types.DiffDeleted)
	require.Len(t, merged, 2)
	assert.Equal(t, types.DiffDeleted, merged[0].Type)
	assert.Equal(t, "one two", merged[0].Content)
	assert.Equal(t, types.DiffSame, merged[1].Type)
	assert.Equal(t, " rest", merged[1].Content)
}

func TestTokenizeRoundTrip(t *testing.T) {
	for _, text := range []string{
		"나는 학생 입니다",
		"hello, world!  multiple   spaces",
		"한국어and English混합",
		"",
	} {
		assert.Equal(t, text, strings.Join(tokenize(text), ""))
	}
}
