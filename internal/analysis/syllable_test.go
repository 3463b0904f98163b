package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyllableLength(t *testing.T) {
	// Hangul counts full, Latin counts half, whitespace not at all.
	assert.Equal(t, 0, SyllableLength(""))
	assert.Equal(t, 0, SyllableLength("   "))
	assert.Equal(t, 3, SyllableLength("가나다"))
	assert.Equal(t, 2, SyllableLength("abcd"))
	assert.Equal(t, 5, SyllableLength("가나다 abcd"))
	// Rounded: 3 letters at 0.5 each.
	assert.Equal(t, 2, SyllableLength("abc"))
}

func TestVowelSyllableLength(t *testing.T) {
	assert.Equal(t, 0, VowelSyllableLength(""))
	assert.Equal(t, 3, VowelSyllableLength("가나다"))
	// "hello" has vowel groups e, o.
	assert.Equal(t, 2, VowelSyllableLength("hello"))
	// "rhythm" still counts y as a vowel; "strength" has one group.
	assert.Equal(t, 1, VowelSyllableLength("strength"))
	// A Latin word with no vowels counts one syllable.
	assert.Equal(t, 1, VowelSyllableLength("bcdfg"))
	// Mixed word and mixed sentence.
	assert.Equal(t, 5, VowelSyllableLength("공유 모델 is"))
}
