package analysis

import (
	"math"
	"strings"
	"unicode"
)

func isHangul(r rune) bool {
	return r >= '가' && r <= '힣'
}

// SyllableLength estimates the syllable count of mixed Korean/Latin text.
// Each Hangul syllable block counts 1; every other non-whitespace character
// counts 0.5; the total is rounded. Used for idea attributes, request
// contents, and evaluation comments.
func SyllableLength(text string) int {
	total := 0.0
	for _, r := range text {
		switch {
		case isHangul(r):
			total++
		case !unicode.IsSpace(r):
			total += 0.5
		}
	}
	return int(math.Round(total))
}

func isLatinVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y', 'A', 'E', 'I', 'O', 'U', 'Y':
		return true
	}
	return false
}

// VowelSyllableLength estimates syllables with a vowel-group approximation
// for Latin words: each Hangul block counts 1, and each whitespace-separated
// Latin word counts its number of consecutive vowel runs (minimum 1). Used
// only for shared mental-model lengths, where the texts mix long English
// passages into Korean.
func VowelSyllableLength(text string) int {
	total := 0
	for _, word := range strings.Fields(text) {
		hangul := 0
		vowelGroups := 0
		inVowel := false
		hasLatin := false
		for _, r := range word {
			if isHangul(r) {
				hangul++
				inVowel = false
				continue
			}
			if unicode.IsLetter(r) {
				hasLatin = true
			}
			if isLatinVowel(r) {
				if !inVowel {
					vowelGroups++
				}
				inVowel = true
			} else {
				inVowel = false
			}
		}
		total += hangul
		if hasLatin {
			if vowelGroups == 0 {
				vowelGroups = 1
			}
			total += vowelGroups
		}
	}
	return total
}
