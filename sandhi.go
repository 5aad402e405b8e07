package pali

import (
	"strings"
	"unicode/utf8"
)

const niggahita = "ṃ"

func isVowel(r rune) bool {
	switch r {
	case 'a', 'ā', 'i', 'ī', 'u', 'ū', 'e', 'o':
		return true
	}
	return false
}

// Sandhi joins two members of a compound.
//
//	ṃ + vowel    → m + vowel   (vīsaṃ + uttara → vīsamuttara)
//	a/ā + a/ā    → ā           (eka + adhika → ekādhika)
//	vowel + vowel → right vowel (eka + uttara → ekuttara, ti + uttara → tuttara)
//
// Any other junction is a plain concatenation.
func Sandhi(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	first, size := utf8.DecodeRuneInString(b)
	if !isVowel(first) {
		return a + b
	}
	if strings.HasSuffix(a, niggahita) {
		return strings.TrimSuffix(a, niggahita) + "m" + b
	}
	last, lsize := utf8.DecodeLastRuneInString(a)
	if !isVowel(last) {
		return a + b
	}
	if isA(last) && isA(first) {
		return a[:len(a)-lsize] + "ā" + b[size:]
	}
	return a[:len(a)-lsize] + b
}

func isA(r rune) bool { return r == 'a' || r == 'ā' }
