package pali

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// niggahitaReplacer maps the alternative spellings of the niggahīta onto
// ṃ (U+1E43), the form used throughout the data files.
var niggahitaReplacer = strings.NewReplacer(
	"\u1e41", "\u1e43", // ṁ → ṃ
	"\u014b", "\u1e43", // ŋ → ṃ
	"m\u0307", "\u1e43", // m + combining dot above
)

// Normalize returns the canonical spelling of a Pāli word: NFC, trimmed,
// lower-cased, with the niggahīta written ṃ.
func Normalize(s string) string {
	s = norm.NFC.String(strings.TrimSpace(s))
	return niggahitaReplacer.Replace(strings.ToLower(s))
}

// Fold strips every diacritic from s after normalizing it, so that
// "tasmiṃ" and "tasmim" share a key. Used as a lookup fallback only.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, Normalize(s))
	if err != nil {
		return Normalize(s)
	}
	return out
}
