package pali

import (
	"regexp"
	"sort"
)

// reToken matches a single Pāli word token, combining marks included.
var reToken = regexp.MustCompile(`[\p{L}\p{M}]+`)

// Index maps a surface form to every reading that produces it.
type Index map[string][]DeclinedWord

// BuildIndex declines every word in every gender it takes and files each
// resulting form under its surface spelling.
func BuildIndex(words []PaliWord, d *Decliner) Index {
	idx := make(Index)
	seen := make(map[DeclinedWord]bool)
	for _, w := range words {
		for gi, g := range w.Genders {
			table := d.Decline(w, gi)
			for _, c := range Cases {
				for _, n := range Numbers {
					for _, form := range table[c][n] {
						dw := DeclinedWord{
							Form:    form,
							Term:    w.Term,
							Meaning: w.Meaning(),
							Class:   w.Class,
							Gender:  g,
							Number:  n,
							Case:    c,
						}
						if seen[dw] {
							continue
						}
						seen[dw] = true
						idx[form] = append(idx[form], dw)
					}
				}
			}
		}
	}
	return idx
}

// Lookup returns the readings of form.
func (idx Index) Lookup(form string) []DeclinedWord {
	return append([]DeclinedWord(nil), idx[Normalize(form)]...)
}

// Forms returns every indexed surface form, sorted.
func (idx Index) Forms() []string {
	out := make([]string, 0, len(idx))
	for f := range idx {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of readings in the index.
func (idx Index) Len() int {
	n := 0
	for _, ws := range idx {
		n += len(ws)
	}
	return n
}

// classIndex pairs an index with a diacritic-insensitive view of it.
type classIndex struct {
	exact  Index
	folded map[string][]DeclinedWord
}

func newClassIndex(idx Index) *classIndex {
	ci := &classIndex{exact: idx, folded: make(map[string][]DeclinedWord)}
	for _, form := range idx.Forms() {
		key := Fold(form)
		ci.folded[key] = append(ci.folded[key], idx[form]...)
	}
	return ci
}

// TextMatch holds the readings found for one token of a text.
type TextMatch struct {
	Token    string
	Readings []DeclinedWord
}

// LookupForm returns the readings of form across every word class. Forms
// with no exact match are retried without diacritics, so "tasmim" finds
// "tasmiṃ".
func (g *Grammar) LookupForm(form string) []DeclinedWord {
	key := Normalize(form)
	if key == "" {
		return nil
	}
	var out []DeclinedWord
	for _, class := range Classes {
		out = append(out, g.classIndex(class).exact[key]...)
	}
	if len(out) > 0 {
		return out
	}
	folded := Fold(key)
	for _, class := range Classes {
		out = append(out, g.classIndex(class).folded[folded]...)
	}
	return out
}

// LookupText splits text into word tokens and looks each one up.
func (g *Grammar) LookupText(text string) []TextMatch {
	var out []TextMatch
	for _, token := range reToken.FindAllString(text, -1) {
		out = append(out, TextMatch{Token: token, Readings: g.LookupForm(token)})
	}
	return out
}
