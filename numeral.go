package pali

import (
	"strconv"
	"strings"
)

// AddhaCeiling is the largest value that receives an addha ("half less")
// reading. The last half-numeral, aḍḍhanavama (8½), yields 850..859.
const AddhaCeiling = 860

// MaxDigits bounds the significant digits Cardinal and Ordinal accept. Each
// extra thousands group multiplies the number of renderings.
const MaxDigits = 12

const (
	uttara = "uttara" // "exceeding", joins units to hundreds
	adhika = "adhika" // "in addition to", joins a group to thousands
	// ordinalSuffix derives ordinals from 7 upward.
	ordinalSuffix = "ma"
)

// ekuna prefixes ("one short of") used for values ending in 9.
var ekuna = []string{"ekūna", "ūna"}

// Composer builds cardinal and ordinal words from a Lexicon. It is safe for
// concurrent use.
type Composer struct {
	lex *Lexicon
}

// NewComposer returns a Composer backed by lex.
func NewComposer(lex *Lexicon) *Composer {
	return &Composer{lex: lex}
}

// Combinable reports whether w may serve as a member of a larger compound.
// Forms ending in ā or ṃ are kept for standalone use only.
func Combinable(w string) bool {
	return !strings.HasSuffix(w, "ā") && !strings.HasSuffix(w, niggahita)
}

func combinable(ws []string) []string {
	var out []string
	for _, w := range ws {
		if Combinable(w) {
			out = append(out, w)
		}
	}
	return out
}

// compound joins every word of a with every word of b.
func compound(a, b []string) []string {
	var out []string
	for _, x := range a {
		for _, y := range b {
			out = append(out, Sandhi(x, y))
		}
	}
	return out
}

// combine builds left + infix + right for every pair.
func combine(left []string, infix string, right []string) []string {
	var out []string
	for _, l := range left {
		joined := Sandhi(l, infix)
		for _, r := range right {
			out = append(out, Sandhi(joined, r))
		}
	}
	return out
}

// Cardinal returns every cardinal rendering of a decimal digit string, most
// direct forms first. Zero, an empty string, non-digit input and numbers
// longer than MaxDigits yield nil.
func (c *Composer) Cardinal(digits string) []string {
	s, ok := significant(digits)
	if !ok {
		return nil
	}
	return c.cardinal(s)
}

// significant strips spaces and leading zeros, reporting whether what is
// left is a composable number.
func significant(digits string) (string, bool) {
	s := strings.TrimLeft(strings.TrimSpace(digits), "0")
	if s == "" || len(s) > MaxDigits || !isDigits(s) {
		return "", false
	}
	return s, true
}

func (c *Composer) cardinal(s string) []string {
	if len(s) <= 3 {
		v, _ := strconv.Atoi(s)
		return c.threeDigit(v)
	}

	var out []string
	for _, e := range c.lex.lookupKey(KeyOf(s)) {
		if !e.ForCompounds {
			out = append(out, e.Term)
		}
	}

	upper, lower := s[:len(s)-3], s[len(s)-3:]
	var thousands []string
	if upper == "1" {
		thousands = c.lex.Stems(1, 3)
	} else {
		thousands = compound(c.upperStems(upper), c.lex.Stems(1, 3))
	}

	if l, _ := strconv.Atoi(lower); l == 0 {
		out = append(out, thousands...)
	} else {
		out = append(out, combine(c.groupStems(l), adhika, combinable(thousands))...)
	}
	return unique(out)
}

// upperStems renders the multiplier of sahassa.
func (c *Composer) upperStems(u string) []string {
	u = strings.TrimLeft(u, "0")
	if u == "" {
		return nil
	}
	if len(u) <= 3 {
		v, _ := strconv.Atoi(u)
		return c.groupStems(v)
	}
	return combinable(c.cardinal(u))
}

// groupStems renders a value below 1000 for use inside a compound.
func (c *Composer) groupStems(v int) []string {
	if v < 10 {
		return c.lex.Stems(v, 0)
	}
	return combinable(c.threeDigit(v))
}

func (c *Composer) twoDigitStems(v int) []string {
	if v < 10 {
		return c.lex.Stems(v, 0)
	}
	return combinable(c.twoDigit(v))
}

func (c *Composer) threeDigit(v int) []string {
	h, r := v/100, v%100
	var out []string
	switch {
	case h == 0:
		out = c.twoDigit(r)
	case r == 0:
		out = c.hundreds(h)
	default:
		out = combine(c.twoDigitStems(r), uttara, combinable(c.hundreds(h)))
	}
	out = append(out, c.addha(v)...)
	return unique(out)
}

func (c *Composer) twoDigit(v int) []string {
	direct := c.lex.Lookup(v, 0)
	if v > 10 && v%10 == 9 {
		next := combinable(c.lex.Lookup(v+1, 0))
		return unique(append(direct, compound(ekuna, next)...))
	}
	if len(direct) > 0 || v < 10 {
		return direct
	}
	tens, ones := v/10*10, v%10
	return unique(compound(c.lex.Prefixes(ones, 0), combinable(c.lex.Lookup(tens, 0))))
}

func (c *Composer) hundreds(h int) []string {
	out := c.lex.Lookup(h, 2)
	if h > 1 {
		out = append(out, compound(c.lex.Stems(h, 0), c.lex.Stems(1, 2))...)
	}
	return unique(out)
}

// addha renders v as units exceeding a half-counted hundred: 150 is
// diyaḍḍhasata, "two less a half" hundreds. Only values whose tens digit is
// 5 qualify, up to AddhaCeiling.
func (c *Composer) addha(v int) []string {
	if v > AddhaCeiling || v/10%10 != 5 {
		return nil
	}
	h, ones := v/100, v%10
	halves := c.lex.Stems(h*10+5, -1)
	bases := compound(halves, c.lex.Stems(1, 2))
	if ones > 0 {
		return combine(c.lex.Stems(ones, 0), uttara, bases)
	}
	return bases
}

// Ordinal returns the ordinal renderings of a digit string. The first six
// ordinals are suppletive; the rest add -ma to each combinable cardinal.
func (c *Composer) Ordinal(digits string) []string {
	s, ok := significant(digits)
	if !ok {
		return nil
	}
	if forms := c.lex.ordinalForms(KeyOf(s)); len(forms) > 0 {
		return append([]string(nil), forms...)
	}
	var out []string
	for _, w := range c.cardinal(s) {
		if Combinable(w) {
			out = append(out, w+ordinalSuffix)
		}
	}
	return unique(out)
}
