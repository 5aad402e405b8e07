package pali

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Entry is one numeral word of the lexicon.
type Entry struct {
	Term  string
	Value string // mantissa digits, e.g. "15" for 15e-1
	// Exponent is the power of ten applied to Value.
	Exponent int
	// ForCompounds marks a form used only as the first member of a
	// compound, such as dvā- in dvāvīsati.
	ForCompounds bool
	// StandaloneOnly marks a form never used inside a compound.
	StandaloneOnly bool
}

// Key returns the canonical key of the entry.
func (e Entry) Key() string { return canonicalKey(e.Value, e.Exponent) }

// Lexicon holds the numeral words, indexed by canonical value key. It is
// immutable after loading.
type Lexicon struct {
	entries  map[string][]Entry
	ordinals map[string][]string
	size     int
}

// Key returns the canonical key of n × 10^exp, e.g. Key(20, 0) == "2e1".
func Key(n, exp int) string {
	return canonicalKey(strconv.Itoa(n), exp)
}

// KeyOf returns the canonical key of a decimal digit string.
func KeyOf(digits string) string {
	return canonicalKey(digits, 0)
}

// canonicalKey strips leading zeros from the mantissa and moves trailing
// zeros into the exponent.
func canonicalKey(digits string, exp int) string {
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return "0e0"
	}
	for strings.HasSuffix(digits, "0") {
		digits = digits[:len(digits)-1]
		exp++
	}
	return digits + "e" + strconv.Itoa(exp)
}

func (l *Lexicon) lookupKey(key string) []Entry {
	if l == nil {
		return nil
	}
	return l.entries[key]
}

func (l *Lexicon) terms(key string, keep func(Entry) bool) []string {
	var out []string
	for _, e := range l.lookupKey(key) {
		if keep(e) {
			out = append(out, e.Term)
		}
	}
	return out
}

// Lookup returns the words for n × 10^exp that may stand on their own,
// in declaration order.
func (l *Lexicon) Lookup(n, exp int) []string {
	return l.terms(Key(n, exp), func(e Entry) bool { return !e.ForCompounds })
}

// Stems returns the unmarked words for n × 10^exp, the ones usable both
// alone and inside compounds.
func (l *Lexicon) Stems(n, exp int) []string {
	return l.terms(Key(n, exp), func(e Entry) bool { return !e.ForCompounds && !e.StandaloneOnly })
}

// Prefixes returns the words for n × 10^exp that may open a compound,
// including the compound-only variants.
func (l *Lexicon) Prefixes(n, exp int) []string {
	return l.terms(Key(n, exp), func(e Entry) bool { return !e.StandaloneOnly })
}

// Entries returns every entry filed under key.
func (l *Lexicon) Entries(key string) []Entry {
	return append([]Entry(nil), l.lookupKey(key)...)
}

func (l *Lexicon) ordinalForms(key string) []string {
	if l == nil {
		return nil
	}
	return l.ordinals[key]
}

// Ordinal returns the tabulated ordinal words for n. Only the first six
// ordinals are tabulated.
func (l *Lexicon) Ordinal(n int) []string {
	return append([]string(nil), l.ordinalForms(Key(n, 0))...)
}

// Len returns the number of numeral entries.
func (l *Lexicon) Len() int {
	if l == nil {
		return 0
	}
	return l.size
}

var valueRe = regexp.MustCompile(`^([0-9]+)(?:e(-?[0-9]+))?$`)

// parseValue splits "15e-1" into its mantissa and exponent.
func parseValue(s string) (string, int, bool) {
	m := valueRe.FindStringSubmatch(s)
	if m == nil {
		return "", 0, false
	}
	exp := 0
	if m[2] != "" {
		var err error
		if exp, err = strconv.Atoi(m[2]); err != nil {
			return "", 0, false
		}
	}
	return m[1], exp, true
}

// scanRecords calls fn with the fields of every non-blank, non-comment line
// of r. Fields are separated by '|'.
func scanRecords(file string, r io.Reader, fn func(line int, fields []string) error) error {
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "|")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		if err := fn(n, fields); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read %s: %w", file, err)
	}
	return nil
}

// LoadLexicon reads the numeral and ordinal tables.
//
// Numeral lines are "term|value" or "term|value|flag", where value is a
// digit string optionally followed by e and a signed exponent, and flag is
// c (compound-only) or s (standalone-only). Ordinal lines are
// "term|value". Lines starting with # are comments.
func LoadLexicon(numerals, ordinals io.Reader) (*Lexicon, error) {
	l := &Lexicon{
		entries:  make(map[string][]Entry),
		ordinals: make(map[string][]string),
	}
	err := scanRecords(numeralsFile, numerals, func(line int, f []string) error {
		if len(f) < 2 || len(f) > 3 {
			return &DataError{File: numeralsFile, Line: line, Msg: fmt.Sprintf("want 2 or 3 fields, got %d", len(f))}
		}
		term := Normalize(f[0])
		if term == "" {
			return &DataError{File: numeralsFile, Line: line, Msg: "empty term"}
		}
		value, exp, ok := parseValue(f[1])
		if !ok {
			return &DataError{File: numeralsFile, Line: line, Msg: fmt.Sprintf("bad value %q", f[1])}
		}
		e := Entry{Term: term, Value: value, Exponent: exp}
		if len(f) == 3 {
			for _, flag := range f[2] {
				switch flag {
				case 'c':
					e.ForCompounds = true
				case 's':
					e.StandaloneOnly = true
				default:
					return &DataError{File: numeralsFile, Line: line, Msg: fmt.Sprintf("unknown flag %q", flag)}
				}
			}
			if e.ForCompounds && e.StandaloneOnly {
				return &DataError{File: numeralsFile, Line: line, Msg: "flags c and s are exclusive"}
			}
		}
		key := e.Key()
		l.entries[key] = append(l.entries[key], e)
		l.size++
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = scanRecords(ordinalsFile, ordinals, func(line int, f []string) error {
		if len(f) != 2 {
			return &DataError{File: ordinalsFile, Line: line, Msg: fmt.Sprintf("want 2 fields, got %d", len(f))}
		}
		term := Normalize(f[0])
		if term == "" {
			return &DataError{File: ordinalsFile, Line: line, Msg: "empty term"}
		}
		value, exp, ok := parseValue(f[1])
		if !ok {
			return &DataError{File: ordinalsFile, Line: line, Msg: fmt.Sprintf("bad value %q", f[1])}
		}
		key := canonicalKey(value, exp)
		l.ordinals[key] = append(l.ordinals[key], term)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}
