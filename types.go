package pali

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Case is a grammatical case. The seven numbered cases follow the order of
// the Pāli grammarians; the vocative comes last.
type Case int

const (
	Nominative Case = iota + 1
	Accusative
	Instrumental
	Dative
	Ablative
	Genitive
	Locative
	Vocative
)

// Cases lists every case in display order.
var Cases = []Case{Nominative, Accusative, Instrumental, Dative, Ablative, Genitive, Locative, Vocative}

var caseNames = [...]string{"", "nominative", "accusative", "instrumental", "dative", "ablative", "genitive", "locative", "vocative"}

var caseAbbrevs = [...]string{"", "nom", "acc", "ins", "dat", "abl", "gen", "loc", "voc"}

func (c Case) valid() bool { return c >= Nominative && c <= Vocative }

func (c Case) String() string {
	if !c.valid() {
		return "case(" + strconv.Itoa(int(c)) + ")"
	}
	return caseNames[c]
}

// Abbrev returns the short name used in data files and tables, e.g. "nom".
func (c Case) Abbrev() string {
	if !c.valid() {
		return ""
	}
	return caseAbbrevs[c]
}

// NumAbbrev returns the traditional case number, "1" for the nominative
// through "7" for the locative, and "8" for the vocative.
func (c Case) NumAbbrev() string {
	if !c.valid() {
		return ""
	}
	return strconv.Itoa(int(c))
}

// ParseCase accepts a full name, an abbreviation or a case number.
func ParseCase(s string) (Case, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, c := range Cases {
		if s == c.Abbrev() || s == c.String() || s == c.NumAbbrev() {
			return c, true
		}
	}
	return 0, false
}

// Number is grammatical number.
type Number int

const (
	Singular Number = iota + 1
	Plural
)

// Numbers lists both numbers in display order.
var Numbers = []Number{Singular, Plural}

func (n Number) String() string {
	switch n {
	case Singular:
		return "singular"
	case Plural:
		return "plural"
	}
	return "number(" + strconv.Itoa(int(n)) + ")"
}

// Abbrev returns "sg" or "pl".
func (n Number) Abbrev() string {
	switch n {
	case Singular:
		return "sg"
	case Plural:
		return "pl"
	}
	return ""
}

// ParseNumber accepts "sg", "pl" or the full names.
func ParseNumber(s string) (Number, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sg", "sing", "singular":
		return Singular, true
	case "pl", "plu", "plural":
		return Plural, true
	}
	return 0, false
}

// Gender is grammatical gender.
type Gender int

const (
	Masculine Gender = iota + 1
	Feminine
	Neuter
)

// Genders lists the three genders.
var Genders = []Gender{Masculine, Feminine, Neuter}

func (g Gender) String() string {
	switch g {
	case Masculine:
		return "masculine"
	case Feminine:
		return "feminine"
	case Neuter:
		return "neuter"
	}
	return "gender(" + strconv.Itoa(int(g)) + ")"
}

// Abbrev returns "masc", "fem" or "nt".
func (g Gender) Abbrev() string {
	switch g {
	case Masculine:
		return "masc"
	case Feminine:
		return "fem"
	case Neuter:
		return "nt"
	}
	return ""
}

// ParseGender accepts the abbreviations used in data files as well as the
// full names and single letters.
func ParseGender(s string) (Gender, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "masc", "m", "masculine":
		return Masculine, true
	case "fem", "f", "feminine":
		return Feminine, true
	case "nt", "n", "neut", "neuter":
		return Neuter, true
	}
	return 0, false
}

// UnmarshalYAML lets word tables spell genders as strings.
func (g *Gender) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, ok := ParseGender(s)
	if !ok {
		return &yaml.TypeError{Errors: []string{"line " + strconv.Itoa(value.Line) + ": unknown gender " + strconv.Quote(s)}}
	}
	*g = parsed
	return nil
}

// Table is a declension table: case → number → surface forms. Every case and
// number is present; a cell with no forms holds an empty slice.
type Table map[Case]map[Number][]string

func newTable() Table {
	t := make(Table, len(Cases))
	for _, c := range Cases {
		t[c] = map[Number][]string{Singular: {}, Plural: {}}
	}
	return t
}

// Forms returns the forms of one cell.
func (t Table) Forms(c Case, n Number) []string {
	return t[c][n]
}

// Empty reports whether no cell holds a form.
func (t Table) Empty() bool {
	for _, byNumber := range t {
		for _, forms := range byNumber {
			if len(forms) > 0 {
				return false
			}
		}
	}
	return true
}

// DeclinedWord is one reading of a surface form: the word it comes from and
// the gender, number and case it expresses.
type DeclinedWord struct {
	Form    string
	Term    string
	Meaning string
	Class   Class
	Gender  Gender
	Number  Number
	Case    Case
}
