package pali

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// GenericParadigm names the fallback paradigms, one per stem ending and
// gender.
const GenericParadigm = "generic"

type cell struct {
	c Case
	n Number
}

// NounParadigm is a named set of suffixes for one stem ending and gender.
type NounParadigm struct {
	Name   string
	Ending string
	Gender Gender
	parent *NounParadigm
	cells  map[cell][]string
}

// Suffixes returns the suffixes of one cell, inherited ones included.
func (p *NounParadigm) Suffixes(c Case, n Number) []string {
	return append([]string(nil), p.cells[cell{c, n}]...)
}

// Parent returns the paradigm p inherits from, or nil.
func (p *NounParadigm) Parent() *NounParadigm { return p.parent }

// Is reports whether p or one of its ancestors is called name.
func (p *NounParadigm) Is(name string) bool {
	for m := p; m != nil; m = m.parent {
		if m.Name == name {
			return true
		}
	}
	return false
}

func (p *NounParadigm) String() string {
	return p.Name + "/" + p.Ending + "/" + p.Gender.Abbrev()
}

func paradigmKey(name, ending string, g Gender) string {
	return name + "|" + ending + "|" + g.Abbrev()
}

// ParadigmTable holds every paradigm, indexed by (name, ending, gender).
type ParadigmTable struct {
	byKey  map[string]*NounParadigm
	byName map[string][]*NounParadigm // declaration order
	names  []string
}

// Lookup returns the paradigm declared exactly as (name, ending, g).
func (t *ParadigmTable) Lookup(name, ending string, g Gender) (*NounParadigm, bool) {
	p, ok := t.byKey[paradigmKey(name, Normalize(ending), g)]
	return p, ok
}

// Resolve picks, among the paradigms called name for gender g, the one whose
// ending best matches term: the longest ending wins, and an exact match beats
// a long ending matching a short final vowel. It returns nil if none match.
func (t *ParadigmTable) Resolve(name, term string, g Gender) *NounParadigm {
	term = Normalize(term)
	var best *NounParadigm
	bestScore := 0
	for _, p := range t.byName[name] {
		if p.Gender != g {
			continue
		}
		if _, score := match(term, p.Ending); score > bestScore {
			best, bestScore = p, score
		}
	}
	return best
}

// Len returns the number of paradigms.
func (t *ParadigmTable) Len() int { return len(t.byKey) }

// Names returns the distinct paradigm names in declaration order.
func (t *ParadigmTable) Names() []string {
	return append([]string(nil), t.names...)
}

// Has reports whether any paradigm is called name.
func (t *ParadigmTable) Has(name string) bool {
	return len(t.byName[name]) > 0
}

// shortFinal maps a long final vowel onto its short counterpart.
var shortFinal = map[rune]string{'ā': "a", 'ī': "i", 'ū': "u"}

// match reports how many bytes of term an ending replaces and how well it
// fits. A zero score means no match.
func match(term, ending string) (int, int) {
	if ending == "" {
		return 0, 0
	}
	runes := utf8.RuneCountInString(ending)
	if strings.HasSuffix(term, ending) {
		return len(ending), 2*runes + 1
	}
	last, size := utf8.DecodeLastRuneInString(ending)
	short, ok := shortFinal[last]
	if !ok {
		return 0, 0
	}
	alt := ending[:len(ending)-size] + short
	if strings.HasSuffix(term, alt) {
		return len(alt), 2 * runes
	}
	return 0, 0
}

type paradigmRecord struct {
	Name         string                         `yaml:"name"`
	Ending       string                         `yaml:"ending"`
	Gender       string                         `yaml:"gender"`
	Parent       string                         `yaml:"parent"`
	ParentGender string                         `yaml:"parent_gender"`
	Forms        map[string]map[string][]string `yaml:"forms"`
	line         int
}

var paradigmFields = map[string]bool{
	"name": true, "ending": true, "gender": true, "parent": true, "parent_gender": true, "forms": true,
}

func (r *paradigmRecord) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: paradigm must be a mapping", n.Line)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if k := n.Content[i].Value; !paradigmFields[k] {
			return fmt.Errorf("line %d: unknown field %q", n.Content[i].Line, k)
		}
	}
	type plain paradigmRecord
	if err := n.Decode((*plain)(r)); err != nil {
		return err
	}
	r.line = n.Line
	return nil
}

// LoadParadigms reads a YAML list of paradigms. A paradigm may name a parent
// declared before it; every cell it does not define is inherited.
func LoadParadigms(r io.Reader) (*ParadigmTable, error) {
	var recs []paradigmRecord
	if err := yaml.NewDecoder(r).Decode(&recs); err != nil && err != io.EOF {
		return nil, &DataError{File: paradigmsFile, Msg: err.Error()}
	}

	t := &ParadigmTable{
		byKey:  make(map[string]*NounParadigm, len(recs)),
		byName: make(map[string][]*NounParadigm),
	}
	for _, rec := range recs {
		p, err := t.build(rec)
		if err != nil {
			return nil, err
		}
		key := paradigmKey(p.Name, p.Ending, p.Gender)
		if _, dup := t.byKey[key]; dup {
			return nil, &DataError{File: paradigmsFile, Line: rec.line, Msg: "duplicate paradigm " + p.String()}
		}
		t.byKey[key] = p
		if len(t.byName[p.Name]) == 0 {
			t.names = append(t.names, p.Name)
		}
		t.byName[p.Name] = append(t.byName[p.Name], p)
	}
	return t, nil
}

func (t *ParadigmTable) build(rec paradigmRecord) (*NounParadigm, error) {
	fail := func(format string, args ...any) error {
		return &DataError{File: paradigmsFile, Line: rec.line, Msg: fmt.Sprintf(format, args...)}
	}
	if rec.Name == "" {
		return nil, fail("missing name")
	}
	p := &NounParadigm{
		Name:   Normalize(rec.Name),
		Ending: Normalize(rec.Ending),
		cells:  make(map[cell][]string),
	}
	if p.Ending == "" {
		return nil, fail("paradigm %s: empty ending", p.Name)
	}
	g, ok := ParseGender(rec.Gender)
	if !ok {
		return nil, fail("paradigm %s: unknown gender %q", p.Name, rec.Gender)
	}
	p.Gender = g

	if rec.Parent != "" {
		parent, err := t.parentOf(rec, g)
		if err != nil {
			return nil, fail("paradigm %s: %v", p.Name, err)
		}
		p.parent = parent
		for k, v := range parent.cells {
			p.cells[k] = v
		}
	}

	for cs, byNumber := range rec.Forms {
		c, ok := ParseCase(cs)
		if !ok {
			return nil, fail("paradigm %s: unknown case %q", p.Name, cs)
		}
		for ns, suffixes := range byNumber {
			n, ok := ParseNumber(ns)
			if !ok {
				return nil, fail("paradigm %s: unknown number %q", p.Name, ns)
			}
			forms := make([]string, 0, len(suffixes))
			for _, s := range suffixes {
				forms = append(forms, Normalize(s))
			}
			p.cells[cell{c, n}] = unique(forms)
		}
	}
	return p, nil
}

// parentOf finds the parent paradigm: the one of parent_gender if given,
// otherwise the one of the same gender, otherwise the only one of that name.
func (t *ParadigmTable) parentOf(rec paradigmRecord, g Gender) (*NounParadigm, error) {
	candidates := t.byName[Normalize(rec.Parent)]
	if len(candidates) == 0 {
		return nil, fmt.Errorf("unknown parent %q", rec.Parent)
	}
	want := g
	if rec.ParentGender != "" {
		pg, ok := ParseGender(rec.ParentGender)
		if !ok {
			return nil, fmt.Errorf("unknown parent gender %q", rec.ParentGender)
		}
		want = pg
	}
	for _, c := range candidates {
		if c.Gender == want {
			return c, nil
		}
	}
	if rec.ParentGender == "" && len(candidates) == 1 {
		return candidates[0], nil
	}
	return nil, fmt.Errorf("no %s paradigm %q", want.Abbrev(), rec.Parent)
}
