package pali

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Class is a closed lexical class with a precomputed declension index.
type Class string

const (
	Pronouns  Class = "pronoun"
	Numerals  Class = "numeral"
	Irregular Class = "irregular"
)

// Classes lists the word classes in lookup order.
var Classes = []Class{Pronouns, Numerals, Irregular}

// ParseClass accepts a class name, singular or plural.
func ParseClass(s string) (Class, error) {
	s = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s")
	for _, c := range Classes {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownClass, s)
}

// PaliWord is a lexical entry.
type PaliWord struct {
	// Term is the lemma, e.g. "sabba".
	Term string `yaml:"term"`
	// Paradigms names the paradigms the word follows. They pair up with
	// Genders by position, unless either list holds a single element.
	Paradigms []string `yaml:"paradigms"`
	Genders   []Gender `yaml:"genders"`
	// Value and Exponent give the number denoted by a numeral, Value × 10^Exponent.
	Value    int `yaml:"value"`
	Exponent int `yaml:"exponent"`
	// ForCompounds marks a form used only as a compound member.
	ForCompounds bool     `yaml:"for_compounds"`
	Meanings     []string `yaml:"meanings"`
	Class        Class    `yaml:"-"`
}

// Validate checks that the paradigm and gender lists fit together.
func (w PaliWord) Validate() error {
	switch {
	case w.Term == "":
		return errors.New("empty term")
	case len(w.Paradigms) == 0:
		return fmt.Errorf("%s: no paradigm", w.Term)
	case len(w.Genders) == 0:
		return fmt.Errorf("%s: no gender", w.Term)
	case len(w.Paradigms) != len(w.Genders) && len(w.Paradigms) != 1 && len(w.Genders) != 1:
		return fmt.Errorf("%s: %d paradigms for %d genders", w.Term, len(w.Paradigms), len(w.Genders))
	}
	return nil
}

// ParadigmsFor returns the paradigm names that apply to the gender at index
// i of Genders.
func (w PaliWord) ParadigmsFor(i int) []string {
	if i < 0 || i >= len(w.Genders) {
		return nil
	}
	if len(w.Genders) > 1 && len(w.Paradigms) == len(w.Genders) {
		return []string{w.Paradigms[i]}
	}
	return unique(w.Paradigms)
}

// Meaning joins the meanings for display.
func (w PaliWord) Meaning() string {
	return strings.Join(w.Meanings, "; ")
}

// WithSuffix cuts ending off the term and appends suffix. A stem-final
// vowel is dropped before a vowel-initial suffix.
func (w PaliWord) WithSuffix(suffix, ending string) string {
	stem := w.Term
	if n, score := match(w.Term, ending); score > 0 {
		stem = w.Term[:len(w.Term)-n]
	}
	if stem == "" || suffix == "" {
		return stem + suffix
	}
	last, size := utf8.DecodeLastRuneInString(stem)
	first, _ := utf8.DecodeRuneInString(suffix)
	if isVowel(last) && isVowel(first) {
		stem = stem[:len(stem)-size]
	}
	return stem + suffix
}

var wordFields = map[string]bool{
	"term": true, "paradigms": true, "genders": true, "value": true,
	"exponent": true, "for_compounds": true, "meanings": true,
}

// LoadWords reads the YAML word table, a mapping from class to word list.
// Classes are read in file order; errors carry the line of the offending
// entry.
func LoadWords(r io.Reader) (map[Class][]PaliWord, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return map[Class][]PaliWord{}, nil
		}
		return nil, &DataError{File: wordsFile, Msg: err.Error()}
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, &DataError{File: wordsFile, Line: root.Line, Msg: "word table must map classes to word lists"}
	}

	words := make(map[Class][]PaliWord, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, list := root.Content[i], root.Content[i+1]
		class, err := ParseClass(key.Value)
		if err != nil {
			return nil, &DataError{File: wordsFile, Line: key.Line, Msg: err.Error()}
		}
		if _, dup := words[class]; dup {
			return nil, &DataError{File: wordsFile, Line: key.Line, Msg: fmt.Sprintf("duplicate class %s", class)}
		}
		if list.Kind != yaml.SequenceNode {
			return nil, &DataError{File: wordsFile, Line: list.Line, Msg: fmt.Sprintf("%s: expected a list of words", class)}
		}
		words[class] = make([]PaliWord, 0, len(list.Content))
		for _, item := range list.Content {
			w, err := decodeWord(item)
			if err != nil {
				return nil, &DataError{File: wordsFile, Line: item.Line, Msg: fmt.Sprintf("%s: %v", class, err)}
			}
			w.Class = class
			words[class] = append(words[class], w)
		}
	}
	return words, nil
}

func decodeWord(n *yaml.Node) (PaliWord, error) {
	var w PaliWord
	if n.Kind != yaml.MappingNode {
		return w, errors.New("word must be a mapping")
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if k := n.Content[i].Value; !wordFields[k] {
			return w, fmt.Errorf("unknown field %q", k)
		}
	}
	if err := n.Decode(&w); err != nil {
		return w, err
	}
	w.Term = Normalize(w.Term)
	for j := range w.Paradigms {
		w.Paradigms[j] = Normalize(w.Paradigms[j])
	}
	return w, w.Validate()
}
