// Package pali synthesizes Pāli numeral words and computes noun and pronoun
// declensions from tabulated lexicon and paradigm data.
package pali

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"go.uber.org/zap"
)

//go:embed data
var embedded embed.FS

// Grammar holds the loaded data and provides the public API. It is
// immutable once built and safe for concurrent use.
type Grammar struct {
	lexicon   *Lexicon
	paradigms *ParadigmTable
	// words maps each class to its entries in file order.
	words map[Class][]PaliWord

	composer *Composer
	decliner *Decliner

	// indexes holds one lazily built reverse index per class.
	indexes map[Class]func() *classIndex

	log *zap.Logger
}

// Option configures a Grammar.
type Option func(*Grammar)

// WithLogger sets the logger used for load diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(g *Grammar) {
		if l != nil {
			g.log = l
		}
	}
}

// New loads the grammar data from dataDir.
func New(dataDir string, opts ...Option) (*Grammar, error) {
	if _, err := os.Stat(dataDir); err != nil {
		return nil, fmt.Errorf("data directory: %w", err)
	}
	return NewFromFS(os.DirFS(dataDir), opts...)
}

// NewFromFS loads the grammar data from the root of fsys.
func NewFromFS(fsys fs.FS, opts ...Option) (*Grammar, error) {
	g := &Grammar{log: zap.NewNop()}
	for _, opt := range opts {
		opt(g)
	}

	if err := g.loadLexicon(fsys); err != nil {
		return nil, err
	}
	if err := g.loadParadigms(fsys); err != nil {
		return nil, err
	}
	if err := g.loadWords(fsys); err != nil {
		return nil, err
	}

	g.composer = NewComposer(g.lexicon)
	g.decliner = NewDecliner(g.paradigms)
	g.indexes = make(map[Class]func() *classIndex, len(Classes))
	for _, class := range Classes {
		g.indexes[class] = sync.OnceValue(func() *classIndex {
			idx := BuildIndex(g.words[class], g.decliner)
			g.log.Debug("built declension index",
				zap.String("class", string(class)),
				zap.Int("forms", len(idx)),
				zap.Int("readings", idx.Len()))
			return newClassIndex(idx)
		})
	}

	for _, class := range Classes {
		for _, w := range g.words[class] {
			for _, name := range w.Paradigms {
				if !g.paradigms.Has(name) {
					g.log.Warn("word names an unknown paradigm, generic fallback applies",
						zap.String("term", w.Term), zap.String("paradigm", name))
				}
			}
		}
	}
	g.log.Debug("grammar loaded",
		zap.Int("numerals", g.lexicon.Len()),
		zap.Int("paradigms", g.paradigms.Len()),
		zap.Int("pronouns", len(g.words[Pronouns])),
		zap.Int("numeral_words", len(g.words[Numerals])),
		zap.Int("irregular", len(g.words[Irregular])))
	return g, nil
}

var (
	defaultOnce    sync.Once
	defaultGrammar *Grammar
	defaultErr     error
)

// Default returns the grammar built from the embedded data. It is loaded on
// first use and shared afterwards.
func Default() (*Grammar, error) {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(embedded, "data")
		if err != nil {
			defaultErr = err
			return
		}
		defaultGrammar, defaultErr = NewFromFS(sub)
	})
	return defaultGrammar, defaultErr
}

// EmbeddedData returns the embedded data directory.
func EmbeddedData() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

// Lexicon returns the numeral lexicon.
func (g *Grammar) Lexicon() *Lexicon { return g.lexicon }

// Paradigms returns the paradigm table.
func (g *Grammar) Paradigms() *ParadigmTable { return g.paradigms }

// Composer returns the numeral composer.
func (g *Grammar) Composer() *Composer { return g.composer }

// Decliner returns the decliner.
func (g *Grammar) Decliner() *Decliner { return g.decliner }

// Cardinal returns the cardinal words for a decimal digit string.
func (g *Grammar) Cardinal(digits string) []string { return g.composer.Cardinal(digits) }

// Ordinal returns the ordinal words for a decimal digit string.
func (g *Grammar) Ordinal(digits string) []string { return g.composer.Ordinal(digits) }

// Words returns the words of a class in file order.
func (g *Grammar) Words(class Class) []PaliWord {
	return append([]PaliWord(nil), g.words[class]...)
}

// Word finds a word by term across every class.
func (g *Grammar) Word(term string) (PaliWord, bool) {
	term = Normalize(term)
	for _, class := range Classes {
		for _, w := range g.words[class] {
			if w.Term == term {
				return w, true
			}
		}
	}
	return PaliWord{}, false
}

// Decline declines a known word for the gender at genderIdx.
func (g *Grammar) Decline(term string, genderIdx int) (Table, PaliWord, error) {
	w, ok := g.Word(term)
	if !ok {
		return nil, PaliWord{}, fmt.Errorf("%w: %q", ErrUnknownWord, term)
	}
	if genderIdx < 0 || genderIdx >= len(w.Genders) {
		return nil, w, fmt.Errorf("%s has no gender %d", w.Term, genderIdx)
	}
	return g.decliner.Decline(w, genderIdx), w, nil
}

// DeclineAs declines an arbitrary term as gender gen following the given
// paradigms, or the generic paradigm when none is given.
func (g *Grammar) DeclineAs(term string, gen Gender, paradigms ...string) Table {
	if len(paradigms) == 0 {
		paradigms = []string{GenericParadigm}
	}
	names := make([]string, len(paradigms))
	for i, p := range paradigms {
		names[i] = Normalize(p)
	}
	w := PaliWord{Term: Normalize(term), Paradigms: names, Genders: []Gender{gen}}
	return g.decliner.Decline(w, 0)
}

// ClassIndex returns the reverse declension index of a class. It is built
// on first request and kept for the life of the Grammar.
func (g *Grammar) ClassIndex(class Class) (Index, error) {
	if _, ok := g.indexes[class]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownClass, class)
	}
	exact := g.classIndex(class).exact
	out := make(Index, len(exact))
	for form, ws := range exact {
		out[form] = append([]DeclinedWord(nil), ws...)
	}
	return out, nil
}

func (g *Grammar) classIndex(class Class) *classIndex {
	return g.indexes[class]()
}
