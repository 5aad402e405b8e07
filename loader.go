package pali

import (
	"fmt"
	"io"
	"io/fs"
)

// Data file names, relative to the data directory.
const (
	numeralsFile  = "numerals.txt"
	ordinalsFile  = "ordinals.txt"
	paradigmsFile = "paradigms.yaml"
	wordsFile     = "words.yaml"
)

// DataFiles lists the files a data directory must contain.
var DataFiles = []string{numeralsFile, ordinalsFile, paradigmsFile, wordsFile}

// withFile opens name in fsys and hands it to fn.
func withFile(fsys fs.FS, name string, fn func(io.Reader) error) error {
	f, err := fsys.Open(name)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()
	return fn(f)
}

func (g *Grammar) loadLexicon(fsys fs.FS) error {
	return withFile(fsys, numeralsFile, func(numerals io.Reader) error {
		return withFile(fsys, ordinalsFile, func(ordinals io.Reader) error {
			lex, err := LoadLexicon(numerals, ordinals)
			if err != nil {
				return err
			}
			g.lexicon = lex
			return nil
		})
	})
}

func (g *Grammar) loadParadigms(fsys fs.FS) error {
	return withFile(fsys, paradigmsFile, func(r io.Reader) error {
		t, err := LoadParadigms(r)
		if err != nil {
			return err
		}
		g.paradigms = t
		return nil
	})
}

func (g *Grammar) loadWords(fsys fs.FS) error {
	return withFile(fsys, wordsFile, func(r io.Reader) error {
		words, err := LoadWords(r)
		if err != nil {
			return err
		}
		g.words = words
		return nil
	})
}
