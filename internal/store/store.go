// Package store exports declension indexes and numeral tables to SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	_ "modernc.org/sqlite"

	"github.com/paliplatform/pali"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS declined_forms (
		form     TEXT NOT NULL,
		term     TEXT NOT NULL,
		meaning  TEXT NOT NULL,
		gender   TEXT NOT NULL,
		number   TEXT NOT NULL,
		gram_case TEXT NOT NULL,
		class    TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_declined_forms_form ON declined_forms(form)`,
	`CREATE TABLE IF NOT EXISTS numerals (
		value TEXT NOT NULL,
		kind  TEXT NOT NULL,
		term  TEXT NOT NULL,
		seq  INTEGER NOT NULL,
		PRIMARY KEY (value, kind, seq)
	)`,
}

// Kinds of numeral rows.
const (
	Cardinal = "cardinal"
	Ordinal  = "ordinal"
)

// Store is a SQLite database of precomputed lookup tables.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("store: sqlite path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: schema: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// WithTx runs fn in a transaction, committing when it returns nil.
func (s *Store) WithTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// WriteIndex replaces the rows of class with the readings in idx.
func (s *Store) WriteIndex(ctx context.Context, class pali.Class, idx pali.Index) error {
	return s.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM declined_forms WHERE class = ?`, string(class)); err != nil {
			return fmt.Errorf("store: clear %s: %w", class, err)
		}
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO declined_forms(form, term, meaning, gender, number, gram_case, class) VALUES(?,?,?,?,?,?,?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, form := range idx.Forms() {
			for _, w := range idx[form] {
				if _, err := stmt.ExecContext(ctx, w.Form, w.Term, w.Meaning,
					w.Gender.Abbrev(), w.Number.Abbrev(), w.Case.Abbrev(), string(class)); err != nil {
					return fmt.Errorf("store: insert %s: %w", form, err)
				}
			}
		}
		return nil
	})
}

// WriteNumerals replaces the rows of kind for every value in forms.
func (s *Store) WriteNumerals(ctx context.Context, kind string, forms map[string][]string) error {
	values := make([]string, 0, len(forms))
	for v := range forms {
		values = append(values, v)
	}
	sort.Strings(values)
	return s.WithTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO numerals(value, kind, term, seq) VALUES(?,?,?,?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, v := range values {
			if _, err := tx.ExecContext(ctx, `DELETE FROM numerals WHERE value = ? AND kind = ?`, v, kind); err != nil {
				return fmt.Errorf("store: clear %s %s: %w", kind, v, err)
			}
			for seq, term := range forms[v] {
				if _, err := stmt.ExecContext(ctx, v, kind, term, seq); err != nil {
					return fmt.Errorf("store: insert %s %s: %w", kind, v, err)
				}
			}
		}
		return nil
	})
}

// Forms returns the readings stored for a surface form.
func (s *Store) Forms(ctx context.Context, form string) ([]pali.DeclinedWord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT form, term, meaning, gender, number, gram_case, class FROM declined_forms WHERE form = ? ORDER BY rowid`,
		pali.Normalize(form))
	if err != nil {
		return nil, fmt.Errorf("store: query %s: %w", form, err)
	}
	defer rows.Close()

	var out []pali.DeclinedWord
	for rows.Next() {
		var w pali.DeclinedWord
		var gender, number, gramCase, class string
		if err := rows.Scan(&w.Form, &w.Term, &w.Meaning, &gender, &number, &gramCase, &class); err != nil {
			return nil, err
		}
		w.Gender, _ = pali.ParseGender(gender)
		w.Number, _ = pali.ParseNumber(number)
		w.Case, _ = pali.ParseCase(gramCase)
		w.Class = pali.Class(class)
		out = append(out, w)
	}
	return out, rows.Err()
}

// Numeral returns the stored words of kind for a digit string, in the
// order they were written.
func (s *Store) Numeral(ctx context.Context, kind, value string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT term FROM numerals WHERE value = ? AND kind = ? ORDER BY seq`, value, kind)
	if err != nil {
		return nil, fmt.Errorf("store: query %s %s: %w", kind, value, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var term string
		if err := rows.Scan(&term); err != nil {
			return nil, err
		}
		out = append(out, term)
	}
	return out, rows.Err()
}
