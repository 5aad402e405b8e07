package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paliplatform/pali"
	"github.com/paliplatform/pali/internal/store"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCardinal(t *testing.T) {
	out, err := execute(t, "cardinal", "2")
	require.NoError(t, err)
	assert.Equal(t, "dvi\ndve\n", out)
}

func TestCardinalRejectsNonDigits(t *testing.T) {
	_, err := execute(t, "cardinal", "12a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a decimal digit string")
}

func TestCardinalRejectsLongNumbers(t *testing.T) {
	_, err := execute(t, "cardinal", strings.Repeat("1", 40))
	assert.ErrorIs(t, err, pali.ErrTooLong)

	_, err = execute(t, "ordinal", strings.Repeat("1", 40))
	assert.ErrorIs(t, err, pali.ErrTooLong)
}

func TestOrdinal(t *testing.T) {
	out, err := execute(t, "ordinal", "1")
	require.NoError(t, err)
	assert.Equal(t, "paṭhama\n", out)
}

func TestDecline(t *testing.T) {
	out, err := execute(t, "decline", "ta")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 10)
	assert.True(t, strings.HasPrefix(lines[0], "ta (masculine)"))
	assert.Contains(t, lines[2], "nominative")
	assert.Contains(t, lines[2], "so")
}

func TestDeclineErrors(t *testing.T) {
	_, err := execute(t, "decline", "xyz")
	assert.ErrorContains(t, err, "unknown word")

	_, err = execute(t, "decline", "ta", "--gender", "9")
	assert.Error(t, err)
}

func TestLookup(t *testing.T) {
	out, err := execute(t, "lookup", "tasmiṃ", "xyz")
	require.NoError(t, err)
	assert.Contains(t, out, "tasmiṃ")
	assert.Contains(t, out, "loc")
	assert.Regexp(t, `xyz\s+-`, out)
}

func TestExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pali.db")
	out, err := execute(t, "export", "--db", path, "--max", "20")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	ctx := context.Background()
	s, err := store.Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	forms, err := s.Numeral(ctx, store.Cardinal, "2")
	require.NoError(t, err)
	assert.Equal(t, []string{"dvi", "dve"}, forms)

	forms, err = s.Numeral(ctx, store.Ordinal, "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"paṭhama"}, forms)

	readings, err := s.Forms(ctx, "tasmiṃ")
	require.NoError(t, err)
	assert.Len(t, readings, 2)
}

func TestExportFlags(t *testing.T) {
	_, err := execute(t, "export")
	assert.ErrorContains(t, err, "--db")

	_, err = execute(t, "export", "--db", filepath.Join(t.TempDir(), "x.db"), "--max", "0")
	assert.ErrorContains(t, err, "--max")
}

func TestBadDataDir(t *testing.T) {
	_, err := execute(t, "--data", t.TempDir(), "cardinal", "1")
	assert.ErrorContains(t, err, "load grammar")
}
