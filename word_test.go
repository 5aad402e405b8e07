package pali

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordValidate(t *testing.T) {
	ok := []PaliWord{
		{Term: "ta", Paradigms: []string{"ta"}, Genders: []Gender{Masculine, Feminine, Neuter}},
		{Term: "rāja", Paradigms: []string{"rāja", "deva"}, Genders: []Gender{Masculine}},
		{Term: "x", Paradigms: []string{"a", "b"}, Genders: []Gender{Masculine, Neuter}},
	}
	for _, w := range ok {
		assert.NoError(t, w.Validate(), w.Term)
	}

	bad := []PaliWord{
		{Paradigms: []string{"a"}, Genders: []Gender{Masculine}},
		{Term: "x", Genders: []Gender{Masculine}},
		{Term: "x", Paradigms: []string{"a"}},
		{Term: "x", Paradigms: []string{"a", "b"}, Genders: []Gender{Masculine, Feminine, Neuter}},
	}
	for _, w := range bad {
		assert.Error(t, w.Validate(), "%+v", w)
	}
}

func TestParadigmsFor(t *testing.T) {
	paired := PaliWord{Term: "x", Paradigms: []string{"a", "b"}, Genders: []Gender{Masculine, Neuter}}
	assert.Equal(t, []string{"b"}, paired.ParadigmsFor(1))

	multi := PaliWord{Term: "rāja", Paradigms: []string{"rāja", "deva", "rāja"}, Genders: []Gender{Masculine}}
	assert.Equal(t, []string{"rāja", "deva"}, multi.ParadigmsFor(0))

	shared := PaliWord{Term: "ta", Paradigms: []string{"ta"}, Genders: []Gender{Masculine, Feminine}}
	assert.Equal(t, []string{"ta"}, shared.ParadigmsFor(1))
	assert.Nil(t, shared.ParadigmsFor(2))
	assert.Nil(t, shared.ParadigmsFor(-1))
}

func TestWithSuffix(t *testing.T) {
	tests := []struct {
		term, suffix, ending, want string
	}{
		{"deva", "o", "a", "devo"},
		{"sabba", "ā", "ā", "sabbā"},
		{"ta", "so", "ta", "so"},
		{"aggi", "ayo", "i", "aggayo"},
		{"nadī", "iyo", "ī", "nadiyo"},
		{"pitu", "aro", "u", "pitaro"},
		{"deva", "", "a", "dev"},
		{"xyz", "o", "a", "xyzo"},
	}
	for _, tt := range tests {
		w := PaliWord{Term: tt.term}
		assert.Equal(t, tt.want, w.WithSuffix(tt.suffix, tt.ending), "%s + %s (-%s)", tt.term, tt.suffix, tt.ending)
	}
}

func TestMeaning(t *testing.T) {
	w := PaliWord{Meanings: []string{"that", "he"}}
	assert.Equal(t, "that; he", w.Meaning())
}

func TestParseClass(t *testing.T) {
	c, err := ParseClass("Pronouns")
	require.NoError(t, err)
	assert.Equal(t, Pronouns, c)

	c, err = ParseClass("irregular")
	require.NoError(t, err)
	assert.Equal(t, Irregular, c)

	_, err = ParseClass("verbs")
	assert.ErrorIs(t, err, ErrUnknownClass)
}

func TestLoadWords(t *testing.T) {
	src := `
pronoun:
  - term: Ta
    paradigms: [ta]
    genders: [m, f, neuter]
    meanings: [that]
numeral:
  - {term: sata, paradigms: [citta], genders: [nt], value: 1, exponent: 2}
`
	words, err := LoadWords(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, words[Pronouns], 1)
	ta := words[Pronouns][0]
	assert.Equal(t, "ta", ta.Term)
	assert.Equal(t, Pronouns, ta.Class)
	assert.Equal(t, []Gender{Masculine, Feminine, Neuter}, ta.Genders)
	assert.Equal(t, 2, words[Numerals][0].Exponent)
}

func TestLoadWordsErrors(t *testing.T) {
	tests := map[string]string{
		"unknown class":  "verb:\n  - {term: gacchati, paradigms: [x], genders: [masc]}\n",
		"unknown gender": "pronoun:\n  - {term: ta, paradigms: [ta], genders: [common]}\n",
		"unknown field":  "pronoun:\n  - {term: ta, paradigms: [ta], genders: [masc], stem: t}\n",
		"invalid word":   "pronoun:\n  - {term: ta, paradigms: [a, b], genders: [masc, fem, nt]}\n",
		"not a list":     "pronoun: ta\n",
		"not a mapping":  "- ta\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadWords(strings.NewReader(src))
			require.ErrorIs(t, err, ErrMalformedData)
		})
	}
}

func TestLoadWordsErrorLine(t *testing.T) {
	src := `pronoun:
  - {term: ta, paradigms: [ta], genders: [masc]}
  - {term: ya, paradigms: [a, b], genders: [masc, fem, nt]}
numeral:
  - {term: eka, paradigms: [eka], genders: [bad]}
verb:
  - {term: gacchati, paradigms: [x], genders: [masc]}
`
	for i := 0; i < 10; i++ {
		_, err := LoadWords(strings.NewReader(src))
		var de *DataError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, wordsFile, de.File)
		assert.Equal(t, 3, de.Line)
		assert.Contains(t, de.Msg, "3 genders")
	}
}

func TestLoadWordsDuplicateClass(t *testing.T) {
	src := "pronoun:\n  - {term: ta, paradigms: [ta], genders: [masc]}\npronouns:\n  - {term: ya, paradigms: [ta], genders: [masc]}\n"
	_, err := LoadWords(strings.NewReader(src))
	var de *DataError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 3, de.Line)
}

func TestLoadWordsEmpty(t *testing.T) {
	words, err := LoadWords(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, words)
}
