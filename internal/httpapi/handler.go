// Package httpapi exposes the grammar as a JSON REST API.
//
// Endpoints:
//
//	GET  /api/cardinal?n=<digits>
//	GET  /api/ordinal?n=<digits>
//	GET  /api/declension?term=<term>[&gender=<index>]
//	GET  /api/lookup?form=<form>
//	POST /api/lookup/text   body: {"text":"..."}
//	GET  /api/healthz
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/paliplatform/pali"
)

// MaxTextBytes bounds the request body of POST /api/lookup/text.
const MaxTextBytes = 64 << 10

// Grammar is the part of *pali.Grammar the API serves.
type Grammar interface {
	Decline(term string, genderIdx int) (pali.Table, pali.PaliWord, error)
	LookupForm(form string) []pali.DeclinedWord
	LookupText(text string) []pali.TextMatch
}

// Numerals synthesizes numeral words; *pali.Grammar and the numeral cache
// both satisfy it.
type Numerals interface {
	Cardinal(digits string) []string
	Ordinal(digits string) []string
}

// Handler serves the API.
type Handler struct {
	grammar  Grammar
	numerals Numerals
	log      *zap.Logger
}

// New returns a Handler. A nil logger discards output.
func New(g Grammar, n Numerals, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{grammar: g, numerals: n, log: log}
}

// Routes returns the API routes.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/cardinal", h.handleNumeral(h.numerals.Cardinal))
	mux.HandleFunc("GET /api/ordinal", h.handleNumeral(h.numerals.Ordinal))
	mux.HandleFunc("GET /api/declension", h.handleDeclension)
	mux.HandleFunc("GET /api/lookup", h.handleLookup)
	mux.HandleFunc("POST /api/lookup/text", h.handleLookupText)
	mux.HandleFunc("GET /api/healthz", func(w http.ResponseWriter, r *http.Request) {
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return mux
}

// ---- JSON response types ------------------------------------------------

type numeralResponse struct {
	Value string   `json:"value"`
	Forms []string `json:"forms"`
}

type readingJSON struct {
	Form    string `json:"form"`
	Term    string `json:"term"`
	Meaning string `json:"meaning,omitempty"`
	Class   string `json:"class,omitempty"`
	Gender  string `json:"gender"`
	Number  string `json:"number"`
	Case    string `json:"case"`
}

type declensionResponse struct {
	Term    string                         `json:"term"`
	Gender  string                         `json:"gender"`
	Genders []string                       `json:"genders"`
	Meaning string                         `json:"meaning,omitempty"`
	Table   map[string]map[string][]string `json:"table"`
}

type lookupResponse struct {
	Form     string        `json:"form"`
	Readings []readingJSON `json:"readings"`
}

type textResultJSON struct {
	Token    string        `json:"token"`
	Readings []readingJSON `json:"readings"`
}

type lookupTextResponse struct {
	Results []textResultJSON `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ---- helpers ------------------------------------------------------------

func toReadings(ws []pali.DeclinedWord) []readingJSON {
	out := make([]readingJSON, 0, len(ws))
	for _, w := range ws {
		out = append(out, readingJSON{
			Form:    w.Form,
			Term:    w.Term,
			Meaning: w.Meaning,
			Class:   string(w.Class),
			Gender:  w.Gender.Abbrev(),
			Number:  w.Number.Abbrev(),
			Case:    w.Case.Abbrev(),
		})
	}
	return out
}

func toTableJSON(t pali.Table) map[string]map[string][]string {
	out := make(map[string]map[string][]string, len(pali.Cases))
	for _, c := range pali.Cases {
		row := make(map[string][]string, len(pali.Numbers))
		for _, n := range pali.Numbers {
			forms := t.Forms(c, n)
			if forms == nil {
				forms = []string{}
			}
			row[n.Abbrev()] = forms
		}
		out[c.Abbrev()] = row
	}
	return out
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Warn("encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg})
}

// ---- handlers -----------------------------------------------------------

func (h *Handler) handleNumeral(compute func(string) []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n := r.URL.Query().Get("n")
		err := pali.CheckDigits(n)
		switch {
		case errors.Is(err, pali.ErrTooLong):
			writeError(w, http.StatusBadRequest, fmt.Sprintf("query parameter 'n' is too long (at most %d digits)", pali.MaxDigits))
			return
		case err != nil:
			writeError(w, http.StatusBadRequest, "query parameter 'n' must be a decimal number")
			return
		}
		forms := compute(n)
		if forms == nil {
			forms = []string{}
		}
		h.writeJSON(w, http.StatusOK, numeralResponse{Value: n, Forms: forms})
	}
}

func (h *Handler) handleDeclension(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("term")
	if term == "" {
		writeError(w, http.StatusBadRequest, "missing 'term' query parameter")
		return
	}
	idx := 0
	if raw := r.URL.Query().Get("gender"); raw != "" {
		var err error
		if idx, err = strconv.Atoi(raw); err != nil {
			writeError(w, http.StatusBadRequest, "'gender' must be an integer index")
			return
		}
	}

	table, word, err := h.grammar.Decline(term, idx)
	switch {
	case errors.Is(err, pali.ErrUnknownWord):
		writeError(w, http.StatusNotFound, fmt.Sprintf("term %q not found", term))
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	genders := make([]string, 0, len(word.Genders))
	for _, g := range word.Genders {
		genders = append(genders, g.Abbrev())
	}
	h.writeJSON(w, http.StatusOK, declensionResponse{
		Term:    word.Term,
		Gender:  word.Genders[idx].Abbrev(),
		Genders: genders,
		Meaning: word.Meaning(),
		Table:   toTableJSON(table),
	})
}

func (h *Handler) handleLookup(w http.ResponseWriter, r *http.Request) {
	form := r.URL.Query().Get("form")
	if form == "" {
		writeError(w, http.StatusBadRequest, "missing 'form' query parameter")
		return
	}
	readings := h.grammar.LookupForm(form)
	status := http.StatusOK
	if len(readings) == 0 {
		status = http.StatusNotFound
	}
	h.writeJSON(w, status, lookupResponse{Form: form, Readings: toReadings(readings)})
}

func (h *Handler) handleLookupText(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text string `json:"text"`
	}
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxTextBytes)).Decode(&body)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("body exceeds %d bytes", MaxTextBytes))
		return
	}
	if err != nil || body.Text == "" {
		writeError(w, http.StatusBadRequest, "body must be JSON with a non-empty 'text' field")
		return
	}
	matches := h.grammar.LookupText(body.Text)
	out := make([]textResultJSON, 0, len(matches))
	for _, m := range matches {
		out = append(out, textResultJSON{Token: m.Token, Readings: toReadings(m.Readings)})
	}
	h.writeJSON(w, http.StatusOK, lookupTextResponse{Results: out})
}
