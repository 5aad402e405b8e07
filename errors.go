package pali

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by the package.
var (
	ErrMalformedData = errors.New("malformed grammar data")
	ErrNotNumeric    = errors.New("not a decimal digit string")
	ErrTooLong       = errors.New("number too long")
	ErrUnknownClass  = errors.New("unknown word class")
	ErrUnknownWord   = errors.New("unknown word")
)

// DataError reports a defect in one of the grammar data files. Loading stops
// at the first one.
type DataError struct {
	File string
	// Line is 1-based; 0 when the defect is not tied to a line.
	Line int
	Msg  string
}

func (e *DataError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Msg)
}

func (e *DataError) Unwrap() error { return ErrMalformedData }

// CheckDigits returns ErrNotNumeric unless s is a non-empty run of ASCII
// digits, and ErrTooLong when it has more than MaxDigits significant digits.
func CheckDigits(s string) error {
	if !isDigits(s) {
		return fmt.Errorf("%w: %q", ErrNotNumeric, s)
	}
	if n := len(strings.TrimLeft(s, "0")); n > MaxDigits {
		return fmt.Errorf("%w: %d digits, at most %d", ErrTooLong, n, MaxDigits)
	}
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
