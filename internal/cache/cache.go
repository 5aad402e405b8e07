// Package cache memoizes numeral synthesis results.
package cache

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Composer is the numeral synthesis the cache sits in front of.
type Composer interface {
	Cardinal(digits string) []string
	Ordinal(digits string) []string
}

// Numerals caches cardinal and ordinal results by their canonical digit
// string. A zero size disables caching. It is safe for concurrent use.
type Numerals struct {
	next      Composer
	cardinals *lru.Cache[string, []string]
	ordinals  *lru.Cache[string, []string]
}

// New wraps c with caches holding up to size entries each.
func New(c Composer, size int) (*Numerals, error) {
	n := &Numerals{next: c}
	if size <= 0 {
		return n, nil
	}
	var err error
	if n.cardinals, err = lru.New[string, []string](size); err != nil {
		return nil, err
	}
	if n.ordinals, err = lru.New[string, []string](size); err != nil {
		return nil, err
	}
	return n, nil
}

// Cardinal returns the cardinal words for digits.
func (n *Numerals) Cardinal(digits string) []string {
	return n.get(n.cardinals, digits, n.next.Cardinal)
}

// Ordinal returns the ordinal words for digits.
func (n *Numerals) Ordinal(digits string) []string {
	return n.get(n.ordinals, digits, n.next.Ordinal)
}

// Len returns the number of cached cardinal and ordinal results.
func (n *Numerals) Len() int {
	if n.cardinals == nil {
		return 0
	}
	return n.cardinals.Len() + n.ordinals.Len()
}

func (n *Numerals) get(c *lru.Cache[string, []string], digits string, compute func(string) []string) []string {
	key := strings.TrimLeft(strings.TrimSpace(digits), "0")
	if c == nil {
		return compute(key)
	}
	if forms, ok := c.Get(key); ok {
		return clone(forms)
	}
	forms := compute(key)
	c.Add(key, forms)
	return clone(forms)
}

func clone(ss []string) []string {
	if ss == nil {
		return nil
	}
	return append([]string(nil), ss...)
}
