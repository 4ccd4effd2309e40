// Package slug allocates stable, human-legible identifiers from arbitrary
// strings. An Allocator belongs to one conversion run; identifiers are unique
// within a namespace (examples, meanings, clitics, ...).
package slug

import (
	"fmt"

	gslug "github.com/gosimple/slug"
)

// Make applies the ASCII-transliterating slug transform without any
// deduplication. The result may be empty.
func Make(s string) string {
	return gslug.Make(s)
}

// Entry is one allocated identifier with the input it was derived from.
type Entry struct {
	ID    string
	Input string
}

type namespace struct {
	byInput map[string]string
	used    map[string]bool
	entries []Entry
}

// Allocator hands out identifiers. The zero value is not usable; call New.
type Allocator struct {
	spaces map[string]*namespace
}

// New returns an empty allocator.
func New() *Allocator {
	return &Allocator{spaces: map[string]*namespace{}}
}

func (a *Allocator) space(ns string) *namespace {
	s, ok := a.spaces[ns]
	if !ok {
		s = &namespace{byInput: map[string]string{}, used: map[string]bool{}}
		a.spaces[ns] = s
	}
	return s
}

// ID returns the identifier for input in namespace ns. The same input always
// maps to the same identifier. Different inputs never share one: a colliding
// slug gets a numeric suffix, and inputs that slug to nothing get "null-<n>"
// with the smallest free n.
func (a *Allocator) ID(ns, input string) string {
	return a.Key(ns, input, input)
}

// Key is like ID but separates identity from the text the slug is made of:
// key decides whether an identifier already exists, source is slugged when a
// new one is allocated.
func (a *Allocator) Key(ns, key, source string) string {
	s := a.space(ns)
	if id, ok := s.byInput[key]; ok {
		return id
	}
	base := Make(source)
	var id string
	if base == "" {
		for n := 0; ; n++ {
			if c := fmt.Sprintf("null-%d", n); !s.used[c] {
				id = c
				break
			}
		}
	} else {
		id = base
		for n := 1; s.used[id]; n++ {
			id = fmt.Sprintf("%s-%d", base, n)
		}
	}
	s.byInput[key] = id
	s.used[id] = true
	s.entries = append(s.entries, Entry{ID: id, Input: source})
	return id
}

// Lookup returns the identifier already allocated for input, if any.
func (a *Allocator) Lookup(ns, input string) (string, bool) {
	s, ok := a.spaces[ns]
	if !ok {
		return "", false
	}
	id, ok := s.byInput[input]
	return id, ok
}

// Entries returns the allocations of a namespace in allocation order.
func (a *Allocator) Entries(ns string) []Entry {
	s, ok := a.spaces[ns]
	if !ok {
		return nil
	}
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}
