package lexicon

import (
	"github.com/rs/zerolog"
)

// Match is the result of a successful lookup.
type Match struct {
	EntryID string
	SenseID string
}

type lookupKey struct {
	form, gloss, morphType string
}

// missKey identifies a failed lookup. A miss does not depend on the morph
// type, which only narrows between several hits.
type missKey struct {
	form, gloss string
}

type lookupResult struct {
	match Match
	ok    bool
}

// Matcher resolves (form, gloss, type) triples to lexicon entries and
// memoizes both hits and misses for the lifetime of one conversion run.
type Matcher struct {
	lex    *Lexicon
	logger zerolog.Logger
	cache  map[lookupKey]lookupResult
	misses map[missKey]bool
}

// NewMatcher returns a matcher over lex.
func NewMatcher(lex *Lexicon, logger zerolog.Logger) *Matcher {
	return &Matcher{
		lex:    lex,
		logger: logger,
		cache:  map[lookupKey]lookupResult{},
		misses: map[missKey]bool{},
	}
}

// Match finds the entry whose bare forms contain form and whose glosses
// contain gloss. With several candidates, the one whose Type equals
// morphType wins; otherwise the first in table order is used. context names
// the example being converted and only appears in log messages.
func (m *Matcher) Match(form, gloss, morphType, context string) (Match, bool) {
	key := lookupKey{form: form, gloss: TrimGloss(gloss), morphType: morphType}
	if r, ok := m.cache[key]; ok {
		return r.match, r.ok
	}
	miss := missKey{form: key.form, gloss: key.gloss}
	if m.misses[miss] {
		return Match{}, false
	}
	r := m.lookup(key, context)
	m.cache[key] = r
	if !r.ok {
		m.misses[miss] = true
	}
	return r.match, r.ok
}

func (m *Matcher) lookup(key lookupKey, context string) lookupResult {
	type candidate struct {
		entry    *Entry
		glossIdx int
	}
	var hits []candidate
	for _, i := range m.lex.candidates(key.form) {
		e := &m.lex.Entries[i]
		for gi, g := range e.Glosses {
			if TrimGloss(g) == key.gloss {
				hits = append(hits, candidate{entry: e, glossIdx: gi})
				break
			}
		}
	}

	switch len(hits) {
	case 0:
		m.logger.Warn().
			Str("form", key.form).
			Str("gloss", key.gloss).
			Str("context", context).
			Msgf("no hits for /%s/ '%s' in lexicon (%s)", key.form, key.gloss, context)
		return lookupResult{}
	case 1:
		return lookupResult{match: senseOf(hits[0].entry, hits[0].glossIdx), ok: true}
	}

	var narrowed []candidate
	for _, h := range hits {
		if h.entry.Type == key.morphType {
			narrowed = append(narrowed, h)
		}
	}
	if len(narrowed) == 1 {
		return lookupResult{match: senseOf(narrowed[0].entry, narrowed[0].glossIdx), ok: true}
	}
	m.logger.Warn().
		Str("form", key.form).
		Str("gloss", key.gloss).
		Str("type", key.morphType).
		Int("candidates", len(hits)).
		Msgf("multiple lexicon entries for %s '%s', using the first hit", key.form, key.gloss)
	return lookupResult{match: senseOf(hits[0].entry, hits[0].glossIdx), ok: true}
}

// senseOf returns the entry ID and the sense aligned with the matched gloss.
func senseOf(e *Entry, glossIdx int) Match {
	m := Match{EntryID: e.ID}
	if glossIdx < len(e.ParameterIDs) {
		m.SenseID = e.ParameterIDs[glossIdx]
	}
	return m
}
