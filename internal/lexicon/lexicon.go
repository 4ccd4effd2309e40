// Package lexicon loads morph lexicons and resolves morph occurrences to
// lexicon entries.
package lexicon

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/mesh-intelligence/cldflex/internal/table"
	"github.com/mesh-intelligence/cldflex/pkg/types"
)

// Delimiters are the morph boundary markers used in segmented forms.
const Delimiters = "-=<>~"

// Entry is one lexicon row. Forms, Glosses and ParameterIDs are
// multi-valued; ParameterIDs is parallel to Glosses when present.
type Entry struct {
	ID           string
	LanguageID   string
	Forms        []string
	BareForms    []string
	Glosses      []string
	ParameterIDs []string
	Type         string
}

// Lexicon is an ordered list of entries. Order matters: ambiguous lookups
// resolve to the first matching entry.
type Lexicon struct {
	Entries []Entry

	byForm map[string][]int
}

// Bare strips all boundary delimiters from a form.
func Bare(form string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(Delimiters, r) {
			return -1
		}
		return r
	}, form)
}

// TrimGloss removes clitic markers from the ends of a gloss.
func TrimGloss(gloss string) string {
	return strings.Trim(gloss, "=")
}

// New indexes entries by bare form.
func New(entries []Entry) *Lexicon {
	lex := &Lexicon{Entries: entries, byForm: map[string][]int{}}
	for i, e := range entries {
		seen := map[string]bool{}
		for _, f := range e.BareForms {
			if seen[f] {
				continue
			}
			seen[f] = true
			lex.byForm[f] = append(lex.byForm[f], i)
		}
	}
	return lex
}

// Len returns the number of entries.
func (l *Lexicon) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Entries)
}

// candidates returns the indexes of entries with the given bare form, in
// table order.
func (l *Lexicon) candidates(bare string) []int {
	return l.byForm[bare]
}

// FromTable builds a lexicon from a morphs table with ID, Form and Meaning
// (or Gloss) columns; Parameter_ID, Language_ID and Type are optional.
// Multi-valued cells are split at sep.
func FromTable(t *table.Table, sep string) (*Lexicon, error) {
	if !t.HasColumn("ID") || !t.HasColumn("Form") {
		return nil, fmt.Errorf("%w: %s needs ID and Form columns", types.ErrLexiconFormat, t.Name)
	}
	glossCol := "Meaning"
	if !t.HasColumn(glossCol) {
		glossCol = "Gloss"
	}
	if !t.HasColumn(glossCol) {
		return nil, fmt.Errorf("%w: %s needs a Meaning or Gloss column", types.ErrLexiconFormat, t.Name)
	}
	typeCol := "Type"
	if !t.HasColumn(typeCol) && t.HasColumn("Morph_Type") {
		typeCol = "Morph_Type"
	}

	entries := make([]Entry, 0, t.Len())
	for _, r := range t.Rows {
		forms := normalize(table.Split(r["Form"], sep))
		e := Entry{
			ID:           r["ID"],
			LanguageID:   r["Language_ID"],
			Forms:        forms,
			Glosses:      normalize(table.Split(r[glossCol], sep)),
			ParameterIDs: table.Split(r["Parameter_ID"], sep),
			Type:         r[typeCol],
		}
		for _, f := range forms {
			e.BareForms = append(e.BareForms, Bare(f))
		}
		entries = append(entries, e)
	}
	return New(entries), nil
}

// LoadCSV reads a lexicon CSV file.
func LoadCSV(path, sep string) (*Lexicon, error) {
	t, err := table.ReadCSVFile(path)
	if err != nil {
		return nil, fmt.Errorf("load lexicon: %w", err)
	}
	return FromTable(t, sep)
}

func normalize(values []string) []string {
	for i, v := range values {
		values[i] = norm.NFC.String(v)
	}
	return values
}
