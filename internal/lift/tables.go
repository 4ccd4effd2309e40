package lift

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mesh-intelligence/cldflex/internal/lexicon"
	"github.com/mesh-intelligence/cldflex/internal/slug"
	"github.com/mesh-intelligence/cldflex/internal/table"
	"github.com/mesh-intelligence/cldflex/pkg/types"
)

// Mode selects the shape of the senses table.
type Mode int

const (
	// ModeWordlist emits senses as a meaning registry (ID, Name) shared
	// with the corpus tables.
	ModeWordlist Mode = iota
	// ModeDictionary emits one sense row per LIFT sense with its entry and
	// description, plus the examples table.
	ModeDictionary
)

// Options controls table generation.
type Options struct {
	GlossLg    string
	LanguageID string // overrides the lexical-unit language when set
	Separator  string
	Slugs      *slug.Allocator
}

func (o Options) withDefaults() Options {
	if o.GlossLg == "" {
		o.GlossLg = types.DefaultGlossLanguage
	}
	if o.Separator == "" {
		o.Separator = types.DefaultSeparator
	}
	if o.Slugs == nil {
		o.Slugs = slug.New()
	}
	return o
}

const nsMeanings = "meanings"
const nsExamples = "examples"

// Tables converts the dictionary into output tables.
func (d *Dictionary) Tables(opts Options, mode Mode) *table.Set {
	opts = opts.withDefaults()
	set := &table.Set{}
	set.Add(d.morphemesTable(opts))
	set.Add(d.morphsTable(opts))
	if mode == ModeDictionary {
		set.Add(d.senseRowsTable(opts))
		set.Add(d.examplesTable(opts))
	} else {
		set.Add(meaningsTable(opts.Slugs))
	}
	return set
}

// Lexicon returns the morph lexicon used to resolve flextext morphs.
func (d *Dictionary) Lexicon(opts Options) (*lexicon.Lexicon, error) {
	opts = opts.withDefaults()
	return lexicon.FromTable(d.morphsTable(opts), opts.Separator)
}

func (d *Dictionary) languageID(opts Options, e *Entry) string {
	if opts.LanguageID != "" {
		return opts.LanguageID
	}
	return e.Language()
}

// meaningIDs allocates sense IDs for glosses, parallel to glosses.
func meaningIDs(slugs *slug.Allocator, glosses []string) []string {
	ids := make([]string, len(glosses))
	for i, g := range glosses {
		ids[i] = slugs.ID(nsMeanings, g)
	}
	return ids
}

func (d *Dictionary) morphemesTable(opts Options) *table.Table {
	sep := opts.Separator
	t := table.New(types.MorphemesTable,
		"ID", "Language_ID", "Name", "Form", "Meaning", "Parameter_ID", "Type", "Part_Of_Speech")
	for _, e := range d.Entries {
		glosses := e.Glosses(opts.GlossLg)
		forms := make([]string, 0, len(e.Forms))
		for _, f := range e.Forms {
			if !contains(forms, f.Text) {
				forms = append(forms, f.Text)
			}
		}
		r := table.Row{
			"ID":             e.ID,
			"Language_ID":    d.languageID(opts, e),
			"Name":           e.Headword(),
			"Form":           strings.Join(forms, sep),
			"Meaning":        strings.Join(glosses, sep),
			"Parameter_ID":   strings.Join(meaningIDs(opts.Slugs, glosses), sep),
			"Type":           e.MorphType,
			"Part_Of_Speech": strings.Join(e.POS, sep),
		}
		for _, lang := range otherLanguages(e, opts.GlossLg) {
			r["Gloss_"+lang] = strings.Join(e.Glosses(lang), sep)
		}
		t.Append(r)
	}
	return t
}

// otherLanguages lists the gloss languages of e except glossLg, sorted.
func otherLanguages(e *Entry, glossLg string) []string {
	seen := map[string]bool{}
	for _, s := range e.Senses {
		for lang := range s.Glosses {
			if lang != glossLg {
				seen[lang] = true
			}
		}
	}
	out := make([]string, 0, len(seen))
	for lang := range seen {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// morphsTable has one row per distinct form of an entry, so variants can be
// matched like the citation form.
func (d *Dictionary) morphsTable(opts Options) *table.Table {
	sep := opts.Separator
	t := table.New(types.MorphsTable,
		"ID", "Language_ID", "Name", "Form", "Morpheme_ID", "Meaning", "Parameter_ID", "Type")
	for _, e := range d.Entries {
		glosses := e.Glosses(opts.GlossLg)
		meaning := strings.Join(glosses, sep)
		pids := strings.Join(meaningIDs(opts.Slugs, glosses), sep)
		var seen []string
		for _, f := range e.Forms {
			if contains(seen, f.Text) {
				continue
			}
			seen = append(seen, f.Text)
			morphType := f.MorphType
			if morphType == "" {
				morphType = e.MorphType
			}
			t.Append(table.Row{
				"ID":           fmt.Sprintf("%s-%d", e.ID, len(seen)-1),
				"Language_ID":  d.languageID(opts, e),
				"Name":         f.Text,
				"Form":         f.Text,
				"Morpheme_ID":  e.ID,
				"Meaning":      meaning,
				"Parameter_ID": pids,
				"Type":         morphType,
			})
		}
	}
	return t
}

func meaningsTable(slugs *slug.Allocator) *table.Table {
	t := table.New(types.SensesTable, "ID", "Name")
	for _, e := range slugs.Entries(nsMeanings) {
		t.Append(table.Row{"ID": e.ID, "Name": e.Input})
	}
	return t
}

func (d *Dictionary) senseRowsTable(opts Options) *table.Table {
	t := table.New(types.SensesTable, "ID", "Description", "Entry_ID", "Part_Of_Speech")
	for _, e := range d.Entries {
		for _, s := range e.Senses {
			desc := s.Glosses[opts.GlossLg]
			if len(desc) == 0 {
				for _, lang := range otherLanguages(e, opts.GlossLg) {
					if len(s.Glosses[lang]) > 0 {
						desc = s.Glosses[lang]
						break
					}
				}
			}
			t.Append(table.Row{
				"ID":             s.ID,
				"Description":    strings.Join(desc, opts.Separator),
				"Entry_ID":       e.ID,
				"Part_Of_Speech": s.POS,
			})
		}
	}
	return t
}

func (d *Dictionary) examplesTable(opts Options) *table.Table {
	t := table.New(types.ExamplesTable,
		"ID", "Language_ID", "Primary_Text", "Analyzed_Word", "Gloss", "Translated_Text", "Sense_ID")
	for _, e := range d.Entries {
		n := 0
		for _, s := range e.Senses {
			for _, ex := range s.Examples {
				id := opts.Slugs.Key(nsExamples,
					fmt.Sprintf("%s#%d", e.ID, n),
					fmt.Sprintf("%s-%d", e.Headword(), n))
				n++
				t.Append(table.Row{
					"ID":              id,
					"Language_ID":     d.languageID(opts, e),
					"Primary_Text":    ex.Text,
					"Analyzed_Word":   "",
					"Gloss":           "",
					"Translated_Text": ex.Translation,
					"Sense_ID":        s.ID,
				})
			}
		}
	}
	return t
}
