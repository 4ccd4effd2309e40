// Package lift reads LIFT lexicon exports and turns them into morpheme,
// morph, sense and example tables.
package lift

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/cldflex/internal/xmltree"
	"github.com/mesh-intelligence/cldflex/pkg/types"
)

// entryNamespace seeds the name-based UUIDs of entries without guid or id.
var entryNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://pypi.org/project/cldflex/entry"))

// Form is one written form of an entry or variant.
type Form struct {
	Text      string
	Lang      string
	MorphType string // "" for the entry's own type
}

// Example is an illustrative sentence attached to a sense.
type Example struct {
	Text        string
	Lang        string
	Translation string
}

// Sense is one meaning of an entry.
type Sense struct {
	ID string
	// Glosses maps a language to its glosses in document order. Definitions
	// stand in for senses without glosses.
	Glosses  map[string][]string
	POS      string
	Examples []Example
}

// Entry is one lexicon entry with its variants merged in.
type Entry struct {
	ID        string
	Forms     []Form
	MorphType string
	Senses    []Sense
	POS       []string
}

// Headword returns the first form of the entry.
func (e *Entry) Headword() string {
	if len(e.Forms) == 0 {
		return ""
	}
	return e.Forms[0].Text
}

// Language returns the language of the lexical unit.
func (e *Entry) Language() string {
	if len(e.Forms) == 0 {
		return ""
	}
	return e.Forms[0].Lang
}

// Glosses returns the distinct glosses of all senses in lang.
func (e *Entry) Glosses(lang string) []string {
	var out []string
	seen := map[string]bool{}
	for _, s := range e.Senses {
		for _, g := range s.Glosses[lang] {
			if !seen[g] {
				seen[g] = true
				out = append(out, g)
			}
		}
	}
	return out
}

// Dictionary is a parsed LIFT document.
type Dictionary struct {
	Entries []*Entry
}

type variantLink struct {
	mainID string
	form   Form
}

// ParseFile reads a LIFT file.
func ParseFile(path string, logger zerolog.Logger) (*Dictionary, error) {
	doc, err := xmltree.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrMalformedDocument, err)
	}
	return Parse(doc, logger)
}

// Parse builds a dictionary from a parsed <lift> document. Entries that are
// variants of another entry (a _component-lexeme relation with a
// variant-type trait) contribute their form to the main entry. Entries
// without senses are skipped.
func Parse(doc *xmltree.Node, logger zerolog.Logger) (*Dictionary, error) {
	if doc.Name != "lift" {
		return nil, fmt.Errorf("%w: expected <lift>, found <%s>", types.ErrMalformedDocument, doc.Name)
	}
	d := &Dictionary{}
	byID := map[string]*Entry{}
	var links []variantLink

	for _, en := range doc.All("entry") {
		id := entryID(en)
		lexical := readForms(en.First("lexical-unit"))
		if len(lexical) == 0 {
			logger.Warn().Str("entry", id).Msg("entry has no lexical unit, skipping")
			continue
		}

		if mainID, ok := variantOf(en); ok {
			links = append(links, variantLink{mainID: mainID, form: lexical[0]})
			continue
		}

		e := &Entry{ID: id, Forms: lexical[:1], MorphType: trait(en, "morph-type")}
		for _, vn := range en.All("variant") {
			forms := readForms(vn)
			if len(forms) == 0 {
				continue
			}
			f := forms[0]
			f.MorphType = trait(vn, "morph-type")
			e.Forms = append(e.Forms, f)
		}
		for i, sn := range en.All("sense") {
			s, ok := readSense(sn)
			if !ok {
				continue
			}
			if s.ID == "" {
				s.ID = fmt.Sprintf("%s-%d", id, i)
			}
			e.Senses = append(e.Senses, s)
			if s.POS != "" && !contains(e.POS, s.POS) {
				e.POS = append(e.POS, s.POS)
			}
		}
		if len(e.Senses) == 0 {
			logger.Debug().Str("entry", id).Msg("entry has no senses, skipping")
			continue
		}
		if len(e.POS) > 1 {
			logger.Warn().
				Str("entry", id).
				Msgf("entry %s has multiple grammatical infos: %s", e.Headword(), strings.Join(e.POS, ", "))
		}
		d.Entries = append(d.Entries, e)
		byID[id] = e
	}

	for _, l := range links {
		main, ok := byID[l.mainID]
		if !ok {
			logger.Warn().Str("ref", l.mainID).Str("form", l.form.Text).Msg("variant refers to unknown entry")
			continue
		}
		main.Forms = append(main.Forms, l.form)
	}
	return d, nil
}

// entryID returns the guid of an entry, the guid part of its id, or a
// name-based UUID of its lexical unit.
func entryID(en *xmltree.Node) string {
	if g := en.Attr("guid"); g != "" {
		return g
	}
	if id := en.Attr("id"); id != "" {
		return refID(id)
	}
	return uuid.NewSHA1(entryNamespace, []byte(en.InnerText())).String()
}

// refID extracts the guid from a "<form>_<guid>" entry reference.
func refID(ref string) string {
	if i := strings.LastIndex(ref, "_"); i >= 0 {
		return ref[i+1:]
	}
	return ref
}

func variantOf(en *xmltree.Node) (string, bool) {
	for _, rel := range en.All("relation") {
		if rel.Attr("type") != "_component-lexeme" || rel.Attr("ref") == "" {
			continue
		}
		for _, t := range rel.All("trait") {
			if t.Attr("name") == "variant-type" {
				return refID(rel.Attr("ref")), true
			}
		}
	}
	return "", false
}

func trait(n *xmltree.Node, name string) string {
	for _, t := range n.All("trait") {
		if t.Attr("name") == name {
			return t.Attr("value")
		}
	}
	return ""
}

// readForms returns the <form><text> children of n.
func readForms(n *xmltree.Node) []Form {
	var out []Form
	for _, f := range n.All("form") {
		text := strings.TrimSpace(f.First("text").InnerText())
		if text == "" {
			continue
		}
		out = append(out, Form{Text: text, Lang: f.Attr("lang")})
	}
	return out
}

// readSense collects glosses (or definitions), grammatical info and
// examples. Senses with neither glosses nor definitions are ignored.
func readSense(sn *xmltree.Node) (Sense, bool) {
	s := Sense{ID: sn.Attr("id"), Glosses: map[string][]string{}}
	for _, g := range sn.All("gloss") {
		text := strings.TrimSpace(g.First("text").InnerText())
		if text != "" && !contains(s.Glosses[g.Attr("lang")], text) {
			s.Glosses[g.Attr("lang")] = append(s.Glosses[g.Attr("lang")], text)
		}
	}
	if len(s.Glosses) == 0 {
		for _, def := range sn.All("definition") {
			for _, f := range readForms(def) {
				if !contains(s.Glosses[f.Lang], f.Text) {
					s.Glosses[f.Lang] = append(s.Glosses[f.Lang], f.Text)
				}
			}
		}
	}
	if len(s.Glosses) == 0 {
		return Sense{}, false
	}
	if gi := sn.First("grammatical-info"); gi != nil {
		s.POS = gi.Attr("value")
	}
	for _, ex := range sn.All("example") {
		forms := readForms(ex)
		if len(forms) == 0 {
			continue
		}
		e := Example{Text: forms[0].Text, Lang: forms[0].Lang}
		for _, tr := range ex.All("translation") {
			if tf := readForms(tr); len(tf) > 0 {
				e.Translation = tf[0].Text
				break
			}
		}
		s.Examples = append(s.Examples, e)
	}
	return s, true
}

// LoadIDMap reads a YAML mapping of entry IDs to replacement IDs.
func LoadIDMap(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading id map: %w", err)
	}
	m := map[string]string{}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing id map %s: %w", path, err)
	}
	return m, nil
}

// ApplyIDMap replaces entry IDs listed in m.
func (d *Dictionary) ApplyIDMap(m map[string]string) {
	for _, e := range d.Entries {
		if to, ok := m[e.ID]; ok && to != "" {
			e.ID = to
		}
	}
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
