package flex

import (
	"strconv"
	"strings"

	"github.com/mesh-intelligence/cldflex/internal/table"
	"github.com/mesh-intelligence/cldflex/pkg/types"
)

// Examples returns the converted examples in document order.
func (s *Session) Examples() []types.Example {
	return s.examples
}

// Wordforms returns the wordform records in first-seen order.
func (s *Session) Wordforms() []types.Wordform {
	out := make([]types.Wordform, len(s.wordforms))
	for i, wf := range s.wordforms {
		out[i] = *wf
	}
	return out
}

// Tables assembles the output tables from everything converted so far.
// Disabled or empty part tables are left out.
func (s *Session) Tables() *table.Set {
	set := &table.Set{}
	set.Add(s.examplesTable())
	set.Add(s.wordformsTable())
	if s.cfg.SentenceSlices {
		set.Add(s.examplePartsTable())
	}
	if s.cfg.FormSlices && s.matcher != nil {
		set.Add(s.wordformPartsTable())
	}
	set.Add(s.textsTable())
	set.Add(s.sensesTable())
	return set
}

func (s *Session) examplesTable() *table.Table {
	t := table.New(types.ExamplesTable,
		"ID", "Language_ID", "Primary_Text", "Analyzed_Word", "Gloss",
		colTranslatedText, "Text_ID", colRecordNumber, colPhraseNumber)
	for _, ex := range s.examples {
		r := table.Row{
			"ID":              ex.ID,
			"Language_ID":     ex.LanguageID,
			"Primary_Text":    ex.PrimaryText,
			"Analyzed_Word":   strings.Join(ex.AnalyzedWord, "\t"),
			"Gloss":           strings.Join(ex.Gloss, "\t"),
			colTranslatedText: ex.TranslatedText,
			"Text_ID":         ex.TextID,
			colRecordNumber:   ex.RecordNumber,
			colPhraseNumber:   ex.PhraseNumber,
		}
		for k, v := range ex.Fields {
			r[k] = v
		}
		t.Append(r)
	}
	var drop []string
	for _, c := range t.Columns {
		if c != "ID" && s.cfg.Dropped(c) {
			drop = append(drop, c)
		}
	}
	t.Drop(drop...)
	return t
}

func (s *Session) wordformsTable() *table.Table {
	sep := s.cfg.Separator
	t := table.New(types.WordformsTable,
		"ID", "Language_ID", "Form", "Meaning", "Parameter_ID", colPartOfSpeech)
	for _, wf := range s.wordforms {
		r := table.Row{
			"ID":            wf.ID,
			"Language_ID":   wf.LanguageID,
			"Form":          strings.Join(wf.Forms, sep),
			"Meaning":       strings.Join(wf.Meanings, sep),
			"Parameter_ID":  strings.Join(wf.ParameterIDs, sep),
			colPartOfSpeech: strings.Join(wf.POS, sep),
		}
		for k, v := range wf.Fields {
			r[k] = v
		}
		t.Append(r)
	}
	return t
}

func (s *Session) examplePartsTable() *table.Table {
	t := table.New(types.ExamplePartsTable,
		"ID", "Example_ID", "Wordform_ID", "Index", "Form_Meaning", "Parameter_ID")
	for _, p := range s.exampleParts {
		t.Append(table.Row{
			"ID":           p.ID,
			"Example_ID":   p.ExampleID,
			"Wordform_ID":  p.WordformID,
			"Index":        strconv.Itoa(p.Index),
			"Form_Meaning": p.Meaning,
			"Parameter_ID": p.ParameterID,
		})
	}
	return t
}

func (s *Session) wordformPartsTable() *table.Table {
	t := table.New(types.WordformPartsTable,
		"ID", "Wordform_ID", "Morph_ID", "Index", "Form_Meaning", "Morpheme_Meaning", "Parameter_ID")
	for _, p := range s.wordformParts {
		t.Append(table.Row{
			"ID":               p.ID,
			"Wordform_ID":      p.WordformID,
			"Morph_ID":         p.MorphID,
			"Index":            strconv.Itoa(p.Index),
			"Form_Meaning":     p.FormMeaning,
			"Morpheme_Meaning": p.MorphemeMeaning,
			"Parameter_ID":     p.ParameterID,
		})
	}
	return t
}

func (s *Session) textsTable() *table.Table {
	t := table.New(types.TextsTable, "ID", "Title")
	for _, text := range s.texts {
		for _, f := range text.Fields {
			t.AddColumn(f)
		}
	}
	for _, text := range s.texts {
		r := table.Row{"ID": text.ID, "Title": text.Title}
		for k, v := range text.Items {
			r[k] = v
		}
		t.Append(r)
	}
	return t
}

func (s *Session) sensesTable() *table.Table {
	t := table.New(types.SensesTable, "ID", "Name")
	for _, e := range s.slugs.Entries(nsMeanings) {
		t.Append(table.Row{"ID": e.ID, "Name": e.Input})
	}
	return t
}
