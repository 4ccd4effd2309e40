package flex

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mesh-intelligence/cldflex/internal/lexicon"
	"github.com/mesh-intelligence/cldflex/internal/xmltree"
	"github.com/mesh-intelligence/cldflex/pkg/types"
)

// Column names of the examples table.
const (
	colTranslatedText = "Translated_Text"
	colRecordNumber   = "Record_Number"
	colPhraseNumber   = "Phrase_Number"
	colPartOfSpeech   = "Part_Of_Speech"
)

// coreExampleColumns are filled from the phrase structure and cannot be
// the target of a field mapping.
var coreExampleColumns = map[string]bool{
	"ID":            true,
	"Language_ID":   true,
	"Primary_Text":  true,
	"Analyzed_Word": true,
	"Gloss":         true,
	"Text_ID":       true,
	colPhraseNumber: true,
}

// defaultMappings returns the built-in renames for raw phrase columns.
func (s *Session) defaultMappings() map[string]string {
	return map[string]string{
		"gls_" + s.keys.GlossLg:    colTranslatedText,
		"segnum_" + s.keys.GlossLg: colRecordNumber,
		"pos_" + s.keys.MsaLg:      colPartOfSpeech,
		"begin-time-offset":        "Start",
		"end-time-offset":          "End",
		"speaker":                  "Speaker",
	}
}

// rename returns the output name of a raw phrase column. Configured
// mappings override the defaults.
func (s *Session) rename(raw string) string {
	if to, ok := s.cfg.Mapping(raw); ok && to != "" {
		return to
	}
	if to, ok := s.defaultMappings()[raw]; ok {
		return to
	}
	return raw
}

// phraseFields collects the raw phrase-level columns: items keyed
// "<type>_<lang>", phrase attributes and the part-of-speech tier.
func (s *Session) phraseFields(ph *xmltree.Node, ex types.Example) map[string]string {
	raw := map[string]string{}
	for _, it := range ph.Items() {
		if !it.Present {
			continue
		}
		if prev, ok := raw[it.Key()]; ok {
			raw[it.Key()] = prev + ", " + it.Value
			continue
		}
		raw[it.Key()] = it.Value
	}
	for _, attr := range []string{"begin-time-offset", "end-time-offset", "speaker", "guid"} {
		if v := ph.Attr(attr); v != "" {
			raw[attr] = v
		}
	}
	if len(ex.PartOfSpeech) > 0 {
		raw["pos_"+s.keys.MsaLg] = strings.Join(ex.PartOfSpeech, "\t")
	}
	return raw
}

// applyFields renames raw columns and moves the ones with a dedicated
// example field out of the extension map.
func (s *Session) applyFields(ex *types.Example, raw map[string]string) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fields := map[string]string{}
	for _, k := range keys {
		name := s.rename(k)
		if coreExampleColumns[name] {
			if !s.collisions[k] {
				s.collisions[k] = true
				s.logger.Warn().
					Str("field", k).
					Str("column", name).
					Str("example", ex.ID).
					Msgf("%s is mapped onto the core column %s, skipping", k, name)
			}
			continue
		}
		if _, ok := fields[name]; ok {
			continue
		}
		fields[name] = raw[k]
	}
	if v, ok := fields[colTranslatedText]; ok {
		ex.TranslatedText = trimQuotes(v)
		delete(fields, colTranslatedText)
	}
	if v, ok := fields[colRecordNumber]; ok {
		ex.RecordNumber, ex.PhraseNumber = splitRecordNumber(v)
		delete(fields, colRecordNumber)
	}
	ex.Fields = fields
}

// splitRecordNumber splits "3.2" into record "3" and phrase "2".
func splitRecordNumber(v string) (record, phrase string) {
	if i := strings.Index(v, "."); i >= 0 {
		return v[:i], v[i+1:]
	}
	return v, ""
}

// collectParts folds the units of an example into wordforms and emits the
// example and wordform parts.
func (s *Session) collectParts(ex types.Example) {
	for i, u := range ex.Units {
		wf := s.wordform(u)
		meaning := u.Gloss
		pid := s.slugs.ID(nsMeanings, meaning)
		wf.AddMeaning(meaning, pid)

		if s.cfg.SentenceSlices {
			s.exampleParts = append(s.exampleParts, types.ExamplePart{
				ID:          fmt.Sprintf("%s-%d", ex.ID, i),
				ExampleID:   ex.ID,
				WordformID:  u.ID,
				Index:       i,
				Meaning:     meaning,
				ParameterID: pid,
			})
		}
		if s.cfg.FormSlices && s.matcher != nil {
			s.formParts(wf, u, ex.ID)
		}
	}
}

// wordform returns the record for a unit, creating it on first sight.
func (s *Session) wordform(u types.Unit) *types.Wordform {
	wf, ok := s.wordformByID[u.ID]
	if !ok {
		wf = &types.Wordform{
			ID:         u.ID,
			LanguageID: s.keys.LanguageID,
			Kind:       u.Kind,
			Fields:     map[string]string{},
		}
		s.wordformByID[u.ID] = wf
		s.wordforms = append(s.wordforms, wf)
	}
	wf.AddForm(lexicon.Bare(u.Form))
	wf.AddPOS(u.POS)
	for k, v := range u.Fields {
		if _, ok := wf.Fields[k]; !ok {
			wf.Fields[k] = v
		}
	}
	return wf
}

// formParts links each glossed morph of a unit to its lexicon entry. Parts
// are generated once per wordform and meaning.
func (s *Session) formParts(wf *types.Wordform, u types.Unit, exampleID string) {
	key := u.ID + "\x00" + u.Gloss
	if s.partsDone[key] {
		return
	}
	s.partsDone[key] = true

	k := wf.MeaningIndex(u.Gloss)
	for j, m := range u.Morphs {
		if m.Gloss == "" {
			continue
		}
		bare := lexicon.Bare(m.Form)
		gloss := strings.Trim(m.Gloss, lexicon.Delimiters)
		match, ok := s.matcher.Match(bare, gloss, m.Type, exampleID)
		if !ok {
			continue
		}
		sense := match.SenseID
		if sense == "" {
			sense = s.slugs.ID(nsMeanings, gloss)
		}
		id := fmt.Sprintf("%s-%d", u.ID, j)
		if k > 0 {
			id = fmt.Sprintf("%s-%d-%d", u.ID, k, j)
		}
		s.wordformParts = append(s.wordformParts, types.WordformPart{
			ID:              id,
			WordformID:      u.ID,
			MorphID:         match.EntryID,
			Index:           j,
			FormMeaning:     u.Gloss,
			MorphemeMeaning: gloss,
			ParameterID:     sense,
		})
	}
}
