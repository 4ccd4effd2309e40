package flex

import (
	"strings"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/cldflex/internal/lexicon"
	"github.com/mesh-intelligence/cldflex/internal/xmltree"
	"github.com/mesh-intelligence/cldflex/pkg/types"
)

// wordNamespace seeds the name-based UUIDs of segmented words that carry no
// guid attribute.
var wordNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://pypi.org/project/cldflex/word"))

// phraseWords is the extraction result for one phrase.
type phraseWords struct {
	tokens []string     // surface tokens, punctuation included
	units  []types.Unit // analyzed slots in linear order
}

// extractWords walks the words of a phrase. Unanalyzed words only add their
// surface token; segmented words become a host unit plus one unit per clitic,
// proclitics before the host and enclitics after it.
func (s *Session) extractWords(words []*xmltree.Node, exampleID string) phraseWords {
	var out phraseWords
	for _, w := range words {
		if tok, ok := s.surfaceToken(w); ok {
			out.tokens = append(out.tokens, tok)
		}
		morphs := w.Path("morphemes", "morph")
		if len(morphs) == 0 {
			continue
		}
		out.units = append(out.units, s.analyzeWord(w, morphs, exampleID)...)
	}
	return out
}

func (s *Session) surfaceToken(w *xmltree.Node) (string, bool) {
	if it, ok := w.ItemAny("txt", s.keys.ObjLg); ok {
		return it.Value, true
	}
	if it, ok := w.ItemAny("punct", s.keys.ObjLg); ok {
		return it.Value, true
	}
	return "", false
}

func (s *Session) analyzeWord(w *xmltree.Node, morphNodes []*xmltree.Node, exampleID string) []types.Unit {
	pos, _ := w.Item("pos", s.keys.MsaLg)
	fields := map[string]string{}
	for _, it := range w.Items() {
		switch it.Type {
		case "txt", "punct", "pos":
			continue
		}
		if it.Present {
			fields[it.Key()] = it.Value
		}
	}

	var proclitics, enclitics []types.Unit
	var host []types.Morph
	for _, mn := range morphNodes {
		m := s.readMorph(mn, exampleID)
		switch {
		case !types.IsClitic(m.Type):
			host = append(host, m)
		case m.Type == types.MorphProclitic:
			proclitics = append(proclitics, s.cliticUnit(m, types.UnitProclitic, pos))
		default:
			enclitics = append(enclitics, s.cliticUnit(m, types.UnitEnclitic, pos))
		}
	}

	units := proclitics
	if len(host) > 0 {
		forms := make([]string, len(host))
		glosses := make([]string, len(host))
		for i, m := range host {
			forms[i] = m.Form
			glosses[i] = glossOrUnknown(m.Gloss)
		}
		u := types.Unit{
			Kind:   types.UnitWord,
			POS:    pos,
			Morphs: host,
			Fields: fields,
		}
		u.Form = joinMorphs(forms, u.MorphTypes())
		u.Gloss = joinMorphs(glosses, u.MorphTypes())
		u.ID = w.Attr("guid")
		if u.ID == "" {
			u.ID = uuid.NewSHA1(wordNamespace, []byte(u.Form+"\x00"+u.Gloss)).String()
		}
		units = append(units, u)
	}
	return append(units, enclitics...)
}

// readMorph collects the items of one morph. A missing form falls back to
// the citation form; a missing gloss is logged and left empty.
func (s *Session) readMorph(mn *xmltree.Node, exampleID string) types.Morph {
	m := types.Morph{Type: mn.Attr("type")}
	if m.Type == "" {
		m.Type = types.MorphRoot
	}
	if it, ok := mn.ItemAny("txt", s.keys.ObjLg); ok {
		m.Form = it.Value
	}
	if it, ok := mn.ItemAny("cf", s.keys.ObjLg); ok {
		m.Citation = it.Value
		if hn, ok := mn.ItemAny("hn", s.keys.ObjLg); ok {
			m.Citation += hn.Value
		}
	}
	if it, ok := mn.ItemAny("msa", s.keys.MsaLg, s.keys.GlossLg); ok {
		m.MSA = it.Value
	}
	m.Gloss, _ = mn.Item("gls", s.keys.GlossLg)
	m.Gloss = strings.TrimSpace(m.Gloss)

	if m.Form == "" {
		m.Form = m.Citation
	}
	if m.Form == "" {
		m.Form = types.UnknownGloss
	}
	if m.Gloss == "" {
		s.logger.Warn().
			Str("form", m.Form).
			Str("example", exampleID).
			Msgf("unglossed morpheme /%s/ in %s", m.Form, exampleID)
	}
	return m
}

// cliticUnit turns a clitic morph into its own unit. Clitics have no GUID in
// FLEx; their ID is derived from type, form and gloss, so identical clitics
// share one wordform record.
func (s *Session) cliticUnit(m types.Morph, kind types.UnitKind, hostPOS string) types.Unit {
	gloss := glossOrUnknown(m.Gloss)
	pos := m.MSA
	if pos == "" {
		pos = hostPOS
	}
	bare := lexicon.Bare(m.Form)
	trimmed := strings.Trim(gloss, lexicon.Delimiters)
	key := m.Type + "\x00" + bare + "\x00" + trimmed
	return types.Unit{
		ID:     s.slugs.Key(nsClitics, key, bare+"-"+trimmed),
		Kind:   kind,
		Form:   markClitic(m.Form, kind),
		Gloss:  markClitic(gloss, kind),
		POS:    pos,
		Morphs: []types.Morph{m},
	}
}

func glossOrUnknown(g string) string {
	if g == "" {
		return types.UnknownGloss
	}
	return g
}
