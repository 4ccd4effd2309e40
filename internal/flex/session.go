// Package flex converts FLEx interlinear text exports (flextext) into
// cross-referenced tables: examples, wordforms, example and wordform parts,
// texts and senses.
package flex

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/cldflex/internal/lexicon"
	"github.com/mesh-intelligence/cldflex/internal/slug"
	"github.com/mesh-intelligence/cldflex/internal/xmltree"
	"github.com/mesh-intelligence/cldflex/pkg/types"
)

// Identifier namespaces.
const (
	nsTexts    = "texts"
	nsExamples = "examples"
	nsMeanings = "meanings"
	nsClitics  = "clitics"
)

const missingTextID = "missing-text-id"
const missingTitle = "_MISSING_"

// Options configures a Session.
type Options struct {
	// Lexicon enables wordform parts. Nil means no lexicon.
	Lexicon *lexicon.Lexicon
	// Logger receives conversion warnings. The zero value discards them.
	Logger zerolog.Logger
	// Slugs is the identifier allocator; a fresh one is created when nil.
	// Sharing one with the LIFT converter keeps sense IDs consistent.
	Slugs *slug.Allocator
}

// Session is one conversion run. It owns every cache the conversion uses,
// so two sessions never influence each other. A Session is not safe for
// concurrent use.
type Session struct {
	cfg     *types.Config
	logger  zerolog.Logger
	slugs   *slug.Allocator
	matcher *lexicon.Matcher
	keys    Keys

	texts         []types.Text
	examples      []types.Example
	wordforms     []*types.Wordform
	wordformByID  map[string]*types.Wordform
	exampleParts  []types.ExamplePart
	wordformParts []types.WordformPart
	partsDone     map[string]bool
	// collisions records mapped fields already warned about.
	collisions map[string]bool
}

// NewSession prepares a conversion run. cfg is resolved in place by the
// first call to Convert.
func NewSession(cfg *types.Config, opts Options) *Session {
	if cfg == nil {
		cfg = types.DefaultConfig()
	}
	if cfg.Separator == "" {
		cfg.Separator = types.DefaultSeparator
	}
	s := &Session{
		cfg:          cfg,
		logger:       opts.Logger,
		slugs:        opts.Slugs,
		wordformByID: map[string]*types.Wordform{},
		partsDone:    map[string]bool{},
		collisions:   map[string]bool{},
	}
	if s.slugs == nil {
		s.slugs = slug.New()
	}
	if opts.Lexicon != nil && opts.Lexicon.Len() > 0 {
		s.matcher = lexicon.NewMatcher(opts.Lexicon, opts.Logger)
	}
	return s
}

// Keys returns the language keys resolved by the last conversion.
func (s *Session) Keys() Keys {
	return s.keys
}

// ConvertFile parses and converts one flextext file.
func (s *Session) ConvertFile(path string) error {
	doc, err := xmltree.ParseFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", types.ErrMalformedDocument, err)
	}
	return s.Convert(doc)
}

// Convert adds the texts of doc to the session. Only configuration errors
// and structurally unusable documents are returned; problems with single
// morphs, words or phrases are logged and skipped.
func (s *Session) Convert(doc *xmltree.Node) error {
	texts := doc.All("interlinear-text")
	if doc.Name == "interlinear-text" {
		texts = []*xmltree.Node{doc}
	}
	if len(texts) == 0 {
		return fmt.Errorf("%w: no interlinear-text element in <%s>", types.ErrMalformedDocument, doc.Name)
	}
	keys, err := ResolveKeys(doc, s.cfg, s.logger)
	if err != nil {
		return fmt.Errorf("resolve language keys: %w", err)
	}
	s.keys = keys

	for _, tn := range texts {
		text := s.readText(tn)
		s.texts = append(s.texts, text)
		for pi, para := range tn.Path("paragraphs", "paragraph") {
			for qi, phrase := range para.Path("phrases", "phrase") {
				s.convertPhrase(&text, phrase, pi, qi)
			}
		}
	}
	return nil
}

// readText builds the text record from the text-level items.
func (s *Session) readText(n *xmltree.Node) types.Text {
	text := types.Text{Items: map[string]string{}}
	for _, it := range n.Items() {
		if !it.Present {
			continue
		}
		key := it.Key()
		if prev, ok := text.Items[key]; ok {
			text.Items[key] = prev + ", " + it.Value
			continue
		}
		text.Items[key] = it.Value
		text.Fields = append(text.Fields, key)
	}

	abbr := ""
	if it, ok := n.ItemAny("title-abbreviation", s.keys.GlossLg, s.keys.ObjLg); ok {
		abbr = it.Value
	}
	source := abbr
	if source == "" {
		s.logger.Warn().Int("text", len(s.texts)).Msg("text has no title-abbreviation")
		source = missingTextID
	}
	text.ID = s.slugs.Key(nsTexts, fmt.Sprintf("%s#%d", abbr, len(s.texts)), source)

	text.Title = missingTitle
	if it, ok := n.ItemAny("title", s.keys.GlossLg, s.keys.ObjLg); ok {
		text.Title = it.Value
	}
	return text
}

// convertPhrase turns one phrase into an example and its parts.
func (s *Session) convertPhrase(text *types.Text, ph *xmltree.Node, para, idx int) {
	segnum := ""
	if it, ok := ph.ItemAny("segnum", s.keys.GlossLg); ok {
		segnum = strings.TrimSpace(it.Value)
	}
	number := segnum
	if number == "" {
		number = fmt.Sprintf("%d-%d", para, idx)
	}
	exampleID := s.slugs.Key(nsExamples,
		fmt.Sprintf("%s#%d#%d", text.ID, para, idx),
		text.ID+"-"+number)

	words := ph.Path("words", "word")
	if len(words) == 0 {
		s.logger.Warn().Str("example", exampleID).Msg("phrase has no words, skipping")
		return
	}
	pw := s.extractWords(words, exampleID)
	if len(pw.units) == 0 {
		s.logger.Warn().Str("example", exampleID).Msgf("%s has no glossing", exampleID)
	}

	ex := types.Example{
		ID:          exampleID,
		TextID:      text.ID,
		LanguageID:  s.keys.LanguageID,
		PrimaryText: composeSurface(pw.tokens),
		Units:       pw.units,
	}
	for _, u := range pw.units {
		ex.AnalyzedWord = append(ex.AnalyzedWord, u.Form)
		ex.Gloss = append(ex.Gloss, u.Gloss)
		pos := u.POS
		if pos == "" {
			pos = "?"
		}
		ex.PartOfSpeech = append(ex.PartOfSpeech, pos)
	}
	if err := checkTiers(ex); err != nil {
		s.logger.Warn().Str("example", exampleID).Err(err).Msg("skipping phrase")
		return
	}

	s.applyFields(&ex, s.phraseFields(ph, ex))
	s.examples = append(s.examples, ex)
	s.collectParts(ex)
}

// checkTiers verifies that the analyzed-word and gloss tiers have one
// element per analyzed unit once serialized.
func checkTiers(ex types.Example) error {
	words := strings.Split(strings.Join(ex.AnalyzedWord, "\t"), "\t")
	glosses := strings.Split(strings.Join(ex.Gloss, "\t"), "\t")
	if len(words) != len(glosses) {
		return fmt.Errorf("%w: %d analyzed words, %d glosses", types.ErrTierMismatch, len(words), len(glosses))
	}
	return nil
}
