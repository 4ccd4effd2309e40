package types

// Text is one interlinear-text section of a flextext document.
type Text struct {
	ID    string
	Title string
	// Items holds text-level items keyed by "<type>_<lang>", e.g. title_en.
	Items  map[string]string
	Fields []string // item keys in document order
}

// Morph is one constituent of an analyzed word.
type Morph struct {
	Type     string // root, prefix, suffix, infix, proclitic, enclitic, ...
	Form     string // object-language form, delimiters included
	Gloss    string // gloss-language gloss; "" when unglossed
	Citation string // cf item, homograph number appended
	MSA      string // morphosyntactic analysis
}

// UnitKind distinguishes analyzed host words from split-out clitics.
type UnitKind int

const (
	UnitWord UnitKind = iota
	UnitProclitic
	UnitEnclitic
)

// Unit is one analyzed slot of a phrase: a segmented host word or a clitic.
// Units are the elements of the Analyzed_Word and Gloss tiers.
type Unit struct {
	ID     string // word GUID or derived clitic ID
	Kind   UnitKind
	Form   string // segmented form, e.g. "apa-ne"
	Gloss  string // repaired gloss, e.g. "go-PST"
	POS    string
	Morphs []Morph
	// Fields holds word-level extension items keyed by "<type>_<lang>".
	Fields map[string]string
}

// MorphTypes returns the ordered morpheme-type sequence of the unit.
func (u Unit) MorphTypes() []string {
	out := make([]string, len(u.Morphs))
	for i, m := range u.Morphs {
		out[i] = m.Type
	}
	return out
}

// Example is one phrase-level record of the examples table.
type Example struct {
	ID             string
	TextID         string
	LanguageID     string
	PrimaryText    string
	AnalyzedWord   []string
	Gloss          []string
	PartOfSpeech   []string
	TranslatedText string
	RecordNumber   string
	PhraseNumber   string
	Units          []Unit
	// Fields holds phrase-level items and attributes after renaming.
	Fields map[string]string
}

// Wordform is the type-level record for all occurrences of one word GUID or
// one clitic ID.
type Wordform struct {
	ID           string
	LanguageID   string
	Kind         UnitKind
	Forms        []string
	Meanings     []string
	ParameterIDs []string
	POS          []string
	Fields       map[string]string
}

// AddMeaning appends meaning with its sense ID unless already present.
// It reports whether the meaning was new.
func (w *Wordform) AddMeaning(meaning, parameterID string) bool {
	for _, m := range w.Meanings {
		if m == meaning {
			return false
		}
	}
	w.Meanings = append(w.Meanings, meaning)
	w.ParameterIDs = append(w.ParameterIDs, parameterID)
	return true
}

// AddForm appends form unless already present.
func (w *Wordform) AddForm(form string) {
	w.Forms = appendUnique(w.Forms, form)
}

// AddPOS appends a part of speech unless empty or already present.
func (w *Wordform) AddPOS(pos string) {
	if pos == "" {
		return
	}
	w.POS = appendUnique(w.POS, pos)
}

// MeaningIndex returns the position of meaning in Meanings, or -1.
func (w *Wordform) MeaningIndex(meaning string) int {
	for i, m := range w.Meanings {
		if m == meaning {
			return i
		}
	}
	return -1
}

func appendUnique(list []string, v string) []string {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}

// ExamplePart links an example to the wordform at one position.
type ExamplePart struct {
	ID          string
	ExampleID   string
	WordformID  string
	Index       int
	Meaning     string
	ParameterID string
}

// WordformPart links a wordform to the lexicon morph at one position.
type WordformPart struct {
	ID              string
	WordformID      string
	MorphID         string
	Index           int
	FormMeaning     string
	MorphemeMeaning string
	ParameterID     string
}
