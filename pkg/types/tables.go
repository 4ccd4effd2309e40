package types

// Standard table names. The CSV file for a table is its name plus ".csv".
const (
	ExamplesTable      = "examples"
	WordformsTable     = "wordforms"
	ExamplePartsTable  = "exampleparts"
	WordformPartsTable = "wordformparts"
	TextsTable         = "texts"
	SensesTable        = "senses"
	MorphsTable        = "morphs"
	MorphemesTable     = "morphemes"
	LanguagesTable     = "languages"
)

// CorpusTableNames lists the tables produced from a flextext, in write order.
var CorpusTableNames = []string{
	ExamplesTable,
	WordformsTable,
	ExamplePartsTable,
	WordformPartsTable,
	TextsTable,
	SensesTable,
}

// LexiconTableNames lists the tables produced from a LIFT lexicon.
var LexiconTableNames = []string{
	MorphemesTable,
	MorphsTable,
	SensesTable,
	ExamplesTable,
}

// Morpheme types found in the type attribute of a flextext morph and in
// the morph-type trait of a LIFT entry.
const (
	MorphRoot      = "root"
	MorphPrefix    = "prefix"
	MorphSuffix    = "suffix"
	MorphInfix     = "infix"
	MorphProclitic = "proclitic"
	MorphEnclitic  = "enclitic"
)

// IsClitic reports whether a morph type is split out as its own record.
func IsClitic(morphType string) bool {
	return morphType == MorphProclitic || morphType == MorphEnclitic
}

// UnknownGloss stands in for a gloss that is absent from the source.
const UnknownGloss = "***"
