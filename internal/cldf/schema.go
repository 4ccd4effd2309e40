// Package cldf packages cldflex tables as a CLDF dataset: component CSVs,
// a CSVW metadata.json and a README.md. Datasets are validated before
// anything is written.
package cldf

const termsURI = "http://cldf.clld.org/v1.0/terms.rdf#"

// Module is the CLDF module a dataset conforms to.
type Module string

// Supported modules.
const (
	Generic    Module = "Generic"
	Wordlist   Module = "Wordlist"
	Dictionary Module = "Dictionary"
)

// Column is a CSVW column description.
type Column struct {
	Name        string `json:"name"`
	Required    bool   `json:"required,omitempty"`
	PropertyURL string `json:"propertyUrl,omitempty"`
	Datatype    string `json:"datatype"`
	Separator   string `json:"separator,omitempty"`
	Description string `json:"dc:description,omitempty"`
}

// Reference is the target of a foreign key.
type Reference struct {
	Resource        string   `json:"resource"`
	ColumnReference []string `json:"columnReference"`
}

// ForeignKey links a column to the ID column of another table.
type ForeignKey struct {
	ColumnReference []string  `json:"columnReference"`
	Reference       Reference `json:"reference"`
}

// Schema is a CSVW table schema.
type Schema struct {
	Columns     []Column     `json:"columns"`
	PrimaryKey  []string     `json:"primaryKey,omitempty"`
	ForeignKeys []ForeignKey `json:"foreignKeys,omitempty"`
}

// Component is one table of the dataset.
type Component struct {
	URL        string `json:"url"`
	ConformsTo string `json:"dc:conformsTo,omitempty"`
	Schema     Schema `json:"tableSchema"`

	name  string // cldflex table name
	label string // CLDF component name or table name for custom tables
}

// Provenance describes the tool that generated the dataset.
type Provenance struct {
	Title       string `json:"dc:title"`
	Description string `json:"dc:description,omitempty"`
	URL         string `json:"dc:url,omitempty"`
}

// Metadata is the content of metadata.json.
type Metadata struct {
	Context      []any        `json:"@context"`
	ConformsTo   string       `json:"dc:conformsTo"`
	ID           string       `json:"rdf:ID,omitempty"`
	Title        string       `json:"dc:title,omitempty"`
	Description  string       `json:"dc:description,omitempty"`
	License      string       `json:"dc:license,omitempty"`
	Citation     string       `json:"dc:bibliographicCitation,omitempty"`
	AccessURL    string       `json:"dcat:accessURL,omitempty"`
	Contributors []string     `json:"dc:contributor,omitempty"`
	GeneratedBy  []Provenance `json:"prov:wasGeneratedBy,omitempty"`
	Tables       []Component  `json:"tables"`
}

// componentSpec maps a cldflex table to a CLDF component.
type componentSpec struct {
	component string            // CLDF component, "" for a custom table
	url       string            // file name in the dataset
	required  []string          // columns that must be present and non-empty
	foreign   map[string]string // column -> referenced cldflex table
	multi     []string          // columns split at the cell separator
}

// components lists the table mapping per module. Tables of a set that are
// not listed are not part of the dataset.
var components = map[Module]map[string]componentSpec{
	Generic: {
		"examples": {
			component: "ExampleTable",
			url:       "examples.csv",
			required:  []string{"ID", "Language_ID", "Primary_Text"},
			foreign:   map[string]string{"Language_ID": "languages", "Text_ID": "texts"},
		},
		"wordforms": {
			url:      "wordforms.csv",
			required: []string{"ID", "Form"},
			foreign:  map[string]string{"Language_ID": "languages", "Parameter_ID": "senses"},
			multi:    []string{"Form", "Meaning", "Parameter_ID", "Part_Of_Speech"},
		},
		"exampleparts": {
			url:      "exampleparts.csv",
			required: []string{"ID", "Example_ID", "Wordform_ID", "Index"},
			foreign: map[string]string{
				"Example_ID":   "examples",
				"Wordform_ID":  "wordforms",
				"Parameter_ID": "senses",
			},
		},
		"wordformparts": {
			url:      "wordformparts.csv",
			required: []string{"ID", "Wordform_ID", "Morph_ID", "Index"},
			foreign:  map[string]string{"Wordform_ID": "wordforms", "Morph_ID": "morphs"},
		},
		"morphs": {
			url:      "morphs.csv",
			required: []string{"ID", "Form"},
			foreign:  map[string]string{"Language_ID": "languages", "Morpheme_ID": "morphemes"},
			multi:    []string{"Meaning", "Parameter_ID"},
		},
		"morphemes": {
			url:      "morphemes.csv",
			required: []string{"ID"},
			foreign:  map[string]string{"Language_ID": "languages"},
			multi:    []string{"Form", "Meaning", "Parameter_ID", "Part_Of_Speech"},
		},
		"texts": {
			url:      "texts.csv",
			required: []string{"ID"},
		},
		"senses": {
			component: "ParameterTable",
			url:       "parameters.csv",
			required:  []string{"ID", "Name"},
		},
		"languages": {
			component: "LanguageTable",
			url:       "languages.csv",
			required:  []string{"ID"},
		},
	},
	Wordlist: {
		"morphs": {
			component: "FormTable",
			url:       "forms.csv",
			required:  []string{"ID", "Language_ID", "Form", "Parameter_ID"},
			foreign: map[string]string{
				"Language_ID":  "languages",
				"Parameter_ID": "senses",
				"Morpheme_ID":  "morphemes",
			},
			multi: []string{"Meaning", "Parameter_ID"},
		},
		"morphemes": {
			url:      "morphemes.csv",
			required: []string{"ID"},
			foreign:  map[string]string{"Language_ID": "languages", "Parameter_ID": "senses"},
			multi:    []string{"Form", "Meaning", "Parameter_ID", "Part_Of_Speech"},
		},
		"senses": {
			component: "ParameterTable",
			url:       "parameters.csv",
			required:  []string{"ID", "Name"},
		},
		"languages": {
			component: "LanguageTable",
			url:       "languages.csv",
			required:  []string{"ID"},
		},
	},
	Dictionary: {
		"morphemes": {
			component: "EntryTable",
			url:       "entries.csv",
			required:  []string{"ID", "Language_ID", "Headword"},
			foreign:   map[string]string{"Language_ID": "languages"},
			multi:     []string{"Form", "Meaning", "Parameter_ID", "Part_Of_Speech"},
		},
		"senses": {
			component: "SenseTable",
			url:       "senses.csv",
			required:  []string{"ID", "Description", "Entry_ID"},
			foreign:   map[string]string{"Entry_ID": "morphemes"},
		},
		"examples": {
			component: "ExampleTable",
			url:       "examples.csv",
			required:  []string{"ID", "Language_ID", "Primary_Text"},
			foreign:   map[string]string{"Language_ID": "languages", "Sense_ID": "senses"},
		},
		"languages": {
			component: "LanguageTable",
			url:       "languages.csv",
			required:  []string{"ID"},
		},
	},
}

// moduleOrder fixes the order of tables in metadata.json.
var moduleOrder = []string{
	"examples", "wordforms", "exampleparts", "wordformparts",
	"morphs", "morphemes", "texts", "senses", "languages",
}

// properties maps well-known column names to CLDF ontology terms.
var properties = map[string]string{
	"ID":              "id",
	"Name":            "name",
	"Description":     "description",
	"Language_ID":     "languageReference",
	"Parameter_ID":    "parameterReference",
	"Example_ID":      "exampleReference",
	"Entry_ID":        "entryReference",
	"Primary_Text":    "primaryText",
	"Analyzed_Word":   "analyzedWord",
	"Gloss":           "gloss",
	"Translated_Text": "translatedText",
	"Form":            "form",
	"Headword":        "headword",
	"Part_Of_Speech":  "partOfSpeech",
	"Glottocode":      "glottocode",
	"ISO639P3code":    "iso639P3code",
	"Latitude":        "latitude",
	"Longitude":       "longitude",
	"Comment":         "comment",
}

// tierColumns are tab-separated in every module.
var tierColumns = map[string]bool{"Analyzed_Word": true, "Gloss": true}
