// Conversion configuration for cldflex.
package types

import "strings"

// DefaultSeparator separates the values of multi-valued CSV cells.
const DefaultSeparator = "; "

// DefaultGlossLanguage is used when no gloss_lg is configured.
const DefaultGlossLanguage = "en"

// Parameter modes for the CLDF writer.
const (
	ParametersMulti  = "multi"
	ParametersSingle = "single"
	ParametersNone   = "none"
)

// Config holds the options recognized in cldflex.yaml. Field names follow the
// configuration keys; mapstructure tags are used by the viper loader.
type Config struct {
	GlossLg    string `mapstructure:"gloss_lg" yaml:"gloss_lg,omitempty"`
	ObjLg      string `mapstructure:"obj_lg" yaml:"obj_lg,omitempty"`
	MsaLg      string `mapstructure:"msa_lg" yaml:"msa_lg,omitempty"`
	LanguageID string `mapstructure:"language_id" yaml:"Language_ID,omitempty"`
	LangID     string `mapstructure:"lang_id" yaml:"lang_id,omitempty"`
	Glottocode string `mapstructure:"glottocode" yaml:"glottocode,omitempty"`

	// Mappings renames phrase-level columns, e.g. gls_en: Translated_Text.
	Mappings map[string]string `mapstructure:"mappings" yaml:"mappings,omitempty"`
	// Delete and Drop both list columns to omit from the examples table.
	Delete []string `mapstructure:"delete" yaml:"delete,omitempty"`
	Drop   []string `mapstructure:"drop" yaml:"drop,omitempty"`

	Separator      string `mapstructure:"csv_cell_separator" yaml:"csv_cell_separator,omitempty"`
	SentenceSlices bool   `mapstructure:"sentence_slices" yaml:"sentence_slices"`
	FormSlices     bool   `mapstructure:"form_slices" yaml:"form_slices"`
	OutputFile     string `mapstructure:"output_file" yaml:"output_file,omitempty"`
	IDMap          string `mapstructure:"id_map" yaml:"id_map,omitempty"`

	CLDF CLDFConfig `mapstructure:"cldf" yaml:"cldf,omitempty"`
}

// CLDFConfig holds the nested cldf settings.
type CLDFConfig struct {
	Metadata     map[string]string `mapstructure:"metadata" yaml:"metadata,omitempty"`
	Contributors []string          `mapstructure:"contributors" yaml:"contributors,omitempty"`
	Parameters   string            `mapstructure:"parameters" yaml:"parameters,omitempty"`
}

// DefaultConfig returns a Config with the built-in defaults. Language keys
// are left empty so that they can be inferred from the document.
func DefaultConfig() *Config {
	return &Config{
		Separator:      DefaultSeparator,
		SentenceSlices: true,
		FormSlices:     true,
		Mappings:       map[string]string{},
		CLDF:           CLDFConfig{Parameters: ParametersMulti},
	}
}

// Validate checks option values that cannot be repaired by inference.
func (c *Config) Validate() error {
	if c.Separator == "" {
		return &ConfigurationError{Msg: "csv_cell_separator must not be empty"}
	}
	switch c.CLDF.Parameters {
	case "", ParametersMulti, ParametersSingle, ParametersNone:
	default:
		return ErrUnknownParameterMode
	}
	return nil
}

// OutputLanguageID returns the configured Language_ID, falling back to the
// lang_id alias. It returns "" when neither is set.
func (c *Config) OutputLanguageID() string {
	if c.LanguageID != "" {
		return c.LanguageID
	}
	return c.LangID
}

// Dropped reports whether column is listed under delete or drop.
// Keys are compared case-insensitively because viper folds map and list keys.
func (c *Config) Dropped(column string) bool {
	for _, list := range [][]string{c.Delete, c.Drop} {
		for _, d := range list {
			if strings.EqualFold(d, column) {
				return true
			}
		}
	}
	return false
}

// Mapping returns the configured rename target for column, if any.
func (c *Config) Mapping(column string) (string, bool) {
	if to, ok := c.Mappings[column]; ok {
		return to, true
	}
	for from, to := range c.Mappings {
		if strings.EqualFold(from, column) {
			return to, true
		}
	}
	return "", false
}
