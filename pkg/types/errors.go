package types

import "errors"

// Standard errors returned by the conversion pipeline.
var (
	ErrConfiguration        = errors.New("configuration error")
	ErrNoInput              = errors.New("no input file provided")
	ErrMalformedDocument    = errors.New("malformed document")
	ErrLexiconFormat        = errors.New("unsupported lexicon format")
	ErrTierMismatch         = errors.New("analyzed word and gloss tiers differ in length")
	ErrValidation           = errors.New("dataset validation failed")
	ErrUnknownParameterMode = errors.New("unknown cldf parameters mode")
)

// ConfigurationError reports a configuration value that is missing and
// cannot be inferred. It matches ErrConfiguration with errors.Is.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string {
	return "configuration: " + e.Msg
}

// Is lets errors.Is(err, ErrConfiguration) succeed.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}
