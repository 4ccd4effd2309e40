// Config loading for the cldflex CLI.
package cli

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/cldflex/internal/paths"
	"github.com/mesh-intelligence/cldflex/pkg/types"
)

// Config keys with built-in defaults.
const (
	cfgKeySeparator      = "csv_cell_separator"
	cfgKeySentenceSlices = "sentence_slices"
	cfgKeyFormSlices     = "form_slices"
	cfgKeyParameters     = "cldf.parameters"
)

// loadConfig resolves the configuration file and decodes it with Viper.
// A missing default cldflex.yaml is not an error; the built-in defaults
// are used instead.
func loadConfig() (*types.Config, error) {
	path, err := paths.ResolveConfigFile(flags.configFile)
	if err != nil {
		return nil, &types.ConfigurationError{Msg: fmt.Sprintf("config file: %s", err)}
	}
	return readConfig(path)
}

// readConfig decodes the file at path. An empty path yields the defaults.
func readConfig(path string) (*types.Config, error) {
	defaults := types.DefaultConfig()

	v := viper.New()
	v.SetDefault(cfgKeySeparator, defaults.Separator)
	v.SetDefault(cfgKeySentenceSlices, defaults.SentenceSlices)
	v.SetDefault(cfgKeyFormSlices, defaults.FormSlices)
	v.SetDefault(cfgKeyParameters, defaults.CLDF.Parameters)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, &types.ConfigurationError{Msg: fmt.Sprintf("read config %s: %s", path, err)}
		}
		logger.Debug().Str("file", path).Msg("loaded configuration")
	}

	cfg := &types.Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, &types.ConfigurationError{Msg: fmt.Sprintf("decode config: %s", err)}
	}
	if cfg.Mappings == nil {
		cfg.Mappings = map[string]string{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}
