package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/cldflex/internal/paths"
	"github.com/mesh-intelligence/cldflex/pkg/types"
)

// configHeader precedes the generated cldflex.yaml.
const configHeader = `# cldflex configuration
#
# gloss_lg, obj_lg and msa_lg are inferred from the input when omitted.
# mappings renames phrase-level columns, e.g.
#   mappings:
#     gls_en: Translated_Text
# delete (or drop) lists example columns to omit.
# cldf.parameters is one of multi, single, none.

`

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default cldflex.yaml",
		Long:  "Write a default cldflex.yaml to the --conf path or the working directory.\nAn existing file is left untouched.",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	path := flags.configFile
	if path == "" {
		path = paths.DefaultConfigFile
	}
	created, err := writeConfigIfMissing(path)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if created {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s already exists\n", path)
	}
	return nil
}

// writeConfigIfMissing creates a configuration file with default values if
// the file does not exist. If it already exists, the function returns false
// and nil (idempotent).
func writeConfigIfMissing(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	cfg := types.DefaultConfig()
	cfg.CLDF.Metadata = map[string]string{"title": "", "description": "", "license": ""}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	return true, os.WriteFile(path, append([]byte(configHeader), data...), 0o644)
}
