package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/cldflex/internal/cldf"
	"github.com/mesh-intelligence/cldflex/internal/lift"
	"github.com/mesh-intelligence/cldflex/internal/paths"
	"github.com/mesh-intelligence/cldflex/internal/slug"
	"github.com/mesh-intelligence/cldflex/pkg/types"
)

func newDictionaryCmd() *cobra.Command {
	return newLIFTCmd("dictionary", "Convert a LIFT lexicon to dictionary tables",
		"Convert a LIFT lexicon into morphemes, morphs, senses and examples tables.\n"+
			"With --cldf the dataset conforms to the CLDF Dictionary module.",
		lift.ModeDictionary, cldf.Dictionary)
}

func newWordlistCmd() *cobra.Command {
	return newLIFTCmd("wordlist", "Convert a LIFT lexicon to wordlist tables",
		"Convert a LIFT lexicon into morphemes, morphs and senses tables.\n"+
			"With --cldf the dataset conforms to the CLDF Wordlist module.",
		lift.ModeWordlist, cldf.Wordlist)
}

func newLIFTCmd(use, short, long string, mode lift.Mode, module cldf.Module) *cobra.Command {
	var out outputFlags
	cmd := &cobra.Command{
		Use:   use + " FILE",
		Short: short,
		Long:  long,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return types.ErrNoInput
			}
			return runLIFT(cmd, args[0], mode, module, out)
		},
	}
	addOutputFlags(cmd, &out)
	return cmd
}

func runLIFT(cmd *cobra.Command, input string, mode lift.Mode, module cldf.Module, out outputFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dict, err := readLIFT(input, cfg)
	if err != nil {
		return err
	}
	set := dict.Tables(liftOptions(cfg, slug.New()), mode)
	logger.Info().Int("entries", len(dict.Entries)).Msg("converted lexicon")

	dir, err := paths.ResolveOutputDir(out.outputDir, input, true)
	if err != nil {
		return fmt.Errorf("resolve output directory: %w", err)
	}
	s := sinks{cfg: cfg, flags: out, dir: dir, module: module}
	return s.write(cmd.Context(), cmd.OutOrStdout(), set, set, nil)
}

// readLIFT parses a LIFT file and applies the configured id_map.
func readLIFT(path string, cfg *types.Config) (*lift.Dictionary, error) {
	dict, err := lift.ParseFile(path, logger)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", path, err)
	}
	if cfg.IDMap != "" {
		m, err := lift.LoadIDMap(cfg.IDMap)
		if err != nil {
			return nil, &types.ConfigurationError{Msg: fmt.Sprintf("id_map: %s", err)}
		}
		dict.ApplyIDMap(m)
	}
	return dict, nil
}

func liftOptions(cfg *types.Config, slugs *slug.Allocator) lift.Options {
	return lift.Options{
		GlossLg:    cfg.GlossLg,
		LanguageID: cfg.OutputLanguageID(),
		Separator:  cfg.Separator,
		Slugs:      slugs,
	}
}
