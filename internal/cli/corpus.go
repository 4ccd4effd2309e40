package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/cldflex/internal/cldf"
	"github.com/mesh-intelligence/cldflex/internal/flex"
	"github.com/mesh-intelligence/cldflex/internal/lexicon"
	"github.com/mesh-intelligence/cldflex/internal/lift"
	"github.com/mesh-intelligence/cldflex/internal/paths"
	"github.com/mesh-intelligence/cldflex/internal/slug"
	"github.com/mesh-intelligence/cldflex/internal/table"
	"github.com/mesh-intelligence/cldflex/pkg/types"
)

func newCorpusCmd() *cobra.Command {
	var (
		out         outputFlags
		lexiconFile string
	)
	cmd := &cobra.Command{
		Use:   "corpus FILE",
		Short: "Convert a .flextext export to CSV tables",
		Long: "Convert a FLEx interlinear text export into examples, wordforms,\n" +
			"slices, texts and senses tables. A lexicon (.csv morph table or .lift)\n" +
			"links morphs in the text to lexicon entries.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return types.ErrNoInput
			}
			return runCorpus(cmd, args[0], lexiconFile, out)
		},
	}
	cmd.Flags().StringVarP(&lexiconFile, "lexicon", "l", "", "lexicon file (.csv morphs table or .lift)")
	addOutputFlags(cmd, &out)
	return cmd
}

func addOutputFlags(cmd *cobra.Command, out *outputFlags) {
	cmd.Flags().StringVarP(&out.outputDir, "output", "o", "", "output directory")
	cmd.Flags().BoolVarP(&out.cldf, "cldf", "d", false, "also write a CLDF dataset to <output>/cldf")
	cmd.Flags().StringVar(&out.sqlite, "sqlite", "", "also export all tables to this SQLite database")
}

func runCorpus(cmd *cobra.Command, input, lexiconFile string, out outputFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	slugs := slug.New()

	lex, lexTables, err := loadLexicon(lexiconFile, cfg, slugs)
	if err != nil {
		logger.Error().Err(err).Str("file", lexiconFile).Msg("cannot use lexicon, converting without form slices")
		lex, lexTables = nil, nil
	}

	session := flex.NewSession(cfg, flex.Options{Lexicon: lex, Logger: logger, Slugs: slugs})
	if err := session.ConvertFile(input); err != nil {
		return fmt.Errorf("convert %s: %w", input, err)
	}
	logger.Info().Int("examples", len(session.Examples())).Int("wordforms", len(session.Wordforms())).Msg("converted corpus")

	csvSet := session.Tables()
	fullSet := &table.Set{}
	for _, t := range csvSet.Tables() {
		fullSet.Add(t)
	}
	for _, t := range lexTables {
		fullSet.Add(t)
	}

	dir, err := paths.ResolveOutputDir(out.outputDir, input, false)
	if err != nil {
		return fmt.Errorf("resolve output directory: %w", err)
	}
	var fileNames map[string]string
	if cfg.OutputFile != "" {
		fileNames = map[string]string{types.ExamplesTable: cfg.OutputFile}
	}
	s := sinks{cfg: cfg, flags: out, dir: dir, module: cldf.Generic}
	return s.write(cmd.Context(), cmd.OutOrStdout(), csvSet, fullSet, fileNames)
}

// loadLexicon reads a morph lexicon from a CSV morphs table or a LIFT file.
// It also returns the lexicon tables so that the CLDF dataset can resolve
// morph references. An empty path yields no lexicon. Callers treat an error
// as an absent lexicon.
func loadLexicon(path string, cfg *types.Config, slugs *slug.Allocator) (*lexicon.Lexicon, []*table.Table, error) {
	if path == "" {
		return nil, nil, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		t, err := table.ReadCSVFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("load lexicon: %w", err)
		}
		t.Name = types.MorphsTable
		lex, err := lexicon.FromTable(t, cfg.Separator)
		if err != nil {
			return nil, nil, err
		}
		logger.Info().Str("file", path).Int("entries", lex.Len()).Msg("loaded lexicon")
		return lex, []*table.Table{t}, nil

	case ".lift":
		dict, err := readLIFT(path, cfg)
		if err != nil {
			return nil, nil, err
		}
		opts := liftOptions(cfg, slugs)
		lex, err := dict.Lexicon(opts)
		if err != nil {
			return nil, nil, err
		}
		set := dict.Tables(opts, lift.ModeWordlist)
		logger.Info().Str("file", path).Int("entries", lex.Len()).Msg("loaded lexicon")
		return lex, []*table.Table{set.Get(types.MorphsTable), set.Get(types.MorphemesTable)}, nil
	}
	return nil, nil, fmt.Errorf("%w: %s", types.ErrLexiconFormat, path)
}
