package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mesh-intelligence/cldflex/internal/cldf"
	"github.com/mesh-intelligence/cldflex/internal/paths"
	"github.com/mesh-intelligence/cldflex/internal/sqlite"
	"github.com/mesh-intelligence/cldflex/internal/table"
	"github.com/mesh-intelligence/cldflex/pkg/types"
)

// languagesFile is picked up from the working directory for CLDF output.
const languagesFile = "languages.csv"

// outputFlags are shared by the conversion commands.
type outputFlags struct {
	outputDir string
	cldf      bool
	sqlite    string
}

// sinks receives the converted tables.
type sinks struct {
	cfg    *types.Config
	flags  outputFlags
	dir    string
	module cldf.Module
}

// write emits the CSV tables of csvSet to the output directory, then the
// optional CLDF dataset and SQLite database built from fullSet.
func (s sinks) write(ctx context.Context, out io.Writer, csvSet, fullSet *table.Set, fileNames map[string]string) error {
	written, err := csvSet.WriteDir(s.dir, fileNames)
	if err != nil {
		return fmt.Errorf("write tables: %w", err)
	}
	for _, p := range written {
		logger.Info().Str("file", p).Msg("wrote table")
	}
	fmt.Fprintf(out, "Wrote %d tables to %s\n", len(written), s.dir)

	if s.flags.cldf {
		opts, err := s.cldfOptions()
		if err != nil {
			return err
		}
		dir := paths.CLDFDir(s.dir)
		_, files, err := cldf.Write(fullSet, dir, opts)
		if err != nil {
			return fmt.Errorf("write cldf dataset: %w", err)
		}
		fmt.Fprintf(out, "Wrote CLDF dataset (%d files) to %s\n", len(files), dir)
	}

	if s.flags.sqlite != "" {
		if err := sqlite.Export(ctx, s.flags.sqlite, fullSet); err != nil {
			return fmt.Errorf("export sqlite: %w", err)
		}
		fmt.Fprintf(out, "Exported SQLite database %s\n", s.flags.sqlite)
	}
	return nil
}

func (s sinks) cldfOptions() (cldf.Options, error) {
	languages, err := readLanguages()
	if err != nil {
		return cldf.Options{}, err
	}
	return cldf.Options{
		Module:       s.module,
		Parameters:   s.cfg.CLDF.Parameters,
		Separator:    s.cfg.Separator,
		Metadata:     s.cfg.CLDF.Metadata,
		Contributors: s.cfg.CLDF.Contributors,
		Languages:    languages,
		LanguageID:   s.cfg.OutputLanguageID(),
		Glottocode:   s.cfg.Glottocode,
		Version:      Version,
		Logger:       logger,
	}, nil
}

// readLanguages loads languages.csv from the working directory. A missing
// file yields nil.
func readLanguages() (*table.Table, error) {
	t, err := table.ReadCSVFile(languagesFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", languagesFile, err)
	}
	t.Name = types.LanguagesTable
	logger.Info().Str("file", languagesFile).Int("rows", t.Len()).Msg("using language table")
	return t, nil
}
