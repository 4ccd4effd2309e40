// Package cli implements the cldflex command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/cldflex/internal/logging"
	"github.com/mesh-intelligence/cldflex/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configFile string
	logLevel   string
	logFile    string
}

var flags rootFlags

// logger is configured by the root command before any subcommand runs.
var logger = zerolog.Nop()

var logCloser io.Closer

// NewRootCmd creates the top-level "cldflex" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cldflex",
		Short: "Convert FLEx interlinear texts and LIFT lexicons to CSV and CLDF",
		Long: "cldflex converts FLEx interlinear text exports (.flextext) and LIFT\n" +
			"lexicons into CSV tables and, optionally, CLDF datasets.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, closer, err := logging.Setup(logging.Options{
				Level: flags.logLevel,
				File:  flags.logFile,
				Out:   cmd.ErrOrStderr(),
			})
			if err != nil {
				return &types.ConfigurationError{Msg: err.Error()}
			}
			logger, logCloser = l, closer
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if logCloser != nil {
				return logCloser.Close()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&flags.configFile, "conf", "c", "", "configuration file (default: ./cldflex.yaml, or $CLDFLEX_CONFIG)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "write the log to this file instead of stderr")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newCorpusCmd())
	root.AddCommand(newDictionaryCmd())
	root.AddCommand(newWordlistCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode separates problems with the user's input from failures of the
// environment, such as an unwritable output directory.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, types.ErrConfiguration),
		errors.Is(err, types.ErrNoInput),
		errors.Is(err, types.ErrMalformedDocument),
		errors.Is(err, types.ErrLexiconFormat),
		errors.Is(err, types.ErrUnknownParameterMode),
		errors.Is(err, types.ErrValidation):
		return exitUserError
	}
	return exitSysError
}
