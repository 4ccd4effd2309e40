package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the cldflex release. The build sets it with -ldflags -X.
var Version = "0.1.0"

const modulePath = "github.com/mesh-intelligence/cldflex"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the cldflex version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "cldflex v%s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}
