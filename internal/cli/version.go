package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nmrtools/bbsbbu/pkg/buildinfo"
)

// versionCommand prints build information, mirroring --version but
// callable as a plain subcommand for scripting.
func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
			return nil
		},
	}
}
