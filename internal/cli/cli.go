// Package cli implements the bbsbbu command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/nmrtools/bbsbbu/pkg/buildinfo"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "bbsbbu"

	// defaultConfigPath is the bbsbbu.toml defaults file consulted before
	// flags are applied.
	defaultConfigPath = "bbsbbu.toml"

	// defaultTmaxSeconds is the wall-clock budget applied to BB/PT when
	// neither bbsbbu.toml nor -tmax set one.
	defaultTmaxSeconds = 60.0
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          appName,
		Short:        "bbsbbu finds low-cost edge orderings for NMR distance-geometry pruning instances",
		Long:         `bbsbbu computes edge orderings for the BP/BB-SBBU distance-geometry pruning-device ordering problem: given an NMR instance's prune edges, it finds an order that minimizes the accumulated segment-covering cost via SBBU, Greedy, Branch-and-Bound, or Priority-Tree search.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := LogInfo
			if verbose {
				level = LogDebug
			}
			c.SetLogLevel(level)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.ptDotCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}
