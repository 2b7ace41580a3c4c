// Package cli implements the obbkit command-line interface for dataset
// preparation and sampling diagnostics.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// CLI encapsulates the command-line interface with its dependencies.
type CLI struct {
	version     string
	verbose     bool
	silent      bool
	initialized bool
	rootCmd     *cobra.Command
}

// New creates a new CLI instance with the given version string.
func New(version string) *CLI {
	c := &CLI{version: version}
	c.setupCommands()
	return c
}

// setupCommands initializes all CLI commands and their configurations.
func (c *CLI) setupCommands() {
	c.rootCmd = &cobra.Command{
		Use:     "obbkit",
		Short:   "Oriented-detection dataset preparation and weighted sampling tools",
		Version: c.version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			c.initLogging()
		},
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	c.rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose/debug output")
	c.rootCmd.PersistentFlags().BoolVarP(&c.silent, "silent", "s", false, "Suppress all logging")

	c.rootCmd.AddCommand(c.newConvertCommand())
	c.rootCmd.AddCommand(c.newNormalizeCommand())
	c.rootCmd.AddCommand(c.newSplitCommand())
	c.rootCmd.AddCommand(c.newResizeCommand())
	c.rootCmd.AddCommand(c.newWeightsCommand())
}

// Run executes the CLI and returns any error.
func (c *CLI) Run() error {
	return c.rootCmd.Execute()
}

// initLogging configures the default slog logger from the verbosity flags.
func (c *CLI) initLogging() {
	if c.initialized {
		return
	}
	c.initialized = true

	level := slog.LevelInfo
	if c.verbose {
		level = slog.LevelDebug
	}
	if c.silent {
		level = slog.Level(100)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}
