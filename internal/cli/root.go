// Package cli provides the Cobra command structure for mdview.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdview/internal/logging"
	"github.com/yaklabco/mdview/pkg/config"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root mdview command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "mdview",
		Short: "A live Markdown viewer and document toolkit",
		Long: `mdview parses CommonMark and GitHub Flavored Markdown into a structured
document model with precise source-line mapping, and renders it to the
terminal or to standalone HTML.

It can follow a file as it changes on disk, reloading the rendered view
after edits settle, and it derives a table of contents, word count, and
reading-time estimate for any document.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newViewCommand())
	rootCmd.AddCommand(newTocCommand())
	rootCmd.AddCommand(newStatsCommand())
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

// loadConfig resolves the effective configuration for a command, honoring
// the root command's --config flag before falling back to discovery.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if configPath != "" {
		return config.LoadFile(configPath)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	cfg, source, err := config.Load(workDir)
	if err != nil {
		return nil, err
	}
	if source != "" {
		logging.Default().Debug("loaded configuration", logging.FieldPath, source)
	}
	return cfg, nil
}

// colorMode reads the root --color flag, defaulting to auto.
func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return "auto"
	}
	return mode
}
