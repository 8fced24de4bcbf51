package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdview/internal/logging"
	"github.com/yaklabco/mdview/internal/ui/pretty"
	"github.com/yaklabco/mdview/pkg/scan"
)

// ErrFilesUnreadable is returned when one or more files could not be read.
var ErrFilesUnreadable = errors.New("some files could not be read")

type statsFlags struct {
	ignore  []string
	jobs    int
	perFile bool
	oneLine bool
}

func newStatsCommand() *cobra.Command {
	flags := &statsFlags{}

	cmd := &cobra.Command{
		Use:   "stats [paths...]",
		Short: "Show word counts and reading time for Markdown files",
		Long: `Compute document statistics across Markdown files.

By default, scans all Markdown files in the current directory and
subdirectories. Specify paths to scan specific files or directories.

Examples:
  mdview stats                 # Scan current directory
  mdview stats docs/           # Scan docs directory
  mdview stats README.md       # Single file
  mdview stats --per-file      # Break the summary down per file
  mdview stats --oneline       # Single summary line`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, args, flags)
		},
	}

	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&flags.perFile, "per-file", false, "show statistics for each file")
	cmd.Flags().BoolVar(&flags.oneLine, "oneline", false, "print a single summary line")

	return cmd
}

func runStats(cmd *cobra.Command, args []string, flags *statsFlags) error {
	logger := logging.Default()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	opts := scan.Options{
		Paths:          args,
		WorkingDir:     workDir,
		Extensions:     cfg.Extensions,
		ExcludeGlobs:   flags.ignore,
		Jobs:           flags.jobs,
		WordsPerMinute: cfg.Stats.WordsPerMinute,
		DiagramTags:    cfg.Render.DiagramTags,
	}

	logger.Debug("starting scan",
		logging.FieldWorkingDir, workDir,
		logging.FieldJobs, opts.Jobs,
	)

	scanner := scan.New(opts)
	ctx := logging.WithLogger(contextOf(cmd), logger)
	result, err := scanner.Run(ctx, opts)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	logger.Debug("scan complete",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
	)

	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), cmd.OutOrStdout()))

	if flags.perFile {
		for _, outcome := range result.Files {
			if outcome.Error != nil {
				logger.Error("read failed",
					logging.FieldPath, outcome.Path,
					logging.FieldError, outcome.Error)
				continue
			}
			rel := relativeTo(workDir, outcome.Path)
			cmd.Print(styles.FormatDocStats(rel, outcome.Doc))
			cmd.Println()
		}
	}

	if flags.oneLine {
		cmd.Print(styles.FormatScanSummaryOneLine(result.Stats))
	} else {
		cmd.Print(styles.FormatScanSummary(result))
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrFilesUnreadable
	}
	return nil
}

// relativeTo shortens path relative to base when possible.
func relativeTo(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return rel
}
