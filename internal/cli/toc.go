package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdview/internal/ui/pretty"
	"github.com/yaklabco/mdview/pkg/derive"
	"github.com/yaklabco/mdview/pkg/document"
	goldmarkparser "github.com/yaklabco/mdview/pkg/parser/goldmark"
	"github.com/yaklabco/mdview/pkg/source"
)

type tocFlags struct {
	format string
}

func newTocCommand() *cobra.Command {
	flags := &tocFlags{}

	cmd := &cobra.Command{
		Use:   "toc <file>",
		Short: "Print the table of contents of a Markdown file",
		Long: `Print the heading outline of a Markdown file.

Each entry shows the heading title, its slug anchor, and the 1-based
source line it starts on. Duplicate titles get numbered anchors.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToc(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "pretty", "output format (pretty, json)")

	return cmd
}

func runToc(cmd *cobra.Command, path string, flags *tocFlags) error {
	if flags.format != "pretty" && flags.format != "json" {
		return fmt.Errorf("unknown format %q (expected pretty or json)", flags.format)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	content, _, err := source.Read(contextOf(cmd), path)
	if err != nil {
		return err
	}

	parser := goldmarkparser.New(goldmarkparser.Options{DiagramTags: cfg.Render.DiagramTags})
	doc := derive.Apply(parser.Parse(content), derive.Options{
		WordsPerMinute: cfg.Stats.WordsPerMinute,
	})

	if flags.format == "json" {
		return writeTocJSON(cmd, doc.TOC)
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), cmd.OutOrStdout()))
	cmd.Print(styles.FormatTOC(doc.TOC))
	return nil
}

// tocJSONEntry is the wire shape of one outline entry. Lines stay 0-based
// here; only the human-readable output shifts to 1-based.
type tocJSONEntry struct {
	Level  int    `json:"level"`
	Title  string `json:"title"`
	Anchor string `json:"anchor"`
	Line   int    `json:"line"`
}

func writeTocJSON(cmd *cobra.Command, toc []document.TocEntry) error {
	entries := make([]tocJSONEntry, 0, len(toc))
	for _, e := range toc {
		entries = append(entries, tocJSONEntry{
			Level:  e.Level,
			Title:  e.Title,
			Anchor: e.Anchor,
			Line:   e.SourceLine,
		})
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encode outline: %w", err)
	}
	return nil
}
