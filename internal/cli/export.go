package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdview/internal/logging"
	"github.com/yaklabco/mdview/pkg/derive"
	"github.com/yaklabco/mdview/pkg/document"
	goldmarkparser "github.com/yaklabco/mdview/pkg/parser/goldmark"
	"github.com/yaklabco/mdview/pkg/render"
	"github.com/yaklabco/mdview/pkg/source"
)

type exportFlags struct {
	output     string
	title      string
	includeTOC bool
	style      string
}

func newExportCommand() *cobra.Command {
	flags := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export a Markdown file to standalone HTML",
		Long: `Render a Markdown file to a self-contained HTML page.

Code blocks are syntax highlighted, math blocks are emitted as KaTeX
containers, and diagram fences are emitted as Mermaid containers. The
output file is written atomically.

Examples:
  mdview export README.md                  # Writes README.html
  mdview export README.md -o out.html      # Explicit output path
  mdview export README.md --toc            # Include a table of contents`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output path (default: input with .html)")
	cmd.Flags().StringVar(&flags.title, "title", "", "page title (default: first heading or filename)")
	cmd.Flags().BoolVar(&flags.includeTOC, "toc", false, "include a table of contents")
	cmd.Flags().StringVar(&flags.style, "style", "", "syntax highlight style (default from config)")

	return cmd
}

func runExport(cmd *cobra.Command, path string, flags *exportFlags) error {
	logger := logging.Default()

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

	style := flags.style
	if style == "" {
		style = cfg.Render.HighlightStyle
	}

	renderer := render.New(render.Options{
		HighlightStyle:  style,
		DetectLanguages: true,
	})

	title := flags.title
	if title == "" {
		title = defaultTitle(doc.TOC, path)
	}

	page, err := renderer.Page(doc, render.PageOptions{
		Title:      title,
		IncludeTOC: flags.includeTOC,
	})
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}

	output := flags.output
	if output == "" {
		output = strings.TrimSuffix(path, filepath.Ext(path)) + ".html"
	}

	if err := source.WriteAtomic(contextOf(cmd), output, page, source.DefaultFileMode); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	logger.Info("exported",
		logging.FieldPath, path,
		logging.FieldOutput, output,
		logging.FieldBytes, len(page),
	)
	return nil
}

// defaultTitle picks the first heading title, falling back to the file name.
func defaultTitle(toc []document.TocEntry, path string) string {
	if len(toc) > 0 {
		return toc[0].Title
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
