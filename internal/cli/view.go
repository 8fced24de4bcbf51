package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/mdview/internal/logging"
	"github.com/yaklabco/mdview/internal/ui/pretty"
	"github.com/yaklabco/mdview/pkg/derive"
	"github.com/yaklabco/mdview/pkg/session"
	"github.com/yaklabco/mdview/pkg/source"
)

const defaultTermWidth = 100

type viewFlags struct {
	watch bool
	width int
}

func newViewCommand() *cobra.Command {
	flags := &viewFlags{}

	cmd := &cobra.Command{
		Use:   "view <file>",
		Short: "Render a Markdown file in the terminal",
		Long: `Render a Markdown file as styled terminal output.

With --watch, mdview keeps the file open and re-renders whenever it
changes on disk, waiting for edits to settle before reloading.

Examples:
  mdview view README.md            # Render once and exit
  mdview view README.md --watch    # Follow the file as it changes
  mdview view README.md --width 80 # Wrap output at 80 columns`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, args[0], flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "re-render when the file changes")
	cmd.Flags().IntVar(&flags.width, "width", 0, "wrap width (0 = terminal width)")

	return cmd
}

func runView(cmd *cobra.Command, path string, flags *viewFlags) error {
	logger := logging.Default()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	width := flags.width
	if width <= 0 {
		width = terminalWidth(cmd.OutOrStdout())
	}

	renderer, err := newTermRenderer(colorMode(cmd), cmd.OutOrStdout(), width)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	if !flags.watch {
		return viewOnce(cmd, path, renderer)
	}

	ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess := session.New(session.Options{
		Debounce:    cfg.Watch.Debounce(),
		Derive:      derive.Options{WordsPerMinute: cfg.Stats.WordsPerMinute},
		DiagramTags: cfg.Render.DiagramTags,
		Logger:      logger,
	})
	defer sess.Shutdown()

	sess.Open(path)

	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), cmd.OutOrStdout()))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-sess.Events():
			switch ev.Kind {
			case session.EventReady:
				if err := printRendered(cmd.OutOrStdout(), renderer, ev.Path); err != nil {
					logger.Error("render failed", logging.FieldError, err)
					continue
				}
				if ev.Doc != nil {
					fmt.Fprint(cmd.OutOrStdout(), styles.FormatStatusLine(ev.Path, ev.Doc))
				}
			case session.EventReloading:
				logger.Debug("file changed, reloading", logging.FieldPath, ev.Path)
			case session.EventDeleted:
				logger.Warn("file removed, showing last loaded version",
					logging.FieldPath, ev.Path)
			case session.EventError:
				logger.Error("load failed", logging.FieldPath, ev.Path,
					logging.FieldError, ev.Err)
			}
		}
	}
}

// viewOnce renders the file a single time without watching.
func viewOnce(cmd *cobra.Command, path string, renderer *glamour.TermRenderer) error {
	return printRendered(cmd.OutOrStdout(), renderer, path)
}

// printRendered reads and renders path, writing the styled output to w.
func printRendered(w io.Writer, renderer *glamour.TermRenderer, path string) error {
	content, _, err := source.Read(context.Background(), path)
	if err != nil {
		return err
	}

	out, err := renderer.Render(string(content))
	if err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	_, err = io.WriteString(w, out)
	return err
}

// newTermRenderer builds a glamour renderer matched to the color mode and
// wrap width.
func newTermRenderer(mode string, w io.Writer, width int) (*glamour.TermRenderer, error) {
	styleOpt := glamour.WithAutoStyle()
	switch mode {
	case "always":
		styleOpt = glamour.WithStandardStyle("dark")
	case "never":
		styleOpt = glamour.WithStandardStyle("notty")
	default:
		if f, ok := w.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
			styleOpt = glamour.WithStandardStyle("notty")
		}
	}

	return glamour.NewTermRenderer(
		styleOpt,
		glamour.WithWordWrap(width),
	)
}

// terminalWidth returns the width of the terminal behind w, or a default
// when w is not a terminal.
func terminalWidth(w io.Writer) int {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}

// contextOf returns the command context, defaulting to Background.
func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
