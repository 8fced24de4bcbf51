// Package render produces HTML from a parsed document. It is the in-process
// stand-in for the external renderer collaborator: it consumes blocks and
// inline spans, stamps heading anchors that match the derived TOC, and
// passes math and diagram sources through as annotated markup for
// client-side libraries to pick up.
package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/yaklabco/mdview/pkg/document"
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "github"

// Options configures HTML rendering.
type Options struct {
	// HighlightStyle is the chroma style name. Empty means
	// DefaultHighlightStyle.
	HighlightStyle string

	// DetectLanguages enables enry-based detection for untagged code
	// fences.
	DetectLanguages bool
}

// Renderer converts document blocks into HTML fragments.
type Renderer struct {
	opts Options
}

// New creates a renderer.
func New(opts Options) *Renderer {
	if opts.HighlightStyle == "" {
		opts.HighlightStyle = DefaultHighlightStyle
	}
	return &Renderer{opts: opts}
}

// Fragment renders the document body as an HTML fragment. Each top-level
// block carries a data-line attribute with its 0-based start line, which is
// what the scroll-sync layer reads back through the line map.
func (r *Renderer) Fragment(doc *document.Document) string {
	anchors := headingAnchors(doc)

	var sb strings.Builder
	for _, b := range doc.TopLevel() {
		r.renderBlock(&sb, b, anchors)
	}
	return sb.String()
}

// attr quotes v for use as an HTML attribute value. %q is Go-string
// quoting and leaves < and " intact, so it is never used for attributes.
func attr(v string) string {
	return `"` + html.EscapeString(v) + `"`
}

// headingAnchors pairs heading blocks with their derived TOC anchors.
// Headings and TOC entries are both in document order.
func headingAnchors(doc *document.Document) map[*document.Block]string {
	anchors := make(map[*document.Block]string)
	headings := doc.Headings()
	for i, entry := range doc.TOC {
		if i < len(headings) {
			anchors[headings[i]] = entry.Anchor
		}
	}
	return anchors
}

func (r *Renderer) renderBlock(sb *strings.Builder, b *document.Block, anchors map[*document.Block]string) {
	switch b.Kind {
	case document.KindHeading:
		level := b.Level
		if level < 1 || level > 6 {
			level = 6
		}
		fmt.Fprintf(sb, "<h%d id=%s data-line=\"%d\">", level, attr(anchors[b]), b.StartLine)
		r.renderSpans(sb, b.Spans)
		fmt.Fprintf(sb, "</h%d>\n", level)

	case document.KindParagraph:
		fmt.Fprintf(sb, "<p data-line=\"%d\">", b.StartLine)
		r.renderSpans(sb, b.Spans)
		sb.WriteString("</p>\n")

	case document.KindCodeBlock:
		r.renderCode(sb, b)

	case document.KindList:
		tag := "ul"
		attrs := ""
		if b.Ordered {
			tag = "ol"
			if b.StartNumber > 1 {
				attrs = fmt.Sprintf(" start=\"%d\"", b.StartNumber)
			}
		}
		fmt.Fprintf(sb, "<%s%s data-line=\"%d\">\n", tag, attrs, b.StartLine)
		for _, item := range b.Children {
			r.renderBlock(sb, item, anchors)
		}
		fmt.Fprintf(sb, "</%s>\n", tag)

	case document.KindListItem:
		sb.WriteString("<li>")
		r.renderChildren(sb, b, anchors)
		sb.WriteString("</li>\n")

	case document.KindBlockquote:
		fmt.Fprintf(sb, "<blockquote data-line=\"%d\">\n", b.StartLine)
		r.renderChildren(sb, b, anchors)
		sb.WriteString("</blockquote>\n")

	case document.KindTable:
		fmt.Fprintf(sb, "<table data-line=\"%d\">\n", b.StartLine)
		for _, row := range b.Children {
			r.renderBlock(sb, row, anchors)
		}
		sb.WriteString("</table>\n")

	case document.KindTableRow:
		cell := "td"
		if b.Header {
			cell = "th"
		}
		sb.WriteString("<tr>")
		for _, c := range b.Children {
			fmt.Fprintf(sb, "<%s>", cell)
			r.renderSpans(sb, c.Spans)
			fmt.Fprintf(sb, "</%s>", cell)
		}
		sb.WriteString("</tr>\n")

	case document.KindTableCell:
		// Rendered by the row.

	case document.KindThematicBreak:
		fmt.Fprintf(sb, "<hr data-line=\"%d\">\n", b.StartLine)

	case document.KindHTMLBlock:
		// Passthrough, by contract.
		sb.WriteString(b.Literal)

	case document.KindMathBlock:
		fmt.Fprintf(sb, "<div class=\"katex-block\" data-line=\"%d\" data-math=%s>$$%s$$</div>\n",
			b.StartLine, attr(b.Literal), html.EscapeString(b.Literal))

	case document.KindDiagramBlock:
		fmt.Fprintf(sb, "<div class=\"diagram %s\" data-line=\"%d\">%s</div>\n",
			html.EscapeString(b.DiagramKind), b.StartLine, html.EscapeString(b.Literal))

	case document.KindRaw:
		if len(b.Children) > 0 {
			r.renderChildren(sb, b, anchors)
			return
		}
		fmt.Fprintf(sb, "<pre data-line=\"%d\">%s</pre>\n", b.StartLine, html.EscapeString(b.Literal))
	}
}

func (r *Renderer) renderChildren(sb *strings.Builder, b *document.Block, anchors map[*document.Block]string) {
	for _, child := range b.Children {
		r.renderBlock(sb, child, anchors)
	}
}

// renderCode emits a chroma-highlighted code block, falling back to an
// escaped <pre> when tokenization fails.
func (r *Renderer) renderCode(sb *strings.Builder, b *document.Block) {
	lang := b.Language
	if lang == "" && r.opts.DetectLanguages {
		lang = DetectLanguage([]byte(b.Literal))
	}

	if highlighted, err := r.highlight(b.Literal, lang); err == nil {
		fmt.Fprintf(sb, "<div class=\"code language-%s\" data-line=\"%d\">%s</div>\n",
			html.EscapeString(lang), b.StartLine, highlighted)
		return
	}

	fmt.Fprintf(sb, "<pre class=\"language-%s\" data-line=\"%d\"><code>%s</code></pre>\n",
		html.EscapeString(lang), b.StartLine, html.EscapeString(b.Literal))
}

func (r *Renderer) highlight(code, lang string) (string, error) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(r.opts.HighlightStyle)
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("tokenise: %w", err)
	}

	var sb strings.Builder
	formatter := chromahtml.New(chromahtml.WithClasses(false))
	if err := formatter.Format(&sb, style, iterator); err != nil {
		return "", fmt.Errorf("format: %w", err)
	}
	return sb.String(), nil
}

func (r *Renderer) renderSpans(sb *strings.Builder, spans []document.Span) {
	for _, s := range spans {
		switch s.Kind {
		case document.SpanText:
			sb.WriteString(html.EscapeString(s.Text))

		case document.SpanEmphasis:
			sb.WriteString("<em>")
			r.renderSpans(sb, s.Children)
			sb.WriteString("</em>")

		case document.SpanStrong:
			sb.WriteString("<strong>")
			r.renderSpans(sb, s.Children)
			sb.WriteString("</strong>")

		case document.SpanCode:
			fmt.Fprintf(sb, "<code>%s</code>", html.EscapeString(s.Text))

		case document.SpanLink:
			fmt.Fprintf(sb, "<a href=%s", attr(s.Destination))
			if s.Title != "" {
				fmt.Fprintf(sb, " title=%s", attr(s.Title))
			}
			sb.WriteString(">")
			r.renderSpans(sb, s.Children)
			sb.WriteString("</a>")

		case document.SpanImage:
			fmt.Fprintf(sb, "<img src=%s alt=%s", attr(s.Destination), attr(s.Text))
			if s.Title != "" {
				fmt.Fprintf(sb, " title=%s", attr(s.Title))
			}
			sb.WriteString(">")

		case document.SpanInlineMath:
			fmt.Fprintf(sb, "<span class=\"katex-inline\" data-math=%s>$%s$</span>",
				attr(s.Text), html.EscapeString(s.Text))

		case document.SpanLineBreak:
			sb.WriteString("\n")
		}
	}
}
