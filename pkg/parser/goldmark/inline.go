package goldmark

import (
	"regexp"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/mdview/pkg/document"
)

// inlineMath matches a $...$ run within a single line of text. The opening
// delimiter must not be followed by whitespace and the closing one must not
// be preceded by it, which keeps prices like "$5 and $ 10" out of math mode.
var inlineMath = regexp.MustCompile(`\$([^$\s](?:[^$\n]*[^$\s])?)\$`)

// mapSpans converts the inline children of a goldmark node into spans.
func (m *mapper) mapSpans(gmParent ast.Node) []document.Span {
	var spans []document.Span

	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		spans = append(spans, m.mapSpan(child)...)
	}
	return spans
}

// mapSpan converts one inline node. A single goldmark node can yield several
// spans: text nodes split around inline math, and trailing line breaks ride
// on the text node that precedes them.
func (m *mapper) mapSpan(gmNode ast.Node) []document.Span {
	switch gmn := gmNode.(type) {
	case *ast.Text:
		spans := splitInlineMath(string(gmn.Segment.Value(m.content)))
		if gmn.SoftLineBreak() || gmn.HardLineBreak() {
			spans = append(spans, document.Span{Kind: document.SpanLineBreak})
		}
		return spans

	case *ast.String:
		return splitInlineMath(string(gmn.Value))

	case *ast.CodeSpan:
		return []document.Span{{
			Kind: document.SpanCode,
			Text: m.inlineText(gmn),
		}}

	case *ast.Emphasis:
		kind := document.SpanEmphasis
		if gmn.Level >= 2 {
			kind = document.SpanStrong
		}
		return []document.Span{{Kind: kind, Children: m.mapSpans(gmn)}}

	case *east.Strikethrough:
		return []document.Span{{Kind: document.SpanEmphasis, Children: m.mapSpans(gmn)}}

	case *ast.Link:
		return []document.Span{{
			Kind:        document.SpanLink,
			Destination: string(gmn.Destination),
			Title:       string(gmn.Title),
			Children:    m.mapSpans(gmn),
		}}

	case *ast.AutoLink:
		url := string(gmn.URL(m.content))
		return []document.Span{{
			Kind:        document.SpanLink,
			Destination: url,
			Children: []document.Span{{
				Kind: document.SpanText,
				Text: string(gmn.Label(m.content)),
			}},
		}}

	case *ast.Image:
		return []document.Span{{
			Kind:        document.SpanImage,
			Destination: string(gmn.Destination),
			Title:       string(gmn.Title),
			Text:        m.inlineText(gmn),
		}}

	case *ast.RawHTML:
		return []document.Span{{
			Kind: document.SpanText,
			Text: m.rawHTMLText(gmn),
		}}

	case *east.TaskCheckBox:
		text := "[ ] "
		if gmn.IsChecked {
			text = "[x] "
		}
		return []document.Span{{Kind: document.SpanText, Text: text}}

	default:
		// Unknown inline constructs contribute their nested text.
		return m.mapSpans(gmNode)
	}
}

// inlineText flattens the text descendants of an inline node.
func (m *mapper) inlineText(gmNode ast.Node) string {
	var out []byte
	var visit func(n ast.Node)
	visit = func(n ast.Node) {
		if t, ok := n.(*ast.Text); ok {
			out = append(out, t.Segment.Value(m.content)...)
		}
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			visit(child)
		}
	}
	visit(gmNode)
	return string(out)
}

func (m *mapper) rawHTMLText(gmn *ast.RawHTML) string {
	var out []byte
	for i := range gmn.Segments.Len() {
		seg := gmn.Segments.At(i)
		out = append(out, seg.Value(m.content)...)
	}
	return string(out)
}

// splitInlineMath splits a text run into text and inline-math spans.
func splitInlineMath(text string) []document.Span {
	if text == "" {
		return nil
	}

	matches := inlineMath.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return []document.Span{{Kind: document.SpanText, Text: text}}
	}

	var spans []document.Span
	prev := 0
	for _, match := range matches {
		if match[0] > prev {
			spans = append(spans, document.Span{
				Kind: document.SpanText,
				Text: text[prev:match[0]],
			})
		}
		spans = append(spans, document.Span{
			Kind: document.SpanInlineMath,
			Text: text[match[2]:match[3]],
		})
		prev = match[1]
	}
	if prev < len(text) {
		spans = append(spans, document.Span{Kind: document.SpanText, Text: text[prev:]})
	}
	return spans
}
