package document

import "strings"

// PlainText renders an inline span sequence to plain text. Emphasis and
// links contribute their nested text, images contribute alt text, inline
// code contributes its literal, and breaks become single spaces. Inline
// math is dropped; math is not prose.
func PlainText(spans []Span) string {
	var sb strings.Builder
	writePlainText(&sb, spans)
	return sb.String()
}

func writePlainText(sb *strings.Builder, spans []Span) {
	for _, s := range spans {
		switch s.Kind {
		case SpanText, SpanCode, SpanImage:
			sb.WriteString(s.Text)
		case SpanLineBreak:
			sb.WriteString(" ")
		case SpanInlineMath:
			// Skipped.
		default:
			writePlainText(sb, s.Children)
		}
	}
}

// ProseText returns the plain text of a block when its kind contributes to
// the word count, and "" otherwise. Only leaf text-bearing prose blocks
// count; list items contribute through the paragraphs nested in them, which
// avoids double counting.
func (b *Block) ProseText() string {
	switch b.Kind {
	case KindParagraph, KindHeading:
		return PlainText(b.Spans)
	default:
		return ""
	}
}
