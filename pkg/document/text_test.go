package document_test

import (
	"testing"

	"github.com/yaklabco/mdview/pkg/document"
)

func TestPlainText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		spans []document.Span
		want  string
	}{
		{
			name:  "plain text",
			spans: []document.Span{{Kind: document.SpanText, Text: "hello world"}},
			want:  "hello world",
		},
		{
			name: "emphasis contributes nested text",
			spans: []document.Span{
				{Kind: document.SpanText, Text: "a "},
				{Kind: document.SpanEmphasis, Children: []document.Span{
					{Kind: document.SpanText, Text: "bold"},
				}},
				{Kind: document.SpanText, Text: " word"},
			},
			want: "a bold word",
		},
		{
			name: "link contributes label not destination",
			spans: []document.Span{
				{Kind: document.SpanLink, Destination: "https://example.com", Children: []document.Span{
					{Kind: document.SpanText, Text: "docs"},
				}},
			},
			want: "docs",
		},
		{
			name:  "inline code contributes literal",
			spans: []document.Span{{Kind: document.SpanCode, Text: "x := 1"}},
			want:  "x := 1",
		},
		{
			name:  "image contributes alt text",
			spans: []document.Span{{Kind: document.SpanImage, Text: "a chart", Destination: "chart.png"}},
			want:  "a chart",
		},
		{
			name: "line break becomes a space",
			spans: []document.Span{
				{Kind: document.SpanText, Text: "one"},
				{Kind: document.SpanLineBreak},
				{Kind: document.SpanText, Text: "two"},
			},
			want: "one two",
		},
		{
			name: "inline math is dropped",
			spans: []document.Span{
				{Kind: document.SpanText, Text: "value "},
				{Kind: document.SpanInlineMath, Text: "E = mc^2"},
			},
			want: "value ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := document.PlainText(tt.spans); got != tt.want {
				t.Errorf("PlainText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProseText(t *testing.T) {
	t.Parallel()

	spans := []document.Span{{Kind: document.SpanText, Text: "some words"}}

	para := &document.Block{Kind: document.KindParagraph, Spans: spans}
	if got := para.ProseText(); got != "some words" {
		t.Errorf("paragraph ProseText() = %q", got)
	}

	heading := &document.Block{Kind: document.KindHeading, Spans: spans}
	if got := heading.ProseText(); got != "some words" {
		t.Errorf("heading ProseText() = %q", got)
	}

	code := &document.Block{Kind: document.KindCodeBlock, Literal: "func main() {}"}
	if got := code.ProseText(); got != "" {
		t.Errorf("code ProseText() = %q, want empty", got)
	}

	math := &document.Block{Kind: document.KindMathBlock, Literal: "x^2"}
	if got := math.ProseText(); got != "" {
		t.Errorf("math ProseText() = %q, want empty", got)
	}
}
