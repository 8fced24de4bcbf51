package document

// BlockKind classifies a block-level structural unit.
type BlockKind uint8

// Block kinds, in rough order of how often they occur in prose documents.
const (
	KindParagraph BlockKind = iota
	KindHeading
	KindCodeBlock
	KindList
	KindListItem
	KindBlockquote
	KindTable
	KindTableRow
	KindTableCell
	KindThematicBreak
	KindHTMLBlock
	KindMathBlock
	KindDiagramBlock

	// KindRaw is the fallback for constructs the parser does not
	// recognize. Content degrades to passthrough text instead of failing.
	KindRaw
)

// String returns a human-readable name for the block kind.
func (k BlockKind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindHeading:
		return "heading"
	case KindCodeBlock:
		return "code_block"
	case KindList:
		return "list"
	case KindListItem:
		return "list_item"
	case KindBlockquote:
		return "blockquote"
	case KindTable:
		return "table"
	case KindTableRow:
		return "table_row"
	case KindTableCell:
		return "table_cell"
	case KindThematicBreak:
		return "thematic_break"
	case KindHTMLBlock:
		return "html_block"
	case KindMathBlock:
		return "math_block"
	case KindDiagramBlock:
		return "diagram_block"
	case KindRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// SpanKind classifies an inline span.
type SpanKind uint8

// Inline span kinds. Spans nest within block content and carry no line
// provenance of their own; line attribution is block-granularity only.
const (
	SpanText SpanKind = iota
	SpanEmphasis
	SpanStrong
	SpanCode
	SpanLink
	SpanImage
	SpanInlineMath
	SpanLineBreak
)

// String returns a human-readable name for the span kind.
func (k SpanKind) String() string {
	switch k {
	case SpanText:
		return "text"
	case SpanEmphasis:
		return "emphasis"
	case SpanStrong:
		return "strong"
	case SpanCode:
		return "code"
	case SpanLink:
		return "link"
	case SpanImage:
		return "image"
	case SpanInlineMath:
		return "inline_math"
	case SpanLineBreak:
		return "line_break"
	default:
		return "unknown"
	}
}
