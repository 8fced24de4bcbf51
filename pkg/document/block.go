package document

// Block is a structural unit of a parsed document. Blocks form a tree via
// Parent/Children, and every block additionally appears in the document's
// flattened pre-order sequence so the line map has per-item granularity.
//
// StartLine and EndLine are 0-based, inclusive source-line spans assigned
// during parsing.
type Block struct {
	Kind BlockKind

	// Tree structure. Parent is nil for top-level blocks.
	Parent   *Block
	Children []*Block

	// Spans holds inline content for text-bearing blocks
	// (headings, paragraphs, table cells).
	Spans []Span

	// Level is the heading level (1-6) for KindHeading.
	Level int

	// Literal holds raw text for code, math, diagram, and HTML blocks.
	Literal string

	// Language is the fence info tag for KindCodeBlock ("go", "python", ...).
	// Empty for untagged or indented code.
	Language string

	// Fenced is true for fenced code blocks, false for indented ones.
	Fenced bool

	// DiagramKind is the reserved fence tag for KindDiagramBlock
	// ("mermaid", ...).
	DiagramKind string

	// List attributes for KindList.
	Ordered     bool
	StartNumber int
	Tight       bool

	// Header is true for the header row of a table.
	Header bool

	// Source-line span, 0-based inclusive.
	StartLine int
	EndLine   int
}

// Span is an inline unit nested within block content.
type Span struct {
	Kind SpanKind

	// Text holds literal content for SpanText, SpanCode, and SpanInlineMath.
	// For SpanImage it holds the alt text.
	Text string

	// Destination and Title are set for SpanLink and SpanImage.
	Destination string
	Title       string

	// Children holds nested spans for SpanEmphasis, SpanStrong, and SpanLink.
	Children []Span
}

// AppendChild attaches child to parent, maintaining the Parent pointer.
func AppendChild(parent, child *Block) {
	if parent == nil || child == nil {
		return
	}
	child.Parent = parent
	parent.Children = append(parent.Children, child)
}

// IsTopLevel reports whether the block sits directly under the document root.
func (b *Block) IsTopLevel() bool {
	return b.Parent == nil
}

// HasChildren reports whether the block has nested blocks.
func (b *Block) HasChildren() bool {
	return len(b.Children) > 0
}

// LineSpan returns the number of source lines the block covers.
func (b *Block) LineSpan() int {
	return b.EndLine - b.StartLine + 1
}

// Flatten returns the pre-order flattening of a top-level block sequence.
// The result is the document-order block sequence the line map indexes into.
func Flatten(top []*Block) []*Block {
	var flat []*Block
	var visit func(b *Block)
	visit = func(b *Block) {
		flat = append(flat, b)
		for _, child := range b.Children {
			visit(child)
		}
	}
	for _, b := range top {
		visit(b)
	}
	return flat
}
