package goldmark

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/mdview/pkg/document"
)

// mapper converts a goldmark AST into document blocks with source-line
// attribution. Line numbers come from goldmark's content segments where the
// node carries them; container nodes take the union of their children, and
// segment-less leaves (thematic breaks, empty fences) are located by
// scanning the raw source forward from a line cursor.
type mapper struct {
	content     []byte
	ix          *lineIndex
	diagramTags map[string]bool

	// cursor is the first source line not yet attributed to a block. It
	// only moves forward; document order is monotonic in source lines.
	cursor int
}

func newMapper(content []byte, diagramTags map[string]bool) *mapper {
	return &mapper{
		content:     content,
		ix:          newLineIndex(content),
		diagramTags: diagramTags,
	}
}

// mapDocument converts the goldmark document node into top-level blocks.
func (m *mapper) mapDocument(gmDoc ast.Node) []*document.Block {
	var top []*document.Block
	for child := gmDoc.FirstChild(); child != nil; child = child.NextSibling() {
		if b := m.mapNode(child); b != nil {
			top = append(top, b)
		}
	}
	return top
}

// mapNode converts a single goldmark block node. Children are mapped first
// so container spans can be computed from them.
func (m *mapper) mapNode(gmNode ast.Node) *document.Block {
	var b *document.Block

	switch gmn := gmNode.(type) {
	case *ast.Heading:
		b = &document.Block{
			Kind:  document.KindHeading,
			Level: gmn.Level,
			Spans: m.mapSpans(gmn),
		}
		m.assignSpan(b, gmNode)

	case *ast.Paragraph:
		b = m.mapParagraphOrMath(gmn)

	case *ast.TextBlock:
		// Tight list items hold their text in a TextBlock.
		b = &document.Block{
			Kind:  document.KindParagraph,
			Spans: m.mapSpans(gmn),
		}
		m.assignSpan(b, gmNode)

	case *ast.List:
		b = &document.Block{
			Kind:        document.KindList,
			Ordered:     gmn.IsOrdered(),
			StartNumber: gmn.Start,
			Tight:       gmn.IsTight,
		}
		m.mapChildrenInto(gmNode, b)
		m.assignSpan(b, gmNode)

	case *ast.ListItem:
		b = &document.Block{Kind: document.KindListItem}
		m.mapChildrenInto(gmNode, b)
		m.assignSpan(b, gmNode)

	case *ast.Blockquote:
		b = &document.Block{Kind: document.KindBlockquote}
		m.mapChildrenInto(gmNode, b)
		m.assignSpan(b, gmNode)

	case *ast.FencedCodeBlock:
		b = m.mapFencedCode(gmn)

	case *ast.CodeBlock:
		b = &document.Block{
			Kind:    document.KindCodeBlock,
			Literal: m.segmentsText(gmn),
		}
		m.assignSpan(b, gmNode)

	case *ast.ThematicBreak:
		b = m.mapThematicBreak()

	case *ast.HTMLBlock:
		b = m.mapHTMLBlock(gmn)

	case *east.Table:
		b = &document.Block{Kind: document.KindTable}
		m.mapChildrenInto(gmNode, b)
		m.assignSpan(b, gmNode)

	case *east.TableHeader:
		b = &document.Block{Kind: document.KindTableRow, Header: true}
		m.mapCellsInto(gmNode, b)
		m.assignSpan(b, gmNode)

	case *east.TableRow:
		b = &document.Block{Kind: document.KindTableRow}
		m.mapCellsInto(gmNode, b)
		m.assignSpan(b, gmNode)

	default:
		// Unrecognized constructs degrade to passthrough.
		b = &document.Block{
			Kind:    document.KindRaw,
			Literal: m.segmentsText(gmNode),
		}
		m.mapChildrenInto(gmNode, b)
		m.assignSpan(b, gmNode)
	}

	if b != nil && b.EndLine+1 > m.cursor {
		m.cursor = b.EndLine + 1
	}
	return b
}

// mapChildrenInto maps block children of gmNode and appends them to parent.
func (m *mapper) mapChildrenInto(gmNode ast.Node, parent *document.Block) {
	for child := gmNode.FirstChild(); child != nil; child = child.NextSibling() {
		if cb := m.mapNode(child); cb != nil {
			document.AppendChild(parent, cb)
		}
	}
}

// mapCellsInto maps the cells of a table row. Cells carry inline content
// only, so they are built directly rather than through mapNode.
func (m *mapper) mapCellsInto(gmRow ast.Node, row *document.Block) {
	for cell := gmRow.FirstChild(); cell != nil; cell = cell.NextSibling() {
		cb := &document.Block{
			Kind:  document.KindTableCell,
			Spans: m.mapSpans(cell),
		}
		m.assignSpan(cb, cell)
		document.AppendChild(row, cb)
	}
}

// blockMathDelim delimits display math paragraphs.
const blockMathDelim = "$$"

// mapParagraphOrMath turns a paragraph into a MathBlock when its raw text is
// a $$ ... $$ display-math construct, and a plain paragraph otherwise.
func (m *mapper) mapParagraphOrMath(gmn *ast.Paragraph) *document.Block {
	raw := strings.TrimSpace(m.segmentsText(gmn))
	if len(raw) > 2*len(blockMathDelim) &&
		strings.HasPrefix(raw, blockMathDelim) && strings.HasSuffix(raw, blockMathDelim) {
		b := &document.Block{
			Kind:    document.KindMathBlock,
			Literal: strings.TrimSpace(raw[len(blockMathDelim) : len(raw)-len(blockMathDelim)]),
		}
		m.assignSpan(b, gmn)
		return b
	}

	b := &document.Block{
		Kind:  document.KindParagraph,
		Spans: m.mapSpans(gmn),
	}
	m.assignSpan(b, gmn)
	return b
}

// fenceLine matches an opening or closing code fence with up to three
// spaces of indentation.
var fenceLine = regexp.MustCompile("^ {0,3}(`{3,}|~{3,})")

// mapFencedCode maps a fenced code block, classifying reserved info tags as
// diagram blocks and extending the line span to cover the fence lines
// themselves (goldmark segments cover only the enclosed content).
func (m *mapper) mapFencedCode(gmn *ast.FencedCodeBlock) *document.Block {
	lang := string(gmn.Language(m.content))

	b := &document.Block{
		Kind:     document.KindCodeBlock,
		Fenced:   true,
		Language: lang,
		Literal:  m.segmentsText(gmn),
	}
	if m.diagramTags[lang] {
		b.Kind = document.KindDiagramBlock
		b.DiagramKind = lang
		b.Language = ""
	}

	open, ok := m.fenceOpenLine(gmn)
	if !ok {
		// Degenerate fence with no content and no info tag.
		if line, found := m.scanFor(func(text []byte) bool {
			return fenceLine.Match(text)
		}); found {
			open = line
		} else {
			open = m.cursor
		}
	}

	b.StartLine = open
	b.EndLine = open

	if lines := gmn.Lines(); lines.Len() > 0 {
		last := lines.At(lines.Len() - 1)
		b.EndLine = m.ix.lineAt(last.Stop - 1)
	}

	// Include the closing fence when present.
	if next := b.EndLine + 1; next < m.ix.lineCount() && fenceLine.Match(m.ix.lineText(next)) {
		b.EndLine = next
	}
	return b
}

// fenceOpenLine locates the opening fence line from the block's content or
// info segments.
func (m *mapper) fenceOpenLine(gmn *ast.FencedCodeBlock) (int, bool) {
	if lines := gmn.Lines(); lines.Len() > 0 {
		// Content starts on the line after the opening fence.
		contentStart := m.ix.lineAt(lines.At(0).Start)
		if contentStart > 0 && fenceLine.Match(m.ix.lineText(contentStart-1)) {
			return contentStart - 1, true
		}
		return contentStart, true
	}
	if gmn.Info != nil {
		return m.ix.lineAt(gmn.Info.Segment.Start), true
	}
	return 0, false
}

// thematicBreakLine matches ***, ---, ___ style breaks.
var thematicBreakLine = regexp.MustCompile(`^ {0,3}(\*[ \t]*){3,}$|^ {0,3}(-[ \t]*){3,}$|^ {0,3}(_[ \t]*){3,}$`)

// mapThematicBreak locates the break by scanning the source; goldmark keeps
// no segments for it.
func (m *mapper) mapThematicBreak() *document.Block {
	b := &document.Block{Kind: document.KindThematicBreak}

	line, found := m.scanFor(func(text []byte) bool {
		return thematicBreakLine.Match(text)
	})
	if !found {
		line = m.cursor
	}
	b.StartLine = line
	b.EndLine = line
	return b
}

func (m *mapper) mapHTMLBlock(gmn *ast.HTMLBlock) *document.Block {
	b := &document.Block{
		Kind:    document.KindHTMLBlock,
		Literal: m.segmentsText(gmn),
	}
	m.assignSpan(b, gmn)

	if gmn.HasClosure() {
		closure := gmn.ClosureLine
		b.Literal += string(closure.Value(m.content))
		if end := m.ix.lineAt(closure.Stop - 1); end > b.EndLine {
			b.EndLine = end
		}
	}
	return b
}

// assignSpan attributes start/end source lines to a block, trying in order:
// the node's own content segments, the union of already-mapped children,
// the byte range of inline text segments, and finally the line cursor.
func (m *mapper) assignSpan(b *document.Block, gmNode ast.Node) {
	if start, end, ok := m.segmentSpan(gmNode); ok {
		b.StartLine = start
		b.EndLine = end
		return
	}

	if len(b.Children) > 0 {
		b.StartLine = b.Children[0].StartLine
		b.EndLine = b.Children[len(b.Children)-1].EndLine
		return
	}

	if start, end, ok := m.inlineByteRange(gmNode); ok {
		b.StartLine = m.ix.lineAt(start)
		b.EndLine = m.ix.lineAt(end - 1)
		return
	}

	line := m.cursor
	if max := m.ix.lineCount() - 1; line > max && max >= 0 {
		line = max
	}
	b.StartLine = line
	b.EndLine = line
}

// segmentSpan derives a line span from a node's content segments.
func (m *mapper) segmentSpan(gmNode ast.Node) (int, int, bool) {
	if gmNode.Type() == ast.TypeInline {
		return 0, 0, false
	}
	lines := gmNode.Lines()
	if lines == nil || lines.Len() == 0 {
		return 0, 0, false
	}

	first := lines.At(0)
	last := lines.At(lines.Len() - 1)

	stop := last.Stop
	if stop > first.Start {
		stop--
	}
	return m.ix.lineAt(first.Start), m.ix.lineAt(stop), true
}

// inlineByteRange computes the byte range covered by a node's inline text
// descendants. Used for nodes that neither carry segments nor contain block
// children, such as table cells.
func (m *mapper) inlineByteRange(gmNode ast.Node) (int, int, bool) {
	start, end := -1, -1

	var visit func(n ast.Node)
	visit = func(n ast.Node) {
		if t, ok := n.(*ast.Text); ok {
			seg := t.Segment
			if start == -1 || seg.Start < start {
				start = seg.Start
			}
			if seg.Stop > end {
				end = seg.Stop
			}
		}
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			visit(child)
		}
	}
	visit(gmNode)

	if start < 0 || end <= start {
		return 0, 0, false
	}
	return start, end, true
}

// segmentsText concatenates a node's raw content segments.
func (m *mapper) segmentsText(gmNode ast.Node) string {
	if gmNode.Type() == ast.TypeInline {
		return ""
	}
	lines := gmNode.Lines()
	if lines == nil || lines.Len() == 0 {
		return ""
	}

	var sb strings.Builder
	for i := range lines.Len() {
		seg := lines.At(i)
		sb.Write(seg.Value(m.content))
	}
	return sb.String()
}

// scanFor returns the first line at or after the cursor matching the
// predicate.
func (m *mapper) scanFor(predicate func(text []byte) bool) (int, bool) {
	for l := m.cursor; l < m.ix.lineCount(); l++ {
		if predicate(m.ix.lineText(l)) {
			return l, true
		}
	}
	return 0, false
}
