// Package document defines the structural model of a parsed Markdown file:
// block and inline nodes with source-line provenance, the line map used for
// bidirectional scroll synchronization, and the derived table of contents.
//
// A Document is an immutable snapshot. Reloads construct a fresh Document
// and swap it in atomically; nothing mutates an installed snapshot.
package document

// TocEntry is one table-of-contents item, derived from a heading block.
type TocEntry struct {
	// Level is the heading level (1-6).
	Level int

	// Title is the plain-text rendering of the heading's inline spans.
	Title string

	// Anchor is the slug derived from Title, disambiguated with a numeric
	// suffix on collision ("intro", "intro-2", ...).
	Anchor string

	// SourceLine is the heading's 0-based start line.
	SourceLine int
}

// Document is the renderable result of parsing one Markdown source.
type Document struct {
	// Blocks is the flattened, document-order sequence of every block,
	// top-level and nested. Order is semantically significant and is
	// never reordered. Nested blocks remain reachable through their
	// parent's Children as well.
	Blocks []*Block

	// LineMap maps between indices into Blocks and 0-based source lines.
	LineMap LineMap

	// TOC lists heading entries in document order.
	TOC []TocEntry

	// WordCount counts whitespace-delimited prose tokens. Code blocks,
	// math, and raw HTML are excluded; code is not prose.
	WordCount int

	// ReadingTimeMinutes is ceil(WordCount / wpm), minimum 1 when any
	// words are present, 0 for an empty document.
	ReadingTimeMinutes int

	// SourceByteLength is the byte length of the source text.
	SourceByteLength int
}

// TopLevel returns the top-level blocks in document order. Renderers walk
// these and recurse through Children; the flat Blocks sequence exists for
// line-map granularity.
func (d *Document) TopLevel() []*Block {
	var top []*Block
	for _, b := range d.Blocks {
		if b.IsTopLevel() {
			top = append(top, b)
		}
	}
	return top
}

// Headings returns every heading block in document order.
func (d *Document) Headings() []*Block {
	var hs []*Block
	for _, b := range d.Blocks {
		if b.Kind == KindHeading {
			hs = append(hs, b)
		}
	}
	return hs
}

// IsEmpty reports whether the document has no blocks. A 0-byte source file
// parses to an empty document, not an error.
func (d *Document) IsEmpty() bool {
	return len(d.Blocks) == 0
}
