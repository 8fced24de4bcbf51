// Package goldmark converts raw Markdown text into the document block model
// using the goldmark library for tokenization. The package's own work is the
// layer goldmark does not provide: per-block source-line attribution, math
// and diagram block recognition, and degradation of unknown constructs to
// passthrough blocks.
package goldmark

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/mdview/pkg/document"
)

// DefaultDiagramTags lists the fence info tags treated as diagram blocks
// when no explicit set is configured.
func DefaultDiagramTags() []string {
	return []string{"mermaid"}
}

// Options configures a Parser.
type Options struct {
	// DiagramTags is the set of fence info tags mapped to diagram blocks.
	// Empty means DefaultDiagramTags().
	DiagramTags []string
}

// Parser converts Markdown text into a document.Document. It is pure and
// side-effect free given its input; Parse never fails. Malformed or
// ambiguous constructs degrade to passthrough text rather than raising an
// error.
type Parser struct {
	md          goldmark.Markdown
	diagramTags map[string]bool
}

// New creates a parser. GFM extensions (tables, strikethrough, task lists,
// autolinks) are always enabled; the viewer targets the documents people
// actually write, not strict CommonMark.
func New(opts Options) *Parser {
	tags := opts.DiagramTags
	if len(tags) == 0 {
		tags = DefaultDiagramTags()
	}
	tagSet := make(map[string]bool, len(tags))
	for _, t := range tags {
		tagSet[t] = true
	}

	return &Parser{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
		diagramTags: tagSet,
	}
}

// Parse converts raw Markdown into a document snapshot with blocks, line
// provenance, and a line map. The returned document carries no derived TOC
// or statistics; derive.Apply computes those from the block sequence.
//
// Identical input yields structurally identical output.
func (p *Parser) Parse(content []byte) *document.Document {
	content = copyContent(content)

	reader := text.NewReader(content)
	gmDoc := p.md.Parser().Parse(reader, parser.WithContext(parser.NewContext()))

	m := newMapper(content, p.diagramTags)
	top := m.mapDocument(gmDoc)

	flat := document.Flatten(top)

	return &document.Document{
		Blocks:           flat,
		LineMap:          document.BuildLineMap(flat),
		SourceByteLength: len(content),
	}
}

// copyContent duplicates the input so the document never aliases caller
// memory. An installed snapshot must stay immutable.
func copyContent(content []byte) []byte {
	if len(content) == 0 {
		return nil
	}
	cp := make([]byte, len(content))
	copy(cp, content)
	return cp
}
