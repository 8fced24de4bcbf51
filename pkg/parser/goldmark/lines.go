package goldmark

import "sort"

// lineIndex is an offset-to-line table over the raw source. Lines are
// 0-based and both LF and CRLF endings are handled. A trailing newline does
// not produce an empty final line.
type lineIndex struct {
	content []byte
	lines   []lineSpan
}

// lineSpan records the byte extents of one source line.
type lineSpan struct {
	start        int // first byte of the line
	newlineStart int // first byte of the line terminator
	end          int // one past the terminator
}

func newLineIndex(content []byte) *lineIndex {
	ix := &lineIndex{content: content}

	lineStart := 0
	for i, c := range content {
		if c != '\n' {
			continue
		}
		newlineStart := i
		if i > 0 && content[i-1] == '\r' {
			newlineStart = i - 1
		}
		ix.lines = append(ix.lines, lineSpan{
			start:        lineStart,
			newlineStart: newlineStart,
			end:          i + 1,
		})
		lineStart = i + 1
	}
	if lineStart < len(content) {
		ix.lines = append(ix.lines, lineSpan{
			start:        lineStart,
			newlineStart: len(content),
			end:          len(content),
		})
	}
	return ix
}

// lineAt converts a byte offset to the 0-based line containing it. Offsets
// past the end clamp to the last line.
func (ix *lineIndex) lineAt(offset int) int {
	if len(ix.lines) == 0 || offset < 0 {
		return 0
	}
	if offset >= len(ix.content) {
		return len(ix.lines) - 1
	}
	return sort.Search(len(ix.lines), func(i int) bool {
		return ix.lines[i].end > offset
	})
}

// lineText returns the content of a line, excluding its terminator.
func (ix *lineIndex) lineText(line int) []byte {
	if line < 0 || line >= len(ix.lines) {
		return nil
	}
	span := ix.lines[line]
	return ix.content[span.start:span.newlineStart]
}

func (ix *lineIndex) lineCount() int {
	return len(ix.lines)
}
