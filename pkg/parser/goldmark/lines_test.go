package goldmark

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineIndexBuild(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		count   int
	}{
		{"empty", "", 0},
		{"single line no newline", "hello", 1},
		{"single line with newline", "hello\n", 1},
		{"two lines", "one\ntwo\n", 2},
		{"trailing content without newline", "one\ntwo", 2},
		{"blank line between", "a\n\nb\n", 3},
		{"lone newline", "\n", 1},
		{"crlf", "a\r\nb\r\n", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ix := newLineIndex([]byte(tt.content))
			assert.Equal(t, tt.count, ix.lineCount())
		})
	}
}

func TestLineIndexLineAt(t *testing.T) {
	t.Parallel()

	ix := newLineIndex([]byte("one\ntwo\nthree"))

	tests := []struct {
		name   string
		offset int
		want   int
	}{
		{"start of first line", 0, 0},
		{"inside first line", 2, 0},
		{"newline belongs to its line", 3, 0},
		{"start of second line", 4, 1},
		{"inside third line", 9, 2},
		{"last byte", 12, 2},
		{"past the end clamps", 100, 2},
		{"negative clamps to zero", -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, ix.lineAt(tt.offset))
		})
	}
}

func TestLineIndexLineAtEmpty(t *testing.T) {
	t.Parallel()

	ix := newLineIndex(nil)
	assert.Zero(t, ix.lineAt(0))
	assert.Zero(t, ix.lineAt(10))
	assert.Zero(t, ix.lineCount())
}

func TestLineIndexLineText(t *testing.T) {
	t.Parallel()

	ix := newLineIndex([]byte("one\ntwo\nthree"))

	assert.Equal(t, "one", string(ix.lineText(0)))
	assert.Equal(t, "two", string(ix.lineText(1)))
	assert.Equal(t, "three", string(ix.lineText(2)))
	assert.Nil(t, ix.lineText(3))
	assert.Nil(t, ix.lineText(-1))
}

func TestLineIndexLineTextCRLF(t *testing.T) {
	t.Parallel()

	ix := newLineIndex([]byte("alpha\r\nbeta\r\n"))

	// The terminator, CR included, stays out of the line text.
	assert.Equal(t, "alpha", string(ix.lineText(0)))
	assert.Equal(t, "beta", string(ix.lineText(1)))
}

func TestLineIndexRoundTrip(t *testing.T) {
	t.Parallel()

	content := []byte("# Title\n\nbody text\n\n```go\ncode\n```\n")
	ix := newLineIndex(content)

	// Every byte offset maps to the line whose span contains it.
	for line := 0; line < ix.lineCount(); line++ {
		span := ix.lines[line]
		for off := span.start; off < span.end; off++ {
			assert.Equal(t, line, ix.lineAt(off), "offset %d", off)
		}
	}
}
