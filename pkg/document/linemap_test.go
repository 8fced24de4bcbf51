package document_test

import (
	"testing"

	"github.com/yaklabco/mdview/pkg/document"
)

func blockAt(kind document.BlockKind, start, end int) *document.Block {
	return &document.Block{Kind: kind, StartLine: start, EndLine: end}
}

func TestBuildLineMap(t *testing.T) {
	t.Parallel()

	flat := []*document.Block{
		blockAt(document.KindHeading, 0, 0),
		blockAt(document.KindParagraph, 2, 4),
		blockAt(document.KindCodeBlock, 6, 9),
	}

	lm := document.BuildLineMap(flat)

	if len(lm) != 3 {
		t.Fatalf("len = %d, want 3", len(lm))
	}
	for i, want := range []int{0, 2, 6} {
		if lm[i].BlockIndex != i {
			t.Errorf("entry %d: BlockIndex = %d, want %d", i, lm[i].BlockIndex, i)
		}
		if lm[i].SourceLine != want {
			t.Errorf("entry %d: SourceLine = %d, want %d", i, lm[i].SourceLine, want)
		}
	}
	if !lm.IsMonotonic() {
		t.Error("IsMonotonic() = false, want true")
	}
}

func TestBlockForLine(t *testing.T) {
	t.Parallel()

	lm := document.BuildLineMap([]*document.Block{
		blockAt(document.KindHeading, 0, 0),
		blockAt(document.KindParagraph, 2, 4),
		blockAt(document.KindCodeBlock, 6, 9),
	})

	tests := []struct {
		name string
		line int
		want int
	}{
		{"first line", 0, 0},
		{"blank line between blocks", 1, 0},
		{"start of second block", 2, 1},
		{"interior of second block", 3, 1},
		{"start of third block", 6, 2},
		{"past the last block", 100, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lm.BlockForLine(tt.line); got != tt.want {
				t.Errorf("BlockForLine(%d) = %d, want %d", tt.line, got, tt.want)
			}
		})
	}
}

func TestBlockForLineBeforeFirstBlock(t *testing.T) {
	t.Parallel()

	// Leading blank lines: the first block starts at line 3.
	lm := document.BuildLineMap([]*document.Block{
		blockAt(document.KindParagraph, 3, 3),
	})

	if got := lm.BlockForLine(0); got != 0 {
		t.Errorf("BlockForLine(0) = %d, want 0", got)
	}
}

func TestBlockForLineTies(t *testing.T) {
	t.Parallel()

	// A list and its first item start on the same line; the query returns
	// the last block starting at or before that line.
	list := blockAt(document.KindList, 2, 5)
	item := blockAt(document.KindListItem, 2, 3)

	lm := document.BuildLineMap([]*document.Block{
		blockAt(document.KindHeading, 0, 0),
		list,
		item,
	})

	if got := lm.BlockForLine(2); got != 2 {
		t.Errorf("BlockForLine(2) = %d, want 2 (innermost tied block)", got)
	}
}

func TestLineForBlock(t *testing.T) {
	t.Parallel()

	lm := document.BuildLineMap([]*document.Block{
		blockAt(document.KindHeading, 0, 0),
		blockAt(document.KindParagraph, 2, 4),
	})

	if got := lm.LineForBlock(1); got != 2 {
		t.Errorf("LineForBlock(1) = %d, want 2", got)
	}

	// Out-of-range indices clamp.
	if got := lm.LineForBlock(-1); got != 0 {
		t.Errorf("LineForBlock(-1) = %d, want 0", got)
	}
	if got := lm.LineForBlock(99); got != 2 {
		t.Errorf("LineForBlock(99) = %d, want 2", got)
	}
}

func TestLineMapEmpty(t *testing.T) {
	t.Parallel()

	var lm document.LineMap

	if got := lm.BlockForLine(5); got != 0 {
		t.Errorf("BlockForLine(5) = %d, want 0", got)
	}
	if got := lm.LineForBlock(0); got != 0 {
		t.Errorf("LineForBlock(0) = %d, want 0", got)
	}
	if !lm.IsMonotonic() {
		t.Error("IsMonotonic() = false for empty map, want true")
	}
}

func TestLineMapRoundTrip(t *testing.T) {
	t.Parallel()

	// With distinct start lines, mapping a block to its line and back
	// recovers the same index.
	lm := document.BuildLineMap([]*document.Block{
		blockAt(document.KindHeading, 0, 0),
		blockAt(document.KindParagraph, 2, 3),
		blockAt(document.KindCodeBlock, 5, 8),
		blockAt(document.KindParagraph, 10, 10),
	})

	for i := range lm {
		if got := lm.BlockForLine(lm.LineForBlock(i)); got != i {
			t.Errorf("round trip for index %d = %d", i, got)
		}
	}
}
