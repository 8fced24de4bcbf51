package document

import "sort"

// LineMapEntry pairs a block's index in the flattened sequence with the
// 0-based source line on which the block starts.
type LineMapEntry struct {
	BlockIndex int
	SourceLine int
}

// LineMap is an ordered mapping between structural block indices and source
// lines. SourceLine values are monotonically non-decreasing; ties occur for
// blocks that begin on the same line (a list and its first item, a table and
// its header row).
//
// The two queries below are the entire contract the renderer depends on for
// two-way scroll synchronization.
type LineMap []LineMapEntry

// BuildLineMap constructs the map from a flattened block sequence, one entry
// per block, in document order. O(n) in block count.
func BuildLineMap(flat []*Block) LineMap {
	lm := make(LineMap, 0, len(flat))
	for i, b := range flat {
		lm = append(lm, LineMapEntry{BlockIndex: i, SourceLine: b.StartLine})
	}
	return lm
}

// BlockForLine returns the index of the last block starting at or before the
// given source line: the block containing or preceding that line. Lines
// before the first block map to index 0. Returns 0 for an empty map.
func (lm LineMap) BlockForLine(line int) int {
	if len(lm) == 0 {
		return 0
	}

	// First entry whose SourceLine exceeds line; the answer is just before it.
	idx := sort.Search(len(lm), func(i int) bool {
		return lm[i].SourceLine > line
	})
	if idx == 0 {
		return 0
	}
	return lm[idx-1].BlockIndex
}

// LineForBlock returns the source line on which the block at the given index
// starts, clamping the index into the valid range. Returns 0 for an empty map.
func (lm LineMap) LineForBlock(index int) int {
	if len(lm) == 0 {
		return 0
	}
	if index < 0 {
		index = 0
	}
	if index >= len(lm) {
		index = len(lm) - 1
	}
	return lm[index].SourceLine
}

// IsMonotonic reports whether source lines never decrease across adjacent
// entries. This holds for every map built from a parsed document.
func (lm LineMap) IsMonotonic() bool {
	for i := 1; i < len(lm); i++ {
		if lm[i].SourceLine < lm[i-1].SourceLine {
			return false
		}
	}
	return true
}
