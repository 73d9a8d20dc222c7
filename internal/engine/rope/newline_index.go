package rope

import "sort"

// NewlineIndex records the byte positions of newlines within a chunk.
// Chunks with few newlines keep them inline and avoid an allocation.
type NewlineIndex struct {
	inline [MaxInlineNewlines]uint16
	count  uint16

	// positions is only allocated when count > MaxInlineNewlines.
	positions []uint16
}

// MaxInlineNewlines is the number of newline positions stored inline.
const MaxInlineNewlines = 4

// ComputeNewlineIndex scans a string and builds a newline index.
// The string must be shorter than 64KiB; chunks are far smaller.
func ComputeNewlineIndex(s string) NewlineIndex {
	var idx NewlineIndex

	count := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			count++
		}
	}
	if count == 0 {
		return idx
	}

	idx.count = uint16(count)
	if count > MaxInlineNewlines {
		idx.positions = make([]uint16, 0, count)
	}

	n := 0
	for i := 0; i < len(s) && n < count; i++ {
		if s[i] != '\n' {
			continue
		}
		if count > MaxInlineNewlines {
			idx.positions = append(idx.positions, uint16(i))
		} else {
			idx.inline[n] = uint16(i)
		}
		n++
	}

	return idx
}

// Count returns the number of newlines.
func (idx *NewlineIndex) Count() uint32 {
	return uint32(idx.count)
}

// Position returns the byte offset of the nth newline (0-indexed).
// Returns -1 if n is out of range.
func (idx *NewlineIndex) Position(n uint32) int {
	if n >= uint32(idx.count) {
		return -1
	}
	if idx.count <= MaxInlineNewlines {
		return int(idx.inline[n])
	}
	return int(idx.positions[n])
}

// SearchLine returns the byte offset of the start of line `line` within the
// chunk, counting lines from the chunk start. Line 0 starts at 0.
// Returns -1 if the chunk has fewer than `line` newlines.
//
// For "abc\ndef\nghi": SearchLine(1) == 4, SearchLine(2) == 8.
func (idx *NewlineIndex) SearchLine(line uint32) int {
	if line == 0 {
		return 0
	}
	pos := idx.Position(line - 1)
	if pos < 0 {
		return -1
	}
	return pos + 1
}

// CountBefore returns the number of newlines at byte positions < offset.
func (idx *NewlineIndex) CountBefore(offset int) uint32 {
	n := int(idx.count)
	return uint32(sort.Search(n, func(i int) bool {
		return idx.Position(uint32(i)) >= offset
	}))
}
