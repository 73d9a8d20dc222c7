package rope

import (
	"io"
	"strings"
)

// Rope is an immutable rope data structure for efficient text storage.
// Operations return new Rope values; the original is never modified,
// so a Rope may be read from several goroutines at once.
type Rope struct {
	root *Node
}

// New creates an empty rope.
func New() Rope {
	return Rope{root: newLeafNode()}
}

// FromString creates a rope from a string.
func FromString(s string) Rope {
	if len(s) == 0 {
		return New()
	}
	return buildFromChunks(splitIntoChunks(s))
}

func buildFromChunks(chunks []Chunk) Rope {
	if len(chunks) == 0 {
		return New()
	}
	return Rope{root: buildNodeFromChildren(groupChunks(chunks))}
}

func (r Rope) node() *Node {
	if r.root == nil {
		return newLeafNode()
	}
	return r.root
}

// Len returns the total byte length.
func (r Rope) Len() ByteOffset {
	return r.node().summary.Bytes
}

// LenChars returns the total number of runes.
func (r Rope) LenChars() uint64 {
	return r.node().summary.Chars
}

// LineCount returns the number of lines (newlines + 1).
func (r Rope) LineCount() uint32 {
	return r.node().LineCount()
}

// IsEmpty returns true if the rope contains no text.
func (r Rope) IsEmpty() bool {
	return r.Len() == 0
}

// String returns the full text as a string.
// Use sparingly for large ropes.
func (r Rope) String() string {
	var sb strings.Builder
	sb.Grow(int(r.Len()))
	for it := r.Chunks(); it.Next(); {
		sb.WriteString(it.Chunk().String())
	}
	return sb.String()
}

// WriteTo writes the rope's text to w.
func (r Rope) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for it := r.Chunks(); it.Next(); {
		n, err := io.WriteString(w, it.Chunk().String())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Slice returns the text in the byte range [start, end).
// The range is clamped to the rope.
func (r Rope) Slice(start, end ByteOffset) string {
	end = min(end, r.Len())
	if start >= end {
		return ""
	}
	var sb strings.Builder
	sb.Grow(int(end - start))
	r.node().appendRange(&sb, start, end)
	return sb.String()
}

// Insert returns a new rope with text inserted at the byte offset.
// Offsets past the end append.
func (r Rope) Insert(offset ByteOffset, text string) Rope {
	if len(text) == 0 {
		return r
	}
	offset = min(offset, r.Len())
	return Rope{root: buildNodeFromChildren(r.node().insert(offset, text))}
}

// Delete returns a new rope without the byte range [start, end).
func (r Rope) Delete(start, end ByteOffset) Rope {
	end = min(end, r.Len())
	if start >= end {
		return r
	}

	root := r.node().remove(start, end)
	if root == nil {
		return New()
	}
	for !root.IsLeaf() && len(root.children) == 1 {
		root = root.children[0]
	}
	return Rope{root: root}
}

// CharToByte converts a rune offset to a byte offset.
// Offsets past the end map to Len().
func (r Rope) CharToByte(c uint64) ByteOffset {
	n := r.node()
	if c >= n.summary.Chars {
		return n.summary.Bytes
	}
	if n.summary.IsASCII() {
		return ByteOffset(c)
	}
	return n.charToByte(c)
}

// ByteToChar converts a byte offset to a rune offset.
// Offsets past the end map to LenChars().
func (r Rope) ByteToChar(b ByteOffset) uint64 {
	n := r.node()
	if b >= n.summary.Bytes {
		return n.summary.Chars
	}
	if n.summary.IsASCII() {
		return uint64(b)
	}
	return n.byteToChar(b)
}

// LineStartOffset returns the byte offset of the first byte of line.
// Lines past the end map to Len().
func (r Rope) LineStartOffset(line uint32) ByteOffset {
	n := r.node()
	if line == 0 {
		return 0
	}
	if line > n.summary.Lines {
		return n.summary.Bytes
	}
	return n.lineStart(line)
}

// LineOfOffset returns the line containing the byte offset.
// Offsets past the end map to the last line.
func (r Rope) LineOfOffset(offset ByteOffset) uint32 {
	n := r.node()
	if offset >= n.summary.Bytes {
		return n.summary.Lines
	}
	if n.summary.Flags&FlagHasNewlines == 0 {
		return 0
	}
	return n.lineOfByte(offset)
}

// Height returns the height of the tree; a single leaf has height 0.
func (r Rope) Height() int {
	return int(r.node().height)
}

// ChunkCount returns the number of chunks in the rope.
func (r Rope) ChunkCount() int {
	count := 0
	for it := r.Chunks(); it.Next(); {
		count++
	}
	return count
}

// Equals returns true if two ropes contain the same text.
func (r Rope) Equals(other Rope) bool {
	if r.Len() != other.Len() {
		return false
	}
	return r.String() == other.String()
}
