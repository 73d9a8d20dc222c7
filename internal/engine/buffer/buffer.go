package buffer

import (
	"io"

	"github.com/dshills/ropepad/internal/engine/rope"
)

// Buffer is a Sequence backed by a rope.
// A Buffer is not safe for concurrent use.
type Buffer struct {
	rope rope.Rope
}

// NewBuffer creates an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{rope: rope.New()}
}

// NewBufferFromString creates a buffer holding text.
func NewBufferFromString(text string) *Buffer {
	return &Buffer{rope: rope.FromString(validText(text))}
}

// Insert inserts text at the character offset.
func (b *Buffer) Insert(offset int, text string) {
	text = validText(text)
	if text == "" {
		return
	}
	offset = clamp(offset, 0, b.LenChars())
	b.rope = b.rope.Insert(b.rope.CharToByte(uint64(offset)), text)
}

// Remove deletes count characters starting at offset.
func (b *Buffer) Remove(offset, count int) {
	total := b.LenChars()
	if offset < 0 || count <= 0 || offset > total || count > total-offset {
		return
	}
	start := b.rope.CharToByte(uint64(offset))
	end := b.rope.CharToByte(uint64(offset + count))
	b.rope = b.rope.Delete(start, end)
}

// LineToChar returns the character offset of the start of line.
func (b *Buffer) LineToChar(line int) int {
	if line <= 0 {
		return 0
	}
	if line >= b.LenLines() {
		return b.LenChars()
	}
	return int(b.rope.ByteToChar(b.rope.LineStartOffset(uint32(line))))
}

// CharToLine returns the line containing the character offset.
func (b *Buffer) CharToLine(offset int) int {
	offset = clamp(offset, 0, b.LenChars())
	return int(b.rope.LineOfOffset(b.rope.CharToByte(uint64(offset))))
}

// Line returns the text of line including its terminator.
func (b *Buffer) Line(line int) string {
	if line < 0 || line >= b.LenLines() {
		return ""
	}
	start := b.rope.LineStartOffset(uint32(line))
	end := b.rope.LineStartOffset(uint32(line + 1))
	return b.rope.Slice(start, end)
}

// LineLen returns the character count of line including its terminator.
func (b *Buffer) LineLen(line int) int {
	if line < 0 || line >= b.LenLines() {
		return 0
	}
	return b.LineToChar(line+1) - b.LineToChar(line)
}

// LenChars returns the total number of characters.
func (b *Buffer) LenChars() int {
	return int(b.rope.LenChars())
}

// LenLines returns the number of lines.
func (b *Buffer) LenLines() int {
	return int(b.rope.LineCount())
}

// String returns the full text.
func (b *Buffer) String() string {
	return b.rope.String()
}

// WriteTo writes the buffer's text to w.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	return b.rope.WriteTo(w)
}
