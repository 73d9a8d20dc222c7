package cursor

import "fmt"

// Document is the read-only view of a text sequence that cursors need.
// buffer.Sequence satisfies it.
type Document interface {
	LenLines() int
	LineLen(line int) int
	LineToChar(line int) int
	CharToLine(offset int) int
}

// Cursor is a logical position in a document. Line and Column are 0-indexed.
// Cursor is an immutable value type.
type Cursor struct {
	Line   int
	Column int
}

// New creates a cursor at line and column. Negative values become 0.
func New(line, column int) Cursor {
	return Cursor{Line: max(line, 0), Column: max(column, 0)}
}

// String returns a string representation of the cursor.
func (c Cursor) String() string {
	return fmt.Sprintf("Cursor(%d:%d)", c.Line, c.Column)
}

// ClampLine limits line to [0, LenLines()-1].
func ClampLine(doc Document, line int) int {
	return max(0, min(line, doc.LenLines()-1))
}

// LastColumn returns the last valid column of line.
// For a line ending in '\n' that is the terminator's column. For the final
// line it is the line length, the end of the document.
func LastColumn(doc Document, line int) int {
	line = ClampLine(doc, line)
	n := doc.LineLen(line)
	if line < doc.LenLines()-1 {
		return max(n-1, 0)
	}
	return n
}

// ClampColumn limits column to [0, LastColumn(line)].
func ClampColumn(doc Document, line, column int) int {
	return max(0, min(column, LastColumn(doc, line)))
}

// Clamp returns the nearest valid position in doc.
func (c Cursor) Clamp(doc Document) Cursor {
	line := ClampLine(doc, c.Line)
	return Cursor{Line: line, Column: ClampColumn(doc, line, c.Column)}
}

// CharIndex returns the absolute character offset of the clamped cursor.
// The result is always within [0, total characters].
func (c Cursor) CharIndex(doc Document) int {
	c = c.Clamp(doc)
	return doc.LineToChar(c.Line) + c.Column
}

// FromCharIndex returns the cursor at an absolute character offset.
func FromCharIndex(doc Document, offset int) Cursor {
	line := doc.CharToLine(offset)
	start := doc.LineToChar(line)
	return Cursor{Line: line, Column: offset - start}.Clamp(doc)
}
