package buffer

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// Lines is a Sequence that keeps one string per line.
// Offset lookups scan the line slice, so it suits modest documents.
// A Lines is not safe for concurrent use.
type Lines struct {
	lines []string // without terminators; never empty
	chars int
}

// NewLines creates a line sequence holding text.
func NewLines(text string) *Lines {
	text = validText(text)
	return &Lines{
		lines: strings.Split(text, "\n"),
		chars: utf8.RuneCountInString(text),
	}
}

// locate maps a clamped character offset to a line and a byte index in it.
// An offset on a terminator maps to the end of that line's content.
func (l *Lines) locate(offset int) (int, int) {
	for i, s := range l.lines {
		n := utf8.RuneCountInString(s)
		if offset <= n {
			return i, byteIndex(s, offset)
		}
		offset -= n + 1
	}
	last := len(l.lines) - 1
	return last, len(l.lines[last])
}

// byteIndex returns the byte index of the nth rune of s.
func byteIndex(s string, n int) int {
	for i := range s {
		if n == 0 {
			return i
		}
		n--
	}
	return len(s)
}

// Insert inserts text at the character offset.
func (l *Lines) Insert(offset int, text string) {
	text = validText(text)
	if text == "" {
		return
	}
	line, col := l.locate(clamp(offset, 0, l.chars))
	s := l.lines[line]
	parts := strings.Split(s[:col]+text+s[col:], "\n")
	l.lines = slices.Replace(l.lines, line, line+1, parts...)
	l.chars += utf8.RuneCountInString(text)
}

// Remove deletes count characters starting at offset.
func (l *Lines) Remove(offset, count int) {
	if offset < 0 || count <= 0 || offset > l.chars || count > l.chars-offset {
		return
	}
	sl, sc := l.locate(offset)
	el, ec := l.locate(offset + count)
	merged := l.lines[sl][:sc] + l.lines[el][ec:]
	l.lines = slices.Replace(l.lines, sl, el+1, merged)
	l.chars -= count
}

// LineToChar returns the character offset of the start of line.
func (l *Lines) LineToChar(line int) int {
	if line <= 0 {
		return 0
	}
	if line >= len(l.lines) {
		return l.chars
	}
	offset := 0
	for _, s := range l.lines[:line] {
		offset += utf8.RuneCountInString(s) + 1
	}
	return offset
}

// CharToLine returns the line containing the character offset.
func (l *Lines) CharToLine(offset int) int {
	line, _ := l.locate(clamp(offset, 0, l.chars))
	return line
}

// Line returns the text of line including its terminator.
func (l *Lines) Line(line int) string {
	if line < 0 || line >= len(l.lines) {
		return ""
	}
	if line == len(l.lines)-1 {
		return l.lines[line]
	}
	return l.lines[line] + "\n"
}

// LineLen returns the character count of line including its terminator.
func (l *Lines) LineLen(line int) int {
	if line < 0 || line >= len(l.lines) {
		return 0
	}
	n := utf8.RuneCountInString(l.lines[line])
	if line < len(l.lines)-1 {
		n++
	}
	return n
}

// LenChars returns the total number of characters.
func (l *Lines) LenChars() int {
	return l.chars
}

// LenLines returns the number of lines.
func (l *Lines) LenLines() int {
	return len(l.lines)
}

// String returns the full text.
func (l *Lines) String() string {
	return strings.Join(l.lines, "\n")
}
