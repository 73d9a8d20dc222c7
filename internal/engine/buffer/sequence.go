package buffer

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrUnknownKind is returned when a sequence kind name is not recognised.
var ErrUnknownKind = errors.New("unknown sequence kind")

// Sequence is a mutable character container with line-indexed addressing.
// Offsets and counts are measured in runes.
type Sequence interface {
	// Insert inserts text at offset. The offset is clamped to [0, LenChars()].
	Insert(offset int, text string)

	// Remove deletes count characters starting at offset.
	// Ranges that are empty or not fully inside the sequence are ignored.
	Remove(offset, count int)

	// LineToChar returns the offset of the first character of line.
	// Lines past the end map to LenChars().
	LineToChar(line int) int

	// CharToLine returns the line containing offset, after clamping it.
	CharToLine(offset int) int

	// Line returns the text of line including its trailing '\n', if any.
	// Out-of-range lines return "".
	Line(line int) string

	// LineLen returns the number of characters in line including its terminator.
	LineLen(line int) int

	// LenChars returns the total number of characters.
	LenChars() int

	// LenLines returns the number of lines (newlines + 1).
	LenLines() int

	// String returns the full text.
	String() string
}

// Kind names a Sequence implementation.
type Kind string

const (
	// KindRope selects the rope-backed Buffer.
	KindRope Kind = "rope"

	// KindLines selects the line-slice Lines.
	KindLines Kind = "lines"
)

// ParseKind validates a kind name. The empty string selects KindRope.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case "", KindRope:
		return KindRope, nil
	case KindLines:
		return KindLines, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// New creates a Sequence of the given kind holding text.
func New(kind Kind, text string) (Sequence, error) {
	switch kind {
	case "", KindRope:
		return NewBufferFromString(text), nil
	case KindLines:
		return NewLines(text), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// validText replaces invalid UTF-8 so character counts stay well defined.
func validText(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, string(utf8.RuneError))
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
