package rope

// ByteOffset represents an absolute byte position in the rope.
type ByteOffset uint64

// TextSummary holds aggregated metrics for a text span.
type TextSummary struct {
	// Bytes is the UTF-8 byte count.
	Bytes ByteOffset

	// Chars is the rune count.
	Chars uint64

	// Lines is the number of newline characters.
	Lines uint32

	// Flags indicate text properties for fast paths.
	Flags TextFlags
}

// TextFlags indicate text properties for optimization fast paths.
type TextFlags uint8

const (
	// FlagASCII indicates all characters are ASCII (< 128).
	// For ASCII spans rune offsets and byte offsets coincide.
	FlagASCII TextFlags = 1 << iota

	// FlagHasNewlines indicates the text contains newline characters.
	FlagHasNewlines
)

// Add combines two summaries.
func (s TextSummary) Add(other TextSummary) TextSummary {
	if s.Bytes == 0 {
		return other
	}
	if other.Bytes == 0 {
		return s
	}

	return TextSummary{
		Bytes: s.Bytes + other.Bytes,
		Chars: s.Chars + other.Chars,
		Lines: s.Lines + other.Lines,
		Flags: (s.Flags & other.Flags & FlagASCII) | ((s.Flags | other.Flags) & FlagHasNewlines),
	}
}

// Zero returns the identity element for Add.
func (TextSummary) Zero() TextSummary {
	return TextSummary{Flags: FlagASCII}
}

// IsZero returns true if the summary covers no text.
func (s TextSummary) IsZero() bool {
	return s.Bytes == 0
}

// IsASCII reports whether the span is pure ASCII.
func (s TextSummary) IsASCII() bool {
	return s.Flags&FlagASCII != 0
}

// ComputeSummary calculates metrics for a string.
func ComputeSummary(s string) TextSummary {
	sum := TextSummary{Bytes: ByteOffset(len(s)), Flags: FlagASCII}

	for i := 0; i < len(s); i++ {
		b := s[i]
		if b >= 0x80 {
			sum.Flags &^= FlagASCII
		}
		if isUTF8Start(b) {
			sum.Chars++
		}
		if b == '\n' {
			sum.Lines++
			sum.Flags |= FlagHasNewlines
		}
	}

	return sum
}
