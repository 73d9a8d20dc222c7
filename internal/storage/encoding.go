package storage

import (
	"fmt"
	"strings"
)

// LineEnding represents the line ending style of a file.
type LineEnding string

const (
	// LineEndingLF is Unix-style line ending (\n).
	LineEndingLF LineEnding = "lf"

	// LineEndingCRLF is Windows-style line ending (\r\n).
	LineEndingCRLF LineEnding = "crlf"

	// LineEndingCR is old Mac-style line ending (\r).
	LineEndingCR LineEnding = "cr"

	// LineEndingMixed indicates mixed line endings.
	LineEndingMixed LineEnding = "mixed"
)

// utf8BOM is the UTF-8 byte order mark.
const utf8BOM = "\ufeff"

// Sequence returns the characters written for the line ending.
// Mixed endings are written as LF.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// ParseLineEnding parses a configured line ending policy.
// "auto" and "" return the empty LineEnding, meaning keep what the file uses.
func ParseLineEnding(s string) (LineEnding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return "", nil
	case "lf", "unix":
		return LineEndingLF, nil
	case "crlf", "dos", "windows":
		return LineEndingCRLF, nil
	case "cr", "mac":
		return LineEndingCR, nil
	default:
		return "", fmt.Errorf("unknown line ending %q", s)
	}
}

// countLineEndings counts each line ending style in content.
func countLineEndings(content string) (lf, crlf, cr int) {
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '\r':
			if i+1 < len(content) && content[i+1] == '\n' {
				crlf++
				i++
			} else {
				cr++
			}
		case '\n':
			lf++
		}
	}
	return lf, crlf, cr
}

// DetectLineEnding detects the dominant line ending in content.
// Returns LineEndingMixed if several styles each make up at least 10%.
func DetectLineEnding(content string) LineEnding {
	lf, crlf, cr := countLineEndings(content)

	total := lf + crlf + cr
	if total == 0 {
		return LineEndingLF
	}

	threshold := max(total/10, 1)
	styles := 0
	for _, n := range []int{lf, crlf, cr} {
		if n >= threshold {
			styles++
		}
	}
	if styles > 1 {
		return LineEndingMixed
	}
	return majority(lf, crlf, cr)
}

// DominantLineEnding returns the most frequent line ending in content,
// never LineEndingMixed. Ties and content without endings give LF.
func DominantLineEnding(content string) LineEnding {
	return majority(countLineEndings(content))
}

func majority(lf, crlf, cr int) LineEnding {
	switch {
	case crlf > lf && crlf >= cr:
		return LineEndingCRLF
	case cr > lf && cr > crlf:
		return LineEndingCR
	default:
		return LineEndingLF
	}
}

// NormalizeLineEndings converts every line ending in content to ending.
func NormalizeLineEndings(content string, ending LineEnding) string {
	if !strings.ContainsRune(content, '\r') && ending.Sequence() == "\n" {
		return content
	}

	lf := strings.ReplaceAll(content, "\r\n", "\n")
	lf = strings.ReplaceAll(lf, "\r", "\n")
	if seq := ending.Sequence(); seq != "\n" {
		return strings.ReplaceAll(lf, "\n", seq)
	}
	return lf
}

// StripBOM removes a UTF-8 byte order mark. It reports whether one was found.
func StripBOM(content string) (string, bool) {
	if strings.HasPrefix(content, utf8BOM) {
		return content[len(utf8BOM):], true
	}
	return content, false
}

// AddBOM prefixes content with a UTF-8 byte order mark if it has none.
func AddBOM(content string) string {
	if strings.HasPrefix(content, utf8BOM) {
		return content
	}
	return utf8BOM + content
}

// Format records how a document was laid out on disk.
type Format struct {
	LineEnding LineEnding
	BOM        bool
}

// DefaultFormat is used for documents that never came from disk.
func DefaultFormat() Format {
	return Format{LineEnding: LineEndingLF}
}

// Decode turns file content into editor text: the BOM is removed and every
// line ending becomes '\n'. The returned Format restores the original layout;
// a file with mixed endings is saved with its most frequent one.
func Decode(raw string) (string, Format) {
	text, bom := StripBOM(raw)
	f := Format{LineEnding: DominantLineEnding(text), BOM: bom}
	return NormalizeLineEndings(text, LineEndingLF), f
}

// Encode is the inverse of Decode.
func Encode(text string, f Format) string {
	out := NormalizeLineEndings(text, f.LineEnding)
	if f.BOM {
		out = AddBOM(out)
	}
	return out
}
