package rope

import "unicode/utf8"

// Chunk size constants control the granularity of text storage.
const (
	// MinChunkSize is the size below which neighbouring chunks are merged.
	MinChunkSize = 128

	// MaxChunkSize is the maximum bytes per chunk before splitting.
	MaxChunkSize = 256

	// TargetChunkSize is the preferred chunk size when building.
	TargetChunkSize = (MinChunkSize + MaxChunkSize) / 2
)

// Chunk represents a bounded string stored in leaf nodes.
// Chunks are immutable once created.
type Chunk struct {
	data     string
	summary  TextSummary
	newlines NewlineIndex
}

// NewChunk creates a chunk from a string.
func NewChunk(s string) Chunk {
	return Chunk{
		data:     s,
		summary:  ComputeSummary(s),
		newlines: ComputeNewlineIndex(s),
	}
}

// String returns the chunk's text.
func (c Chunk) String() string {
	return c.data
}

// Summary returns the chunk's precomputed metrics.
func (c Chunk) Summary() TextSummary {
	return c.summary
}

// Len returns the byte length of the chunk.
func (c Chunk) Len() int {
	return len(c.data)
}

// IsEmpty returns true if the chunk contains no text.
func (c Chunk) IsEmpty() bool {
	return len(c.data) == 0
}

// byteOfChar returns the byte offset of the nth rune in the chunk.
func (c *Chunk) byteOfChar(n uint64) int {
	if c.summary.IsASCII() {
		return int(min(n, uint64(len(c.data))))
	}
	var seen uint64
	for i := range c.data {
		if seen == n {
			return i
		}
		seen++
	}
	return len(c.data)
}

// charOfByte returns the number of runes that start before byte offset b.
func (c *Chunk) charOfByte(b int) uint64 {
	b = min(b, len(c.data))
	if c.summary.IsASCII() {
		return uint64(b)
	}
	return uint64(utf8.RuneCountInString(c.data[:b]))
}

// splitIntoChunks splits a string into chunks of appropriate size.
func splitIntoChunks(s string) []Chunk {
	if len(s) == 0 {
		return nil
	}
	if len(s) <= MaxChunkSize {
		return []Chunk{NewChunk(s)}
	}

	chunks := make([]Chunk, 0, len(s)/TargetChunkSize+1)
	remaining := s
	for len(remaining) > MaxChunkSize {
		split := findUTF8Boundary(remaining, TargetChunkSize)
		chunks = append(chunks, NewChunk(remaining[:split]))
		remaining = remaining[split:]
	}
	if len(remaining) > 0 {
		chunks = append(chunks, NewChunk(remaining))
	}
	return chunks
}

// mergeSmallChunks joins neighbouring chunks while either side is below
// MinChunkSize and the result still fits in MaxChunkSize.
func mergeSmallChunks(chunks []Chunk) []Chunk {
	if len(chunks) < 2 {
		return chunks
	}
	out := make([]Chunk, 1, len(chunks))
	out[0] = chunks[0]
	for _, c := range chunks[1:] {
		last := out[len(out)-1]
		if (last.Len() < MinChunkSize || c.Len() < MinChunkSize) && last.Len()+c.Len() <= MaxChunkSize {
			out[len(out)-1] = NewChunk(last.data + c.data)
			continue
		}
		out = append(out, c)
	}
	return out
}

// findUTF8Boundary finds a valid split position near target.
// It prefers splitting after a newline if one exists nearby.
func findUTF8Boundary(s string, target int) int {
	if target >= len(s) {
		return len(s)
	}
	if target <= 0 {
		return 0
	}

	searchStart := max(target-MinChunkSize/4, 1)
	searchEnd := min(target+MinChunkSize/4, len(s))

	for i := target; i < searchEnd; i++ {
		if s[i] == '\n' {
			return i + 1
		}
	}
	for i := target - 1; i >= searchStart; i-- {
		if s[i] == '\n' {
			return i + 1
		}
	}

	pos := target
	for pos > 0 && !isUTF8Start(s[pos]) {
		pos--
	}
	if pos == 0 {
		pos = target
		for pos < len(s) && !isUTF8Start(s[pos]) {
			pos++
		}
	}
	return pos
}

// isUTF8Start returns true if the byte is the start of a UTF-8 sequence.
func isUTF8Start(b byte) bool {
	return b&0xC0 != 0x80
}
