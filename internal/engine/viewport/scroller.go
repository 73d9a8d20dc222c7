// Package viewport tracks which slice of a document is visible.
package viewport

// Scroller holds the index of the first visible item (line or column) and
// scrolls it the least amount needed to keep a target item visible.
// The zero value is ready to use.
type Scroller struct {
	offset int
}

// Offset returns the index of the first visible item.
func (s *Scroller) Offset() int {
	return s.offset
}

// Reset scrolls back to the start.
func (s *Scroller) Reset() {
	s.offset = 0
}

// Update scrolls so that pos lies in [offset, offset+size-1].
// total is the number of items in the document. A window that could show
// everything starts at 0, and the window never extends past the last item
// when the document is longer than it. size <= 0 is a no-op.
// Returns true if the offset changed.
func (s *Scroller) Update(pos, total, size int) bool {
	if size <= 0 {
		return false
	}
	pos = max(0, min(pos, max(total-1, 0)))

	offset := s.offset
	switch {
	case pos < offset:
		offset = pos
	case pos >= offset+size:
		offset = pos - size + 1
	}
	offset = max(0, min(offset, total-size))

	changed := offset != s.offset
	s.offset = offset
	return changed
}

// Visible returns the half-open range [start, end) of items shown in a
// window of size over total items.
func (s *Scroller) Visible(total, size int) (start, end int) {
	start = min(s.offset, max(total, 0))
	end = min(start+max(size, 0), total)
	return start, end
}
