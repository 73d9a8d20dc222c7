package renderer

import (
	"unicode"

	"github.com/mattn/go-runewidth"
)

// Layout maps character columns to screen columns.
type Layout struct {
	tabWidth int
}

// NewLayout creates a layout with the given tab width.
func NewLayout(tabWidth int) Layout {
	if tabWidth < 1 {
		tabWidth = 4
	}
	return Layout{tabWidth: tabWidth}
}

// TabWidth returns the tab width.
func (l Layout) TabWidth() int {
	return l.tabWidth
}

// NextTabStop returns the next tab stop column after col.
func (l Layout) NextTabStop(col int) int {
	return col + l.tabWidth - (col % l.tabWidth)
}

// CellWidth returns the number of cells r occupies when drawn at screen
// column col.
func (l Layout) CellWidth(r rune, col int) int {
	switch {
	case r == '\t':
		return l.NextTabStop(col) - col
	case unicode.IsControl(r):
		return 1 // drawn as a placeholder
	default:
		return runewidth.RuneWidth(r)
	}
}

// Glyph returns the rune drawn for r.
func (l Layout) Glyph(r rune) rune {
	if r != '\t' && unicode.IsControl(r) {
		return '?'
	}
	return r
}

// Column returns the screen column of character index char in line.
// Indexes past the end map to the column after the last character.
func (l Layout) Column(line string, char int) int {
	col, i := 0, 0
	for _, r := range line {
		if i >= char {
			break
		}
		col += l.CellWidth(r, col)
		i++
	}
	return col
}

// Width returns the number of screen columns line occupies.
func (l Layout) Width(line string) int {
	col := 0
	for _, r := range line {
		col += l.CellWidth(r, col)
	}
	return col
}

// runeWidth is the cell width of r in labels, never less than one.
func runeWidth(r rune) int {
	if w := runewidth.RuneWidth(r); w > 1 {
		return w
	}
	return 1
}
