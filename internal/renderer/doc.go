// Package renderer draws the open tabs onto a tcell screen.
//
// The screen is split into three regions:
//
//	┌─────────────────────────────────────────┐
//	│ tab bar                                 │  row 0
//	├─────────────────────────────────────────┤
//	│ gutter │ text                           │  rows 1 .. h-2
//	├─────────────────────────────────────────┤
//	│ status line                             │  row h-1
//	└─────────────────────────────────────────┘
//
// Vertical scrolling is owned by each engine; the renderer calls
// UpdateScroll with the number of text rows before it reads any line.
// Horizontal scrolling is kept per tab by the renderer itself.
//
// Usage:
//
//	r := renderer.New(screen, renderer.DefaultOptions())
//	r.Draw(manager, status)
package renderer
