package renderer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/dshills/ropepad/internal/engine/viewport"
	"github.com/dshills/ropepad/internal/tabs"
)

// minGutterDigits is the narrowest line number column.
const minGutterDigits = 4

// Options configures the renderer.
type Options struct {
	TabWidth        int
	ShowLineNumbers bool
	Theme           Theme
}

// DefaultOptions returns the default renderer options.
func DefaultOptions() Options {
	return Options{
		TabWidth:        4,
		ShowLineNumbers: true,
		Theme:           DefaultTheme(),
	}
}

// Renderer draws tabs onto a screen. It is used from the event loop
// goroutine only.
type Renderer struct {
	screen tcell.Screen
	opts   Options
	layout Layout

	// Horizontal scroll per tab.
	hscroll map[uuid.UUID]*viewport.Scroller
}

// New creates a renderer for screen.
func New(screen tcell.Screen, opts Options) *Renderer {
	return &Renderer{
		screen:  screen,
		opts:    opts,
		layout:  NewLayout(opts.TabWidth),
		hscroll: make(map[uuid.UUID]*viewport.Scroller),
	}
}

// TextRows returns the number of rows available for document text.
func (r *Renderer) TextRows() int {
	_, h := r.screen.Size()
	return max(0, h-2)
}

// HScroll returns the horizontal offset of tab id.
func (r *Renderer) HScroll(id uuid.UUID) int {
	if s, ok := r.hscroll[id]; ok {
		return s.Offset()
	}
	return 0
}

// Draw renders the tab bar, the active document and the status line, then
// shows the frame.
func (r *Renderer) Draw(m *tabs.Manager, status *StatusLine) {
	scr := r.screen
	scr.Clear()
	w, h := scr.Size()
	if w <= 0 || h <= 0 {
		return
	}

	r.drawTabBar(m, w)

	tab := m.Active()
	rows := r.TextRows()
	tab.Engine.UpdateScroll(rows)
	cur := tab.Engine.Cursor()
	status.SetPosition(cur.Line, cur.Column)

	cx, cy, visible := r.drawText(tab, w, rows)

	commandShown := false
	if h >= 2 {
		commandShown = status.Draw(scr, h-1, w, r.opts.Theme)
	}
	if !commandShown {
		if visible {
			scr.ShowCursor(cx, cy)
		} else {
			scr.HideCursor()
		}
	}

	r.prune(m)
	scr.Show()
}

func (r *Renderer) drawTabBar(m *tabs.Manager, width int) {
	theme := r.opts.Theme
	fill(r.screen, 0, width, 0, theme.TabBar)

	active := m.ActiveIndex()
	x := 0
	for i, t := range m.Tabs() {
		style := theme.TabInactive
		if i == active {
			style = theme.TabActive
		}
		x = drawString(r.screen, x, 0, width, " "+t.Title()+" ", style)
		if x >= width {
			break
		}
	}
}

// gutterWidth returns the width of the line number column, including the
// separating space.
func (r *Renderer) gutterWidth(lines int) int {
	if !r.opts.ShowLineNumbers {
		return 0
	}
	return max(minGutterDigits, len(strconv.Itoa(lines))) + 1
}

// drawText draws the visible lines and returns where the terminal cursor
// belongs.
func (r *Renderer) drawText(tab *tabs.Tab, width, rows int) (x, y int, visible bool) {
	e := tab.Engine
	theme := r.opts.Theme

	gutter := r.gutterWidth(e.LineCount())
	textW := max(0, width-gutter)

	cur := e.Cursor()
	curLine := strings.TrimSuffix(e.Line(cur.Line), "\n")
	cx := r.layout.Column(curLine, cur.Column)

	hs := r.scroller(tab.ID)
	hs.Update(cx, r.layout.Width(curLine)+1, textW)
	hoff := hs.Offset()

	start, end := e.VisibleLines(rows)
	for i := start; i < end; i++ {
		row := 1 + i - start
		if gutter > 0 {
			drawString(r.screen, 0, row, gutter, fmt.Sprintf("%*d ", gutter-1, i+1), theme.Gutter)
		}
		r.drawLine(strings.TrimSuffix(e.Line(i), "\n"), gutter, row, hoff, textW)
	}

	visible = cur.Line >= start && cur.Line < end && cx-hoff < textW
	return gutter + cx - hoff, 1 + cur.Line - start, visible
}

// drawLine draws the part of line between screen columns hoff and
// hoff+width starting at x0.
func (r *Renderer) drawLine(line string, x0, y, hoff, width int) {
	style := r.opts.Theme.Text
	limit := hoff + width
	col := 0
	for _, ch := range line {
		if col >= limit {
			break
		}
		cw := r.layout.CellWidth(ch, col)
		if col >= hoff && col+cw <= limit {
			x := x0 + col - hoff
			switch {
			case ch == '\t':
				fill(r.screen, x, x+cw, y, style)
			case cw > 0:
				r.screen.SetContent(x, y, r.layout.Glyph(ch), nil, style)
			}
		}
		col += cw
	}
}

func (r *Renderer) scroller(id uuid.UUID) *viewport.Scroller {
	s, ok := r.hscroll[id]
	if !ok {
		s = &viewport.Scroller{}
		r.hscroll[id] = s
	}
	return s
}

// prune forgets the scroll state of closed tabs.
func (r *Renderer) prune(m *tabs.Manager) {
	if len(r.hscroll) <= m.Count() {
		return
	}
	open := make(map[uuid.UUID]bool, m.Count())
	for _, t := range m.Tabs() {
		open[t.ID] = true
	}
	for id := range r.hscroll {
		if !open[id] {
			delete(r.hscroll, id)
		}
	}
}
