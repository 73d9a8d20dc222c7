package renderer

import "github.com/gdamore/tcell/v2"

// Theme holds the styles used for each screen element.
type Theme struct {
	Text        tcell.Style
	Gutter      tcell.Style
	TabActive   tcell.Style
	TabInactive tcell.Style
	TabBar      tcell.Style
	StatusBar   tcell.Style
	Modes       map[string]tcell.Style
	Info        tcell.Style
	Warning     tcell.Style
	Error       tcell.Style
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() Theme {
	base := tcell.StyleDefault
	bar := base.Background(tcell.ColorGray).Foreground(tcell.ColorWhite)
	mode := base.Foreground(tcell.ColorBlack).Bold(true)
	return Theme{
		Text:        base,
		Gutter:      base.Foreground(tcell.ColorGray),
		TabActive:   base.Reverse(true).Bold(true),
		TabInactive: bar,
		TabBar:      bar,
		StatusBar:   bar,
		Modes: map[string]tcell.Style{
			"NORMAL":  mode.Background(tcell.ColorBlue),
			"INSERT":  mode.Background(tcell.ColorGreen),
			"COMMAND": mode.Background(tcell.ColorYellow),
		},
		Info:    bar,
		Warning: bar.Foreground(tcell.ColorYellow),
		Error:   bar.Foreground(tcell.ColorRed).Bold(true),
	}
}

// drawString draws s at (x, y) clipped to maxX and returns the next column.
func drawString(s tcell.Screen, x, y, maxX int, str string, style tcell.Style) int {
	for _, r := range str {
		w := runeWidth(r)
		if x+w > maxX {
			break
		}
		s.SetContent(x, y, r, nil, style)
		x += w
	}
	return x
}

func fill(s tcell.Screen, x0, x1, y int, style tcell.Style) {
	for x := x0; x < x1; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}
