package renderer

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// MessageType indicates the kind of status message.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageWarning
	MessageError
)

// StatusLine is the bottom row: mode, message or command input, and the
// cursor position.
type StatusLine struct {
	mode string

	commandActive bool
	command       string

	message     string
	messageType MessageType

	line, col int // 0-based
}

// NewStatusLine creates a status line in NORMAL mode.
func NewStatusLine() *StatusLine {
	return &StatusLine{mode: "NORMAL"}
}

// SetMode sets the mode label, e.g. "INSERT".
func (s *StatusLine) SetMode(mode string) {
	s.mode = mode
}

// Mode returns the mode label.
func (s *StatusLine) Mode() string {
	return s.mode
}

// SetCommand shows the command line with buf as its content.
func (s *StatusLine) SetCommand(active bool, buf string) {
	s.commandActive = active
	s.command = buf
}

// SetMessage sets the status message.
func (s *StatusLine) SetMessage(msg string, t MessageType) {
	s.message = msg
	s.messageType = t
}

// ClearMessage clears the status message.
func (s *StatusLine) ClearMessage() {
	s.message = ""
	s.messageType = MessageNone
}

// Message returns the status message and its type.
func (s *StatusLine) Message() (string, MessageType) {
	return s.message, s.messageType
}

// SetPosition sets the 0-based cursor position shown on the right.
func (s *StatusLine) SetPosition(line, col int) {
	s.line, s.col = line, col
}

// Draw renders the status line on row y. When the command line is active
// the terminal cursor is placed at the end of the input and Draw returns
// true.
func (s *StatusLine) Draw(scr tcell.Screen, y, width int, theme Theme) bool {
	fill(scr, 0, width, y, theme.StatusBar)

	label := " " + s.mode + " "
	if s.commandActive {
		label = " :" + s.command
	}
	modeStyle, ok := theme.Modes[s.mode]
	if !ok {
		modeStyle = theme.StatusBar.Bold(true)
	}
	x := drawString(scr, 0, y, width, label, modeStyle)
	cursorX := x
	x = drawString(scr, x, y, width, " ", theme.StatusBar)

	pos := fmt.Sprintf("%d:%d ", s.line+1, s.col+1)
	posX := width - runewidth.StringWidth(pos)

	if s.message != "" && !s.commandActive {
		style := theme.Info
		switch s.messageType {
		case MessageWarning:
			style = theme.Warning
		case MessageError:
			style = theme.Error
		}
		drawString(scr, x, y, max(x, posX-1), s.message, style)
	}
	if posX > x {
		drawString(scr, posX, y, width, pos, theme.StatusBar)
	}

	if s.commandActive {
		scr.ShowCursor(cursorX, y)
	}
	return s.commandActive
}
