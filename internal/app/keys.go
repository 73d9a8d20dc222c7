package app

import (
	"github.com/gdamore/tcell/v2"
)

func (a *App) handleKey(ev *tcell.EventKey) error {
	switch a.mode {
	case ModeInsert:
		a.handleInsertKey(ev)
		return nil
	case ModeCommand:
		return a.handleCommandKey(ev)
	default:
		return a.handleNormalKey(ev)
	}
}

func (a *App) handleNormalKey(ev *tcell.EventKey) error {
	e := a.tabs.Active().Engine

	switch ev.Key() {
	case tcell.KeyCtrlC:
		return a.quit(false)
	case tcell.KeyCtrlS:
		a.saveActive("")
	case tcell.KeyCtrlT:
		a.tabs.New()
		a.info("New tab created")
	case tcell.KeyCtrlW:
		a.closeActive()
	case tcell.KeyTab:
		a.tabs.Next()
	case tcell.KeyBacktab:
		a.tabs.Prev()
	case tcell.KeyUp:
		e.MoveUp()
	case tcell.KeyDown, tcell.KeyEnter:
		e.MoveDown()
	case tcell.KeyLeft:
		e.MoveLeft()
	case tcell.KeyRight:
		e.MoveRight()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return a.quit(false)
		case 'i':
			a.setMode(ModeInsert)
			a.status.ClearMessage()
		case ':':
			a.setMode(ModeCommand)
			a.command = a.command[:0]
		case 'k':
			e.MoveUp()
		case 'j':
			e.MoveDown()
		case 'h':
			e.MoveLeft()
		case 'l':
			e.MoveRight()
		case 'x':
			e.DeleteCharForward()
		}
	}
	return nil
}

func (a *App) handleInsertKey(ev *tcell.EventKey) {
	e := a.tabs.Active().Engine

	switch ev.Key() {
	case tcell.KeyEsc:
		a.setMode(ModeNormal)
	case tcell.KeyEnter:
		e.InsertChar('\n')
	case tcell.KeyTab:
		e.InsertChar('\t')
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		e.Backspace()
	case tcell.KeyDelete:
		e.DeleteCharForward()
	case tcell.KeyUp:
		e.MoveUp()
	case tcell.KeyDown:
		e.MoveDown()
	case tcell.KeyLeft:
		e.MoveLeft()
	case tcell.KeyRight:
		e.MoveRight()
	case tcell.KeyCtrlS:
		a.saveActive("")
	case tcell.KeyRune:
		e.InsertChar(ev.Rune())
	}
}

func (a *App) handleCommandKey(ev *tcell.EventKey) error {
	switch ev.Key() {
	case tcell.KeyEsc:
		a.command = a.command[:0]
		a.setMode(ModeNormal)
	case tcell.KeyEnter:
		line := string(a.command)
		a.command = a.command[:0]
		a.setMode(ModeNormal)
		return a.execute(line)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(a.command) == 0 {
			a.setMode(ModeNormal)
			break
		}
		a.command = a.command[:len(a.command)-1]
	case tcell.KeyRune:
		a.command = append(a.command, ev.Rune())
	}
	return nil
}

func (a *App) setMode(m Mode) {
	if m != a.mode {
		a.logger.Debug("mode %s -> %s", a.mode, m)
	}
	a.mode = m
}
