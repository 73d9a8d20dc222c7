package app

import (
	"fmt"
	"path/filepath"
	"strings"
)

// execute runs one command line, without the leading ':'.
func (a *App) execute(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name, args := fields[0], fields[1:]
	arg := strings.Join(args, " ")
	a.logger.Debug("command %q", line)

	switch name {
	case "q", "quit":
		return a.quit(false)
	case "q!", "quit!":
		return a.quit(true)
	case "w", "write":
		a.saveActive(arg)
	case "wq", "x":
		if !a.saveActive(arg) {
			return nil
		}
		return a.quit(false)
	case "wa", "wall":
		a.saveAll()
	case "e", "edit":
		if arg == "" {
			a.fail(NewOperationError("edit", "", ErrNoPath))
			return nil
		}
		a.open(arg)
	case "e!", "edit!":
		a.reloadActive()
	case "tabnew":
		if arg != "" {
			a.open(arg)
			return nil
		}
		a.tabs.New()
	case "tabclose", "close":
		a.closeActive()
	case "tabnext", "tabn":
		a.tabs.Next()
	case "tabprevious", "tabp":
		a.tabs.Prev()
	default:
		a.fail(fmt.Errorf("%w: %s", ErrUnknownCommand, name))
	}
	return nil
}

// quit returns ErrQuit, unless a tab has unsaved changes and force is false.
func (a *App) quit(force bool) error {
	if !force && a.tabs.HasModified() {
		n := len(a.tabs.Modified())
		a.fail(fmt.Errorf("%w in %d tab(s); :q! discards them", ErrUnsavedChanges, n))
		return nil
	}
	return ErrQuit
}

// saveActive saves the active tab, to path if given. It reports whether the
// save succeeded.
func (a *App) saveActive(path string) bool {
	e := a.tabs.Active().Engine

	if path == "" {
		if e.Path() == "" {
			// Saving an unnamed document is a no-op, not a failure.
			a.info(fmt.Sprintf("%s: %v, use :w <path>", e.FileName(), ErrNoPath))
			return false
		}
		a.markSaved(e.Path())
		if err := e.Save(); err != nil {
			a.fail(NewOperationError("save", e.Path(), err))
			return false
		}
		a.logger.Info("saved %s", e.Path())
		a.info(fmt.Sprintf("%q written", e.FileName()))
		return true
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		a.fail(NewOperationError("save", path, err))
		return false
	}
	old := e.Path()
	a.markSaved(abs)
	if err := e.SaveAs(abs); err != nil {
		a.fail(NewOperationError("save", abs, err))
		return false
	}
	if old != abs {
		a.unwatch(old)
		a.watch(abs)
	}
	a.logger.Info("saved %s", abs)
	a.info(fmt.Sprintf("%q written", e.FileName()))
	return true
}

func (a *App) saveAll() {
	for _, t := range a.tabs.Modified() {
		if p := t.Engine.Path(); p != "" {
			a.markSaved(p)
		}
	}
	if err := a.tabs.SaveAll(); err != nil {
		a.fail(NewOperationError("save", "all", err))
		return
	}
	a.info("All files written")
}

func (a *App) open(path string) {
	tab, err := a.tabs.Open(path)
	if err != nil {
		a.fail(NewOperationError("open", path, err))
		return
	}
	a.watch(tab.Engine.Path())
	a.logger.Info("opened %s", tab.Engine.Path())
	a.info(fmt.Sprintf("%q opened", tab.Engine.FileName()))
}

func (a *App) reloadActive() {
	e := a.tabs.Active().Engine
	if e.Path() == "" {
		a.fail(NewOperationError("reload", e.FileName(), ErrNoPath))
		return
	}
	if err := e.Reload(); err != nil {
		a.fail(NewOperationError("reload", e.Path(), err))
		return
	}
	a.info(fmt.Sprintf("%q reloaded", e.FileName()))
}

// closeActive closes the active tab unless it has unsaved changes or is the
// last tab.
func (a *App) closeActive() {
	e := a.tabs.Active().Engine
	if e.IsModified() {
		a.fail(NewOperationError("close", e.FileName(), ErrUnsavedChanges))
		return
	}
	path := e.Path()
	if !a.tabs.CloseActive() {
		a.warn("Cannot close the last tab")
		return
	}
	a.unwatch(path)
}
