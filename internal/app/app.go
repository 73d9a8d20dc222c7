package app

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/ropepad/internal/renderer"
	"github.com/dshills/ropepad/internal/storage"
	"github.com/dshills/ropepad/internal/tabs"
)

// selfWriteWindow is how long after a save watcher events for the saved
// file are attributed to the save itself.
const selfWriteWindow = 2 * time.Second

// Mode is the input mode of the controller.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeCommand
)

// String returns the label shown on the status line.
func (m Mode) String() string {
	switch m {
	case ModeInsert:
		return "INSERT"
	case ModeCommand:
		return "COMMAND"
	default:
		return "NORMAL"
	}
}

// Options configures an App.
type Options struct {
	// Logger receives diagnostics. Defaults to NullLogger.
	Logger *Logger
	// Watcher, if set, reports external changes to open files.
	Watcher *storage.Watcher
	// Renderer configures drawing.
	Renderer renderer.Options
}

// App is the terminal controller. All methods except Run must be called
// from the goroutine running the event loop.
type App struct {
	screen  tcell.Screen
	tabs    *tabs.Manager
	render  *renderer.Renderer
	status  *renderer.StatusLine
	logger  *Logger
	watcher *storage.Watcher

	mode    Mode
	command []rune

	// Last save time per absolute path, for filtering watcher echoes.
	saved map[string]time.Time
}

// fileEvent carries a watcher event through the screen's event queue.
type fileEvent struct {
	ev storage.Event
}

func (e *fileEvent) When() time.Time { return e.ev.Timestamp }

// New creates a controller drawing to screen. The screen must already be
// initialised; the caller finalises it after Run returns.
func New(screen tcell.Screen, m *tabs.Manager, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = NullLogger
	}
	return &App{
		screen:  screen,
		tabs:    m,
		render:  renderer.New(screen, opts.Renderer),
		status:  renderer.NewStatusLine(),
		logger:  logger.WithComponent("app"),
		watcher: opts.Watcher,
		saved:   make(map[string]time.Time),
	}
}

// Mode returns the current input mode.
func (a *App) Mode() Mode {
	return a.mode
}

// Status returns the current status message.
func (a *App) Status() (string, renderer.MessageType) {
	return a.status.Message()
}

// Tabs returns the tab manager.
func (a *App) Tabs() *tabs.Manager {
	return a.tabs
}

// Run processes events until the user quits, the screen is finalised or ctx
// is cancelled. Quitting is not an error.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for _, t := range a.tabs.Tabs() {
		a.watch(t.Engine.Path())
	}
	if a.watcher != nil {
		go a.forwardWatcher(ctx)
	}
	go func() {
		<-ctx.Done()
		_ = a.screen.PostEvent(tcell.NewEventInterrupt(ErrQuit))
	}()

	a.logger.Info("event loop started with %d tab(s)", a.tabs.Count())
	a.Draw()
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if err := a.HandleEvent(ev); err != nil {
			if errors.Is(err, ErrQuit) {
				a.logger.Info("quit")
				return nil
			}
			return err
		}
		a.Draw()
	}
}

// forwardWatcher posts watcher events to the event loop.
func (a *App) forwardWatcher(ctx context.Context) {
	log := a.logger.WithComponent("watcher")
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-a.watcher.Events():
			if !ok {
				return
			}
			if err := a.screen.PostEvent(&fileEvent{ev: ev}); err != nil {
				log.Warn("dropped event for %s: %v", ev.Path, err)
			}
		case err, ok := <-a.watcher.Errors():
			if !ok {
				return
			}
			log.Warn("watch error: %v", err)
		}
	}
}

// HandleEvent applies one event. It returns ErrQuit when the application
// should exit.
func (a *App) HandleEvent(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *fileEvent:
		a.handleFileEvent(ev.ev)
	case *tcell.EventInterrupt:
		if err, ok := ev.Data().(error); ok {
			return err
		}
	}
	return nil
}

// Draw renders the current state.
func (a *App) Draw() {
	a.status.SetMode(a.mode.String())
	a.status.SetCommand(a.mode == ModeCommand, string(a.command))
	a.render.Draw(a.tabs, a.status)
}

func (a *App) info(msg string) {
	a.status.SetMessage(msg, renderer.MessageInfo)
}

func (a *App) warn(msg string) {
	a.status.SetMessage(msg, renderer.MessageWarning)
}

// fail reports err on the status line and in the log.
func (a *App) fail(err error) {
	a.logger.Error("%v", err)
	a.status.SetMessage(err.Error(), renderer.MessageError)
}

func (a *App) watch(path string) {
	if a.watcher == nil || path == "" {
		return
	}
	if err := a.watcher.Watch(path); err != nil {
		a.logger.Warn("cannot watch %s: %v", path, err)
	}
}

// unwatch stops watching path unless another tab still shows it.
func (a *App) unwatch(path string) {
	if a.watcher == nil || path == "" {
		return
	}
	if _, open := a.tabs.FindByPath(path); open {
		return
	}
	if err := a.watcher.Unwatch(path); err != nil && !errors.Is(err, storage.ErrNotWatching) {
		a.logger.Warn("cannot unwatch %s: %v", path, err)
	}
}

func (a *App) markSaved(path string) {
	if abs, err := filepath.Abs(path); err == nil {
		a.saved[abs] = time.Now()
	}
}

// handleFileEvent reacts to an external change of an open file. Unmodified
// documents are reloaded; modified ones only get a warning.
func (a *App) handleFileEvent(ev storage.Event) {
	if at, ok := a.saved[ev.Path]; ok && ev.Timestamp.Sub(at) < selfWriteWindow {
		a.logger.Debug("ignoring %s of %s after own save", ev.Op, ev.Path)
		return
	}
	tab, ok := a.tabs.FindByPath(ev.Path)
	if !ok {
		return
	}
	e := tab.Engine
	a.logger.Info("%s changed on disk (%s)", ev.Path, ev.Op)

	switch {
	case ev.Op == storage.OpRemove:
		a.warn(e.FileName() + " was removed on disk")
	case e.IsModified():
		a.warn(e.FileName() + " changed on disk; :e! reloads it")
	default:
		if err := e.Reload(); err != nil {
			a.fail(NewOperationError("reload", e.Path(), err))
			return
		}
		a.info(e.FileName() + " reloaded")
	}
}
