// Package tabs keeps the set of open documents and which one is active.
//
// Each Tab owns one engine.Engine. Tabs are identified by a UUID that stays
// stable while tabs are opened, closed and reordered around it.
package tabs

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/ropepad/internal/engine"
	"github.com/dshills/ropepad/internal/storage"
)

// Tab is one open document.
type Tab struct {
	ID     uuid.UUID
	Engine *engine.Engine
}

// Title returns the file name, with "*" appended when there are unsaved changes.
func (t *Tab) Title() string {
	if t.Engine.IsModified() {
		return t.Engine.FileName() + "*"
	}
	return t.Engine.FileName()
}

// pristine reports whether the tab is an untouched, unnamed, empty document.
func (t *Tab) pristine() bool {
	e := t.Engine
	return e.Path() == "" && !e.IsModified() && e.Len() == 0
}

// Manager holds the open tabs. There is always at least one tab.
type Manager struct {
	mu     sync.RWMutex
	tabs   []*Tab
	active int

	store storage.Storage
	opts  []engine.Option
}

// NewManager creates a manager with one empty tab. Documents are read and
// written through store, and every engine is created with opts.
func NewManager(store storage.Storage, opts ...engine.Option) *Manager {
	m := &Manager{store: store, opts: opts}
	m.tabs = []*Tab{m.newTab(nil)}
	return m
}

func (m *Manager) newTab(e *engine.Engine) *Tab {
	if e == nil {
		e = engine.New(m.engineOpts()...)
	}
	return &Tab{ID: uuid.New(), Engine: e}
}

func (m *Manager) engineOpts(extra ...engine.Option) []engine.Option {
	opts := make([]engine.Option, 0, len(m.opts)+len(extra)+1)
	opts = append(opts, m.opts...)
	opts = append(opts, engine.WithStorage(m.store))
	return append(opts, extra...)
}

// Open activates the tab showing path, opening it first if needed.
// A path that does not exist yet opens an empty document that will be
// created on save. An untouched empty tab is replaced instead of kept.
func (m *Manager) Open(path string) (*Tab, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i, t := range m.tabs {
		if t.Engine.Path() == abs {
			m.active = i
			return t, nil
		}
	}

	e, err := engine.Open(m.store, abs, m.engineOpts()...)
	if errors.Is(err, fs.ErrNotExist) {
		e, err = engine.New(m.engineOpts(engine.WithPath(abs))...), nil
	}
	if err != nil {
		return nil, err
	}

	tab := m.newTab(e)
	if len(m.tabs) == 1 && m.tabs[0].pristine() {
		m.tabs[0] = tab
		m.active = 0
		return tab, nil
	}
	m.tabs = append(m.tabs, tab)
	m.active = len(m.tabs) - 1
	return tab, nil
}

// New opens an empty, unnamed tab and activates it.
func (m *Manager) New() *Tab {
	m.mu.Lock()
	defer m.mu.Unlock()

	tab := m.newTab(nil)
	m.tabs = append(m.tabs, tab)
	m.active = len(m.tabs) - 1
	return tab
}

// CloseActive closes the active tab. The last tab is never closed; in that
// case CloseActive returns false.
func (m *Manager) CloseActive() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.tabs) <= 1 {
		return false
	}
	m.tabs = append(m.tabs[:m.active], m.tabs[m.active+1:]...)
	if m.active >= len(m.tabs) {
		m.active = len(m.tabs) - 1
	}
	return true
}

// Next activates the following tab, wrapping around.
func (m *Manager) Next() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.tabs) > 1 {
		m.active = (m.active + 1) % len(m.tabs)
	}
}

// Prev activates the preceding tab, wrapping around.
func (m *Manager) Prev() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.tabs) > 1 {
		m.active = (m.active + len(m.tabs) - 1) % len(m.tabs)
	}
}

// Active returns the active tab.
func (m *Manager) Active() *Tab {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tabs[m.active]
}

// ActiveIndex returns the position of the active tab.
func (m *Manager) ActiveIndex() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

// Activate makes the tab with id active. It reports whether the tab exists.
func (m *Manager) Activate(id uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.tabs {
		if t.ID == id {
			m.active = i
			return true
		}
	}
	return false
}

// Tabs returns the open tabs in display order.
func (m *Manager) Tabs() []*Tab {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Tab, len(m.tabs))
	copy(out, m.tabs)
	return out
}

// Count returns the number of open tabs.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tabs)
}

// Get returns the tab with id.
func (m *Manager) Get(id uuid.UUID) (*Tab, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.tabs {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// FindByPath returns the tab showing path.
func (m *Manager) FindByPath(path string) (*Tab, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.tabs {
		if t.Engine.Path() == abs {
			return t, true
		}
	}
	return nil, false
}

// HasModified reports whether any tab has unsaved changes.
func (m *Manager) HasModified() bool {
	return len(m.Modified()) > 0
}

// Modified returns the tabs with unsaved changes.
func (m *Manager) Modified() []*Tab {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var dirty []*Tab
	for _, t := range m.tabs {
		if t.Engine.IsModified() {
			dirty = append(dirty, t)
		}
	}
	return dirty
}

// SaveActive saves the active tab.
func (m *Manager) SaveActive() error {
	return m.Active().Engine.Save()
}

// SaveAll saves every modified tab. All tabs are attempted; the failures
// are returned joined.
func (m *Manager) SaveAll() error {
	var errs []error
	for _, t := range m.Modified() {
		if err := t.Engine.Save(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
