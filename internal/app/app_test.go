package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/ropepad/internal/renderer"
	"github.com/dshills/ropepad/internal/storage"
	"github.com/dshills/ropepad/internal/tabs"
)

type harness struct {
	app    *App
	store  *storage.MemStorage
	screen tcell.SimulationScreen
}

func newHarness(t *testing.T, files map[string]string, open ...string) *harness {
	t.Helper()
	store := storage.NewMemStorage()
	for p, c := range files {
		if err := store.WriteText(p, c); err != nil {
			t.Fatal(err)
		}
	}
	m := tabs.NewManager(store)
	for _, p := range open {
		if _, err := m.Open(p); err != nil {
			t.Fatalf("Open(%s) failed: %v", p, err)
		}
	}

	scr := tcell.NewSimulationScreen("UTF-8")
	if err := scr.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	scr.SetSize(40, 8)
	t.Cleanup(scr.Fini)

	a := New(scr, m, Options{Renderer: renderer.DefaultOptions()})
	return &harness{app: a, store: store, screen: scr}
}

func (h *harness) key(t *testing.T, k tcell.Key) error {
	t.Helper()
	mod := tcell.ModNone
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		mod = tcell.ModCtrl
	}
	return h.app.HandleEvent(tcell.NewEventKey(k, 0, mod))
}

func (h *harness) typeText(t *testing.T, s string) {
	t.Helper()
	for _, r := range s {
		if err := h.app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)); err != nil {
			t.Fatalf("typing %q: %v", r, err)
		}
	}
}

// command types ":line" and Enter and returns the handler result.
func (h *harness) command(t *testing.T, line string) error {
	t.Helper()
	h.typeText(t, ":"+line)
	return h.key(t, tcell.KeyEnter)
}

func (h *harness) text() string {
	return h.app.Tabs().Active().Engine.Text()
}

func (h *harness) message() string {
	msg, _ := h.app.Status()
	return msg
}

func TestInsertMode(t *testing.T) {
	h := newHarness(t, nil)

	h.typeText(t, "i")
	if h.app.Mode() != ModeInsert {
		t.Fatalf("expected insert mode, got %s", h.app.Mode())
	}
	h.typeText(t, "hello")
	h.key(t, tcell.KeyEnter)
	h.typeText(t, "wrld")
	h.key(t, tcell.KeyLeft)
	h.key(t, tcell.KeyLeft)
	h.key(t, tcell.KeyLeft)
	h.typeText(t, "o")
	h.key(t, tcell.KeyTab)
	h.key(t, tcell.KeyBackspace)
	h.key(t, tcell.KeyEsc)

	if h.app.Mode() != ModeNormal {
		t.Errorf("expected normal mode, got %s", h.app.Mode())
	}
	if got := h.text(); got != "hello\nworld" {
		t.Errorf("expected %q, got %q", "hello\nworld", got)
	}
	if !h.app.Tabs().Active().Engine.IsModified() {
		t.Error("expected document to be modified")
	}
}

func TestNormalModeMovement(t *testing.T) {
	h := newHarness(t, map[string]string{"/d/a.txt": "abc\ndef\nghi"}, "/d/a.txt")
	e := h.app.Tabs().Active().Engine

	h.typeText(t, "jjl")
	if c := e.Cursor(); c.Line != 2 || c.Column != 1 {
		t.Errorf("expected 2:1, got %v", c)
	}
	h.typeText(t, "kh")
	h.key(t, tcell.KeyRight)
	h.key(t, tcell.KeyUp)
	if c := e.Cursor(); c.Line != 0 || c.Column != 1 {
		t.Errorf("expected 0:1, got %v", c)
	}
	h.typeText(t, "x")
	if got := h.text(); got != "ac\ndef\nghi" {
		t.Errorf("expected x to delete forward, got %q", got)
	}
}

func TestCtrlSSaves(t *testing.T) {
	h := newHarness(t, map[string]string{"/d/a.txt": "abc"}, "/d/a.txt")

	h.typeText(t, "iZ")
	if err := h.key(t, tcell.KeyCtrlS); err != nil {
		t.Fatal(err)
	}
	got, _ := h.store.ReadText("/d/a.txt")
	if got != "Zabc" {
		t.Errorf("expected %q, got %q", "Zabc", got)
	}
	if !strings.Contains(h.message(), "written") {
		t.Errorf("expected written message, got %q", h.message())
	}
	if h.app.Tabs().HasModified() {
		t.Error("expected no modified tabs after save")
	}
}

func TestSaveWithoutPath(t *testing.T) {
	h := newHarness(t, nil)
	h.typeText(t, "iabc")
	h.key(t, tcell.KeyEsc)

	h.command(t, "w")
	msg, kind := h.app.Status()
	if !strings.Contains(msg, ErrNoPath.Error()) {
		t.Errorf("expected no file name message, got %q", msg)
	}
	if kind != renderer.MessageInfo {
		t.Errorf("expected info message, got %v", kind)
	}

	h.key(t, tcell.KeyCtrlS)
	if _, kind := h.app.Status(); kind != renderer.MessageInfo {
		t.Errorf("expected Ctrl-S on unnamed document to report info, got %v", kind)
	}
	if !h.app.Tabs().Active().Engine.IsModified() {
		t.Error("unnamed document should stay modified")
	}

	h.command(t, "w /d/new.txt")
	got, err := h.store.ReadText("/d/new.txt")
	if err != nil || got != "abc" {
		t.Errorf("expected saved file, got %q, %v", got, err)
	}
	if title := h.app.Tabs().Active().Title(); title != "new.txt" {
		t.Errorf("expected title new.txt, got %q", title)
	}
}

func TestQuitGuardsUnsavedChanges(t *testing.T) {
	h := newHarness(t, nil)

	if err := h.command(t, "q"); !errors.Is(err, ErrQuit) {
		t.Fatalf("expected clean quit, got %v", err)
	}

	h.typeText(t, "ix")
	h.key(t, tcell.KeyEsc)

	if err := h.command(t, "q"); err != nil {
		t.Fatalf("expected quit to be refused, got %v", err)
	}
	if !strings.Contains(h.message(), ErrUnsavedChanges.Error()) {
		t.Errorf("expected unsaved changes message, got %q", h.message())
	}
	if err := h.typeText2(t, "q"); err != nil {
		t.Fatalf("expected q to be refused, got %v", err)
	}
	if err := h.command(t, "q!"); !errors.Is(err, ErrQuit) {
		t.Errorf("expected forced quit, got %v", err)
	}
}

// typeText2 types s and returns the last handler result.
func (h *harness) typeText2(t *testing.T, s string) error {
	t.Helper()
	var err error
	for _, r := range s {
		err = h.app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
	return err
}

func TestWriteQuit(t *testing.T) {
	h := newHarness(t, map[string]string{"/d/a.txt": "abc"}, "/d/a.txt")
	h.typeText(t, "i1")
	h.key(t, tcell.KeyEsc)

	if err := h.command(t, "wq"); !errors.Is(err, ErrQuit) {
		t.Fatalf("expected quit, got %v", err)
	}
	if got, _ := h.store.ReadText("/d/a.txt"); got != "1abc" {
		t.Errorf("expected %q, got %q", "1abc", got)
	}
}

func TestCommandLineEditing(t *testing.T) {
	h := newHarness(t, nil)

	h.typeText(t, ":qx")
	if h.app.Mode() != ModeCommand {
		t.Fatalf("expected command mode, got %s", h.app.Mode())
	}
	h.key(t, tcell.KeyBackspace)
	h.key(t, tcell.KeyEsc)
	if h.app.Mode() != ModeNormal {
		t.Errorf("expected Esc to leave command mode")
	}

	h.typeText(t, ":")
	h.key(t, tcell.KeyBackspace)
	if h.app.Mode() != ModeNormal {
		t.Errorf("expected Backspace on empty command to leave command mode")
	}

	h.command(t, "bogus")
	_, typ := h.app.Status()
	if !strings.Contains(h.message(), "bogus") || typ != renderer.MessageError {
		t.Errorf("expected unknown command error, got %q", h.message())
	}
}

func TestTabCommands(t *testing.T) {
	h := newHarness(t, map[string]string{
		"/d/a.txt": "a",
		"/d/b.txt": "b",
	}, "/d/a.txt")
	m := h.app.Tabs()

	h.command(t, "e /d/b.txt")
	if m.Count() != 2 || h.text() != "b" {
		t.Fatalf("expected b.txt opened in a second tab, got %d tabs, %q", m.Count(), h.text())
	}

	h.key(t, tcell.KeyTab)
	if h.text() != "a" {
		t.Errorf("expected Tab to switch to a.txt, got %q", h.text())
	}
	h.key(t, tcell.KeyBacktab)
	if h.text() != "b" {
		t.Errorf("expected Backtab to switch to b.txt, got %q", h.text())
	}

	h.key(t, tcell.KeyCtrlT)
	if m.Count() != 3 || m.ActiveIndex() != 2 {
		t.Errorf("expected a new active tab, got %d tabs, active %d", m.Count(), m.ActiveIndex())
	}
	h.command(t, "e!")
	if !strings.Contains(h.message(), ErrNoPath.Error()) {
		t.Errorf("expected reload without path to fail, got %q", h.message())
	}

	m.Prev()
	h.typeText(t, "iz")
	h.key(t, tcell.KeyEsc)
	h.key(t, tcell.KeyCtrlW)
	if m.Count() != 3 {
		t.Error("modified tab should not be closed")
	}

	h.command(t, "e!")
	if h.text() != "b" || m.Active().Engine.IsModified() {
		t.Errorf("expected :e! to discard changes, got %q", h.text())
	}

	h.key(t, tcell.KeyCtrlW)
	h.command(t, "close")
	if m.Count() != 1 || h.text() != "a" {
		t.Errorf("expected only a.txt left, got %d tabs", m.Count())
	}
	h.key(t, tcell.KeyCtrlW)
	if m.Count() != 1 || !strings.Contains(h.message(), "last tab") {
		t.Errorf("expected last tab to stay, got %q", h.message())
	}

	h.command(t, "e /d/missing.txt")
	if m.Count() != 2 || h.app.Tabs().Active().Engine.Path() != "/d/missing.txt" {
		t.Errorf("expected a new tab for missing file")
	}
}

func TestSaveAllCommand(t *testing.T) {
	h := newHarness(t, map[string]string{
		"/d/a.txt": "a",
		"/d/b.txt": "b",
	}, "/d/a.txt", "/d/b.txt")

	for _, tab := range h.app.Tabs().Tabs() {
		tab.Engine.InsertChar('+')
	}
	h.command(t, "wa")

	for p, want := range map[string]string{"/d/a.txt": "+a", "/d/b.txt": "+b"} {
		if got, _ := h.store.ReadText(p); got != want {
			t.Errorf("%s: expected %q, got %q", p, want, got)
		}
	}
	if h.message() != "All files written" {
		t.Errorf("unexpected message %q", h.message())
	}
}

func TestFileEvents(t *testing.T) {
	h := newHarness(t, map[string]string{"/d/a.txt": "abc"}, "/d/a.txt")
	e := h.app.Tabs().Active().Engine

	h.store.WriteText("/d/a.txt", "external")
	h.app.HandleEvent(&fileEvent{ev: storage.Event{Path: "/d/a.txt", Op: storage.OpWrite, Timestamp: time.Now()}})
	if e.Text() != "external" {
		t.Errorf("expected unmodified document to reload, got %q", e.Text())
	}
	if !strings.Contains(h.message(), "reloaded") {
		t.Errorf("expected reload message, got %q", h.message())
	}

	e.InsertChar('!')
	h.store.WriteText("/d/a.txt", "again")
	h.app.HandleEvent(&fileEvent{ev: storage.Event{Path: "/d/a.txt", Op: storage.OpWrite, Timestamp: time.Now()}})
	if e.Text() != "!external" {
		t.Errorf("modified document must not reload, got %q", e.Text())
	}
	if _, typ := h.app.Status(); typ != renderer.MessageWarning {
		t.Errorf("expected warning, got %q", h.message())
	}

	h.app.HandleEvent(&fileEvent{ev: storage.Event{Path: "/d/a.txt", Op: storage.OpRemove, Timestamp: time.Now()}})
	if !strings.Contains(h.message(), "removed") {
		t.Errorf("expected removal warning, got %q", h.message())
	}

	h.app.HandleEvent(&fileEvent{ev: storage.Event{Path: "/d/other.txt", Op: storage.OpWrite, Timestamp: time.Now()}})
	if !strings.Contains(h.message(), "removed") {
		t.Errorf("events for unopened files should be ignored, got %q", h.message())
	}
}

func TestFileEventAfterOwnSave(t *testing.T) {
	h := newHarness(t, map[string]string{"/d/a.txt": "abc"}, "/d/a.txt")
	e := h.app.Tabs().Active().Engine

	h.key(t, tcell.KeyCtrlS)
	h.store.WriteText("/d/a.txt", "external")
	now := time.Now()

	h.app.HandleEvent(&fileEvent{ev: storage.Event{Path: "/d/a.txt", Op: storage.OpWrite, Timestamp: now}})
	if e.Text() != "abc" {
		t.Errorf("event right after own save should be ignored, got %q", e.Text())
	}

	h.app.HandleEvent(&fileEvent{ev: storage.Event{Path: "/d/a.txt", Op: storage.OpWrite, Timestamp: now.Add(2 * selfWriteWindow)}})
	if e.Text() != "external" {
		t.Errorf("later event should reload, got %q", e.Text())
	}
}

func TestDrawShowsMode(t *testing.T) {
	h := newHarness(t, nil)
	h.typeText(t, "i")
	h.app.Draw()

	cells, w, hgt := h.screen.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		if r := cells[(hgt-1)*w+x].Runes; len(r) > 0 {
			b.WriteRune(r[0])
		}
	}
	if !strings.HasPrefix(b.String(), " INSERT ") {
		t.Errorf("expected INSERT on status line, got %q", b.String())
	}
}

func TestRun(t *testing.T) {
	h := newHarness(t, nil)
	done := make(chan error, 1)
	go func() { done <- h.app.Run(context.Background()) }()

	for _, r := range "ihi" {
		h.screen.InjectKey(tcell.KeyRune, r, tcell.ModNone)
	}
	h.screen.InjectKey(tcell.KeyEsc, 0, tcell.ModNone)
	for _, r := range ":q!" {
		h.screen.InjectKey(tcell.KeyRune, r, tcell.ModNone)
	}
	h.screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
	if got := h.text(); got != "hi" {
		t.Errorf("expected %q, got %q", "hi", got)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	h := newHarness(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.app.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected nil on cancel, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
