package engine

import (
	"path/filepath"

	"github.com/dshills/ropepad/internal/engine/buffer"
	"github.com/dshills/ropepad/internal/engine/cursor"
	"github.com/dshills/ropepad/internal/engine/viewport"
	"github.com/dshills/ropepad/internal/storage"
)

// Cursor is re-exported for callers that only import engine.
type Cursor = cursor.Cursor

// Engine combines a document, its cursor and its scroll position.
type Engine struct {
	seq    buffer.Sequence
	cur    cursor.Cursor
	scroll viewport.Scroller

	modified    bool
	path        string
	placeholder string

	store     storage.Storage
	format    storage.Format
	eolPolicy storage.LineEnding

	// Creation-only settings.
	initContent string
	kind        buffer.Kind
}

// New creates an engine. Without options the document is empty.
func New(opts ...Option) *Engine {
	e := &Engine{
		placeholder: DefaultPlaceholderName,
		format:      storage.DefaultFormat(),
		kind:        buffer.KindRope,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.seq = newSequence(e.kind, e.initContent)
	e.initContent = ""
	return e
}

func newSequence(kind buffer.Kind, text string) buffer.Sequence {
	seq, err := buffer.New(kind, text)
	if err != nil {
		return buffer.NewBufferFromString(text)
	}
	return seq
}

// Open reads path from store and creates an engine bound to it.
// Line endings are normalised to '\n' in memory and restored on save.
// Read errors are returned unchanged.
func Open(store storage.Storage, path string, opts ...Option) (*Engine, error) {
	raw, err := store.ReadText(path)
	if err != nil {
		return nil, err
	}
	text, format := storage.Decode(raw)

	all := make([]Option, 0, len(opts)+3)
	all = append(all, opts...)
	all = append(all, WithContent(text), WithStorage(store), WithPath(path))
	e := New(all...)
	e.format = format
	return e, nil
}

// Save writes the document to its path. A document without a path is left
// alone and Save returns nil. Write errors are returned unchanged.
func (e *Engine) Save() error {
	if e.path == "" {
		return nil
	}
	return e.writeTo(e.path)
}

// SaveAs writes the document to path and, on success, binds it to path.
func (e *Engine) SaveAs(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if err := e.writeTo(path); err != nil {
		return err
	}
	e.path = path
	return nil
}

func (e *Engine) writeTo(path string) error {
	if e.store == nil {
		return ErrNoStorage
	}
	if err := e.store.WriteText(path, storage.Encode(e.seq.String(), e.saveFormat())); err != nil {
		return err
	}
	e.modified = false
	return nil
}

func (e *Engine) saveFormat() storage.Format {
	f := e.format
	if e.eolPolicy != "" {
		f.LineEnding = e.eolPolicy
	}
	return f
}

// Reload replaces the document with the current content of its path,
// discarding unsaved changes. The cursor is clamped into the new text.
func (e *Engine) Reload() error {
	if e.path == "" {
		return nil
	}
	if e.store == nil {
		return ErrNoStorage
	}
	raw, err := e.store.ReadText(e.path)
	if err != nil {
		return err
	}
	text, format := storage.Decode(raw)
	e.seq = newSequence(e.kind, text)
	e.format = format
	e.cur = e.cur.Clamp(e.seq)
	e.modified = false
	return nil
}

// InsertChar inserts ch at the cursor and moves the cursor past it.
// Inserting '\n' moves the cursor to the start of the new line.
func (e *Engine) InsertChar(ch rune) {
	at := e.cur.CharIndex(e.seq)
	e.seq.Insert(at, string(ch))
	e.cur = cursor.FromCharIndex(e.seq, at+1)
	e.modified = true
}

// InsertText inserts s at the cursor. The cursor does not move.
func (e *Engine) InsertText(s string) {
	e.cur = e.cur.Clamp(e.seq)
	if s == "" {
		return
	}
	e.seq.Insert(e.cur.CharIndex(e.seq), s)
	e.modified = true
}

// DeleteCharForward removes the character under the cursor, if any.
// The cursor does not move.
func (e *Engine) DeleteCharForward() {
	e.cur = e.cur.Clamp(e.seq)
	at := e.cur.CharIndex(e.seq)
	if at >= e.seq.LenChars() {
		return
	}
	e.seq.Remove(at, 1)
	e.modified = true
}

// Backspace removes the character before the cursor. At the start of a
// line it joins the line to the previous one.
func (e *Engine) Backspace() {
	c := e.cur.Clamp(e.seq)
	switch {
	case c.Column > 0:
		c.Column--
	case c.Line > 0:
		c.Line--
		c.Column = cursor.LastColumn(e.seq, c.Line)
	default:
		e.cur = c
		return
	}
	e.cur = c
	e.DeleteCharForward()
}

// MoveUp moves the cursor one line up.
func (e *Engine) MoveUp() { e.cur = e.cur.Up(e.seq) }

// MoveDown moves the cursor one line down.
func (e *Engine) MoveDown() { e.cur = e.cur.Down(e.seq) }

// MoveLeft moves the cursor one character back.
func (e *Engine) MoveLeft() { e.cur = e.cur.Left(e.seq) }

// MoveRight moves the cursor one character forward.
func (e *Engine) MoveRight() { e.cur = e.cur.Right(e.seq) }

// SetCursor moves the cursor to the nearest valid position to c.
func (e *Engine) SetCursor(c Cursor) {
	e.cur = c.Clamp(e.seq)
}

// Cursor returns the cursor, clamped to the current document.
func (e *Engine) Cursor() Cursor {
	return e.cur.Clamp(e.seq)
}

// CharIndex returns the absolute character offset of the cursor.
func (e *Engine) CharIndex() int {
	return e.cur.CharIndex(e.seq)
}

// UpdateScroll scrolls the minimum needed to show the cursor line in a
// window of height lines. A height of 0 is ignored.
func (e *Engine) UpdateScroll(height int) {
	e.scroll.Update(e.Cursor().Line, e.seq.LenLines(), height)
}

// ScrollOffset returns the first visible line.
func (e *Engine) ScrollOffset() int {
	return e.scroll.Offset()
}

// VisibleLines returns the range [start, end) of lines shown in a window of
// height lines at the current scroll offset.
func (e *Engine) VisibleLines(height int) (start, end int) {
	return e.scroll.Visible(e.seq.LenLines(), height)
}

// LineCount returns the number of lines.
func (e *Engine) LineCount() int {
	return e.seq.LenLines()
}

// Len returns the number of characters.
func (e *Engine) Len() int {
	return e.seq.LenChars()
}

// Line returns line i including its terminator, or "" when out of range.
func (e *Engine) Line(i int) string {
	return e.seq.Line(i)
}

// Text returns the whole document.
func (e *Engine) Text() string {
	return e.seq.String()
}

// IsModified reports whether the document changed since it was opened or saved.
func (e *Engine) IsModified() bool {
	return e.modified
}

// Path returns the document's path, or "" if it has none.
func (e *Engine) Path() string {
	return e.path
}

// FileName returns the base name of the path, or the placeholder name.
func (e *Engine) FileName() string {
	if e.path == "" {
		return e.placeholder
	}
	return filepath.Base(e.path)
}

// Format returns the on-disk layout used when saving.
func (e *Engine) Format() storage.Format {
	return e.saveFormat()
}
