package engine

import (
	"github.com/dshills/ropepad/internal/engine/buffer"
	"github.com/dshills/ropepad/internal/storage"
)

// DefaultPlaceholderName is shown for documents that have no path.
const DefaultPlaceholderName = "[No Name]"

// Option configures an Engine during creation.
type Option func(*Engine)

// WithContent sets the initial content of the engine.
func WithContent(content string) Option {
	return func(e *Engine) {
		e.initContent = content
	}
}

// WithSequence selects the document implementation.
// Unknown kinds fall back to the rope.
func WithSequence(kind buffer.Kind) Option {
	return func(e *Engine) {
		e.kind = kind
	}
}

// WithStorage sets the storage used by Save, SaveAs and Reload.
func WithStorage(s storage.Storage) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithPath binds the document to a path without reading it.
// Used for files that do not exist yet.
func WithPath(path string) Option {
	return func(e *Engine) {
		e.path = path
	}
}

// WithPlaceholderName sets the name reported by FileName when there is no path.
func WithPlaceholderName(name string) Option {
	return func(e *Engine) {
		if name != "" {
			e.placeholder = name
		}
	}
}

// WithLineEnding forces the line ending used when saving.
// The empty LineEnding keeps whatever the file used when it was opened.
func WithLineEnding(le storage.LineEnding) Option {
	return func(e *Engine) {
		e.eolPolicy = le
	}
}
