// Package storage reads and writes whole documents.
//
// The editor core never performs I/O itself; it goes through the Storage
// interface. OSStorage talks to the local file system and MemStorage keeps
// files in memory for tests and dry runs. Watcher reports changes made to
// open files by other programs.
package storage

import "errors"

// Errors returned by storage operations. They are wrapped in *fs.PathError.
var (
	ErrInvalidUTF8 = errors.New("content is not valid UTF-8")
	ErrIsDir       = errors.New("path is a directory")
)

// Storage reads and writes whole text files.
type Storage interface {
	// ReadText returns the full content of path. Content that is not valid
	// UTF-8 is an error.
	ReadText(path string) (string, error)

	// WriteText replaces the content of path, creating it if needed.
	WriteText(path, content string) error
}
