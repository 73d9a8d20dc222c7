package storage

import (
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"
)

// DefaultFileMode is used for files that did not exist before a write.
const DefaultFileMode fs.FileMode = 0o644

// OSStorage implements Storage on the operating system's file system.
type OSStorage struct{}

// NewOSStorage creates a new OS-backed storage.
func NewOSStorage() *OSStorage {
	return &OSStorage{}
}

// Ensure OSStorage implements Storage.
var _ Storage = (*OSStorage)(nil)

// ReadText reads the entire file at path.
func (s *OSStorage) ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", &fs.PathError{Op: "read", Path: path, Err: ErrInvalidUTF8}
	}
	return string(data), nil
}

// WriteText writes content to a temporary file next to path and renames it
// over path, so readers never observe a half-written file. The mode of an
// existing file is kept.
func (s *OSStorage) WriteText(path, content string) error {
	mode := DefaultFileMode
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return &fs.PathError{Op: "write", Path: path, Err: ErrIsDir}
		}
		mode = info.Mode().Perm()
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
