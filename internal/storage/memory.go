package storage

import (
	"io/fs"
	"path"
	"sort"
	"sync"
	"unicode/utf8"
)

// MemStorage implements Storage with an in-memory map of files.
// It is primarily used for testing and for dry runs of batch scripts.
//
// MemStorage is safe for concurrent use.
type MemStorage struct {
	mu     sync.RWMutex
	files  map[string]string
	writes int
}

// NewMemStorage creates an empty in-memory storage.
func NewMemStorage() *MemStorage {
	return &MemStorage{files: make(map[string]string)}
}

// Ensure MemStorage implements Storage.
var _ Storage = (*MemStorage)(nil)

// ReadText returns the stored content of p.
func (m *MemStorage) ReadText(p string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	content, ok := m.files[path.Clean(p)]
	if !ok {
		return "", &fs.PathError{Op: "read", Path: p, Err: fs.ErrNotExist}
	}
	if !utf8.ValidString(content) {
		return "", &fs.PathError{Op: "read", Path: p, Err: ErrInvalidUTF8}
	}
	return content, nil
}

// WriteText stores content under p.
func (m *MemStorage) WriteText(p, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[path.Clean(p)] = content
	m.writes++
	return nil
}

// Remove deletes p. Removing a missing file is not an error.
func (m *MemStorage) Remove(p string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, path.Clean(p))
}

// Exists reports whether p is stored.
func (m *MemStorage) Exists(p string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[path.Clean(p)]
	return ok
}

// Paths returns the stored paths in sorted order.
func (m *MemStorage) Paths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Writes returns the number of successful WriteText calls.
func (m *MemStorage) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}
