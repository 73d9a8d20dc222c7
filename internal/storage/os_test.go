package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestOSStorageRoundTrip(t *testing.T) {
	s := NewOSStorage()
	path := filepath.Join(t.TempDir(), "note.txt")

	if err := s.WriteText(path, "héllo\nworld"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	got, err := s.ReadText(path)
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}
	if got != "héllo\nworld" {
		t.Errorf("ReadText() = %q", got)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm() != DefaultFileMode {
		t.Errorf("new file mode = %v, want %v", info.Mode().Perm(), DefaultFileMode)
	}
}

func TestOSStorageKeepsMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}
	s := NewOSStorage()
	path := filepath.Join(t.TempDir(), "script.sh")
	if err := os.WriteFile(path, []byte("old"), 0o755); err != nil {
		t.Fatal(err)
	}

	if err := s.WriteText(path, "new"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o755 {
		t.Errorf("mode = %v, want 0755", info.Mode().Perm())
	}
}

func TestOSStorageLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewOSStorage()
	for i := 0; i < 3; i++ {
		if err := s.WriteText(filepath.Join(dir, "f.txt"), "x"); err != nil {
			t.Fatal(err)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 file in dir, found %d", len(entries))
	}
}

func TestOSStorageErrors(t *testing.T) {
	s := NewOSStorage()
	dir := t.TempDir()

	if _, err := s.ReadText(filepath.Join(dir, "missing")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file: got %v, want fs.ErrNotExist", err)
	}

	bad := filepath.Join(dir, "bad")
	if err := os.WriteFile(bad, []byte{0xff, 0xfe, 'a'}, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ReadText(bad); !errors.Is(err, ErrInvalidUTF8) {
		t.Errorf("invalid UTF-8: got %v, want ErrInvalidUTF8", err)
	}

	if err := s.WriteText(dir, "x"); !errors.Is(err, ErrIsDir) {
		t.Errorf("write to directory: got %v, want ErrIsDir", err)
	}

	if err := s.WriteText(filepath.Join(dir, "no", "such", "dir", "f"), "x"); err == nil {
		t.Error("write into missing directory should fail")
	}
}
