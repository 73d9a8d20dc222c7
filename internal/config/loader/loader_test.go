package loader

import (
	"errors"
	"io/fs"
	"os"
	"slices"
	"testing"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return data, nil
}

type brokenFS struct{}

var errBroken = errors.New("broken disk")

func (brokenFS) ReadFile(string) ([]byte, error) { return nil, errBroken }

func TestTOMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.toml", `
[editor]
sequence = "lines"
tab_width = 8

[logging]
level = "debug"
`)

	config, err := NewTOMLLoaderWithFS(memfs, "/config.toml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if v, _ := Get(config, "editor.sequence"); v != "lines" {
		t.Errorf("editor.sequence = %v, want lines", v)
	}
	if v, _ := Get(config, "editor.tab_width"); v != int64(8) {
		t.Errorf("editor.tab_width = %v (%T), want 8", v, v)
	}
	if v, _ := Get(config, "logging.level"); v != "debug" {
		t.Errorf("logging.level = %v, want debug", v)
	}
}

func TestTOMLLoader_ParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.toml", "[editor]\ntab_width = = 3\n")

	_, err := NewTOMLLoaderWithFS(memfs, "/bad.toml").Load()
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if pe.Path != "/bad.toml" {
		t.Errorf("Path = %q, want /bad.toml", pe.Path)
	}
	if pe.Line != 2 {
		t.Errorf("Line = %d, want 2", pe.Line)
	}
}

func TestYAMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.yaml", `
editor:
  sequence: rope
  tab_width: 2
files:
  eol: crlf
`)

	config, err := NewYAMLLoaderWithFS(memfs, "/config.yaml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if v, _ := Get(config, "editor.tab_width"); v != 2 {
		t.Errorf("editor.tab_width = %v (%T), want 2", v, v)
	}
	if v, _ := Get(config, "files.eol"); v != "crlf" {
		t.Errorf("files.eol = %v, want crlf", v)
	}
}

func TestYAMLLoader_Empty(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/empty.yml", "")

	config, err := NewYAMLLoaderWithFS(memfs, "/empty.yml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if config == nil || len(config) != 0 {
		t.Errorf("expected empty map, got %v", config)
	}
}

func TestYAMLLoader_ParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.yaml", "editor: [unclosed\n")

	_, err := NewYAMLLoaderWithFS(memfs, "/bad.yaml").Load()
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	memfs := NewMemFS()
	for _, path := range []string{"/missing.toml", "/missing.yaml"} {
		l, err := ForPath(memfs, path)
		if err != nil {
			t.Fatalf("ForPath(%s) failed: %v", path, err)
		}
		config, err := l.Load()
		if err != nil {
			t.Errorf("%s: expected no error, got %v", path, err)
		}
		if config != nil {
			t.Errorf("%s: expected nil config, got %v", path, config)
		}
	}
}

func TestLoad_ReadError(t *testing.T) {
	_, err := NewTOMLLoaderWithFS(brokenFS{}, "/config.toml").Load()
	if !errors.Is(err, errBroken) {
		t.Errorf("expected errBroken, got %v", err)
	}
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"a.toml", "toml", false},
		{"a.TOML", "toml", false},
		{"a.yaml", "yaml", false},
		{"a.yml", "yaml", false},
		{"a.json", "", true},
		{"noext", "", true},
	}
	for _, tt := range tests {
		l, err := ForPath(DefaultFS(), tt.path)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ForPath(%q): expected error", tt.path)
			}
			continue
		}
		if err != nil {
			t.Errorf("ForPath(%q): %v", tt.path, err)
			continue
		}
		var got string
		switch l.(type) {
		case *TOMLLoader:
			got = "toml"
		case *YAMLLoader:
			got = "yaml"
		}
		if got != tt.want {
			t.Errorf("ForPath(%q) = %s, want %s", tt.path, got, tt.want)
		}
	}
}

func TestOSFS_ReadFile(t *testing.T) {
	path := t.TempDir() + "/c.toml"
	if err := os.WriteFile(path, []byte("[files]\neol = \"lf\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	config, err := NewTOMLLoader(path).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if v, _ := Get(config, "files.eol"); v != "lf" {
		t.Errorf("files.eol = %v, want lf", v)
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"editor":  map[string]any{"sequence": "rope", "tab_width": 4},
		"logging": map[string]any{"level": "info"},
	}
	src := map[string]any{
		"editor": map[string]any{"tab_width": 8},
		"script": map[string]any{"path": "x.lua"},
	}

	got := DeepMerge(dst, src)
	if v, _ := Get(got, "editor.sequence"); v != "rope" {
		t.Errorf("editor.sequence = %v, want rope", v)
	}
	if v, _ := Get(got, "editor.tab_width"); v != 8 {
		t.Errorf("editor.tab_width = %v, want 8", v)
	}
	if v, _ := Get(got, "logging.level"); v != "info" {
		t.Errorf("logging.level = %v, want info", v)
	}
	if v, _ := Get(got, "script.path"); v != "x.lua" {
		t.Errorf("script.path = %v, want x.lua", v)
	}
}

func TestGetSet(t *testing.T) {
	m := map[string]any{}
	Set(m, "a.b.c", 1)
	Set(m, "a.d", "x")

	if v, ok := Get(m, "a.b.c"); !ok || v != 1 {
		t.Errorf("a.b.c = %v, %v", v, ok)
	}
	if v, ok := Get(m, "a.d"); !ok || v != "x" {
		t.Errorf("a.d = %v, %v", v, ok)
	}
	if _, ok := Get(m, "a.d.e"); ok {
		t.Error("expected a.d.e to be missing")
	}
	if _, ok := Get(m, "z"); ok {
		t.Error("expected z to be missing")
	}
}

func TestEnvLoader_Load(t *testing.T) {
	t.Setenv("TEST_ROPEPAD_LEVEL", "debug")
	t.Setenv("TEST_ROPEPAD_WIDTH", "2")
	t.Setenv("TEST_ROPEPAD_FILE", "on")

	l := NewEnvLoader("TEST_ROPEPAD_", map[string]string{
		"LEVEL":   "logging.level",
		"WIDTH":   "editor.tab_width",
		"FILE":    "logging.file",
		"MISSING": "editor.missing",
	})
	config, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		path string
		want RawValue
	}{
		{"logging.level", "debug"},
		{"editor.tab_width", "2"},
		{"logging.file", "on"},
	}
	for _, tt := range tests {
		if v, _ := Get(config, tt.path); v != tt.want {
			t.Errorf("%s = %v (%T), want %q", tt.path, v, v, tt.want)
		}
	}
	if _, ok := Get(config, "editor.missing"); ok {
		t.Error("unset variable should not appear")
	}

	names := l.Names()
	want := []string{"TEST_ROPEPAD_FILE", "TEST_ROPEPAD_LEVEL", "TEST_ROPEPAD_MISSING", "TEST_ROPEPAD_WIDTH"}
	if !slices.Equal(names, want) {
		t.Errorf("Names() = %v, want %v", names, want)
	}
}
