package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dshills/ropepad/internal/config/loader"
	"github.com/dshills/ropepad/internal/engine"
	"github.com/dshills/ropepad/internal/engine/buffer"
	"github.com/dshills/ropepad/internal/storage"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "ROPEPAD_"

// Setting paths.
const (
	PathSequence = "editor.sequence"
	PathTabWidth = "editor.tab_width"
	PathEOL      = "files.eol"
	PathLogLevel = "logging.level"
	PathLogFile  = "logging.file"
	PathScript   = "script.path"
)

// envMapping maps ROPEPAD_* suffixes to setting paths.
var envMapping = map[string]string{
	"LOG_LEVEL": PathLogLevel,
	"LOG_FILE":  PathLogFile,
	"SEQUENCE":  PathSequence,
	"TAB_WIDTH": PathTabWidth,
	"EOL":       PathEOL,
}

// EditorConfig holds document and display settings.
type EditorConfig struct {
	// Sequence selects the document implementation.
	Sequence string
	// TabWidth is the display width of a tab character.
	TabWidth int
}

// FilesConfig holds settings applied when files are written.
type FilesConfig struct {
	// EOL is the line ending written on save; "auto" keeps the file's own.
	EOL string
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level string
	File  string
}

// ScriptConfig holds the batch script settings.
type ScriptConfig struct {
	Path string
}

// Config is the complete, typed configuration.
type Config struct {
	Editor  EditorConfig
	Files   FilesConfig
	Logging LoggingConfig
	Script  ScriptConfig

	// Source is the config file that was read, empty if none.
	Source string
}

// EnvNames lists the environment variables that override settings.
func EnvNames() []string {
	return loader.NewEnvLoader(EnvPrefix, envMapping).Names()
}

// Default returns the built-in configuration.
func Default() *Config {
	c := &Config{}
	if err := c.apply(defaults()); err != nil {
		panic(err)
	}
	return c
}

func defaults() map[string]any {
	return map[string]any{
		"editor": map[string]any{
			"sequence":  string(buffer.KindRope),
			"tab_width": 4,
		},
		"files": map[string]any{
			"eol": "auto",
		},
		"logging": map[string]any{
			"level": "info",
			"file":  "",
		},
		"script": map[string]any{
			"path": "",
		},
	}
}

// Load builds the configuration from defaults, the file at path and the
// environment. An empty path or a missing file only skips that layer.
// The result is validated.
func Load(path string) (*Config, error) {
	return LoadWithFS(loader.DefaultFS(), path)
}

// LoadWithFS is Load reading the config file from fsys.
func LoadWithFS(fsys loader.FileSystem, path string) (*Config, error) {
	merged := defaults()
	source := ""

	if path != "" {
		l, err := loader.ForPath(fsys, path)
		if err != nil {
			return nil, err
		}
		file, err := l.Load()
		if err != nil {
			return nil, err
		}
		if file != nil {
			merged = loader.DeepMerge(merged, file)
			source = path
		}
	}

	env, err := loader.NewEnvLoader(EnvPrefix, envMapping).Load()
	if err != nil {
		return nil, err
	}
	merged = loader.DeepMerge(merged, env)

	c := &Config{Source: source}
	if err := c.apply(merged); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// apply decodes the known settings from m. Unknown keys are ignored.
func (c *Config) apply(m map[string]any) error {
	var errs []error
	str := func(path string, dst *string) {
		if v, ok := loader.Get(m, path); ok {
			s, err := asString(path, v)
			if err != nil {
				errs = append(errs, err)
				return
			}
			*dst = s
		}
	}
	num := func(path string, dst *int) {
		if v, ok := loader.Get(m, path); ok {
			n, err := asInt(path, v)
			if err != nil {
				errs = append(errs, err)
				return
			}
			*dst = n
		}
	}

	str(PathSequence, &c.Editor.Sequence)
	num(PathTabWidth, &c.Editor.TabWidth)
	str(PathEOL, &c.Files.EOL)
	str(PathLogLevel, &c.Logging.Level)
	str(PathLogFile, &c.Logging.File)
	str(PathScript, &c.Script.Path)
	return errors.Join(errs...)
}

func asString(path string, v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case loader.RawValue:
		return string(s), nil
	default:
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
}

func asInt(path string, v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n == math.Trunc(n) {
			return int(n), nil
		}
	case loader.RawValue:
		if i, err := strconv.Atoi(strings.TrimSpace(string(n))); err == nil {
			return i, nil
		}
	}
	return 0, &TypeError{Path: path, Expected: "int", Actual: typeName(v)}
}

// typeName returns the type name for error messages.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case string, loader.RawValue:
		return "string"
	case int, int64:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case []any:
		return "array"
	case map[string]any:
		return "table"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Validate checks every setting. All failures are reported, each wrapping
// ErrInvalidConfig.
func (c *Config) Validate() error {
	var errs []error
	if _, err := buffer.ParseKind(c.Editor.Sequence); err != nil {
		errs = append(errs, &ValidationError{Path: PathSequence, Message: "must be rope or lines", Value: c.Editor.Sequence})
	}
	if c.Editor.TabWidth < 1 {
		errs = append(errs, &ValidationError{Path: PathTabWidth, Message: "must be at least 1", Value: c.Editor.TabWidth})
	}
	if _, err := storage.ParseLineEnding(c.Files.EOL); err != nil {
		errs = append(errs, &ValidationError{Path: PathEOL, Message: "must be auto, lf, crlf or cr", Value: c.Files.EOL})
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, &ValidationError{Path: PathLogLevel, Message: "must be debug, info, warn or error", Value: c.Logging.Level})
	}
	return errors.Join(errs...)
}

// EngineOptions returns the engine options implied by the configuration.
// It assumes the configuration is valid.
func (c *Config) EngineOptions() []engine.Option {
	var opts []engine.Option
	if kind, err := buffer.ParseKind(c.Editor.Sequence); err == nil {
		opts = append(opts, engine.WithSequence(kind))
	}
	if eol, err := storage.ParseLineEnding(c.Files.EOL); err == nil && eol != "" {
		opts = append(opts, engine.WithLineEnding(eol))
	}
	return opts
}
