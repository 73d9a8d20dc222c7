package loader

import (
	"os"
	"slices"
)

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	prefix  string            // e.g. "ROPEPAD_"
	mapping map[string]string // env var suffix -> config path
}

// NewEnvLoader creates an environment loader. mapping maps variable names
// without the prefix (e.g. "LOG_LEVEL") to dotted config paths.
func NewEnvLoader(prefix string, mapping map[string]string) *EnvLoader {
	return &EnvLoader{prefix: prefix, mapping: mapping}
}

// RawValue is a setting read from an untyped source such as the
// environment. Consumers convert it to the type the setting needs.
type RawValue string

// Load reads the mapped variables that are set. Empty values count as set.
// Values are stored as RawValue.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)
	for name, path := range l.mapping {
		if val, ok := os.LookupEnv(l.prefix + name); ok {
			Set(config, path, RawValue(val))
		}
	}
	return config, nil
}

// Names returns the full variable names the loader reads, sorted.
func (l *EnvLoader) Names() []string {
	names := make([]string, 0, len(l.mapping))
	for name := range l.mapping {
		names = append(names, l.prefix+name)
	}
	slices.Sort(names)
	return names
}
