// Package config loads ropepad's settings.
//
// Settings are layered, later layers overriding earlier ones:
//
//	┌─────────────────────────────┐
//	│  3. Environment (ROPEPAD_*) │  ← Highest priority
//	├─────────────────────────────┤
//	│  2. Config file (TOML/YAML) │
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Each layer is read into a nested map by the loader sub-package, the maps
// are merged, and the result is decoded into a typed Config.
//
// # Settings
//
//	editor.sequence   "rope" or "lines"
//	editor.tab_width  display width of a tab, >= 1
//	files.eol         "auto", "lf", "crlf" or "cr"
//	logging.level     "debug", "info", "warn" or "error"
//	logging.file      log file used in terminal mode
//	script.path       Lua script run against the document
package config
