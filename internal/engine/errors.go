package engine

import "errors"

// Errors returned by engine operations.
var (
	// ErrNoStorage indicates a save or reload on an engine without storage.
	ErrNoStorage = errors.New("no storage configured")

	// ErrEmptyPath indicates SaveAs was called without a path.
	ErrEmptyPath = errors.New("empty path")
)
