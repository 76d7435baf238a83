package engine

import (
	"errors"
	"fmt"
)

// ValidationError rejects user input. State is left unchanged.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ErrNoPoints is returned when a stat point is spent with an empty balance.
var ErrNoPoints = errors.New("no ability points available")

// ErrNoBackups is returned by Restore when the store keeps no previous saves.
var ErrNoBackups = errors.New("no backup to restore")

// ImportError wraps a document that could not be imported.
type ImportError struct {
	Err error
}

func (e ImportError) Error() string {
	return fmt.Sprintf("import: %v", e.Err)
}

func (e ImportError) Unwrap() error { return e.Err }
