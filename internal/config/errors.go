package config

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedConfig matches any *MalformedConfigError via errors.Is.
	ErrMalformedConfig = errors.New("malformed config")
	// ErrDuplicateHook matches any *DuplicateHookError via errors.Is.
	ErrDuplicateHook = errors.New("duplicate hook")
)

// MalformedConfigError is returned when the descriptor violates the
// expected shape: bad syntax, unknown option, wrong value type or a
// broken invariant.
type MalformedConfigError struct {
	Key    string // dotted option path, empty for document-level problems
	Reason string
	Err    error
}

func (e *MalformedConfigError) Error() string {
	msg := "malformed config"
	if e.Key != "" {
		msg += fmt.Sprintf(" at %s", e.Key)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedConfigError) Is(target error) bool { return target == ErrMalformedConfig }

func (e *MalformedConfigError) Unwrap() error { return e.Err }

// DuplicateHookError is returned when two hook declarations share an id.
type DuplicateHookError struct {
	ID string
}

func (e *DuplicateHookError) Error() string {
	return fmt.Sprintf("duplicate hook %q: hook ids must be unique", e.ID)
}

func (e *DuplicateHookError) Is(target error) bool { return target == ErrDuplicateHook }

func malformed(key, format string, args ...any) error {
	return &MalformedConfigError{Key: key, Reason: fmt.Sprintf(format, args...)}
}
