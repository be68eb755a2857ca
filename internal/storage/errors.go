package storage

import (
	"errors"
	"fmt"
)

// ReadError describes why a stored value was treated as absent. Store.Load
// never returns it; it is logged and exposed for diagnostics only.
type ReadError struct {
	Key    string
	Reason string
	Cause  error
}

func (e *ReadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("storage read %s: %s: %v", e.Key, e.Reason, e.Cause)
	}
	return fmt.Sprintf("storage read %s: %s", e.Key, e.Reason)
}

func (e *ReadError) Unwrap() error {
	return e.Cause
}

// WriteError reports that a value could not be persisted. The in-memory
// state of the caller is still authoritative.
type WriteError struct {
	Key   string
	Cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("storage write %s: %v", e.Key, e.Cause)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}

// IsWriteError reports whether err carries a WriteError, meaning the
// operation itself succeeded but was not persisted.
func IsWriteError(err error) bool {
	var we *WriteError
	return errors.As(err, &we)
}
