// Package storage provides the persistent key/value layer of the toolkit.
//
// A Backend moves raw bytes. A Store sits on top of it, owns the key
// namespace and absorbs every storage failure: reads degrade to "absent",
// writes report a WriteError without touching the caller's in-memory state.
package storage

import (
	"fmt"
	"regexp"
)

// Backend is a raw key/value store. Implementations need not be safe for
// concurrent use.
type Backend interface {
	// Get returns the stored bytes for key and whether the key exists.
	Get(key string) ([]byte, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
	// Keys lists every stored key.
	Keys() ([]string, error)
	// Close releases backend resources.
	Close() error
}

// Backend kinds accepted by Open.
const (
	KindMemory = "memory"
	KindFile   = "file"
	KindSQLite = "sqlite"
)

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// ValidateKey rejects keys that cannot be stored safely by every backend.
func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("invalid storage key %q", key)
	}
	return nil
}

// Open creates the backend of the given kind rooted at dataDir.
func Open(kind, dataDir string) (Backend, error) {
	switch kind {
	case KindMemory:
		return NewMemoryBackend(), nil
	case KindFile, "":
		return NewFileBackend(dataDir)
	case KindSQLite:
		return NewSQLiteBackend(dataDir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", kind)
	}
}
