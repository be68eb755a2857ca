// Package storagetest provides storage backends for tests.
package storagetest

import (
	"errors"

	"github.com/jonathan/content-toolkit/internal/storage"
)

// ErrInjected is returned by FaultyBackend when a fault is switched on.
var ErrInjected = errors.New("injected storage fault")

// FaultyBackend wraps an in-memory backend and fails the operations whose
// flag is set.
type FaultyBackend struct {
	*storage.MemoryBackend

	FailGet    bool
	FailSet    bool
	FailDelete bool
	FailKeys   bool

	Sets int
}

// NewFaultyBackend returns a FaultyBackend with no faults enabled.
func NewFaultyBackend() *FaultyBackend {
	return &FaultyBackend{MemoryBackend: storage.NewMemoryBackend()}
}

func (f *FaultyBackend) Get(key string) ([]byte, bool, error) {
	if f.FailGet {
		return nil, false, ErrInjected
	}
	return f.MemoryBackend.Get(key)
}

func (f *FaultyBackend) Set(key string, value []byte) error {
	if f.FailSet {
		return ErrInjected
	}
	f.Sets++
	return f.MemoryBackend.Set(key, value)
}

func (f *FaultyBackend) Delete(key string) error {
	if f.FailDelete {
		return ErrInjected
	}
	return f.MemoryBackend.Delete(key)
}

func (f *FaultyBackend) Keys() ([]string, error) {
	if f.FailKeys {
		return nil, ErrInjected
	}
	return f.MemoryBackend.Keys()
}
