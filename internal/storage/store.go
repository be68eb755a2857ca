package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// DefaultNamespace prefixes every key the toolkit owns.
const DefaultNamespace = "toolkit_"

// Keys owned by the toolkit, without namespace. These names are the persisted
// format contract and must not change.
const (
	KeyUserProfile    = "user_profile"
	KeyStepProgress   = "step_progress"
	KeyContentLibrary = "content_library"
	KeyGeneratedCopy  = "generated_copy"
)

// OwnedKeys lists the keys above.
var OwnedKeys = []string{KeyUserProfile, KeyStepProgress, KeyContentLibrary, KeyGeneratedCopy}

// Store is the namespaced adapter every model persists through.
type Store struct {
	backend   Backend
	namespace string
	logger    *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithNamespace overrides DefaultNamespace.
func WithNamespace(ns string) Option {
	return func(s *Store) { s.namespace = ns }
}

// WithLogger sets the logger used for storage diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore wraps backend.
func NewStore(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend:   backend,
		namespace: DefaultNamespace,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Namespace returns the key prefix this store owns.
func (s *Store) Namespace() string {
	return s.namespace
}

func (s *Store) fullKey(key string) string {
	return s.namespace + key
}

// Load decodes the value stored under key into dest and reports whether it
// was present and well formed. Missing, unreadable, unparseable or
// mis-shaped values are logged and reported as absent; Load never fails.
// dest should be a fresh zero value since a failed decode may leave it
// partially filled.
func (s *Store) Load(key string, shape *Shape, dest any) bool {
	full := s.fullKey(key)
	if err := ValidateKey(full); err != nil {
		s.logReadError(&ReadError{Key: full, Reason: "invalid key", Cause: err})
		return false
	}

	raw, ok, err := s.backend.Get(full)
	if err != nil {
		s.logReadError(&ReadError{Key: full, Reason: "backend read failed", Cause: err})
		return false
	}
	if !ok {
		s.logger.Debug("storage key absent, using default", zap.String("key", full))
		return false
	}
	if err := shape.Check(raw); err != nil {
		s.logReadError(&ReadError{Key: full, Reason: "malformed value", Cause: err})
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		s.logReadError(&ReadError{Key: full, Reason: "decode failed", Cause: err})
		return false
	}
	return true
}

func (s *Store) logReadError(err *ReadError) {
	s.logger.Warn("discarding stored value",
		zap.String("key", err.Key),
		zap.String("reason", err.Reason),
		zap.Error(err.Cause),
	)
}

// Save serializes value and writes it under key. It returns a *WriteError on
// failure and never panics.
func (s *Store) Save(key string, value any) error {
	full := s.fullKey(key)
	if err := ValidateKey(full); err != nil {
		return s.writeFailed(full, err)
	}

	data, err := json.Marshal(value)
	if err != nil {
		return s.writeFailed(full, fmt.Errorf("encode: %w", err))
	}
	if err := s.backend.Set(full, data); err != nil {
		return s.writeFailed(full, err)
	}
	return nil
}

func (s *Store) writeFailed(key string, cause error) error {
	werr := &WriteError{Key: key, Cause: cause}
	s.logger.Warn("storage write failed; keeping in-memory state",
		zap.String("key", key),
		zap.Error(cause),
	)
	return werr
}

// ClearAll deletes every key inside this store's namespace, leaving other
// keys in the backend untouched. It is idempotent.
func (s *Store) ClearAll() error {
	targets := make(map[string]struct{}, len(OwnedKeys))
	for _, k := range OwnedKeys {
		targets[s.fullKey(k)] = struct{}{}
	}

	var errs []error
	keys, err := s.backend.Keys()
	if err != nil {
		errs = append(errs, fmt.Errorf("list keys: %w", err))
	}
	for _, k := range keys {
		if s.namespace != "" && strings.HasPrefix(k, s.namespace) {
			targets[k] = struct{}{}
		}
	}

	for k := range targets {
		if err := s.backend.Delete(k); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		err := errors.Join(errs...)
		s.logger.Warn("storage clear incomplete", zap.String("namespace", s.namespace), zap.Error(err))
		return fmt.Errorf("failed to clear storage: %w", err)
	}
	s.logger.Info("storage cleared", zap.String("namespace", s.namespace))
	return nil
}

// Close closes the underlying backend.
func (s *Store) Close() error {
	return s.backend.Close()
}
