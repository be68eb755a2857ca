// Package profile keeps the cosmetic user profile and the free-text
// generated-copy blob.
package profile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/content-toolkit/internal/storage"
	"github.com/jonathan/content-toolkit/internal/types"
	"github.com/jonathan/content-toolkit/schemas"
)

// ErrNotLoaded is returned by mutations issued before Load.
var ErrNotLoaded = errors.New("profile not loaded")

// MaxCopyLength bounds the generated-copy blob.
const MaxCopyLength = 20000

// InvalidProfileError rejects profile input that fails validation.
type InvalidProfileError struct {
	Field   string
	Message string
}

func (e *InvalidProfileError) Error() string {
	return fmt.Sprintf("invalid profile: %s %s", e.Field, e.Message)
}

var profileShape = storage.MustShape(schemas.MustLoad(schemas.UserProfile))

var copyShape = storage.MustShape(schemas.MustLoad(schemas.GeneratedCopy))

// Model holds the profile and the copy blob. It is not safe for concurrent
// use.
type Model struct {
	store    *storage.Store
	validate *validator.Validate

	profile  types.UserProfile
	copyText string
	loaded   bool
}

// New returns an unloaded model backed by store.
func New(store *storage.Store) *Model {
	return &Model{store: store, validate: validator.New()}
}

// Load reads both values, falling back to empty defaults.
func (m *Model) Load() {
	m.profile = types.UserProfile{}
	m.copyText = ""
	m.loaded = true

	var p types.UserProfile
	if m.store.Load(storage.KeyUserProfile, profileShape, &p) {
		m.profile = p
	}
	var c string
	if m.store.Load(storage.KeyGeneratedCopy, copyShape, &c) {
		m.copyText = c
	}
}

// Profile returns the current profile.
func (m *Model) Profile() types.UserProfile {
	return m.profile
}

// SetProfile replaces the profile wholesale and writes through.
func (m *Model) SetProfile(p types.UserProfile) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Company = strings.TrimSpace(p.Company)
	if err := m.validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &InvalidProfileError{
				Field:   strings.ToLower(verrs[0].Field()),
				Message: "must be at most " + verrs[0].Param() + " characters",
			}
		}
		return &InvalidProfileError{Field: "profile", Message: err.Error()}
	}
	if !m.loaded {
		return ErrNotLoaded
	}
	m.profile = p
	return m.store.Save(storage.KeyUserProfile, m.profile)
}

// GeneratedCopy returns the copy blob.
func (m *Model) GeneratedCopy() string {
	return m.copyText
}

// SetGeneratedCopy replaces the copy blob and writes through.
func (m *Model) SetGeneratedCopy(text string) error {
	if len(text) > MaxCopyLength {
		return &InvalidProfileError{Field: "copy", Message: fmt.Sprintf("must be at most %d bytes", MaxCopyLength)}
	}
	if !m.loaded {
		return ErrNotLoaded
	}
	m.copyText = text
	return m.store.Save(storage.KeyGeneratedCopy, m.copyText)
}

// Reset restores the empty defaults and writes both through.
func (m *Model) Reset() error {
	m.profile = types.UserProfile{}
	m.copyText = ""
	m.loaded = true
	return errors.Join(
		m.store.Save(storage.KeyUserProfile, m.profile),
		m.store.Save(storage.KeyGeneratedCopy, m.copyText),
	)
}
