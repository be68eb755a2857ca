// Package content holds the canonical content library and the assignment of
// items to funnel stages.
//
// Each item carries its stage as a single field, so an item can never sit in
// two stages at once. Stage and unassigned views are computed from the one
// canonical list on every call.
package content

import (
	"errors"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/content-toolkit/internal/storage"
	"github.com/jonathan/content-toolkit/internal/types"
	"github.com/jonathan/content-toolkit/schemas"
)

var libraryShape = storage.MustShape(schemas.MustLoad(schemas.ContentLibrary))

// AddItemRequest is the validated input of AddItem.
type AddItemRequest struct {
	Title string `json:"title" validate:"required"`
	Type  string `json:"type" validate:"required"`
}

// IDGenerator produces fresh content ids.
type IDGenerator func() types.ContentID

// NewID returns a time-ordered UUIDv7, falling back to a random UUID.
func NewID() types.ContentID {
	id, err := uuid.NewV7()
	if err != nil {
		return types.ContentID(uuid.NewString())
	}
	return types.ContentID(id.String())
}

// Library is the canonical list of content items. It is not safe for
// concurrent use.
type Library struct {
	store    *storage.Store
	logger   *zap.Logger
	validate *validator.Validate
	newID    IDGenerator

	items  []types.ContentItem
	loaded bool
}

// Option configures a Library.
type Option func(*Library)

// WithIDGenerator replaces NewID.
func WithIDGenerator(gen IDGenerator) Option {
	return func(l *Library) { l.newID = gen }
}

// WithLogger sets the logger for load diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Library) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New returns an unloaded library backed by store.
func New(store *storage.Store, opts ...Option) *Library {
	l := &Library{
		store:    store,
		logger:   zap.NewNop(),
		validate: validator.New(),
		newID:    NewID,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the persisted library. Absent or malformed data yields an
// empty library. Individual bad items are repaired or dropped.
func (l *Library) Load() {
	l.items = nil
	l.loaded = true

	var stored []types.ContentItem
	if !l.store.Load(storage.KeyContentLibrary, libraryShape, &stored) {
		return
	}
	l.items = l.sanitize(stored)
}

func (l *Library) sanitize(stored []types.ContentItem) []types.ContentItem {
	seen := make(map[types.ContentID]bool, len(stored))
	items := make([]types.ContentItem, 0, len(stored))

	for _, item := range stored {
		switch {
		case item.ID == "":
			l.logger.Warn("dropping stored content item without id", zap.String("title", item.Title))
			continue
		case seen[item.ID]:
			l.logger.Warn("dropping duplicate stored content item", zap.String("id", string(item.ID)))
			continue
		case strings.TrimSpace(item.Title) == "":
			l.logger.Warn("dropping stored content item without title", zap.String("id", string(item.ID)))
			continue
		case strings.TrimSpace(item.Type) == "":
			l.logger.Warn("dropping stored content item without type", zap.String("id", string(item.ID)))
			continue
		}
		if item.Stage.IsAssigned() && !item.Stage.Valid() {
			l.logger.Warn("unknown stored stage, item unassigned",
				zap.String("id", string(item.ID)),
				zap.String("stage", string(item.Stage)))
			item.Stage = types.Unassigned
		}
		seen[item.ID] = true
		items = append(items, item)
	}
	return items
}

// AddItem validates the input, appends a new unassigned item and writes
// through.
func (l *Library) AddItem(title, contentType string) (types.ContentItem, error) {
	req := AddItemRequest{
		Title: strings.TrimSpace(title),
		Type:  strings.TrimSpace(contentType),
	}
	if err := l.validateRequest(req); err != nil {
		return types.ContentItem{}, err
	}
	if !l.loaded {
		return types.ContentItem{}, ErrNotLoaded
	}

	id := l.newID()
	for l.indexOf(id) >= 0 {
		id = l.newID()
	}

	item := types.ContentItem{
		ID:    id,
		Title: req.Title,
		Type:  req.Type,
		Stage: types.Unassigned,
	}
	l.items = append(l.items, item)
	return item, l.save()
}

func (l *Library) validateRequest(req AddItemRequest) error {
	err := l.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		msg := "is invalid"
		switch fe.Tag() {
		case "required":
			msg = "must not be empty"
		case "max":
			msg = "must be at most " + fe.Param() + " characters"
		}
		return &InvalidContentItemError{Field: strings.ToLower(fe.Field()), Message: msg}
	}
	return &InvalidContentItemError{Field: "item", Message: err.Error()}
}

// RemoveItem deletes the item whatever its stage and writes through.
func (l *Library) RemoveItem(id types.ContentID) error {
	if !l.loaded {
		return ErrNotLoaded
	}
	idx := l.indexOf(id)
	if idx < 0 {
		return &NotFoundError{ID: id}
	}
	l.items = slices.Delete(l.items, idx, idx+1)
	return l.save()
}

// Assign moves the item into stage, replacing any previous stage.
func (l *Library) Assign(id types.ContentID, stage types.StageKey) error {
	if !stage.Valid() {
		return &InvalidStageError{Stage: string(stage)}
	}
	if !l.loaded {
		return ErrNotLoaded
	}
	idx := l.indexOf(id)
	if idx < 0 {
		return &NotFoundError{ID: id}
	}
	l.items[idx].Stage = stage
	return l.save()
}

// Unassign clears the item's stage. Unassigning an unassigned item is a
// no-op.
func (l *Library) Unassign(id types.ContentID) error {
	if !l.loaded {
		return ErrNotLoaded
	}
	idx := l.indexOf(id)
	if idx < 0 {
		return &NotFoundError{ID: id}
	}
	if !l.items[idx].Stage.IsAssigned() {
		return nil
	}
	l.items[idx].Stage = types.Unassigned
	return l.save()
}

// Get returns a copy of one item.
func (l *Library) Get(id types.ContentID) (types.ContentItem, error) {
	idx := l.indexOf(id)
	if idx < 0 {
		return types.ContentItem{}, &NotFoundError{ID: id}
	}
	return l.items[idx], nil
}

// AllItems returns a copy of every item in insertion order.
func (l *Library) AllItems() []types.ContentItem {
	return l.filter(func(types.ContentItem) bool { return true })
}

// ItemsForStage returns the items assigned to stage. Unknown stages have no
// items.
func (l *Library) ItemsForStage(stage types.StageKey) []types.ContentItem {
	if !stage.Valid() {
		return []types.ContentItem{}
	}
	return l.filter(func(c types.ContentItem) bool { return c.Stage == stage })
}

// UnassignedItems returns the items that belong to no stage.
func (l *Library) UnassignedItems() []types.ContentItem {
	return l.filter(func(c types.ContentItem) bool { return !c.IsAssigned() })
}

// Len reports the number of items.
func (l *Library) Len() int {
	return len(l.items)
}

// Reset empties the library and writes through.
func (l *Library) Reset() error {
	l.items = nil
	l.loaded = true
	return l.save()
}

func (l *Library) filter(keep func(types.ContentItem) bool) []types.ContentItem {
	out := make([]types.ContentItem, 0, len(l.items))
	for _, item := range l.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func (l *Library) indexOf(id types.ContentID) int {
	for i, item := range l.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (l *Library) save() error {
	items := l.items
	if items == nil {
		items = []types.ContentItem{}
	}
	return l.store.Save(storage.KeyContentLibrary, items)
}
