// Package toolkit is the application state container. It exclusively owns
// the step progress, content library and profile models and exposes only
// operations and read-only snapshots.
//
// A Toolkit is single-writer: callers that serve concurrent requests must
// serialize access themselves.
package toolkit

import (
	"go.uber.org/zap"

	"github.com/jonathan/content-toolkit/internal/content"
	"github.com/jonathan/content-toolkit/internal/funnel"
	"github.com/jonathan/content-toolkit/internal/profile"
	"github.com/jonathan/content-toolkit/internal/progress"
	"github.com/jonathan/content-toolkit/internal/reset"
	"github.com/jonathan/content-toolkit/internal/storage"
	"github.com/jonathan/content-toolkit/internal/types"
)

// Toolkit is the loaded state of one user's session.
type Toolkit struct {
	logger   *zap.Logger
	progress *progress.Model
	library  *content.Library
	profile  *profile.Model
	resetter *reset.Controller
}

// Option configures Open.
type Option func(*options)

type options struct {
	logger *zap.Logger
	newID  content.IDGenerator
}

// WithLogger sets the logger passed to every component.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithIDGenerator overrides how content ids are generated.
func WithIDGenerator(gen content.IDGenerator) Option {
	return func(o *options) { o.newID = gen }
}

// Open loads every model from store before returning, so no mutation can
// reach a model that has not finished loading.
func Open(store *storage.Store, opts ...Option) *Toolkit {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	libOpts := []content.Option{content.WithLogger(o.logger)}
	if o.newID != nil {
		libOpts = append(libOpts, content.WithIDGenerator(o.newID))
	}

	t := &Toolkit{
		logger:   o.logger,
		progress: progress.New(store),
		library:  content.New(store, libOpts...),
		profile:  profile.New(store),
	}
	t.progress.Load()
	t.library.Load()
	t.profile.Load()

	t.resetter = reset.NewController(store, o.logger, t.progress, t.library, t.profile)

	o.logger.Debug("toolkit loaded",
		zap.Int("completed_steps", t.progress.Metrics().CompletedStepCount),
		zap.Int("content_items", t.library.Len()),
	)
	return t
}

// Metrics is the dashboard summary.
func (t *Toolkit) Metrics() types.Metrics {
	return t.progress.Metrics()
}

// Steps lists every step with its completion flag.
func (t *Toolkit) Steps() []types.StepStatus {
	return t.progress.Snapshot()
}

// SetStepCompleted toggles one step.
func (t *Toolkit) SetStepCompleted(id types.StepID, done bool) error {
	return t.progress.SetCompleted(id, done)
}

// AddContent creates an unassigned content item.
func (t *Toolkit) AddContent(title, contentType string) (types.ContentItem, error) {
	return t.library.AddItem(title, contentType)
}

// RemoveContent deletes an item.
func (t *Toolkit) RemoveContent(id types.ContentID) error {
	return t.library.RemoveItem(id)
}

// AssignContent moves an item into a stage.
func (t *Toolkit) AssignContent(id types.ContentID, stage types.StageKey) error {
	return t.library.Assign(id, stage)
}

// UnassignContent removes an item from its stage.
func (t *Toolkit) UnassignContent(id types.ContentID) error {
	return t.library.Unassign(id)
}

// Content returns one item.
func (t *Toolkit) Content(id types.ContentID) (types.ContentItem, error) {
	return t.library.Get(id)
}

// AllContent lists every item.
func (t *Toolkit) AllContent() []types.ContentItem {
	return t.library.AllItems()
}

// ContentForStage lists the items of one stage.
func (t *Toolkit) ContentForStage(stage types.StageKey) []types.ContentItem {
	return t.library.ItemsForStage(stage)
}

// UnassignedContent lists the items in no stage.
func (t *Toolkit) UnassignedContent() []types.ContentItem {
	return t.library.UnassignedItems()
}

// Funnel builds the per-stage cards.
func (t *Toolkit) Funnel() []funnel.StageView {
	return funnel.StageViews(t.library.AllItems())
}

// Gaps runs the gap analysis over the live library.
func (t *Toolkit) Gaps() funnel.Report {
	return funnel.Analyze(t.library.AllItems())
}

// Profile returns the user profile.
func (t *Toolkit) Profile() types.UserProfile {
	return t.profile.Profile()
}

// SetProfile replaces the user profile.
func (t *Toolkit) SetProfile(p types.UserProfile) error {
	return t.profile.SetProfile(p)
}

// GeneratedCopy returns the free-text copy blob.
func (t *Toolkit) GeneratedCopy() string {
	return t.profile.GeneratedCopy()
}

// SetGeneratedCopy replaces the free-text copy blob.
func (t *Toolkit) SetGeneratedCopy(text string) error {
	return t.profile.SetGeneratedCopy(text)
}

// ResetAll wipes storage and every model. See reset.Controller.
func (t *Toolkit) ResetAll(confirmed bool) error {
	return t.resetter.ResetAll(confirmed)
}
