// Package progress tracks completion of the nine framework steps.
package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/jonathan/content-toolkit/internal/storage"
	"github.com/jonathan/content-toolkit/internal/types"
	"github.com/jonathan/content-toolkit/schemas"
)

// ErrNotLoaded is returned by mutations issued before Load.
var ErrNotLoaded = errors.New("step progress not loaded")

// InvalidStepIDError rejects a step outside 1-9.
type InvalidStepIDError struct {
	StepID int
}

func (e *InvalidStepIDError) Error() string {
	return fmt.Sprintf("invalid step id %d: must be between 1 and %d", e.StepID, types.StepCount)
}

// Persisted as {"1": true, "2": false, ...}. Unknown keys are ignored and
// missing keys read as false.
var progressShape = storage.MustShape(schemas.MustLoad(schemas.StepProgress))

// Model is the canonical step completion state. It is not safe for
// concurrent use.
type Model struct {
	store     *storage.Store
	completed [types.StepCount]bool
	loaded    bool
}

// New returns an unloaded model backed by store.
func New(store *storage.Store) *Model {
	return &Model{store: store}
}

// Load reads persisted progress. Absent or malformed data leaves every step
// incomplete; Load itself never fails.
func (m *Model) Load() {
	m.completed = [types.StepCount]bool{}
	m.loaded = true

	var stored map[string]json.RawMessage
	if !m.store.Load(storage.KeyStepProgress, progressShape, &stored) {
		return
	}
	for key, raw := range stored {
		id, err := strconv.Atoi(key)
		if err != nil || !types.StepID(id).Valid() {
			continue
		}
		var done bool
		if json.Unmarshal(raw, &done) != nil {
			continue
		}
		m.completed[id-1] = done
	}
}

// SetCompleted updates one step and writes through. An invalid id changes
// nothing. A *storage.WriteError means the flag changed in memory but was
// not persisted.
func (m *Model) SetCompleted(id types.StepID, done bool) error {
	if !id.Valid() {
		return &InvalidStepIDError{StepID: int(id)}
	}
	if !m.loaded {
		return ErrNotLoaded
	}
	m.completed[id-1] = done
	return m.save()
}

// IsCompleted reports the flag for id; invalid ids read as false.
func (m *Model) IsCompleted(id types.StepID) bool {
	if !id.Valid() {
		return false
	}
	return m.completed[id-1]
}

// Metrics derives the dashboard summary from the current state.
func (m *Model) Metrics() types.Metrics {
	count := 0
	for _, done := range m.completed {
		if done {
			count++
		}
	}
	return types.ComputeMetrics(count)
}

// Snapshot returns every step with its completion flag, in order.
func (m *Model) Snapshot() []types.StepStatus {
	out := make([]types.StepStatus, types.StepCount)
	for i, step := range types.Steps {
		out[i] = types.StepStatus{Step: step, Completed: m.completed[i]}
	}
	return out
}

// Reset marks every step incomplete and writes through.
func (m *Model) Reset() error {
	m.completed = [types.StepCount]bool{}
	m.loaded = true
	return m.save()
}

func (m *Model) save() error {
	return m.store.Save(storage.KeyStepProgress, m.wire())
}

// wire always carries all nine keys.
func (m *Model) wire() map[string]bool {
	out := make(map[string]bool, types.StepCount)
	for i, done := range m.completed {
		out[strconv.Itoa(i+1)] = done
	}
	return out
}
