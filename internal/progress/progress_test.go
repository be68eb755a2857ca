package progress

import (
	"testing"

	"github.com/jonathan/content-toolkit/internal/storage"
	"github.com/jonathan/content-toolkit/internal/storage/storagetest"
	"github.com/jonathan/content-toolkit/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedModel(t *testing.T, b storage.Backend) *Model {
	t.Helper()
	m := New(storage.NewStore(b))
	m.Load()
	return m
}

func TestModel_LoadDefaultsToIncomplete(t *testing.T) {
	m := loadedModel(t, storage.NewMemoryBackend())

	for _, id := range types.StepIDs() {
		assert.False(t, m.IsCompleted(id))
	}
	assert.Equal(t, types.Metrics{CompletedStepCount: 0, ProgressPercentage: 0, RemainingSteps: 9, TotalSteps: 9}, m.Metrics())
}

func TestModel_MetricsTrackEveryCount(t *testing.T) {
	m := loadedModel(t, storage.NewMemoryBackend())
	expected := []int{0, 11, 22, 33, 44, 56, 67, 78, 89, 100}

	assert.Equal(t, expected[0], m.Metrics().ProgressPercentage)
	for i, id := range types.StepIDs() {
		require.NoError(t, m.SetCompleted(id, true))
		metrics := m.Metrics()
		assert.Equal(t, i+1, metrics.CompletedStepCount)
		assert.Equal(t, expected[i+1], metrics.ProgressPercentage)
		assert.Equal(t, 9-(i+1), metrics.RemainingSteps)
	}

	require.NoError(t, m.SetCompleted(4, false))
	require.NoError(t, m.SetCompleted(4, false))
	assert.Equal(t, 8, m.Metrics().CompletedStepCount)
}

func TestModel_SetCompletedRejectsInvalidStep(t *testing.T) {
	b := storagetest.NewFaultyBackend()
	m := loadedModel(t, b)

	for _, id := range []types.StepID{0, 10, -1} {
		err := m.SetCompleted(id, true)
		var invalid *InvalidStepIDError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, int(id), invalid.StepID)
	}
	assert.Equal(t, 0, m.Metrics().CompletedStepCount)
	assert.Equal(t, 0, b.Sets, "rejected calls never write")
}

func TestModel_RequiresLoad(t *testing.T) {
	m := New(storage.NewStore(storage.NewMemoryBackend()))
	assert.ErrorIs(t, m.SetCompleted(1, true), ErrNotLoaded)
}

func TestModel_PersistenceRoundTrip(t *testing.T) {
	b := storage.NewMemoryBackend()
	m := loadedModel(t, b)
	require.NoError(t, m.SetCompleted(1, true))
	require.NoError(t, m.SetCompleted(7, true))

	raw, ok, err := b.Get("toolkit_step_progress")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"1":true,"2":false,"3":false,"4":false,"5":false,"6":false,"7":true,"8":false,"9":false}`, string(raw))

	fresh := loadedModel(t, b)
	assert.Equal(t, m.Snapshot(), fresh.Snapshot())
	assert.Equal(t, 2, fresh.Metrics().CompletedStepCount)
}

func TestModel_LoadToleratesPartialAndCorruptData(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		completed []types.StepID
	}{
		{"missing keys read as false", `{"2":true,"5":true}`, []types.StepID{2, 5}},
		{"unknown keys ignored", `{"3":true,"10":true,"0":true,"x":true}`, []types.StepID{3}},
		{"unknown keys with other values ignored", `{"3":true,"7":true,"notes":"x","lastVisited":{"step":4}}`, []types.StepID{3, 7}},
		{"array instead of object", `[true,true,true]`, nil},
		{"string instead of object", `"undefined"`, nil},
		{"non boolean flag", `{"1":"yes","2":true}`, nil},
		{"truncated json", `{"1":tr`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := storage.NewMemoryBackend()
			require.NoError(t, b.Set("toolkit_step_progress", []byte(tt.raw)))

			m := loadedModel(t, b)
			assert.Equal(t, len(tt.completed), m.Metrics().CompletedStepCount)
			for _, id := range tt.completed {
				assert.True(t, m.IsCompleted(id))
			}
		})
	}
}

func TestModel_WriteFailureKeepsMutation(t *testing.T) {
	b := storagetest.NewFaultyBackend()
	m := loadedModel(t, b)
	b.FailSet = true

	err := m.SetCompleted(3, true)
	assert.True(t, storage.IsWriteError(err))
	assert.True(t, m.IsCompleted(3), "in-memory state is not rolled back")
	assert.Equal(t, 1, m.Metrics().CompletedStepCount)
}

func TestModel_Reset(t *testing.T) {
	b := storage.NewMemoryBackend()
	m := loadedModel(t, b)
	require.NoError(t, m.SetCompleted(1, true))
	require.NoError(t, m.SetCompleted(9, true))

	require.NoError(t, m.Reset())
	assert.Equal(t, 0, m.Metrics().CompletedStepCount)

	fresh := loadedModel(t, b)
	assert.Equal(t, 0, fresh.Metrics().CompletedStepCount)
}

func TestModel_SnapshotIsACopy(t *testing.T) {
	m := loadedModel(t, storage.NewMemoryBackend())
	snap := m.Snapshot()
	snap[0].Completed = true

	assert.False(t, m.IsCompleted(1))
	assert.Equal(t, "Define Your Ideal Client", m.Snapshot()[0].Title)
}
