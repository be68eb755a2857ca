package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/content-toolkit/internal/storage"
	"github.com/jonathan/content-toolkit/internal/storage/storagetest"
)

func seed(t *testing.T, s *Server) {
	t.Helper()
	addItem(t, s, "Intro", "Video")
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPut, "/steps/4", map[string]bool{"completed": true}).Code)
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPut, "/profile", map[string]string{"name": "Ada"}).Code)
}

func assertEmpty(t *testing.T, s *Server) {
	t.Helper()
	assert.EqualValues(t, 0, decode(t, do(t, s, http.MethodGet, "/content", nil))["total"])
	metrics := decode(t, do(t, s, http.MethodGet, "/dashboard", nil))["metrics"].(map[string]any)
	assert.EqualValues(t, 0, metrics["completed_step_count"])
	assert.Equal(t, "", decode(t, do(t, s, http.MethodGet, "/profile", nil))["name"])
}

func TestHandleReset_RequiresConfirmation(t *testing.T) {
	s := newTestServer(t, storage.NewMemoryBackend())
	seed(t, s)

	for _, body := range []any{nil, map[string]bool{"confirm": false}} {
		w := do(t, s, http.MethodPost, "/reset", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
	assert.EqualValues(t, 1, decode(t, do(t, s, http.MethodGet, "/content", nil))["total"])
}

func TestHandleReset(t *testing.T) {
	backend := storage.NewMemoryBackend()
	s := newTestServer(t, backend)
	seed(t, s)

	w := do(t, s, http.MethodPost, "/reset", map[string]bool{"confirm": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assertEmpty(t, s)

	// Persisted state is gone too
	assertEmpty(t, newTestServer(t, backend))

	// Idempotent
	w = do(t, s, http.MethodPost, "/reset", map[string]bool{"confirm": true})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleReset_StorageFailure(t *testing.T) {
	backend := storagetest.NewFaultyBackend()
	s := newTestServer(t, backend)
	seed(t, s)
	backend.FailDelete = true

	w := do(t, s, http.MethodPost, "/reset", map[string]bool{"confirm": true})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decode(t, w)
	assert.Contains(t, resp["error"], "reset incomplete")
	assert.Equal(t, "reset", resp["in_memory"])

	assertEmpty(t, s)
}
