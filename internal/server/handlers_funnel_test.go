package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/content-toolkit/internal/storage"
)

func TestHandleFunnelAndGaps(t *testing.T) {
	s := newTestServer(t, storage.NewMemoryBackend())
	for _, title := range []string{"A", "B"} {
		id := addItem(t, s, title, "Blog Post")
		require.Equal(t, http.StatusOK,
			do(t, s, http.MethodPut, "/content/"+id+"/stage", map[string]string{"stage": "discover"}).Code)
	}
	addItem(t, s, "C", "Video")

	w := do(t, s, http.MethodGet, "/funnel/gaps", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.EqualValues(t, 2, resp["quota"])
	assert.EqualValues(t, 8, resp["total_gap"])
	stages := resp["stages"].(map[string]any)
	require.Len(t, stages, 5)
	assert.Equal(t, map[string]any{"count": 2.0, "gap": 0.0}, stages["discover"])
	assert.Equal(t, map[string]any{"count": 0.0, "gap": 2.0}, stages["authority"])

	w = do(t, s, http.MethodGet, "/funnel", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cards := decode(t, w)["stages"].([]any)
	require.Len(t, cards, 5)
	discover := cards[0].(map[string]any)
	assert.Equal(t, "discover", discover["key"])
	assert.Equal(t, "Discover", discover["title"])
	assert.NotEmpty(t, discover["description"])
	assert.EqualValues(t, 2, discover["count"])
	assert.Len(t, discover["items"], 2)
	assert.Equal(t, "authority", cards[4].(map[string]any)["key"])
}
