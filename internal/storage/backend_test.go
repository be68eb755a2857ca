package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Backend {
	t.Helper()

	file, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)

	sqlite, err := NewSQLiteBackend(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Backend{
		KindMemory: NewMemoryBackend(),
		KindFile:   file,
		KindSQLite: sqlite,
	}
}

func TestBackends_Contract(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := b.Get("missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, b.Set("a", []byte(`{"x":1}`)))
			require.NoError(t, b.Set("b", []byte(`[]`)))
			require.NoError(t, b.Set("a", []byte(`{"x":2}`)))

			got, ok, err := b.Get("a")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.JSONEq(t, `{"x":2}`, string(got))

			keys, err := b.Keys()
			require.NoError(t, err)
			assert.Equal(t, []string{"a", "b"}, keys)

			require.NoError(t, b.Delete("a"))
			require.NoError(t, b.Delete("a"), "deleting a missing key is not an error")

			_, ok, err = b.Get("a")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestFileBackend_IgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	b, err := NewFileBackend(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".half.json.tmp"), []byte("{"), 0o644))
	require.NoError(t, b.Set("toolkit_step_progress", []byte(`{}`)))

	keys, err := b.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"toolkit_step_progress"}, keys)
}

func TestFileBackend_RequiresDir(t *testing.T) {
	_, err := NewFileBackend("")
	assert.Error(t, err)
}

func TestSQLiteBackend_PersistsAcrossOpen(t *testing.T) {
	dir := t.TempDir()
	b, err := NewSQLiteBackend(dir)
	require.NoError(t, err)
	require.NoError(t, b.Set("k", []byte(`"v"`)))
	require.NoError(t, b.Close())

	reopened, err := NewSQLiteBackend(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, ok, err := reopened.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `"v"`, string(got))
}

func TestOpen(t *testing.T) {
	b, err := Open(KindMemory, "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryBackend{}, b)

	b, err = Open("", t.TempDir())
	require.NoError(t, err)
	assert.IsType(t, &FileBackend{}, b)

	_, err = Open("redis", t.TempDir())
	assert.Error(t, err)
}

func TestValidateKey(t *testing.T) {
	assert.NoError(t, ValidateKey("toolkit_step_progress"))
	assert.Error(t, ValidateKey(""))
	assert.Error(t, ValidateKey("../etc/passwd"))
	assert.Error(t, ValidateKey("a b"))
}
