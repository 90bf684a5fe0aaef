package tokenstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/movie-stream-client/internal/tokenstore"
)

func TestFileStore_LoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store, err := tokenstore.NewFileStore(path)
	require.NoError(t, err)

	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestFileStore_SaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "token")
	store, err := tokenstore.NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Save("saved-token"))

	token, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "saved-token", token)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_TokenSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")

	first, err := tokenstore.NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Save("persisted-token"))

	// Новый экземпляр поверх того же пути имитирует перезапуск клиента.
	second, err := tokenstore.NewFileStore(path)
	require.NoError(t, err)
	token, err := second.Load()
	require.NoError(t, err)
	assert.Equal(t, "persisted-token", token)
}

func TestFileStore_ClearIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store, err := tokenstore.NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Save("saved-token"))
	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())

	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestMemoryStore(t *testing.T) {
	store := tokenstore.NewMemoryStore()

	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Save("in-memory"))
	token, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "in-memory", token)

	require.NoError(t, store.Clear())
	token, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}
