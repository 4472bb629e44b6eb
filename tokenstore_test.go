package medclient_test

import (
	"os"
	"path/filepath"
	"testing"

	medclient "github.com/goliatone/go-medclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTokenStoreRoundTrip(t *testing.T) {
	store := medclient.NewMemoryTokenStore()

	_, ok := store.Get()
	assert.False(t, ok)

	require.NoError(t, store.Set("abc.def.ghi"))

	token, ok := store.Get()
	assert.True(t, ok)
	assert.Equal(t, "abc.def.ghi", token)
}

func TestMemoryTokenStoreRemoveIsIdempotent(t *testing.T) {
	store := medclient.NewMemoryTokenStore()
	require.NoError(t, store.Set("token"))

	require.NoError(t, store.Remove())
	_, ok := store.Get()
	assert.False(t, ok)

	// Removing the absent credential is a no-op, not an error.
	require.NoError(t, store.Remove())
	_, ok = store.Get()
	assert.False(t, ok)
}

func TestFileTokenStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")

	store, err := medclient.NewFileTokenStore(path)
	require.NoError(t, err)

	_, ok := store.Get()
	assert.False(t, ok)

	require.NoError(t, store.Set("abc.def.ghi"))

	token, ok := store.Get()
	assert.True(t, ok)
	assert.Equal(t, "abc.def.ghi", token)
}

func TestFileTokenStoreSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")

	first, err := medclient.NewFileTokenStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Set("persisted"))

	// A fresh instance over the same path models a process restart.
	second, err := medclient.NewFileTokenStore(path)
	require.NoError(t, err)

	token, ok := second.Get()
	assert.True(t, ok)
	assert.Equal(t, "persisted", token)
}

func TestFileTokenStoreRemoveIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")

	store, err := medclient.NewFileTokenStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Set("token"))

	require.NoError(t, store.Remove())
	require.NoError(t, store.Remove())

	_, ok := store.Get()
	assert.False(t, ok)
}

func TestFileTokenStoreEmptyFileReadsAsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o600))

	store, err := medclient.NewFileTokenStore(path)
	require.NoError(t, err)

	_, ok := store.Get()
	assert.False(t, ok)
}

func TestFileTokenStoreSetsTightPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")

	store, err := medclient.NewFileTokenStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Set("secret"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
