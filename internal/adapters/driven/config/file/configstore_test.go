package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "config")

	_, err := NewConfigStore(dir)

	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestConfigStore_Persistence_WritesTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("api.base_url", "https://explorer.example/api"))
	require.NoError(t, store.Set("api.rate_limit", 2.5))
	require.NoError(t, store.Set("search.debounce_ms", 250))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[api]")
	assert.Contains(t, string(raw), "[search]")

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "https://explorer.example/api", reloaded.GetString("api.base_url"))
	assert.InDelta(t, 2.5, reloaded.GetFloat("api.rate_limit"), 0.001)
	assert.Equal(t, 250, reloaded.GetInt("search.debounce_ms"))
}

func TestConfigStore_Load_HandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[api]
base_url = "http://node.local/api"
rate_limit = 3

[storage]
backend = "sqlite"
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, "http://node.local/api", store.GetString("api.base_url"))
	assert.InDelta(t, 3.0, store.GetFloat("api.rate_limit"), 0.001)
	assert.Equal(t, 3, store.GetInt("api.rate_limit"))
	assert.Equal(t, "sqlite", store.GetString("storage.backend"))
}

func TestConfigStore_TypeMismatch(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("flag", true))
	require.NoError(t, store.Set("name", "x"))

	assert.True(t, store.GetBool("flag"))
	assert.Equal(t, "", store.GetString("flag"))
	assert.Equal(t, 0, store.GetInt("name"))
	assert.Zero(t, store.GetFloat("name"))
	assert.False(t, store.GetBool("missing"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("k", "v"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("[[[ not toml"), 0600))

	_, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("cache.size", n)
			_ = store.GetInt("cache.size")
		}(i)
	}
	wg.Wait()

	_, ok := store.Get("cache.size")
	assert.True(t, ok)
}

func TestNestMap(t *testing.T) {
	nested := nestMap(map[string]any{
		"api.base_url":       "u",
		"api.rate_limit":     1.5,
		"storage.backend":    "file",
		"top":                true,
		"recent.max_entries": 10,
	})

	assert.Equal(t, map[string]any{"base_url": "u", "rate_limit": 1.5}, nested["api"])
	assert.Equal(t, true, nested["top"])
	assert.Equal(t, flattenMap(nested, ""), map[string]any{
		"api.base_url":       "u",
		"api.rate_limit":     1.5,
		"storage.backend":    "file",
		"top":                true,
		"recent.max_entries": 10,
	})
}
