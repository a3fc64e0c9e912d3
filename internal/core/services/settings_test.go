package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chainsearch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/chainsearch/internal/core/domain"
)

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("api.base_url", "https://explorer.example/api")
	_ = store.Set("api.timeout_seconds", 3)
	_ = store.Set("api.rate_limit", 2.5)
	_ = store.Set("search.debounce_ms", 150)
	_ = store.Set("search.stale_seconds", 5)
	_ = store.Set("storage.backend", "sqlite")

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Equal(t, "https://explorer.example/api", settings.API.BaseURL)
	assert.Equal(t, 3*time.Second, settings.API.Timeout)
	assert.InDelta(t, 2.5, settings.API.RateLimit, 0.001)
	assert.Equal(t, 150*time.Millisecond, settings.Search.Debounce)
	assert.Equal(t, 5*time.Second, settings.Search.StaleAfter)
	assert.Equal(t, domain.StorageSQLite, settings.Recent.Backend)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("storage.backend", "floppy")
	_ = store.Set("recent.max_entries", -4)

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Recent.Backend, settings.Recent.Backend)
	assert.Equal(t, defaults.Recent.MaxEntries, settings.Recent.MaxEntries)
}

func TestSettingsService_SaveThenGet(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)
	want := domain.DefaultAppSettings()
	want.Search.Locale = "ja"
	want.Search.Debounce = 500 * time.Millisecond
	want.Recent.Backend = domain.StorageMemory

	require.NoError(t, service.Save(&want))

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, want, *got)
	assert.Equal(t, 500, store.GetInt("search.debounce_ms"))
}

func TestSettingsService_Set(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.Set("api.base_url", "https://example.org/api/"))
	require.NoError(t, service.Set("recent.max_entries", "25"))
	require.NoError(t, service.Set("api.rate_limit", "0.5"))
	require.NoError(t, service.Set("storage.backend", "SQLITE"))

	assert.Equal(t, "https://example.org/api", store.GetString("api.base_url"))
	assert.Equal(t, 25, store.GetInt("recent.max_entries"))
	assert.InDelta(t, 0.5, store.GetFloat("api.rate_limit"), 0.001)
	assert.Equal(t, "sqlite", store.GetString("storage.backend"))
}

func TestSettingsService_Set_Invalid(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	tests := []struct {
		key, value string
	}{
		{"api.base_url", "not a url"},
		{"search.debounce_ms", "-1"},
		{"search.debounce_ms", "soon"},
		{"api.rate_limit", "0"},
		{"storage.backend", "floppy"},
		{"search.locale", " "},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			assert.ErrorIs(t, service.Set(tt.key, tt.value), domain.ErrInvalidInput)
		})
	}

	assert.ErrorIs(t, service.Set("no.such.key", "1"), domain.ErrNotFound)
}

func TestSettingsService_Keys(t *testing.T) {
	keys := NewSettingsService(memory.NewConfigStore()).Keys()

	assert.Len(t, keys, 10)
	assert.Contains(t, keys, "storage.backend")
	assert.IsIncreasing(t, keys)
}
