package services

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/chainsearch/internal/core/domain"
	"github.com/custodia-labs/chainsearch/internal/core/ports/driven"
	"github.com/custodia-labs/chainsearch/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyAPIBaseURL      = "api.base_url"
	keyAPITimeout      = "api.timeout_seconds"
	keyAPIRateLimit    = "api.rate_limit"
	keyExplorerBaseURL = "explorer.base_url"
	keySearchLocale    = "search.locale"
	keySearchDebounce  = "search.debounce_ms"
	keySearchStale     = "search.stale_seconds"
	keyCacheSize       = "cache.size"
	keyRecentMax       = "recent.max_entries"
	KeyStorageBackend  = "storage.backend"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Missing or invalid values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		API: domain.APISettings{
			BaseURL:   s.getString(keyAPIBaseURL, defaults.API.BaseURL),
			Timeout:   s.getDuration(keyAPITimeout, time.Second, defaults.API.Timeout),
			RateLimit: s.getFloat(keyAPIRateLimit, defaults.API.RateLimit),
		},
		Explorer: domain.ExplorerSettings{
			BaseURL: s.getString(keyExplorerBaseURL, defaults.Explorer.BaseURL),
		},
		Search: domain.SearchSettings{
			Locale:     s.getString(keySearchLocale, defaults.Search.Locale),
			Debounce:   s.getDuration(keySearchDebounce, time.Millisecond, defaults.Search.Debounce),
			StaleAfter: s.getDuration(keySearchStale, time.Second, defaults.Search.StaleAfter),
			CacheSize:  s.getInt(keyCacheSize, defaults.Search.CacheSize),
		},
		Recent: domain.RecentSettings{
			MaxEntries: s.getInt(keyRecentMax, defaults.Recent.MaxEntries),
			Backend:    s.getBackend(defaults.Recent.Backend),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyAPIBaseURL, settings.API.BaseURL},
		{keyAPITimeout, int(settings.API.Timeout / time.Second)},
		{keyAPIRateLimit, settings.API.RateLimit},
		{keyExplorerBaseURL, settings.Explorer.BaseURL},
		{keySearchLocale, settings.Search.Locale},
		{keySearchDebounce, int(settings.Search.Debounce / time.Millisecond)},
		{keySearchStale, int(settings.Search.StaleAfter / time.Second)},
		{keyCacheSize, settings.Search.CacheSize},
		{keyRecentMax, settings.Recent.MaxEntries},
		{KeyStorageBackend, settings.Recent.Backend.String()},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set validates and stores a single setting.
func (s *SettingsService) Set(key, value string) error {
	value = strings.TrimSpace(value)

	var stored any
	switch key {
	case keyAPIBaseURL, keyExplorerBaseURL:
		u, err := url.Parse(value)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s must be an absolute URL: %w", key, domain.ErrInvalidInput)
		}
		stored = strings.TrimRight(value, "/")

	case keySearchLocale:
		if value == "" {
			return fmt.Errorf("%s must not be empty: %w", key, domain.ErrInvalidInput)
		}
		stored = value

	case keyAPITimeout, keySearchDebounce, keySearchStale, keyCacheSize, keyRecentMax:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive integer: %w", key, domain.ErrInvalidInput)
		}
		stored = n

	case keyAPIRateLimit:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("%s must be a positive number: %w", key, domain.ErrInvalidInput)
		}
		stored = f

	case KeyStorageBackend:
		b := domain.StorageBackend(strings.ToLower(value))
		if !b.IsValid() {
			return fmt.Errorf("%s must be one of %v: %w", key, domain.AllStorageBackends(), domain.ErrInvalidInput)
		}
		stored = b.String()

	default:
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrNotFound)
	}

	return s.configStore.Set(key, stored)
}

// Keys returns the configuration keys accepted by Set, sorted.
func (s *SettingsService) Keys() []string {
	keys := []string{
		keyAPIBaseURL, keyAPITimeout, keyAPIRateLimit, keyExplorerBaseURL,
		keySearchLocale, keySearchDebounce, keySearchStale, keyCacheSize,
		keyRecentMax, KeyStorageBackend,
	}
	sort.Strings(keys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if val := s.configStore.GetInt(key); val > 0 {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if val := s.configStore.GetFloat(key); val > 0 {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getDuration(key string, unit, defaultVal time.Duration) time.Duration {
	if val := s.configStore.GetInt(key); val > 0 {
		return time.Duration(val) * unit
	}
	return defaultVal
}

func (s *SettingsService) getBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	b := domain.StorageBackend(s.configStore.GetString(KeyStorageBackend))
	if b.IsValid() {
		return b
	}
	return defaultVal
}
