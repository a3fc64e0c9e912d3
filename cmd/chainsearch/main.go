// Command chainsearch searches a Cardano explorer from the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/chainsearch/internal/adapters/driven/backend/explorerapi"
	"github.com/custodia-labs/chainsearch/internal/adapters/driven/cardano"
	"github.com/custodia-labs/chainsearch/internal/adapters/driven/config/file"
	"github.com/custodia-labs/chainsearch/internal/adapters/driven/navigator"
	filestorage "github.com/custodia-labs/chainsearch/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/chainsearch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/chainsearch/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/chainsearch/internal/adapters/driving/cli"
	"github.com/custodia-labs/chainsearch/internal/core/domain"
	"github.com/custodia-labs/chainsearch/internal/core/ports/driven"
	"github.com/custodia-labs/chainsearch/internal/core/services"
	"github.com/custodia-labs/chainsearch/internal/logger"
)

// Set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	err := cli.Execute(ctx)
	if closeErr := cli.Close(); closeErr != nil {
		fmt.Fprintf(os.Stderr, "shutdown: %v\n", closeErr)
	}
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// bootstrap wires the driven adapters into the core services.
func bootstrap(_ context.Context) (*cli.Services, func() error, error) {
	logger.Section("bootstrap")

	configDir, err := file.DefaultDir()
	if err != nil {
		return nil, nil, fmt.Errorf("resolving config directory: %w", err)
	}
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	logger.Debug("config: %s", configStore.Path())

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("reading settings: %w", err)
	}

	backend := explorerapi.New(explorerapi.Config{
		BaseURL:   settings.API.BaseURL,
		Timeout:   settings.API.Timeout,
		RateLimit: settings.API.RateLimit,
	})
	searchService := services.NewSearchService(backend, settings.Search.CacheSize)

	storage, closeStorage := openStorage(settings.Recent.Backend, configDir)
	recentService := services.NewRecentSearchService(storage, settings.Recent.MaxEntries)

	svc := &cli.Services{
		Search:      searchService,
		Recent:      recentService,
		Settings:    settingsService,
		Classifier:  cardano.NewClassifier(),
		AppSettings: *settings,
		ConfigDir:   configDir,
	}

	// A bad explorer URL only disables opening results.
	if browser, err := navigator.NewBrowser(settings.Explorer.BaseURL); err != nil {
		logger.Warn("navigator disabled: %v", err)
	} else {
		svc.Navigator = browser
	}

	return svc, closeStorage, nil
}

// openStorage opens the configured recent-search backend. Any failure
// falls back to memory so searching keeps working.
func openStorage(backend domain.StorageBackend, configDir string) (driven.LocalStorage, func() error) {
	noop := func() error { return nil }
	dataDir := filepath.Join(configDir, "data")

	//nolint:exhaustive // memory is the fallback
	switch backend {
	case domain.StorageFile:
		s, err := filestorage.NewStorage(dataDir)
		if err == nil {
			logger.Debug("storage: file %s", s.Path())
			return s, noop
		}
		logger.Warn("file storage unavailable, using memory: %v", err)

	case domain.StorageSQLite:
		store, err := sqlite.NewStore(dataDir)
		if err == nil {
			logger.Debug("storage: sqlite %s", store.Path())
			return store.LocalStorage(), store.Close
		}
		logger.Warn("sqlite storage unavailable, using memory: %v", err)
	}

	return memory.NewLocalStorage(), noop
}
