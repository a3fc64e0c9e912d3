// Package cli provides the cobra command tree for chainsearch.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/chainsearch/internal/core/domain"
	"github.com/custodia-labs/chainsearch/internal/core/ports/driven"
	"github.com/custodia-labs/chainsearch/internal/core/ports/driving"
	"github.com/custodia-labs/chainsearch/internal/logger"
)

// Services holds everything a command may use. Fields other than
// Settings and AppSettings may be nil when the command does not need them.
type Services struct {
	Search      driving.SearchService
	Recent      driving.RecentSearchService
	Settings    driving.SettingsService
	Navigator   driven.Navigator
	Classifier  driven.QueryClassifier
	AppSettings domain.AppSettings

	// ConfigDir holds config.toml and the TUI log.
	ConfigDir string
}

// Bootstrap builds the services for one command run. The returned
// function releases them.
type Bootstrap func(ctx context.Context) (*Services, func() error, error)

var (
	version   = "dev"
	verbose   bool
	bootstrap Bootstrap
	release   func() error

	searchService   driving.SearchService
	recentService   driving.RecentSearchService
	settingsService driving.SettingsService
	navigator       driven.Navigator
	classifier      driven.QueryClassifier
	appSettings     = domain.DefaultAppSettings()
	configDir       string
)

var rootCmd = &cobra.Command{
	Use:   "chainsearch",
	Short: "Search a Cardano explorer from the terminal",
	Long: `chainsearch queries a Cardano explorer search backend for transactions,
blocks, stake pools, addresses, assets, epochs and policies.

Run 'chainsearch tui' for the interactive search provider or
'chainsearch search <query>' for a one-shot lookup.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap installs the service factory run before every command.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// Execute runs the root command. Command output goes to stdout so
// results can be piped; errors and hints go to stderr.
func Execute(ctx context.Context) error {
	rootCmd.SetOut(os.Stdout)
	return rootCmd.ExecuteContext(ctx)
}

// Close releases services left open by a failed command.
func Close() error {
	return teardown(nil, nil)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if bootstrap == nil {
		return nil
	}

	svc, closeFn, err := bootstrap(cmd.Context())
	if err != nil {
		return fmt.Errorf("starting chainsearch: %w", err)
	}
	setServices(svc)
	release = closeFn
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if release == nil {
		return nil
	}
	err := release()
	release = nil
	return err
}

func setServices(svc *Services) {
	if svc == nil {
		return
	}
	searchService = svc.Search
	recentService = svc.Recent
	settingsService = svc.Settings
	navigator = svc.Navigator
	classifier = svc.Classifier
	appSettings = svc.AppSettings
	configDir = svc.ConfigDir
}

// errNotConfigured reports a command run without its service.
func errNotConfigured(name string) error {
	return errors.New(name + " not configured")
}
