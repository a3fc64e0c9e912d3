package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/chainsearch/internal/core/domain"
	"github.com/custodia-labs/chainsearch/internal/core/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the search backend, explorer links, debounce and
cache timings, and where recent searches are stored.

Settings live in ~/.chainsearch/config.toml.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Change one setting by its configuration key.

Run with an unknown key to list the accepted keys.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsStorageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Choose where recent searches are stored",
	Long: `Interactively choose the recent-search storage backend.

Available backends:
  file   - JSON document next to the config, shared between processes
  sqlite - key/value table in a SQLite database
  memory - nothing is kept after exit`,
	Args: cobra.NoArgs,
	RunE: runSettingsStorage,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsStorageCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings service")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[API]")
	cmd.Printf("  Base URL: %s\n", settings.API.BaseURL)
	cmd.Printf("  Timeout: %s\n", settings.API.Timeout)
	cmd.Printf("  Rate limit: %s req/s\n", strconv.FormatFloat(settings.API.RateLimit, 'f', -1, 64))
	cmd.Println()

	cmd.Println("[Explorer]")
	cmd.Printf("  Base URL: %s\n", settings.Explorer.BaseURL)
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Locale: %s\n", settings.Search.Locale)
	cmd.Printf("  Debounce: %s\n", settings.Search.Debounce)
	cmd.Printf("  Stale after: %s\n", settings.Search.StaleAfter)
	cmd.Printf("  Cache size: %d\n", settings.Search.CacheSize)
	cmd.Println()

	cmd.Println("[Recent searches]")
	cmd.Printf("  Max entries: %d\n", settings.Recent.MaxEntries)
	cmd.Printf("  Storage: %s\n", settings.Recent.Backend.Description())
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings service")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			cmd.PrintErrf("Accepted keys:\n  %s\n", strings.Join(settingsService.Keys(), "\n  "))
		}
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func runSettingsStorage(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings service")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Select Recent Search Storage")
	cmd.Println("----------------------------")
	backends := domain.AllStorageBackends()
	current := 1
	for i, b := range backends {
		marker := " "
		if b == settings.Recent.Backend {
			marker = "*"
			current = i + 1
		}
		cmd.Printf(" %s%d. %s\n", marker, i+1, b.Description())
	}
	cmd.Printf("\nEnter choice [%d]: ", current)

	reader := bufio.NewReader(cmd.InOrStdin())
	selected := backends[parseChoice(readLine(reader), len(backends), current)-1]

	if err := settingsService.Set(services.KeyStorageBackend, selected.String()); err != nil {
		return fmt.Errorf("failed to set storage backend: %w", err)
	}
	cmd.Printf("Recent searches will be stored in: %s\n", selected.Description())
	return nil
}

func readLine(reader *bufio.Reader) string {
	input, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return ""
	}
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}
