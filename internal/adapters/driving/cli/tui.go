package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/chainsearch/internal/adapters/driving/tui"
	"github.com/custodia-labs/chainsearch/internal/core/domain"
	"github.com/custodia-labs/chainsearch/internal/logger"
)

const tuiLogFile = "tui.log"

var (
	tuiCategory string
	tuiHomepage bool
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive search provider",
	Long: `Launch the interactive terminal search provider.

The dropdown opens on focus and shows recent searches until you type.
Results are grouped by category and can be filtered with the tabs.

Controls:
  /          - Open the search box
  ↑/↓        - Move through results
  Tab        - Next category tab
  Enter      - Open the highlighted result
  Ctrl+R     - Refetch the current query
  Ctrl+X     - Clear recent searches
  Esc        - Close the dropdown
  ?          - Toggle help
  Ctrl+C     - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVarP(&tuiCategory, "category", "c", "all",
		"restrict the provider to one category")
	tuiCmd.Flags().BoolVar(&tuiHomepage, "homepage", false, "use the large homepage header")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	scope, ok := domain.ParseFilter(tuiCategory)
	if !ok {
		return fmt.Errorf("category %q: %w", tuiCategory, domain.ErrUnsupportedType)
	}

	// Logs would corrupt the alternate screen.
	if configDir != "" {
		restore, err := logger.RedirectToFile(filepath.Join(configDir, tuiLogFile))
		if err != nil {
			return fmt.Errorf("opening TUI log: %w", err)
		}
		defer func() { _ = restore() }()
	}

	ports := &tui.Ports{
		Search:     searchService,
		Recent:     recentService,
		Navigator:  navigator,
		Classifier: classifier,
	}
	app, err := tui.NewApp(ports, tuiOptions(scope))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	return app.WithContext(cmd.Context()).Run()
}

func tuiOptions(scope domain.Category) tui.Options {
	return tui.Options{
		Locale:     appSettings.Search.Locale,
		Homepage:   tuiHomepage,
		Debounce:   appSettings.Search.Debounce,
		StaleAfter: appSettings.Search.StaleAfter,
		Scope:      scope,
	}
}
