package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/chainsearch/internal/core/codec"
	"github.com/custodia-labs/chainsearch/internal/core/domain"
	"github.com/custodia-labs/chainsearch/internal/core/services"
)

const defaultTableWidth = 100

var (
	searchLimit     int
	searchJSON      bool
	searchCategory  string
	searchLocale    string
	searchNoHistory bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the explorer",
	Long: `Sends one query to the explorer search backend and prints the results
grouped by category.

The query may be a transaction hash, block height, address, stake pool id,
asset fingerprint, policy id or free text. The query is added to the recent
searches unless --no-history is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 20, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output the response in the backend wire format")
	searchCmd.Flags().StringVarP(&searchCategory, "category", "c", "all",
		"restrict to tx, block, pool, address, asset, epoch or policy")
	searchCmd.Flags().StringVar(&searchLocale, "locale", "", "locale sent to the backend (default from settings)")
	searchCmd.Flags().BoolVar(&searchNoHistory, "no-history", false, "do not record the query in recent searches")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(args[0])
	if query == "" {
		return fmt.Errorf("empty query: %w", domain.ErrInvalidInput)
	}
	if searchService == nil {
		return errNotConfigured("search service")
	}

	category, ok := domain.ParseFilter(searchCategory)
	if !ok {
		return fmt.Errorf("category %q: %w", searchCategory, domain.ErrUnsupportedType)
	}
	locale := searchLocale
	if locale == "" {
		locale = appSettings.Search.Locale
	}

	if classifier != nil {
		if guess, ok := classifier.Classify(query); ok {
			cmd.PrintErrf("Looks like %s\n", strings.ToLower(guess.Label()))
		}
	}

	resp, err := searchService.Search(cmd.Context(), domain.SearchRequest{
		Query:    query,
		Locale:   locale,
		Category: category,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if !searchNoHistory && recentService != nil {
		if err := recentService.Record(domain.RecentSearchEntry{Query: query}); err != nil {
			return fmt.Errorf("recording search: %w", err)
		}
	}

	items := services.Flatten(services.GroupItems(services.FilterItems(resp, category)))
	if searchLimit > 0 && len(items) > searchLimit {
		items = items[:searchLimit]
	}

	if searchJSON {
		return outputSearchJSON(cmd, items)
	}
	return outputSearchTable(cmd, items)
}

func outputSearchJSON(cmd *cobra.Command, items []domain.SearchResultItem) error {
	data, err := codec.EncodeResponse(&domain.SearchResponse{Data: items})
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, items []domain.SearchResultItem) error {
	if len(items) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	width := terminalWidth()
	for _, g := range services.GroupItems(items) {
		cmd.Printf("%s (%d)\n", g.Category.Label(), len(g.Items))
		for i := range g.Items {
			item := &g.Items[i]
			title := item.Title
			if title == "" {
				title = item.Ident
			}
			extra := formatExtra(item.Extra)
			cmd.Printf("  %s", fit(title, width-len(extra)-6))
			if extra != "" {
				cmd.Printf("  %s", extra)
			}
			cmd.Println()
			if item.URL != "" {
				cmd.Printf("    %s\n", item.URL)
			}
		}
		cmd.Println()
	}
	return nil
}

// formatExtra renders an item's auxiliary payload.
func formatExtra(extra *domain.Extra) string {
	if extra == nil {
		return ""
	}
	//nolint:exhaustive // unknown tags fall through to default
	switch extra.Type {
	case domain.ExtraTime:
		return humanize.Time(extra.Time)
	case domain.ExtraStake:
		return "stake " + ada(extra.Amount)
	case domain.ExtraBalance:
		return ada(extra.Amount)
	default:
		return extra.Tag
	}
}

func ada(lovelace int64) string {
	return humanize.CommafWithDigits(float64(lovelace)/1_000_000, 6) + " ADA"
}

func fit(s string, width int) string {
	if width < 10 {
		width = 10
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultTableWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultTableWidth
	}
	return w
}
