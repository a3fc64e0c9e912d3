package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/chainsearch/internal/core/codec"
)

var recentJSON bool

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recent searches",
	Long:  `Lists recent searches, newest first, as stored by the search provider.`,
	Args:  cobra.NoArgs,
	RunE:  runRecentList,
}

var recentClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every recent search",
	Args:  cobra.NoArgs,
	RunE:  runRecentClear,
}

func init() {
	recentCmd.Flags().BoolVar(&recentJSON, "json", false, "output the list in its stored format")
	recentCmd.AddCommand(recentClearCmd)
	rootCmd.AddCommand(recentCmd)
}

func runRecentList(cmd *cobra.Command, _ []string) error {
	if recentService == nil {
		return errNotConfigured("recent searches")
	}
	entries := recentService.List()

	if recentJSON {
		data, err := codec.MarshalRecent(entries)
		if err != nil {
			return fmt.Errorf("failed to marshal recent searches: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(entries) == 0 {
		cmd.Println("No recent searches.")
		return nil
	}
	width := terminalWidth()
	for i, e := range entries {
		when := humanize.Time(e.Time())
		cmd.Printf("  [%d] %s  (%s)\n", i+1, fit(e.Query, width-len(when)-12), when)
		if e.SelectedItem != nil {
			cmd.Printf("      -> %s %s\n", e.SelectedItem.Category, fit(e.SelectedItem.Title, width-20))
		}
	}
	if !recentService.Persistent() {
		cmd.PrintErrln("Warning: recent searches are not being saved this session.")
	}
	return nil
}

func runRecentClear(cmd *cobra.Command, _ []string) error {
	if recentService == nil {
		return errNotConfigured("recent searches")
	}
	if err := recentService.Clear(); err != nil {
		return fmt.Errorf("clearing recent searches: %w", err)
	}
	cmd.Println("Recent searches cleared.")
	return nil
}
