package cli

import (
	"fmt"

	"github.com/law-makers/curate/internal/curate"
	"github.com/law-makers/curate/internal/ui"
	urlutil "github.com/law-makers/curate/internal/utils/url"
	"github.com/spf13/cobra"
)

// linksCmd prints one page's working set without touching saved state
var linksCmd = &cobra.Command{
	Use:   "links <url>",
	Short: "Fetch one page and print its numbered link list",
	Long: `Fetches a single page with the configured fetcher and prints the links that
would form its first curation level: resolved, deduplicated, and sorted.
Nothing is read from or written to the state directory.`,
	Example: `  curate links https://example.com/docs/
  curate links https://team.scrapbox.io/project --mode browser`,
	Args: cobra.ExactArgs(1),
	RunE: runLinks,
}

func init() {
	rootCmd.AddCommand(linksCmd)
}

func runLinks(cmd *cobra.Command, args []string) error {
	target := args[0]
	if err := urlutil.ValidateURL(target); err != nil {
		return err
	}

	a := getApp(cmd)
	results := a.Pool.FetchAll(cmd.Context(), []string{target})
	if err := results[0].Err; err != nil {
		return fmt.Errorf("failed to fetch %s: %w", target, err)
	}

	ws := curate.BuildFrontier(results, a.Config.MaxLinks)
	entries := make([]curate.Entry, len(ws))
	for i, l := range ws {
		entries[i] = curate.Entry{Index: i + 1, Link: l}
	}

	console := ui.NewConsole(cmd.InOrStdin(), cmd.OutOrStdout())
	console.ShowLinks(fmt.Sprintf("%d links on %s", len(ws), target), entries)
	return nil
}
