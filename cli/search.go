package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/oceanglide/gliderfetch/erddap"
	"github.com/oceanglide/gliderfetch/glider"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

var (
	searchBounds  boundsFlags
	searchJSON    bool
	searchBrowser bool

	searchCmd = &cobra.Command{
		Use:   "search",
		Short: "Discover glider datasets within geographic and time bounds",
		Long: `Search the server's catalog for glider datasets inside the supplied
bounds. Delayed-mode variants (dataset ids ending in "delayed") are
excluded unless --delayed is given.`,
		RunE: runSearch,
	}
)

func init() {
	searchBounds.register(searchCmd.Flags())
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "emit the catalog as JSON")
	searchCmd.Flags().BoolVarP(&searchBrowser, "browser", "b", false, "open the advanced search page in the default browser")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchBrowser {
		b := searchBounds.bounds()
		pageURL := erddap.New(serverFlag).SearchURL(erddap.SearchQuery{
			SearchFor: "glider",
			MinLat:    b.MinLat,
			MaxLat:    b.MaxLat,
			MinLon:    b.MinLon,
			MaxLon:    b.MaxLon,
			MinTime:   b.MinTime,
			MaxTime:   b.MaxTime,
		})
		pageURL = strings.Replace(pageURL, "/search/advanced.csv", "/search/advanced.html", 1)
		fmt.Printf("Opening advanced search in browser: %s\n", pageURL)
		return failureWrap(browser.OpenURL(pageURL))
	}

	fetcher, err := glider.NewFetcher(serverFlag)
	if err != nil {
		return err
	}

	catalog, err := fetcher.Query(searchBounds.bounds(), searchBounds.delayed)
	if err != nil {
		return err
	}

	if searchJSON || !stdoutIsTTY() {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(catalog)
	}

	out, err := renderMarkdown(catalogMarkdown(catalog))
	if err != nil {
		return err
	}
	fmt.Print(out)
	fmt.Printf("%d dataset(s)\n", len(catalog))
	return nil
}
