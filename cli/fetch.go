package cli

import (
	"io"
	"os"

	"github.com/morikuni/failure/v2"
	"github.com/oceanglide/gliderfetch/dataframe"
	"github.com/oceanglide/gliderfetch/glider"
	"github.com/spf13/cobra"
)

var (
	fetchBounds    boundsFlags
	fetchDatasetID string
	fetchOutput    string

	fetchCmd = &cobra.Command{
		Use:   "fetch",
		Short: "Download glider data as CSV",
		Long: `Download one dataset by id, or every dataset discovered inside the
supplied bounds, standardized to canonical column names with a dataset_url
provenance column.`,
		RunE: runFetch,
	}
)

func init() {
	fetchBounds.register(fetchCmd.Flags())
	fetchCmd.Flags().StringVarP(&fetchDatasetID, "dataset-id", "d", "", "fetch a single dataset by id")
	fetchCmd.Flags().StringVarP(&fetchOutput, "output", "o", "", "write CSV to a file instead of stdout")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	tbl, err := fetchTable(cmd, &fetchBounds, fetchDatasetID)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if fetchOutput != "" {
		f, err := os.Create(fetchOutput)
		if err != nil {
			return failure.Wrap(err)
		}
		defer f.Close()
		out = f
	}
	return tbl.WriteCSV(out)
}

// fetchTable builds a Fetcher from the shared flags and downloads either
// the named dataset or everything the bounds discover.
func fetchTable(cmd *cobra.Command, bounds *boundsFlags, datasetID string) (*dataframe.Table, error) {
	fetcher, err := glider.NewFetcher(serverFlag)
	if err != nil {
		return nil, err
	}

	switch {
	case datasetID != "":
		fetcher.SetDatasetID(datasetID)
	case bounds.set(cmd.Flags()):
		if _, err := fetcher.Query(bounds.bounds(), bounds.delayed); err != nil {
			return nil, err
		}
	default:
		return nil, failure.New(MissingSelection,
			failure.Message("supply --dataset-id or search bounds (--min-time/--max-time ...)"),
		)
	}

	return fetcher.Fetch()
}
