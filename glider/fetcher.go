package glider

import (
	"strings"

	"github.com/morikuni/failure/v2"
	"github.com/oceanglide/gliderfetch/dataframe"
	"github.com/oceanglide/gliderfetch/erddap"
	"github.com/oceanglide/gliderfetch/log"
)

// Fetcher is one query/fetch session against a glider ERDDAP server.
// It holds the active dataset id, the discovered catalog, and the download
// constraints. A Fetcher is not safe for concurrent use; start a new one
// per logical session.
type Fetcher struct {
	server  string
	client  *erddap.Client
	renames map[string]string

	datasetID string
	datasets  Catalog
	queryKey  string
}

// NewFetcher returns a Fetcher for the given server URL, or the IOOS
// glider DAC when server is empty. Servers without a known-variables entry
// are rejected.
func NewFetcher(server string) (*Fetcher, error) {
	if server == "" {
		server = DefaultServer
	}
	vars, err := KnownVariables(server)
	if err != nil {
		return nil, err
	}

	client := erddap.New(server)
	client.Variables = vars

	return &Fetcher{
		server:  server,
		client:  client,
		renames: RenameTable(server),
	}, nil
}

// Server returns the server URL this Fetcher talks to.
func (f *Fetcher) Server() string {
	return f.server
}

// SetDatasetID selects a single dataset for the next Fetch, bypassing
// catalog iteration.
func (f *Fetcher) SetDatasetID(id string) {
	f.datasetID = id
}

// DatasetID returns the configured single dataset id. Multi-dataset
// fetches never touch it.
func (f *Fetcher) DatasetID() string {
	return f.datasetID
}

// Datasets returns the catalog discovered by the last Query, or nil.
func (f *Fetcher) Datasets() Catalog {
	return f.datasets
}

// Fetch downloads and standardizes glider data. With a dataset id set it
// returns that dataset's table; otherwise it fetches every catalog entry
// in catalog order and concatenates the results without re-sorting. With
// neither an id nor a catalog it fails before any network I/O.
func (f *Fetcher) Fetch() (*dataframe.Table, error) {
	if f.datasetID != "" {
		return f.fetchOne(f.datasetID)
	}

	if f.datasets != nil {
		tables := make([]*dataframe.Table, 0, len(f.datasets))
		for _, entry := range f.datasets {
			tbl, err := f.fetchOne(entry.DatasetID)
			if err != nil {
				return nil, err
			}
			tables = append(tables, tbl)
		}
		return dataframe.Concat(tables...)
	}

	return nil, failure.New(ErrNoDatasetSelection,
		failure.Message("must provide a dataset id or query terms to download data"),
		failure.Context{
			"server": f.server,
		},
	)
}

// fetchOne downloads one dataset and standardizes it with its
// query-stripped download URL. The id stays local to the call.
func (f *Fetcher) fetchOne(datasetID string) (*dataframe.Table, error) {
	log.Debug("fetching dataset", "dataset_id", datasetID, "server", f.server)
	f.client.DatasetID = datasetID
	tbl, err := f.client.Fetch()
	if err != nil {
		return nil, err
	}

	datasetURL := strings.SplitN(f.client.DownloadURL("csvp"), "?", 2)[0]
	return Standardize(tbl, f.renames, datasetURL), nil
}
