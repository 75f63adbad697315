package glider

import (
	"strings"

	"github.com/morikuni/failure/v2"
	"github.com/oceanglide/gliderfetch/erddap"
	"github.com/samber/lo"
)

// allDatasetsID is the reserved catalog entry every ERDDAP server exposes.
const allDatasetsID = "allDatasets"

// DatasetList lists every glider dataset id on the IOOS glider DAC via its
// allDatasets table. Other servers are not supported.
type DatasetList struct {
	client *erddap.Client
}

// NewDatasetList returns a lister for the given server URL, defaulting to
// the IOOS glider DAC when empty.
func NewDatasetList(server string) *DatasetList {
	if server == "" {
		server = DefaultServer
	}
	return &DatasetList{client: erddap.New(server)}
}

// IDs returns every dataset id on the server, excluding the allDatasets
// sentinel itself.
func (l *DatasetList) IDs() ([]string, error) {
	if l.client.Server != DefaultServer {
		return nil, failure.New(ErrUnsupportedServer,
			failure.Message("listing dataset ids is only supported on the IOOS glider DAC"),
			failure.Context{
				"server": l.client.Server,
			},
		)
	}

	l.client.DatasetID = allDatasetsID
	l.client.Variables = []string{"datasetID"}
	l.client.Constraints = nil

	records, err := l.client.FetchCSV(l.client.DownloadURL("csvp"))
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, failure.New(erddap.ErrBadResponse,
			failure.Message("empty allDatasets response"),
		)
	}

	col := -1
	for i, h := range records[0] {
		if strings.EqualFold(h, "datasetID") {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, failure.New(erddap.ErrBadResponse,
			failure.Message("allDatasets response has no datasetID column"),
			failure.Context{
				"columns": strings.Join(records[0], ","),
			},
		)
	}

	ids := make([]string, 0, len(records)-1)
	for _, row := range records[1:] {
		if col < len(row) {
			ids = append(ids, row[col])
		}
	}
	return lo.Filter(ids, func(id string, _ int) bool {
		return id != allDatasetsID
	}), nil
}
