package glider

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/morikuni/failure/v2"
	"github.com/oceanglide/gliderfetch/erddap"
	"github.com/oceanglide/gliderfetch/log"
	"github.com/samber/lo"
)

var validate = validator.New()

// searchTerm is the fixed catalog search term.
const searchTerm = "glider"

// delayedSuffix marks reprocessed quality-controlled dataset variants.
const delayedSuffix = "delayed"

// Bounds are the geographic and time constraints of one query.
// Times are passed to the server verbatim, so any time literal ERDDAP
// accepts works ("2020-01-01", full ISO timestamps, "now-7days").
type Bounds struct {
	MinLat  float64 `validate:"gte=-90,lte=90"`
	MaxLat  float64 `validate:"gte=-90,lte=90,gtefield=MinLat"`
	MinLon  float64 `validate:"gte=-180,lte=180"`
	MaxLon  float64 `validate:"gte=-180,lte=180,gtefield=MinLon"`
	MinTime string  `validate:"required"`
	MaxTime string  `validate:"required"`
}

// constraints builds the tabledap row-filtering constraints in the fixed
// time/latitude/longitude order.
func (b Bounds) constraints() []erddap.Constraint {
	ff := func(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
	return []erddap.Constraint{
		{Name: "time>=", Value: b.MinTime},
		{Name: "time<=", Value: b.MaxTime},
		{Name: "latitude>=", Value: ff(b.MinLat)},
		{Name: "latitude<=", Value: ff(b.MaxLat)},
		{Name: "longitude>=", Value: ff(b.MinLon)},
		{Name: "longitude<=", Value: ff(b.MaxLon)},
	}
}

func (b Bounds) key(delayed bool) string {
	return fmt.Sprintf("%g/%g/%g/%g/%s/%s/%t",
		b.MinLat, b.MaxLat, b.MinLon, b.MaxLon, b.MinTime, b.MaxTime, delayed)
}

// CatalogEntry is one candidate dataset found by a catalog search.
type CatalogEntry struct {
	Title       string
	Institution string
	DatasetID   string
	InfoURL     string
}

// Catalog is the ordered list of datasets a query discovered.
type Catalog []CatalogEntry

// DatasetIDs returns the ids in catalog order.
func (c Catalog) DatasetIDs() []string {
	return lo.Map(c, func(e CatalogEntry, _ int) string {
		return e.DatasetID
	})
}

// Query attaches the bounds as download constraints and discovers the
// datasets within them. The search term is fixed to "glider". Unless
// delayed is true, dataset ids ending in "delayed" are dropped. The
// discovered catalog is memoized keyed by the bounds and delayed flag that
// produced it; querying again with the same arguments returns it without a
// network call, while different arguments trigger re-discovery.
func (f *Fetcher) Query(b Bounds, delayed bool) (Catalog, error) {
	if err := validate.Struct(b); err != nil {
		return nil, failure.New(ErrInvalidBounds,
			failure.Message("invalid query bounds"),
			failure.Context{
				"cause": err.Error(),
			},
		)
	}

	f.client.Constraints = b.constraints()

	key := b.key(delayed)
	if f.datasets != nil && f.queryKey == key {
		return f.datasets, nil
	}

	searchURL := f.client.SearchURL(erddap.SearchQuery{
		SearchFor: searchTerm,
		MinLat:    b.MinLat,
		MaxLat:    b.MaxLat,
		MinLon:    b.MinLon,
		MaxLon:    b.MaxLon,
		MinTime:   b.MinTime,
		MaxTime:   b.MaxTime,
	})

	log.Debug("catalog search", "url", searchURL)
	records, err := f.client.FetchCSV(searchURL)
	if err != nil {
		return nil, failure.New(ErrCatalogSearch,
			failure.Message("no datasets found in the supplied range; try relaxing your constraints"),
			failure.Context{
				"min_lat":  strconv.FormatFloat(b.MinLat, 'g', -1, 64),
				"max_lat":  strconv.FormatFloat(b.MaxLat, 'g', -1, 64),
				"min_lon":  strconv.FormatFloat(b.MinLon, 'g', -1, 64),
				"max_lon":  strconv.FormatFloat(b.MaxLon, 'g', -1, 64),
				"min_time": b.MinTime,
				"max_time": b.MaxTime,
				"cause":    err.Error(),
			},
		)
	}

	catalog, err := parseCatalog(records)
	if err != nil {
		return nil, err
	}

	if !delayed {
		catalog = lo.Filter(catalog, func(e CatalogEntry, _ int) bool {
			return !strings.HasSuffix(e.DatasetID, delayedSuffix)
		})
	}
	for i := range catalog {
		catalog[i].InfoURL = f.client.InfoURL(catalog[i].DatasetID, "html")
	}

	f.datasets = catalog
	f.queryKey = key
	return f.datasets, nil
}

// parseCatalog extracts the Title/Institution/Dataset ID columns from an
// advanced-search CSV response.
func parseCatalog(records [][]string) (Catalog, error) {
	if len(records) == 0 {
		return nil, failure.New(erddap.ErrBadResponse,
			failure.Message("empty catalog search response"),
		)
	}

	col := func(name string) int {
		for i, h := range records[0] {
			if strings.EqualFold(h, name) {
				return i
			}
		}
		return -1
	}
	title, inst, id := col("Title"), col("Institution"), col("Dataset ID")
	if title < 0 || inst < 0 || id < 0 {
		return nil, failure.New(erddap.ErrBadResponse,
			failure.Message("catalog search response is missing expected columns"),
			failure.Context{
				"columns": strings.Join(records[0], ","),
			},
		)
	}

	catalog := make(Catalog, 0, len(records)-1)
	for _, row := range records[1:] {
		if id >= len(row) || title >= len(row) || inst >= len(row) {
			continue
		}
		catalog = append(catalog, CatalogEntry{
			Title:       row[title],
			Institution: row[inst],
			DatasetID:   row[id],
		})
	}
	return catalog, nil
}
