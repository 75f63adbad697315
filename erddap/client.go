// Package erddap is a small client for the ERDDAP tabledap protocol. It
// builds download, advanced-search, and info URLs and reads csvp responses
// into tables. Nothing above this package composes wire requests.
package erddap

import (
	"encoding/csv"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/morikuni/failure/v2"
	"github.com/oceanglide/gliderfetch/dataframe"
)

// ErrorCode defines error types for ERDDAP operations
type ErrorCode string

const (
	// ErrHTTPStatus represents a non-2xx response from the server
	ErrHTTPStatus ErrorCode = "HTTPStatus"

	// ErrBadResponse represents a response body that could not be parsed
	ErrBadResponse ErrorCode = "BadResponse"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}

// ProtocolTabledap is the only protocol this client speaks.
const ProtocolTabledap = "tabledap"

// timeIndexColumn is the csvp column promoted to the table index.
const timeIndexColumn = "time (UTC)"

// Constraint is one row-filtering bound, e.g. {"time>=", "2020-01-01"}.
// Constraints keep the order they were supplied in so built URLs are
// reproducible.
type Constraint struct {
	Name  string
	Value string
}

// Client holds the pieces of a tabledap request. Fields are mutated by the
// caller between requests; a Client is not safe for concurrent use.
type Client struct {
	Server      string
	Protocol    string
	DatasetID   string
	Variables   []string
	Constraints []Constraint

	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// New returns a tabledap client for the given server URL.
func New(server string) *Client {
	return &Client{
		Server:   strings.TrimRight(server, "/"),
		Protocol: ProtocolTabledap,
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// DownloadURL builds the data download URL for the active dataset in the
// given response format (e.g. "csvp"). Variables come first, then the
// constraints in order, each URL-escaped.
func (c *Client) DownloadURL(response string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s/%s/%s.%s", c.Server, c.Protocol, c.DatasetID, response)

	if len(c.Variables) == 0 && len(c.Constraints) == 0 {
		return b.String()
	}
	b.WriteByte('?')

	escaped := make([]string, len(c.Variables))
	for i, v := range c.Variables {
		escaped[i] = url.QueryEscape(v)
	}
	b.WriteString(strings.Join(escaped, "%2C"))

	for _, con := range c.Constraints {
		b.WriteByte('&')
		b.WriteString(url.QueryEscape(con.Name))
		b.WriteString(url.QueryEscape(con.Value))
	}
	return b.String()
}

// SearchQuery scopes an advanced catalog search.
type SearchQuery struct {
	SearchFor string
	MinLat    float64
	MaxLat    float64
	MinLon    float64
	MaxLon    float64
	MinTime   string
	MaxTime   string
}

// SearchURL builds the advanced-search URL returning CSV results.
func (c *Client) SearchURL(q SearchQuery) string {
	v := url.Values{}
	v.Set("page", "1")
	v.Set("itemsPerPage", "10000")
	v.Set("searchFor", q.SearchFor)
	v.Set("protocol", c.Protocol)
	v.Set("minLat", formatFloat(q.MinLat))
	v.Set("maxLat", formatFloat(q.MaxLat))
	v.Set("minLon", formatFloat(q.MinLon))
	v.Set("maxLon", formatFloat(q.MaxLon))
	v.Set("minTime", q.MinTime)
	v.Set("maxTime", q.MaxTime)
	return fmt.Sprintf("%s/search/advanced.csv?%s", c.Server, v.Encode())
}

// InfoURL builds the metadata page URL for a dataset.
func (c *Client) InfoURL(datasetID, response string) string {
	return fmt.Sprintf("%s/info/%s/index.%s", c.Server, datasetID, response)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Fetch downloads the active dataset as csvp and parses it into a table
// indexed by UTC time. Blocks until the whole response is read; no retry,
// no timeout beyond the HTTP client's own.
func (c *Client) Fetch() (*dataframe.Table, error) {
	records, err := c.FetchCSV(c.DownloadURL("csvp"))
	if err != nil {
		return nil, err
	}
	return parseCSVP(records)
}

// FetchCSV issues a GET for the given URL and returns the parsed CSV
// records. Non-2xx statuses are reported as errors.
func (c *Client) FetchCSV(rawurl string) ([][]string, error) {
	resp, err := c.httpClient().Get(rawurl)
	if err != nil {
		return nil, failure.Wrap(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, failure.New(ErrHTTPStatus,
			failure.Message("ERDDAP server returned an error status"),
			failure.Context{
				"url":    rawurl,
				"status": resp.Status,
			},
		)
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, failure.Wrap(err)
	}
	return records, nil
}

// parseCSVP turns a csvp payload (single header row, column names carrying
// unit suffixes like "time (UTC)") into a table. The time column becomes
// the index; numeric cells that fail to parse become NaN, matching how
// ERDDAP serves missing values.
func parseCSVP(records [][]string) (*dataframe.Table, error) {
	if len(records) == 0 {
		return nil, failure.New(ErrBadResponse,
			failure.Message("empty csvp response"),
		)
	}
	header := records[0]
	rows := records[1:]

	timeCol := -1
	for i, name := range header {
		if strings.EqualFold(name, timeIndexColumn) {
			timeCol = i
			break
		}
	}
	if timeCol < 0 {
		return nil, failure.New(ErrBadResponse,
			failure.Message("csvp response has no time (UTC) column"),
			failure.Context{
				"columns": strings.Join(header, ","),
			},
		)
	}

	index := make([]time.Time, len(rows))
	for i, row := range rows {
		if timeCol >= len(row) {
			return nil, failure.New(ErrBadResponse,
				failure.Message("short csvp row"),
				failure.Context{
					"row": strconv.Itoa(i + 1),
				},
			)
		}
		ts, err := time.Parse(time.RFC3339, row[timeCol])
		if err != nil {
			return nil, failure.Wrap(err)
		}
		index[i] = ts.UTC()
	}

	tbl := dataframe.New(header[timeCol], index)
	for j, name := range header {
		if j == timeCol {
			continue
		}
		vals := make([]float64, len(rows))
		for i, row := range rows {
			if j >= len(row) {
				vals[i] = math.NaN()
				continue
			}
			f, err := strconv.ParseFloat(row[j], 64)
			if err != nil {
				vals[i] = math.NaN()
				continue
			}
			vals[i] = f
		}
		if err := tbl.AddColumn(name, vals); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}
