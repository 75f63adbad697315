// Package dataframe holds the tabular result type returned by dataset
// fetches: a UTC time index, ordered numeric columns, and a per-row
// dataset_url provenance column.
package dataframe

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/morikuni/failure/v2"
)

// ErrorCode defines error types for table operations
type ErrorCode string

const (
	ErrColumnLength ErrorCode = "ColumnLength"
	ErrEmptyConcat  ErrorCode = "EmptyConcat"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}

// DatasetURLColumn is the name of the provenance column appended by the
// normalizer. It is stored separately from the numeric columns because it
// holds one string literal per row.
const DatasetURLColumn = "dataset_url"

// Table is a row-indexed-by-time table of observations. Rows keep the
// order they were appended in; no method re-sorts them.
type Table struct {
	indexName string
	index     []time.Time
	names     []string
	cols      map[string][]float64
	urls      []string
}

// New returns an empty table whose time index carries the given label.
func New(indexName string, index []time.Time) *Table {
	return &Table{
		indexName: indexName,
		index:     index,
		cols:      make(map[string][]float64),
	}
}

// AddColumn appends a named column. The column length must match the index.
func (t *Table) AddColumn(name string, values []float64) error {
	if len(values) != len(t.index) {
		return failure.New(ErrColumnLength,
			failure.Message("column length does not match the time index"),
			failure.Context{
				"column": name,
				"len":    strconv.Itoa(len(values)),
				"rows":   strconv.Itoa(len(t.index)),
			},
		)
	}
	if _, ok := t.cols[name]; !ok {
		t.names = append(t.names, name)
	}
	t.cols[name] = values
	return nil
}

// NumRows returns the number of observations.
func (t *Table) NumRows() int {
	return len(t.index)
}

// Names returns the column names in order, excluding the index and the
// dataset_url column.
func (t *Table) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// IndexName returns the label of the time index.
func (t *Table) IndexName() string {
	return t.indexName
}

// Index returns the UTC time index.
func (t *Table) Index() []time.Time {
	return t.index
}

// Column returns the values of a named column.
func (t *Table) Column(name string) ([]float64, bool) {
	v, ok := t.cols[name]
	return v, ok
}

// RenameColumn renames a column in place. A miss is a no-op, as is
// renaming a column to its current name.
func (t *Table) RenameColumn(from, to string) {
	if from == to {
		return
	}
	v, ok := t.cols[from]
	if !ok {
		return
	}
	delete(t.cols, from)
	t.cols[to] = v
	for i, n := range t.names {
		if n == from {
			t.names[i] = to
			break
		}
	}
}

// RenameIndex relabels the time index.
func (t *Table) RenameIndex(name string) {
	t.indexName = name
}

// SetDatasetURL sets the dataset_url column to the same literal for every
// row, overwriting any previous value.
func (t *Table) SetDatasetURL(url string) {
	if len(t.urls) != len(t.index) {
		t.urls = make([]string, len(t.index))
	}
	for i := range t.urls {
		t.urls[i] = url
	}
}

// DatasetURLs returns the per-row dataset_url column. Empty until
// SetDatasetURL or Concat has populated it.
func (t *Table) DatasetURLs() []string {
	return t.urls
}

// Concat concatenates tables row-wise in argument order. Column order
// follows the first table, with columns seen only in later tables appended;
// rows missing a column are filled with NaN. The index label is taken from
// the first table.
func Concat(tables ...*Table) (*Table, error) {
	if len(tables) == 0 {
		return nil, failure.New(ErrEmptyConcat,
			failure.Message("no tables to concatenate"),
		)
	}

	var names []string
	seen := make(map[string]bool)
	total := 0
	for _, t := range tables {
		total += t.NumRows()
		for _, n := range t.names {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}

	index := make([]time.Time, 0, total)
	urls := make([]string, 0, total)
	for _, t := range tables {
		index = append(index, t.index...)
		if len(t.urls) == t.NumRows() {
			urls = append(urls, t.urls...)
		} else {
			urls = append(urls, make([]string, t.NumRows())...)
		}
	}

	out := New(tables[0].indexName, index)
	out.urls = urls
	for _, n := range names {
		vals := make([]float64, 0, total)
		for _, t := range tables {
			if col, ok := t.cols[n]; ok {
				vals = append(vals, col...)
				continue
			}
			for i := 0; i < t.NumRows(); i++ {
				vals = append(vals, math.NaN())
			}
		}
		if err := out.AddColumn(n, vals); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// WriteCSV writes the table with the index as the first column and
// dataset_url as the last. NaN cells are written empty, matching the way
// ERDDAP serves missing values.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := append([]string{t.indexName}, t.names...)
	if len(t.urls) == len(t.index) {
		header = append(header, DatasetURLColumn)
	}
	if err := cw.Write(header); err != nil {
		return failure.Wrap(err)
	}

	for i := range t.index {
		rec := make([]string, 0, len(header))
		rec = append(rec, t.index[i].UTC().Format(time.RFC3339))
		for _, n := range t.names {
			v := t.cols[n][i]
			if math.IsNaN(v) {
				rec = append(rec, "")
			} else {
				rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
			}
		}
		if len(t.urls) == len(t.index) {
			rec = append(rec, t.urls[i])
		}
		if err := cw.Write(rec); err != nil {
			return failure.Wrap(err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return failure.Wrap(err)
	}
	return nil
}
