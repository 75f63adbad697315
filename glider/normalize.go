package glider

import (
	"strings"

	"github.com/oceanglide/gliderfetch/dataframe"
)

// Standardize canonicalizes a fetched table: every column name is
// lower-cased, names matching the rename table are replaced with their
// canonical form, the time index is relabeled "time", and the dataset_url
// column is set to the source URL on every row. Columns absent from the
// rename table are left alone. Applying Standardize to its own output is a
// no-op apart from rewriting dataset_url with the same value.
func Standardize(tbl *dataframe.Table, renames map[string]string, datasetURL string) *dataframe.Table {
	for _, name := range tbl.Names() {
		lower := strings.ToLower(name)
		tbl.RenameColumn(name, lower)
		if canonical, ok := renames[lower]; ok {
			tbl.RenameColumn(lower, canonical)
		}
	}
	tbl.RenameIndex("time")
	tbl.SetDatasetURL(datasetURL)
	return tbl
}
