package glider

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/oceanglide/gliderfetch/dataframe"
)

func rawTable(t *testing.T) *dataframe.Table {
	t.Helper()
	index := []time.Time{
		time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 1, 15, 1, 0, 0, 0, time.UTC),
	}
	tbl := dataframe.New("time (UTC)", index)
	cols := map[string][]float64{
		"Latitude (degrees_north)": {30.5, 30.6},
		"Longitude (degrees_east)": {-73.2, -73.1},
		"Pressure (dbar)":          {5, 10},
		"Salinity (1)":             {35.1, 35.2},
		"Temperature (Celsius)":    {18.2, 18.4},
		"Backscatter (m-1 sr-1)":   {0.002, 0.003},
	}
	for name, vals := range cols {
		if err := tbl.AddColumn(name, vals); err != nil {
			t.Fatal(err)
		}
	}
	return tbl
}

func TestStandardize(t *testing.T) {
	tbl := rawTable(t)
	url := "https://gliders.ioos.us/erddap/tabledap/whoi_406-20160902T1700.csvp"

	out := Standardize(tbl, RenameTable(DefaultServer), url)

	want := map[string]bool{
		"latitude":    true,
		"longitude":   true,
		"pressure":    true,
		"salinity":    true,
		"temperature": true,
		// Not in the rename table: lower-cased only.
		"backscatter (m-1 sr-1)": true,
	}
	got := map[string]bool{}
	for _, n := range out.Names() {
		got[n] = true
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}

	if out.IndexName() != "time" {
		t.Errorf("index name = %q, want %q", out.IndexName(), "time")
	}

	for i, u := range out.DatasetURLs() {
		if u != url {
			t.Errorf("row %d dataset_url = %q, want %q", i, u, url)
		}
	}
}

func TestStandardizeIdempotent(t *testing.T) {
	url := "https://gliders.ioos.us/erddap/tabledap/whoi_406-20160902T1700.csvp"
	renames := RenameTable(DefaultServer)

	once := Standardize(rawTable(t), renames, url)
	namesOnce := once.Names()

	twice := Standardize(once, renames, url)
	if diff := cmp.Diff(namesOnce, twice.Names()); diff != "" {
		t.Errorf("second pass changed columns (-once +twice):\n%s", diff)
	}
	for _, u := range twice.DatasetURLs() {
		if u != url {
			t.Errorf("dataset_url = %q after second pass", u)
		}
	}
}
