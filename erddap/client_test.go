package erddap

import (
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/morikuni/failure/v2"
)

func TestDownloadURL(t *testing.T) {
	c := New("https://gliders.ioos.us/erddap/")
	c.DatasetID = "whoi_406-20160902T1700"
	c.Variables = []string{"latitude", "longitude", "temperature"}
	c.Constraints = []Constraint{
		{Name: "time>=", Value: "2020-01-01"},
		{Name: "latitude>=", Value: "30"},
	}

	got := c.DownloadURL("csvp")
	want := "https://gliders.ioos.us/erddap/tabledap/whoi_406-20160902T1700.csvp" +
		"?latitude%2Clongitude%2Ctemperature" +
		"&time%3E%3D2020-01-01" +
		"&latitude%3E%3D30"
	if got != want {
		t.Errorf("DownloadURL() = %q, want %q", got, want)
	}
}

func TestDownloadURLNoQuery(t *testing.T) {
	c := New("https://gliders.ioos.us/erddap")
	c.DatasetID = "allDatasets"
	if got, want := c.DownloadURL("csvp"), "https://gliders.ioos.us/erddap/tabledap/allDatasets.csvp"; got != want {
		t.Errorf("DownloadURL() = %q, want %q", got, want)
	}
}

func TestSearchURL(t *testing.T) {
	c := New("https://gliders.ioos.us/erddap")
	got := c.SearchURL(SearchQuery{
		SearchFor: "glider",
		MinLat:    30, MaxLat: 35,
		MinLon: -75, MaxLon: -70,
		MinTime: "2020-01-01", MaxTime: "2020-02-01",
	})

	if !strings.HasPrefix(got, "https://gliders.ioos.us/erddap/search/advanced.csv?") {
		t.Fatalf("SearchURL() = %q", got)
	}
	for _, part := range []string{
		"searchFor=glider",
		"protocol=tabledap",
		"minLat=30", "maxLat=35",
		"minLon=-75", "maxLon=-70",
		"minTime=2020-01-01", "maxTime=2020-02-01",
	} {
		if !strings.Contains(got, part) {
			t.Errorf("SearchURL() missing %q in %q", part, got)
		}
	}
}

func TestInfoURL(t *testing.T) {
	c := New("https://gliders.ioos.us/erddap")
	got := c.InfoURL("whoi_406-20160902T1700", "html")
	want := "https://gliders.ioos.us/erddap/info/whoi_406-20160902T1700/index.html"
	if got != want {
		t.Errorf("InfoURL() = %q, want %q", got, want)
	}
}

const csvpFixture = `time (UTC),latitude (degrees_north),longitude (degrees_east),pressure (dbar),temperature (Celsius)
2020-01-15T00:00:00Z,30.5,-73.2,5.0,18.2
2020-01-15T01:00:00Z,30.6,-73.1,,18.4
`

func TestFetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, ".csvp") {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(csvpFixture))
	}))
	defer ts.Close()

	c := New(ts.URL)
	c.DatasetID = "whoi_406-20160902T1700"

	tbl, err := c.Fetch()
	if err != nil {
		t.Fatal(err)
	}

	if tbl.NumRows() != 2 {
		t.Fatalf("got %d rows, want 2", tbl.NumRows())
	}
	if tbl.IndexName() != "time (UTC)" {
		t.Errorf("index name = %q", tbl.IndexName())
	}
	wantIndex := []time.Time{
		time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 1, 15, 1, 0, 0, 0, time.UTC),
	}
	if diff := cmp.Diff(wantIndex, tbl.Index()); diff != "" {
		t.Errorf("index mismatch (-want +got):\n%s", diff)
	}

	names := tbl.Names()
	want := []string{
		"latitude (degrees_north)",
		"longitude (degrees_east)",
		"pressure (dbar)",
		"temperature (Celsius)",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}

	// The empty pressure cell parses as NaN.
	pressure, _ := tbl.Column("pressure (dbar)")
	if !math.IsNaN(pressure[1]) {
		t.Errorf("pressure[1] = %v, want NaN", pressure[1])
	}
}

func TestFetchCSVErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no matching results", http.StatusNotFound)
	}))
	defer ts.Close()

	c := New(ts.URL)
	_, err := c.FetchCSV(ts.URL + "/search/advanced.csv")
	if err == nil {
		t.Fatal("expected an error for a 404 response")
	}
	if code := failure.CodeOf(err); code != ErrHTTPStatus {
		t.Errorf("code = %v, want %v", code, ErrHTTPStatus)
	}
}

func TestFetchMissingTimeColumn(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("latitude (degrees_north)\n30.5\n"))
	}))
	defer ts.Close()

	c := New(ts.URL)
	c.DatasetID = "x"
	if _, err := c.Fetch(); err == nil {
		t.Fatal("expected an error for a response without a time column")
	}
}
