package glider

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDatasetListUnsupportedServer(t *testing.T) {
	l := NewDatasetList("https://coastwatch.pfeg.noaa.gov/erddap")
	_, err := l.IDs()
	if got := codeOf(t, err); got != ErrUnsupportedServer {
		t.Errorf("code = %v, want %v", got, ErrUnsupportedServer)
	}
}

func TestDatasetListIDs(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/tabledap/allDatasets.csvp") {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("datasetID\nallDatasets\nunit_595-20200101T0000\nwhoi_406-20200115T1700\n"))
	}))
	defer ts.Close()

	l := NewDatasetList("")
	u, err := url.Parse(ts.URL)
	if err != nil {
		t.Fatal(err)
	}
	l.client.HTTPClient = &http.Client{Transport: rewriteTransport{target: u}}

	ids, err := l.IDs()
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"unit_595-20200101T0000", "whoi_406-20200115T1700"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
}
