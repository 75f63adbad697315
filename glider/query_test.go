package glider

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/oceanglide/gliderfetch/erddap"
)

const searchFixture = `Title,Summary,Institution,Dataset ID,Info
unit 595 deployment,profile data,Rutgers University,unit_595-20200101T0000,info
sp022 deployment,profile data,Scripps,sp022-20200108T1800-delayed,info
whoi 406 deployment,profile data,WHOI,whoi_406-20200115T1700,info
`

func searchServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/search/advanced.csv") {
			if hits != nil {
				hits.Add(1)
			}
			w.Write([]byte(searchFixture))
			return
		}
		http.NotFound(w, r)
	}))
}

func testBounds() Bounds {
	return Bounds{
		MinLat: 30, MaxLat: 35,
		MinLon: -75, MaxLon: -70,
		MinTime: "2020-01-01", MaxTime: "2020-02-01",
	}
}

func TestQueryFiltersDelayed(t *testing.T) {
	ts := searchServer(t, nil)
	defer ts.Close()
	f := testFetcher(t, ts)

	catalog, err := f.Query(testBounds(), false)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"unit_595-20200101T0000", "whoi_406-20200115T1700"}
	if diff := cmp.Diff(want, catalog.DatasetIDs()); diff != "" {
		t.Errorf("catalog ids mismatch (-want +got):\n%s", diff)
	}
	for _, e := range catalog {
		if strings.HasSuffix(e.DatasetID, "delayed") {
			t.Errorf("delayed dataset %q not filtered", e.DatasetID)
		}
		wantInfo := DefaultServer + "/info/" + e.DatasetID + "/index.html"
		if e.InfoURL != wantInfo {
			t.Errorf("info url = %q, want %q", e.InfoURL, wantInfo)
		}
	}
}

func TestQueryKeepsDelayed(t *testing.T) {
	ts := searchServer(t, nil)
	defer ts.Close()
	f := testFetcher(t, ts)

	catalog, err := f.Query(testBounds(), true)
	if err != nil {
		t.Fatal(err)
	}
	if len(catalog) != 3 {
		t.Fatalf("got %d entries, want 3", len(catalog))
	}
	ids := catalog.DatasetIDs()
	if ids[1] != "sp022-20200108T1800-delayed" {
		t.Errorf("delayed dataset missing: %v", ids)
	}
}

func TestQuerySetsConstraints(t *testing.T) {
	ts := searchServer(t, nil)
	defer ts.Close()
	f := testFetcher(t, ts)

	if _, err := f.Query(testBounds(), false); err != nil {
		t.Fatal(err)
	}

	want := []erddap.Constraint{
		{Name: "time>=", Value: "2020-01-01"},
		{Name: "time<=", Value: "2020-02-01"},
		{Name: "latitude>=", Value: "30"},
		{Name: "latitude<=", Value: "35"},
		{Name: "longitude>=", Value: "-75"},
		{Name: "longitude<=", Value: "-70"},
	}
	if diff := cmp.Diff(want, f.client.Constraints); diff != "" {
		t.Errorf("constraints mismatch (-want +got):\n%s", diff)
	}
}

func TestQueryMemoizedByBounds(t *testing.T) {
	var hits atomic.Int32
	ts := searchServer(t, &hits)
	defer ts.Close()
	f := testFetcher(t, ts)

	first, err := f.Query(testBounds(), false)
	if err != nil {
		t.Fatal(err)
	}
	second, err := f.Query(testBounds(), false)
	if err != nil {
		t.Fatal(err)
	}
	if hits.Load() != 1 {
		t.Errorf("identical query re-hit the catalog: %d searches", hits.Load())
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("memoized catalog differs (-first +second):\n%s", diff)
	}

	// Different bounds invalidate the memoized catalog.
	b := testBounds()
	b.MaxLat = 40
	if _, err := f.Query(b, false); err != nil {
		t.Fatal(err)
	}
	if hits.Load() != 2 {
		t.Errorf("changed bounds did not re-discover: %d searches", hits.Load())
	}

	// So does flipping the delayed flag.
	if _, err := f.Query(b, true); err != nil {
		t.Fatal(err)
	}
	if hits.Load() != 3 {
		t.Errorf("changed delayed flag did not re-discover: %d searches", hits.Load())
	}
}

func TestQuerySearchFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "simulated outage", http.StatusInternalServerError)
	}))
	defer ts.Close()
	f := testFetcher(t, ts)

	_, err := f.Query(testBounds(), false)
	if got := codeOf(t, err); got != ErrCatalogSearch {
		t.Errorf("code = %v, want %v", got, ErrCatalogSearch)
	}
}

func TestQueryInvalidBounds(t *testing.T) {
	f, err := NewFetcher(DefaultServer)
	if err != nil {
		t.Fatal(err)
	}
	f.client.HTTPClient = &http.Client{Transport: failTransport{t: t}}

	b := testBounds()
	b.MinLat = -100
	_, qerr := f.Query(b, false)
	if got := codeOf(t, qerr); got != ErrInvalidBounds {
		t.Errorf("code = %v, want %v", got, ErrInvalidBounds)
	}

	b = testBounds()
	b.MinTime = ""
	_, qerr = f.Query(b, false)
	if got := codeOf(t, qerr); got != ErrInvalidBounds {
		t.Errorf("code = %v, want %v", got, ErrInvalidBounds)
	}
}
