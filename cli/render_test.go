package cli

import (
	"strings"
	"testing"

	"github.com/oceanglide/gliderfetch/glider"
)

func TestCatalogMarkdown(t *testing.T) {
	catalog := glider.Catalog{
		{Title: "unit 595 deployment", Institution: "Rutgers University", DatasetID: "unit_595-20200101T0000"},
		{Title: "whoi 406 deployment", Institution: "WHOI", DatasetID: "whoi_406-20200115T1700"},
	}

	md := catalogMarkdown(catalog)
	lines := strings.Split(strings.TrimSpace(md), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}
	if !strings.HasPrefix(lines[0], "| Title ") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[2], "unit_595-20200101T0000") {
		t.Errorf("first row = %q", lines[2])
	}
	if !strings.Contains(lines[3], "WHOI") {
		t.Errorf("second row = %q", lines[3])
	}
}

func TestInfoMarkdownFallback(t *testing.T) {
	// A fragment readability cannot treat as an article still converts.
	html := "<html><body><table><tr><td>institution</td><td>WHOI</td></tr></table></body></html>"
	md, err := infoMarkdown("https://gliders.ioos.us/erddap/info/x/index.html", html)
	if err != nil {
		t.Fatal(err)
	}
	if md == "" {
		t.Error("empty markdown output")
	}
}
