package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/morikuni/failure/v2"
	"github.com/oceanglide/gliderfetch/glider"
)

// stdoutIsTTY reports whether output goes to a terminal; piped output gets
// plain text and no pager.
func stdoutIsTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// renderMarkdown renders markdown for the terminal, falling back to the
// raw text when stdout is not a TTY.
func renderMarkdown(md string) (string, error) {
	if !stdoutIsTTY() {
		return md, nil
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		return "", failure.Wrap(err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return "", failure.Wrap(err)
	}
	return out, nil
}

// catalogMarkdown lays a discovered catalog out as a markdown table.
func catalogMarkdown(catalog glider.Catalog) string {
	var b strings.Builder
	b.WriteString("| Title | Institution | Dataset ID |\n")
	b.WriteString("| --- | --- | --- |\n")
	for _, e := range catalog {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", e.Title, e.Institution, e.DatasetID)
	}
	return b.String()
}
