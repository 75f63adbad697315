package cli

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	html2md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/mackee/go-readability"
	"github.com/morikuni/failure/v2"
	"github.com/oceanglide/gliderfetch/erddap"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

var (
	infoBrowser bool

	infoCmd = &cobra.Command{
		Use:   "info DATASET_ID",
		Short: "Show a dataset's ERDDAP metadata page",
		Args:  cobra.ExactArgs(1),
		RunE:  runInfo,
	}
)

func init() {
	infoCmd.Flags().BoolVarP(&infoBrowser, "browser", "b", false, "open the info page in the default browser")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	client := erddap.New(serverFlag)
	infoURL := client.InfoURL(args[0], "html")

	if infoBrowser {
		fmt.Printf("Opening dataset info in browser: %s\n", infoURL)
		return failureWrap(browser.OpenURL(infoURL))
	}

	md, err := fetchInfoMarkdown(infoURL)
	if err != nil {
		return err
	}
	out, err := renderMarkdown(md)
	if err != nil {
		return err
	}
	if stdoutIsTTY() {
		return RunPager(out)
	}
	fmt.Print(out)
	return nil
}

// fetchInfoMarkdown downloads the info page and converts its HTML to
// markdown, preferring readability extraction and falling back to a plain
// conversion of the whole page.
func fetchInfoMarkdown(rawurl string) (string, error) {
	resp, err := http.Get(rawurl)
	if err != nil {
		return "", failure.Wrap(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", failure.New(InfoPageFetch,
			failure.Message("could not fetch the dataset info page"),
			failure.Context{
				"url":    rawurl,
				"status": resp.Status,
			},
		)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", failure.Wrap(err)
	}

	return infoMarkdown(rawurl, string(body))
}

func infoMarkdown(rawurl, body string) (string, error) {
	if article, err := readability.Extract(body, readability.DefaultOptions()); err == nil && article.Root != nil {
		return readability.ToMarkdown(article.Root), nil
	}

	u, err := url.Parse(rawurl)
	if err != nil {
		return "", failure.Wrap(err)
	}
	converter := html2md.NewConverter(u.Host, true, &html2md.Options{})
	md, err := converter.ConvertString(body)
	if err != nil {
		return "", failure.Wrap(err)
	}
	return md, nil
}

func failureWrap(err error) error {
	if err == nil {
		return nil
	}
	return failure.Wrap(err)
}
