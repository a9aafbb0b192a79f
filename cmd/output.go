package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/shouni/go-web-scrape/pkg/types"
)

const bannerWidth = 60

var bannerLine = strings.Repeat("=", bannerWidth)

// printBanner は、対話シェル起動時のバナーを出力します。
func printBanner(out io.Writer) {
	fmt.Fprintln(out, bannerLine)
	fmt.Fprintln(out, "Advanced Web Scraper")
	fmt.Fprintln(out, bannerLine)
}

// printResult は、スクレイピング結果を整形して出力します。
func printResult(out io.Writer, result types.ScrapeResult, linkLimit int) {
	if result.Failed() {
		fmt.Fprintf(out, "\n❌ Error: %s\n", result.ErrorMessage())
		return
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, bannerLine)
	fmt.Fprintf(out, "Title: %s\n", result.Title)
	fmt.Fprintf(out, "\nDescription: %s\n", result.Description)
	fmt.Fprintf(out, "\nFirst %d Links:\n", linkLimit)

	for i, link := range result.Links {
		fmt.Fprintf(out, "  %d. %s\n", i+1, link.Text)
		fmt.Fprintf(out, "     URL: %s\n", link.URL)
	}

	fmt.Fprintln(out, bannerLine)
}
