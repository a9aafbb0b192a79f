package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/dyatlov/go-opengraph/opengraph"
	textUtils "github.com/shouni/go-utils/text"

	"github.com/shouni/go-web-scrape/pkg/types"
)

// ----------------------------------------------------------------------
// 定数定義 (解析関連のみ)
// ----------------------------------------------------------------------
const (
	NoTitleFound       = "No title found"
	NoDescriptionFound = "No description found"
	NoLinkText         = "[No text]"

	DefaultLinkLimit     = 3
	MaxDescriptionLength = 200
	MaxLinkTextLength    = 100

	ellipsis = "..."
)

var (
	titleSelector           = cascadia.MustCompile("title")
	h1Selector              = cascadia.MustCompile("h1")
	paragraphSelector       = cascadia.MustCompile("p")
	metaDescriptionSelector = cascadia.MustCompile(`meta[name="description"]`)
	metaPropertySelector    = cascadia.MustCompile("meta[property]")
	anchorSelector          = cascadia.MustCompile("a[href]")
)

// strategy は、フォールバックチェーンを構成する1つの抽出手段です。
// 候補が見つからない場合は空文字列を返します。
type strategy func(doc *goquery.Document, og *opengraph.OpenGraph) string

// Extractor は、解析済みドキュメントからタイトル・説明文・リンクを抽出します。
type Extractor struct {
	linkLimit int
}

// NewExtractor は、新しいExtractorのインスタンスを生成します。
// linkLimit が0以下の場合は DefaultLinkLimit を使用します。
func NewExtractor(linkLimit int) *Extractor {
	if linkLimit <= 0 {
		linkLimit = DefaultLinkLimit
	}
	return &Extractor{linkLimit: linkLimit}
}

// LinkLimit は、抽出するリンクの最大件数を返します。
func (e *Extractor) LinkLimit() int {
	return e.linkLimit
}

// Extract は、ドキュメントから成功レコードを組み立てます。
// 相対リンクは pageURL を基準に解決されます。
func (e *Extractor) Extract(doc *goquery.Document, pageURL string) types.ScrapeResult {
	og := openGraph(doc)

	return types.ScrapeResult{
		URL:         pageURL,
		Title:       firstNonEmpty(doc, og, NoTitleFound, titleTag, ogTitle, firstHeading),
		Description: firstNonEmpty(doc, og, NoDescriptionFound, metaDescription, ogDescription, firstParagraph),
		Links:       Links(doc, pageURL, e.linkLimit),
	}
}

// Title は、<title> → og:title → 最初の <h1> の順にタイトルを探します。
func Title(doc *goquery.Document) string {
	return firstNonEmpty(doc, openGraph(doc), NoTitleFound, titleTag, ogTitle, firstHeading)
}

// Description は、meta description → og:description → 最初の <p> の順に説明文を探します。
func Description(doc *goquery.Document) string {
	return firstNonEmpty(doc, openGraph(doc), NoDescriptionFound, metaDescription, ogDescription, firstParagraph)
}

// firstNonEmpty は、strategies を順に試し、最初に得られた値を返します。
func firstNonEmpty(doc *goquery.Document, og *opengraph.OpenGraph, fallback string, strategies ...strategy) string {
	for _, s := range strategies {
		if v := s(doc, og); v != "" {
			return v
		}
	}
	return fallback
}

func titleTag(doc *goquery.Document, _ *opengraph.OpenGraph) string {
	return strings.TrimSpace(doc.FindMatcher(titleSelector).First().Text())
}

func ogTitle(_ *goquery.Document, og *opengraph.OpenGraph) string {
	return strings.TrimSpace(og.Title)
}

func firstHeading(doc *goquery.Document, _ *opengraph.OpenGraph) string {
	return NormalizeText(doc.FindMatcher(h1Selector).First().Text())
}

func metaDescription(doc *goquery.Document, _ *opengraph.OpenGraph) string {
	content, _ := doc.FindMatcher(metaDescriptionSelector).First().Attr("content")
	return strings.TrimSpace(content)
}

func ogDescription(_ *goquery.Document, og *opengraph.OpenGraph) string {
	return strings.TrimSpace(og.Description)
}

func firstParagraph(doc *goquery.Document, _ *opengraph.OpenGraph) string {
	text := NormalizeText(doc.FindMatcher(paragraphSelector).First().Text())
	if truncated, ok := Truncate(text, MaxDescriptionLength); ok {
		return truncated + ellipsis
	}
	return text
}

// openGraph は、<meta property="og:..."> を文書順に読み取ります。
// og:title と og:description は最初に出現したものだけを採用します。
func openGraph(doc *goquery.Document) *opengraph.OpenGraph {
	og := opengraph.NewOpenGraph()
	seen := make(map[string]bool)

	doc.FindMatcher(metaPropertySelector).Each(func(_ int, s *goquery.Selection) {
		property := s.AttrOr("property", "")
		if !strings.HasPrefix(property, "og:") {
			return
		}
		if property == "og:title" || property == "og:description" {
			if seen[property] {
				return
			}
			seen[property] = true
		}

		attrs := make(map[string]string)
		for _, attr := range s.Get(0).Attr {
			attrs[attr.Key] = attr.Val
		}
		og.ProcessMeta(attrs)
	})
	return og
}

// NormalizeText は、要素テキストの連続する空白を1つにまとめます。前後の空白は残りません。
func NormalizeText(text string) string {
	return textUtils.NormalizeText(text)
}

// Truncate は、text を最大 max 文字 (rune) に切り詰めます。
// 切り詰めが発生した場合は true を返します。
func Truncate(text string, max int) (string, bool) {
	runes := []rune(text)
	if len(runes) <= max {
		return text, false
	}
	return string(runes[:max]), true
}
