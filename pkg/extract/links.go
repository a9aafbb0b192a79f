package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/shouni/go-web-scrape/pkg/types"
)

// skippedHrefPrefixes は、ページ遷移を伴わないため除外するhrefの接頭辞です。
var skippedHrefPrefixes = []string{"#", "javascript:", "mailto:"}

// Links は、<a href> を文書順に走査し、最大 limit 件のリンクを返します。
// 空・フラグメントのみ・javascript:・mailto: のhrefは除外し、相対URLは baseURL を基準に解決します。
func Links(doc *goquery.Document, baseURL string, limit int) []types.LinkRecord {
	if limit <= 0 {
		limit = DefaultLinkLimit
	}

	links := make([]types.LinkRecord, 0, limit)
	doc.FindMatcher(anchorSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if isSkippedHref(href) {
			return true
		}

		absoluteURL, ok := ResolveURL(baseURL, href)
		if !ok {
			return true
		}

		links = append(links, NewLinkRecord(s.Text(), absoluteURL))
		return len(links) < limit
	})
	return links
}

// NewLinkRecord は、テキストを正規化・切り詰めした LinkRecord を生成します。
// テキストが空の場合は NoLinkText を使用します。
func NewLinkRecord(text, absoluteURL string) types.LinkRecord {
	text = NormalizeText(text)
	if text == "" {
		text = NoLinkText
	}
	text, _ = Truncate(text, MaxLinkTextLength)

	return types.LinkRecord{
		Text: text,
		URL:  absoluteURL,
	}
}

// ResolveURL は、href を baseURL を基準とした絶対URLに変換します。
// href が解析できない場合、または基準URLなしで相対URLを解決できない場合は false を返します。
func ResolveURL(baseURL, href string) (string, bool) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	base, err := url.Parse(baseURL)
	if err != nil || !base.IsAbs() {
		if ref.IsAbs() {
			return ref.String(), true
		}
		return "", false
	}
	return base.ResolveReference(ref).String(), true
}

func isSkippedHref(href string) bool {
	if href == "" {
		return true
	}
	lower := strings.ToLower(href)
	for _, prefix := range skippedHrefPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
