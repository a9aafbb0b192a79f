package feed

import (
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/shouni/go-web-scrape/pkg/extract"
	"github.com/shouni/go-web-scrape/pkg/types"
)

// FeedAdapter は gofeed.Feed をスクレイピング結果に適合させるためのアダプターです。
// gofeed.Feed の具体的な構造への依存を内部に閉じ込めます。
type FeedAdapter struct {
	*gofeed.Feed
}

// NewFeedAdapter は gofeed.Feed から新しいアダプターを作成します。
func NewFeedAdapter(feed *gofeed.Feed) *FeedAdapter {
	return &FeedAdapter{Feed: feed}
}

// Title は、フィードのタイトルを返します。空の場合は extract.NoTitleFound です。
func (a *FeedAdapter) Title() string {
	if a.Feed == nil {
		return extract.NoTitleFound
	}
	if title := strings.TrimSpace(a.Feed.Title); title != "" {
		return title
	}
	return extract.NoTitleFound
}

// Description は、フィードの説明文を返します。空の場合は extract.NoDescriptionFound です。
func (a *FeedAdapter) Description() string {
	if a.Feed == nil {
		return extract.NoDescriptionFound
	}
	description := extract.NormalizeText(a.Feed.Description)
	if description == "" {
		return extract.NoDescriptionFound
	}
	if truncated, ok := extract.Truncate(description, extract.MaxDescriptionLength); ok {
		return truncated + "..."
	}
	return description
}

// GetLinks は、リンクを持つアイテムを先頭から最大 limit 件返します。
// 相対リンクは baseURL を基準に解決されます。
func (a *FeedAdapter) GetLinks(baseURL string, limit int) []types.LinkRecord {
	if limit <= 0 {
		limit = extract.DefaultLinkLimit
	}
	links := make([]types.LinkRecord, 0, limit)

	// nil またはアイテムがない場合は、すぐに空のスライスを返します。
	if a.Feed == nil || len(a.Items) == 0 {
		return links
	}

	for _, item := range a.Items {
		if item == nil || strings.TrimSpace(item.Link) == "" {
			continue
		}
		absoluteURL, ok := extract.ResolveURL(baseURL, strings.TrimSpace(item.Link))
		if !ok {
			continue
		}
		links = append(links, extract.NewLinkRecord(item.Title, absoluteURL))
		if len(links) >= limit {
			break
		}
	}
	return links
}

// Result は、フィードから成功レコードを組み立てます。
func (a *FeedAdapter) Result(pageURL string, limit int) types.ScrapeResult {
	return types.ScrapeResult{
		URL:         pageURL,
		Title:       a.Title(),
		Description: a.Description(),
		Links:       a.GetLinks(pageURL, limit),
	}
}
