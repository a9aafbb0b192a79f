package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/shouni/go-web-scrape/pkg/extract"
	"github.com/shouni/go-web-scrape/pkg/fetcher"
	"github.com/shouni/go-web-scrape/pkg/scraper"
	"github.com/shouni/go-web-scrape/pkg/types"
)

// Config は、スクレイピングパイプラインの設定を保持します。
type Config struct {
	Timeout   time.Duration // HTTPリクエストのタイムアウト
	UserAgent string        // 送信する User-Agent
	LinkLimit int           // 抽出するリンクの最大件数
	Feeds     bool          // フィードのレスポンスをフィードとして抽出するか
}

// DefaultConfig は推奨されるデフォルト設定を返します。
func DefaultConfig() Config {
	return Config{
		Timeout:   fetcher.DefaultTimeout,
		UserAgent: fetcher.DefaultUserAgent,
		LinkLimit: extract.DefaultLinkLimit,
	}
}

// NewScraper は、設定から Fetcher と Scraper を組み立てます (依存性の初期化)。
// 生成された Scraper は同じHTTPクライアントを使い回します。
func NewScraper(cfg Config, logger zerolog.Logger) (*scraper.Scraper, error) {
	client := fetcher.New(cfg.Timeout, fetcher.WithUserAgent(cfg.UserAgent))

	s, err := scraper.New(client,
		scraper.WithLinkLimit(cfg.LinkLimit),
		scraper.WithLogger(logger),
		scraper.WithFeedDetection(cfg.Feeds),
	)
	if err != nil {
		return nil, fmt.Errorf("Scraperの初期化エラー: %w", err)
	}
	return s, nil
}

// ScrapeURL は、1つのURLをデフォルト以外の設定でも手早く処理するためのヘルパーです。
func ScrapeURL(ctx context.Context, rawURL string, cfg Config) (types.ScrapeResult, error) {
	s, err := NewScraper(cfg, zerolog.Nop())
	if err != nil {
		return types.ScrapeResult{}, err
	}
	return s.Scrape(ctx, rawURL), nil
}
