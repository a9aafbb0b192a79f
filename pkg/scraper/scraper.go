package scraper

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/shouni/go-web-scrape/pkg/extract"
	"github.com/shouni/go-web-scrape/pkg/feed"
	"github.com/shouni/go-web-scrape/pkg/fetcher"
	"github.com/shouni/go-web-scrape/pkg/types"
	"github.com/shouni/go-web-scrape/pkg/validator"
)

// PageFetcher は、1つのURLのレスポンスを取得する機能のインターフェースを定義します。
// Scraper は、この抽象に依存します。
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) (*fetcher.Page, error)
}

// Scraper は、URL検証 → 取得 → 抽出 を順に実行するオーケストレーターです。
type Scraper struct {
	fetcher   PageFetcher
	extractor *extract.Extractor
	logger    zerolog.Logger
	feeds     bool // true の場合、フィードのレスポンスをフィードとして抽出する
}

// Option は Scraper の設定を行うための関数型です。
type Option func(*Scraper)

// WithLinkLimit は、抽出するリンクの最大件数を設定します。
func WithLinkLimit(limit int) Option {
	return func(s *Scraper) {
		s.extractor = extract.NewExtractor(limit)
	}
}

// WithLogger は、取得失敗などを記録するロガーを設定します。
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Scraper) {
		s.logger = logger
	}
}

// WithFeedDetection は、RSS / Atom / JSON Feed のレスポンスをフィードとして抽出するかを設定します。
// 無効 (デフォルト) の場合、すべてのレスポンスをHTMLとして扱います。
func WithFeedDetection(enabled bool) Option {
	return func(s *Scraper) {
		s.feeds = enabled
	}
}

// New は Scraper を初期化します。
func New(f PageFetcher, options ...Option) (*Scraper, error) {
	if f == nil {
		return nil, fmt.Errorf("scraper.New: PageFetcher cannot be nil")
	}

	s := &Scraper{
		fetcher:   f,
		extractor: extract.NewExtractor(extract.DefaultLinkLimit),
		logger:    zerolog.Nop(),
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// LinkLimit は、抽出するリンクの最大件数を返します。
func (s *Scraper) LinkLimit() int {
	return s.extractor.LinkLimit()
}

// Scrape は、指定されたURLのタイトル・説明文・リンクを抽出します。
// 失敗は呼び出し元へ返さず、最初に失敗した段階のエラーレコードとして返します。
func (s *Scraper) Scrape(ctx context.Context, rawURL string) types.ScrapeResult {
	// 1. URLのバリデーション
	if !validator.IsValidURL(rawURL) {
		s.logger.Debug().Str("url", rawURL).Msg("無効なURL形式です")
		return types.Failure(types.ErrInvalidURL)
	}

	// 2. ページの取得 (リトライなし)
	s.logger.Debug().Str("url", rawURL).Msg("ページを取得します")
	page, err := s.fetcher.FetchPage(ctx, rawURL)
	if err != nil {
		s.logger.Warn().Err(err).Str("url", rawURL).Msg("ページの取得に失敗しました")
		return types.Failure(types.ErrFetchFailed)
	}

	// 3. フィード抽出が有効で、ボディがフィードであればフィードから抽出
	if s.feeds && feed.Detect(page.Body) {
		parsed, err := feed.Parse(page.Body)
		if err == nil {
			s.logger.Debug().Str("url", rawURL).Msg("フィードとして抽出します")
			return feed.NewFeedAdapter(parsed).Result(rawURL, s.extractor.LinkLimit())
		}
		s.logger.Debug().Err(err).Str("url", rawURL).Msg("フィードの解析に失敗したためHTMLとして扱います")
	}

	// 4. HTMLとして解析し、各フィールドを抽出
	doc, err := page.Document()
	if err != nil {
		s.logger.Warn().Err(err).Str("url", rawURL).Msg("ページの解析に失敗しました")
		return types.Failure(types.ErrFetchFailed)
	}

	result := s.extractor.Extract(doc, rawURL)
	s.logger.Debug().
		Str("url", rawURL).
		Str("title", result.Title).
		Int("links", len(result.Links)).
		Msg("抽出が完了しました")
	return result
}
