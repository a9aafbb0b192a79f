package fetcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"golang.org/x/net/html/charset"
)

const (
	// HTTPクライアント関連の定数
	DefaultTimeout = 10 * time.Second
	MaxBodySize    = int64(10 * 1024 * 1024) // 10MB: レスポンスボディの最大読み込みサイズ

	// DefaultUserAgent は、サイトからのブロックを避けるためのデフォルトのUser-Agentです。
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	acceptHeader = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

	// エラーメッセージに含めるボディの最大長
	maxErrorBodyLength = httpkit.MaxBodyDisplaySize
)

// Doer は、標準の *http.Client.Do() と互換性のあるHTTPクライアントのインターフェースです。
type Doer = httpkit.Doer

// HTTPStatusError は、2xx 以外のステータスコードが返されたことを示すカスタムエラー型です。
type HTTPStatusError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPStatusError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("HTTPステータスエラー: ステータスコード %d, ボディなし", e.StatusCode)
	}
	body := strings.TrimSpace(string(e.Body))
	if len(body) > maxErrorBodyLength {
		body = body[:maxErrorBodyLength] + "..."
	}
	return fmt.Sprintf("HTTPステータスエラー: ステータスコード %d, ボディ: %s", e.StatusCode, body)
}

// IsHTTPStatusError は与えられたエラーが HTTPStatusError を含むかどうかを判断します。
func IsHTTPStatusError(err error) bool {
	if err == nil {
		return false
	}
	var statusErr *HTTPStatusError
	return errors.As(err, &statusErr)
}

// Page は、1回のGETリクエストで取得したレスポンスを保持します。
type Page struct {
	URL         string // リクエストしたURL
	StatusCode  int
	ContentType string // Content-Type ヘッダーの値
	Body        []byte // 未デコードのレスポンスボディ
}

// Document は、Content-Type または本文から判定した文字コードでボディをUTF-8に変換し、
// goquery.Document として解析します。
func (p *Page) Document() (*goquery.Document, error) {
	var reader io.Reader = bytes.NewReader(p.Body)
	if len(p.Body) > 0 {
		decoded, err := charset.NewReader(reader, p.ContentType)
		if err != nil {
			return nil, fmt.Errorf("文字コードの変換に失敗しました: %w", err)
		}
		reader = decoded
	}

	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, fmt.Errorf("HTML解析に失敗しました: %w", err)
	}
	return doc, nil
}

// Client は、タイムアウトとUser-Agentを設定した単発のHTTP GETを実行します。
// リクエストの送信は httpkit.Client.Do に委ね、リトライ付きの FetchBytes は使いません。
type Client struct {
	httpClient Doer
	userAgent  string
}

// ClientOption はClientの設定を行うための関数型です。
type ClientOption func(*Client)

// WithHTTPClient はカスタムのDoerを設定します。
func WithHTTPClient(doer Doer) ClientOption {
	return func(c *Client) {
		c.httpClient = doer
	}
}

// WithUserAgent は送信するUser-Agentヘッダーを設定します。空文字列の場合はデフォルト値を維持します。
func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// New は、新しいClientを生成します。timeout が0以下の場合は DefaultTimeout を使用します。
func New(timeout time.Duration, options ...ClientOption) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		httpClient: httpkit.New(timeout),
		userAgent:  DefaultUserAgent,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// UserAgent は、リクエストに付与されるUser-Agentを返します。
func (c *Client) UserAgent() string {
	return c.userAgent
}

// addCommonHeaders は共通のHTTPヘッダーを設定します。
func (c *Client) addCommonHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", acceptHeader)
}

// FetchPage は、指定されたURLに対してGETリクエストを1回だけ実行し、レスポンスを返します。
// ネットワークエラー、タイムアウト、2xx 以外のステータスはすべてエラーになります。
func (c *Client) FetchPage(ctx context.Context, url string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("GETリクエスト作成に失敗しました: %w", err)
	}
	c.addCommonHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエストに失敗しました (ネットワーク/接続エラー): %w", err)
	}

	body, err := readLimitedBody(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPStatusError{StatusCode: resp.StatusCode, Body: truncateErrorBody(body)}
	}

	return &Page{
		URL:         url,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

// readLimitedBody は、レスポンスボディを MaxBodySize まで読み込み、ボディを閉じます。
// Content-Length の有無にかかわらず、MaxBodySize+1 バイト目を読めた時点で超過とみなします。
func readLimitedBody(resp *http.Response) ([]byte, error) {
	if resp.ContentLength > MaxBodySize {
		resp.Body.Close()
		return nil, fmt.Errorf("レスポンスボディが最大サイズ (%dバイト) を超えました (Content-Length: %d)", MaxBodySize, resp.ContentLength)
	}

	body, err := httpkit.HandleLimitedResponse(resp, MaxBodySize+1)
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > MaxBodySize {
		return nil, fmt.Errorf("レスポンスボディが最大サイズ (%dバイト) を超えました", MaxBodySize)
	}
	return body, nil
}

// truncateErrorBody は、エラーに保持するボディを maxErrorBodyLength+1 バイトまでに抑えます。
func truncateErrorBody(body []byte) []byte {
	if len(body) > maxErrorBodyLength+1 {
		return body[:maxErrorBodyLength+1]
	}
	return body
}
