package types

import "errors"

// スクレイピング結果として利用者に提示されるエラー種別です。
// メッセージはそのまま画面に表示されます。
var (
	ErrInvalidURL  = errors.New("Invalid URL format")
	ErrFetchFailed = errors.New("Failed to fetch page")
)

// LinkRecord は、ページから抽出された1件のリンクを表します。
type LinkRecord struct {
	Text string // リンクテキスト (最大100文字)
	URL  string // 絶対URL
}

// ScrapeResult は、1つのURLに対するスクレイピング結果、またはその処理中に発生したエラーを保持します。
// Error が nil でない場合、その他のフィールドは空です。
type ScrapeResult struct {
	URL         string       // 処理対象のURL
	Title       string       // 抽出されたページタイトル
	Description string       // 抽出された説明文
	Links       []LinkRecord // 文書順に並んだ先頭N件のリンク
	Error       error        // 処理中に発生したエラー (ErrInvalidURL または ErrFetchFailed)
}

// Failure は、指定されたエラーのみを保持する結果を生成します。
func Failure(err error) ScrapeResult {
	return ScrapeResult{Error: err}
}

// Failed は、結果がエラーレコードかどうかを返します。
func (r ScrapeResult) Failed() bool {
	return r.Error != nil
}

// ErrorMessage は、エラーレコードのメッセージを返します。成功時は空文字列です。
func (r ScrapeResult) ErrorMessage() string {
	if r.Error == nil {
		return ""
	}
	return r.Error.Error()
}
