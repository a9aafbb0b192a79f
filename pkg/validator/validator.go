package validator

import "regexp"

// urlPattern は、http/https のスキーム、ホスト (ドメイン名・localhost・IPv4)、任意のポートとパスを検証します。
// ドメイン名の各ラベルは最大63文字、TLDは英字2〜6文字です。
var urlPattern = regexp.MustCompile(
	`(?i)^https?://` +
		`(?:(?:[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?\.)+[a-z]{2,6}\.?|` +
		`localhost|` +
		`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})` +
		`(?::\d+)?` +
		`(?:/?|[/?]\S+)$`,
)

// IsValidURL は、与えられた文字列がスクレイピング対象として有効なURL形式かどうかを判定します。
// 空文字列は常に無効です。
func IsValidURL(rawURL string) bool {
	if rawURL == "" {
		return false
	}
	return urlPattern.MatchString(rawURL)
}
