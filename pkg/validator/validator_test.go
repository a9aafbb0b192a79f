package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected bool
	}{
		{"正常ケース_https", "https://example.com", true},
		{"正常ケース_localhostとポートとパス", "http://localhost:8080/path", true},
		{"正常ケース_IPv4", "http://192.168.1.1", true},
		{"正常ケース_サブドメインとクエリ", "https://www.sub.example.co.uk/a/b?q=1&r=2", true},
		{"正常ケース_末尾スラッシュ", "https://example.com/", true},
		{"正常ケース_大文字", "HTTPS://EXAMPLE.COM/INDEX.HTML", true},
		{"正常ケース_クエリのみ", "http://example.com?x=1", true},
		{"エラーケース_空文字列", "", false},
		{"エラーケース_ftpスキーム", "ftp://example.com", false},
		{"エラーケース_スキームなし", "example.com", false},
		{"エラーケース_TLDなし", "http://example", false},
		{"エラーケース_TLDが長すぎる", "http://example.abcdefg", false},
		{"エラーケース_パスに空白", "http://example.com/a b", false},
		{"エラーケース_ハイフン始まりのラベル", "http://-example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsValidURL(tt.url), "URL: %q", tt.url)
		})
	}
}
