package feed

import (
	"bytes"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/mmcdole/gofeed"
)

// jsonFeedVersionPrefix は、JSON Feed の version フィールドが持つURLの接頭辞です。
const jsonFeedVersionPrefix = "https://jsonfeed.org/version/"

// Detect は、ボディが RSS / Atom / JSON Feed のいずれかであるかを判定します。
// JSONは jsonfeed.org の version を持つ場合のみフィードとみなし、一般的なJSON APIのレスポンスは除外します。
func Detect(body []byte) bool {
	switch gofeed.DetectFeedType(bytes.NewReader(body)) {
	case gofeed.FeedTypeRSS, gofeed.FeedTypeAtom:
		return true
	case gofeed.FeedTypeJSON:
		version := jsoniter.Get(body, "version").ToString()
		return strings.HasPrefix(version, jsonFeedVersionPrefix)
	default:
		return false
	}
}

// Parse は、フィードのボディを解析します。
func Parse(body []byte) (*gofeed.Feed, error) {
	fp := gofeed.NewParser()
	feed, err := fp.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("フィードのパース失敗: %w", err)
	}
	return feed, nil
}
