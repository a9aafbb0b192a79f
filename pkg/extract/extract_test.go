package extract_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/go-web-scrape/pkg/extract"
	"github.com/shouni/go-web-scrape/pkg/types"
)

func newDocument(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestTitle(t *testing.T) {
	testCases := []struct {
		name     string
		html     string
		expected string
	}{
		{
			name:     "title_tag",
			html:     `<html><head><title>  Page Title  </title><meta property="og:title" content="OG Title"></head><body><h1>Heading</h1></body></html>`,
			expected: "Page Title",
		},
		{
			name:     "og_title_only",
			html:     `<html><head><meta property="og:title" content=" OG Title "></head><body></body></html>`,
			expected: "OG Title",
		},
		{
			name:     "first_og_title_wins",
			html:     `<html><head><meta property="og:title" content="First"><meta property="og:title" content="Second"></head></html>`,
			expected: "First",
		},
		{
			name:     "empty_title_falls_back_to_og",
			html:     `<html><head><title>   </title><meta property="og:title" content="OG Title"></head></html>`,
			expected: "OG Title",
		},
		{
			name:     "first_h1",
			html:     `<html><body><h1>First Heading</h1><h1>Second Heading</h1></body></html>`,
			expected: "First Heading",
		},
		{
			name:     "empty_og_title_falls_back_to_h1",
			html:     `<html><head><meta property="og:title" content=""></head><body><h1>Heading</h1></body></html>`,
			expected: "Heading",
		},
		{
			name:     "nothing_found",
			html:     `<html><body><p>no title here</p></body></html>`,
			expected: extract.NoTitleFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, extract.Title(newDocument(t, tc.html)))
		})
	}
}

func TestDescription(t *testing.T) {
	longText := strings.Repeat("a", 250)
	exactText := strings.Repeat("b", 200)
	multiByteText := strings.Repeat("あ", 201)

	testCases := []struct {
		name     string
		html     string
		expected string
	}{
		{
			name:     "meta_description",
			html:     `<html><head><meta name="description" content=" Meta Desc "><meta property="og:description" content="OG Desc"></head><body><p>Paragraph</p></body></html>`,
			expected: "Meta Desc",
		},
		{
			name:     "og_description",
			html:     `<html><head><meta property="og:description" content="OG Desc"></head><body><p>Paragraph</p></body></html>`,
			expected: "OG Desc",
		},
		{
			name:     "first_paragraph",
			html:     `<html><body><p>First paragraph.</p><p>Second paragraph.</p></body></html>`,
			expected: "First paragraph.",
		},
		{
			name:     "long_paragraph_is_truncated",
			html:     fmt.Sprintf(`<html><body><p>%s</p></body></html>`, longText),
			expected: longText[:200] + "...",
		},
		{
			name:     "paragraph_of_exactly_200_chars_is_kept",
			html:     fmt.Sprintf(`<html><body><p>%s</p></body></html>`, exactText),
			expected: exactText,
		},
		{
			name:     "truncation_counts_characters",
			html:     fmt.Sprintf(`<html><body><p>%s</p></body></html>`, multiByteText),
			expected: strings.Repeat("あ", 200) + "...",
		},
		{
			name:     "nothing_found",
			html:     `<html><head><title>Title</title></head><body></body></html>`,
			expected: extract.NoDescriptionFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, extract.Description(newDocument(t, tc.html)))
		})
	}
}

func TestLinks(t *testing.T) {
	const baseURL = "https://example.com/dir/index.html"

	t.Run("limit_and_document_order_skipping_mailto", func(t *testing.T) {
		doc := newDocument(t, `<html><body>
			<a href="mailto:info@example.com">Mail</a>
			<a href="/one">One</a>
			<a href="two.html">Two</a>
			<a href="mailto:other@example.com">Mail again</a>
			<a href="https://other.example.org/three">Three</a>
			<a href="/four">Four</a>
		</body></html>`)

		links := extract.Links(doc, baseURL, 3)
		assert.Equal(t, []types.LinkRecord{
			{Text: "One", URL: "https://example.com/one"},
			{Text: "Two", URL: "https://example.com/dir/two.html"},
			{Text: "Three", URL: "https://other.example.org/three"},
		}, links)
	})

	t.Run("skips_non_navigational_hrefs", func(t *testing.T) {
		doc := newDocument(t, `<html><body>
			<a>No href</a>
			<a href="">Empty</a>
			<a href="   ">Blank</a>
			<a href="#top">Fragment</a>
			<a href="javascript:void(0)">Script</a>
			<a href="JavaScript:alert(1)">Script upper</a>
			<a href="MAILTO:a@example.com">Mail upper</a>
			<a href="/ok">OK</a>
		</body></html>`)

		links := extract.Links(doc, baseURL, 3)
		assert.Equal(t, []types.LinkRecord{{Text: "OK", URL: "https://example.com/ok"}}, links)
	})

	t.Run("placeholder_and_truncated_text", func(t *testing.T) {
		longText := strings.Repeat("x", 150)
		doc := newDocument(t, fmt.Sprintf(`<html><body>
			<a href="/img"><img src="a.png"></a>
			<a href="/long">%s</a>
		</body></html>`, longText))

		links := extract.Links(doc, baseURL, 3)
		require.Len(t, links, 2)
		assert.Equal(t, extract.NoLinkText, links[0].Text)
		assert.Equal(t, longText[:100], links[1].Text)
		assert.Equal(t, "https://example.com/long", links[1].URL)
	})

	t.Run("default_limit", func(t *testing.T) {
		doc := newDocument(t, `<a href="/1">1</a><a href="/2">2</a><a href="/3">3</a><a href="/4">4</a>`)
		assert.Len(t, extract.Links(doc, baseURL, 0), extract.DefaultLinkLimit)
	})

	t.Run("no_links", func(t *testing.T) {
		doc := newDocument(t, `<p>nothing</p>`)
		links := extract.Links(doc, baseURL, 3)
		assert.NotNil(t, links)
		assert.Empty(t, links)
	})
}

func TestResolveURL(t *testing.T) {
	testCases := []struct {
		name     string
		base     string
		href     string
		expected string
		ok       bool
	}{
		{"absolute_path", "https://example.com/a/b", "/c", "https://example.com/c", true},
		{"relative_path", "https://example.com/a/b", "c", "https://example.com/a/c", true},
		{"protocol_relative", "https://example.com/", "//cdn.example.com/x", "https://cdn.example.com/x", true},
		{"absolute_href", "https://example.com/", "http://other.com/", "http://other.com/", true},
		{"query_only", "https://example.com/page", "?p=2", "https://example.com/page?p=2", true},
		{"invalid_href", "https://example.com/", "http://[::1", "", false},
		{"relative_without_base", "", "/c", "", false},
		{"absolute_without_base", "", "https://example.com/c", "https://example.com/c", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, ok := extract.ResolveURL(tc.base, tc.href)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestExtractor_Extract(t *testing.T) {
	html := `<html><head><title>Title</title><meta name="description" content="Desc"></head>
		<body><a href="/a">A</a><a href="/b">B</a></body></html>`

	extractor := extract.NewExtractor(1)
	assert.Equal(t, 1, extractor.LinkLimit())

	result := extractor.Extract(newDocument(t, html), "https://example.com/")
	assert.False(t, result.Failed())
	assert.Equal(t, types.ScrapeResult{
		URL:         "https://example.com/",
		Title:       "Title",
		Description: "Desc",
		Links:       []types.LinkRecord{{Text: "A", URL: "https://example.com/a"}},
	}, result)

	assert.Equal(t, extract.DefaultLinkLimit, extract.NewExtractor(-1).LinkLimit())
}

func TestTruncate(t *testing.T) {
	text, truncated := extract.Truncate("hello", 10)
	assert.Equal(t, "hello", text)
	assert.False(t, truncated)

	text, truncated = extract.Truncate("こんにちは世界", 5)
	assert.Equal(t, "こんにちは", text)
	assert.True(t, truncated)
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "Hello world", extract.NormalizeText("\n\t  Hello \n  world \t\n"))
	assert.Equal(t, "", extract.NormalizeText(" \n\t "))
	assert.Equal(t, "こんにちは 世界", extract.NormalizeText("こんにちは　世界"))
}
