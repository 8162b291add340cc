// Package source implements evidence source adapters: each adapter knows how
// to turn a (subject, counterparty) pair into queries against one external
// source and reduce the result pages into deduplicated, relevance-filtered
// raw results.
package source

import (
	"net/url"

	"github.com/sells-group/collab-radar/internal/model"
)

// Config is the static descriptor for one selector-driven source: how to
// build its query URL and where its result fields live in the page.
// Selectors are relative to ResultSelector except ResultSelector itself.
type Config struct {
	Key  string           // registry key, e.g. "google_news"
	Name string           // display name carried on results
	Kind model.SourceKind // news or press_release

	SearchURL func(query string) string

	ResultSelector  string // container matched once per result
	TitleSelector   string
	SnippetSelector string // optional
	DateSelector    string // optional
	LinkSelector    string // empty means the container itself carries the link
	LinkAttr        string // attribute holding the link, usually "href"
	LinkPrefix      string // base for resolving relative links
}

// GoogleNews returns the Google News search source.
func GoogleNews() Config {
	return Config{
		Key:  "google_news",
		Name: "Google News",
		Kind: model.KindNews,
		SearchURL: func(query string) string {
			return "https://www.google.com/search?q=" + url.QueryEscape(query) + "&gl=us&tbm=nws"
		},
		ResultSelector:  ".SoaBEf",
		TitleSelector:   "div.n0jPhd",
		SnippetSelector: ".GI74Re",
		DateSelector:    ".OSrXXb span",
		LinkSelector:    "a",
		LinkAttr:        "href",
		LinkPrefix:      "https://www.google.com",
	}
}

// YahooFinance returns the Yahoo Finance news search source.
func YahooFinance() Config {
	return Config{
		Key:  "yahoo_finance",
		Name: "Yahoo Finance",
		Kind: model.KindNews,
		SearchURL: func(query string) string {
			return "https://finance.yahoo.com/news/search?p=" + url.QueryEscape(query)
		},
		ResultSelector:  "li.js-stream-content",
		TitleSelector:   "h3",
		SnippetSelector: "p",
		DateSelector:    `span[data-test="ContentMetaAttribute-timestamp"]`,
		LinkSelector:    "h3 a",
		LinkAttr:        "href",
		LinkPrefix:      "https://finance.yahoo.com",
	}
}

// PRNewswire returns the PR Newswire press-release index source. The result
// container is itself the link, so LinkSelector is empty.
func PRNewswire() Config {
	return Config{
		Key:  "pr_newswire",
		Name: "PR Newswire",
		Kind: model.KindPressRelease,
		SearchURL: func(query string) string {
			return "https://www.prnewswire.com/search/news/?keyword=" + url.QueryEscape(query) + "&page=1&pagesize=100"
		},
		ResultSelector: "a.news-release",
		TitleSelector:  "h3",
		DateSelector:   ".meta .date",
		LinkAttr:       "href",
		LinkPrefix:     "https://www.prnewswire.com",
	}
}

// GlobeNewswire returns the GlobeNewswire press-release index source.
func GlobeNewswire() Config {
	return Config{
		Key:  "globe_newswire",
		Name: "GlobeNewswire",
		Kind: model.KindPressRelease,
		SearchURL: func(query string) string {
			return "https://www.globenewswire.com/search/keyword/" + url.QueryEscape(query) + "?page=1"
		},
		ResultSelector: `div[data-autid="container-news-card"]`,
		TitleSelector:  `a[data-autid="news-card-headline-link"]`,
		DateSelector:   `span[data-autid="news-card-date"]`,
		LinkSelector:   `a[data-autid="news-card-headline-link"]`,
		LinkAttr:       "href",
		LinkPrefix:     "https://www.globenewswire.com",
	}
}

// BuiltinConfigs returns all selector-driven sources in registration order.
func BuiltinConfigs() []Config {
	return []Config{GoogleNews(), YahooFinance(), PRNewswire(), GlobeNewswire()}
}
