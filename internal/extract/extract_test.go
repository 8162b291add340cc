package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func para(s string) string {
	return "<p>" + s + "</p>"
}

// filler builds a paragraph comfortably over the minimum-length threshold.
func filler(prefix string) string {
	return prefix + " " + strings.Repeat("the companies announced an expanded agreement covering several product lines ", 4)
}

func TestExtractPrefersConfiguredSelector(t *testing.T) {
	html := `<html><body>
		<div class="sidebar"><p>` + filler("sidebar noise") + `</p></div>
		<div class="article-body"><p>` + filler("selector content") + `</p></div>
	</body></html>`

	e := New()
	text := e.Extract(html, "https://example.com/a", []string{".article-body"})
	assert.Contains(t, text, "selector content")
	assert.NotContains(t, text, "sidebar noise")
}

func TestExtractSemanticFallback(t *testing.T) {
	html := `<html><body>
		<nav><p>` + filler("navigation junk") + `</p></nav>
		<article><p>` + filler("article content") + `</p></article>
	</body></html>`

	e := New()
	text := e.Extract(html, "https://example.com/a", []string{".does-not-exist"})
	assert.Contains(t, text, "article content")
}

func TestExtractStripFallbackRemovesChrome(t *testing.T) {
	html := `<html><body>
		<header><p>` + filler("header junk") + `</p></header>
		<script>var x = 1;</script>
		<div><p>` + filler("body content") + `</p></div>
		<footer><p>` + filler("footer junk") + `</p></footer>
	</body></html>`

	e := New()
	text := e.Extract(html, "https://example.com/a", nil)
	assert.Contains(t, text, "body content")
	assert.NotContains(t, text, "header junk")
	assert.NotContains(t, text, "footer junk")
	assert.NotContains(t, text, "var x")
}

func TestExtractNoiseFragmentsDropped(t *testing.T) {
	html := `<html><body><article>
		<li>Menu</li>
		<li>Home</li>
		<p>` + filler("real text") + `</p>
	</article></body></html>`

	e := New()
	text := e.Extract(html, "https://example.com/a", nil)
	assert.Contains(t, text, "real text")
	assert.NotContains(t, text, "Menu")
}

func TestExtractTooShortReturnsEmpty(t *testing.T) {
	html := `<html><body>` + para("short") + `</body></html>`
	e := New()
	assert.Empty(t, e.Extract(html, "https://example.com/a", nil))
}

func TestExtractSelectorContainerFallback(t *testing.T) {
	// The container has no text-bearing sub-elements; its own text is used.
	html := `<html><body><div class="raw">` + filler("container text") + `</div></body></html>`
	e := New()
	text := e.Extract(html, "https://example.com/a", []string{".raw"})
	assert.Contains(t, text, "container text")
}
