package source

import (
	"net/url"
	"strings"

	"github.com/rotisserie/eris"
)

// redirectParams are query parameters used by search-engine outbound
// redirect wrappers; the wrapped value is the real target.
var redirectParams = []string{"q", "url", "u"}

// ResolveLink turns a raw href into an absolute URL. Handles, in order:
// protocol-relative links (//host/...), absolute links (including decoding
// redirect-wrapper URLs like /url?q=...), root-relative links resolved
// against the page URL, and other relative links resolved against prefix.
func ResolveLink(raw, pageURL, prefix string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "#" {
		return "", eris.New("source: empty link")
	}

	if strings.HasPrefix(raw, "//") {
		raw = "https:" + raw
	}

	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		u, err := url.Parse(raw)
		if err != nil {
			return "", eris.Wrapf(err, "source: parse link %q", raw)
		}
		return decodeRedirect(u), nil
	}

	base := prefix
	if strings.HasPrefix(raw, "/") && pageURL != "" {
		base = pageURL
	}
	if base == "" {
		base = pageURL
	}
	if base == "" {
		return "", eris.Errorf("source: relative link %q with no base", raw)
	}

	bu, err := url.Parse(base)
	if err != nil {
		return "", eris.Wrapf(err, "source: parse base %q", base)
	}
	ru, err := url.Parse(raw)
	if err != nil {
		return "", eris.Wrapf(err, "source: parse link %q", raw)
	}
	resolved := bu.ResolveReference(ru)
	return decodeRedirect(resolved), nil
}

// decodeRedirect unwraps search-engine outbound-redirect URLs (paths like
// /url with the real target in a query parameter). Returns the input URL
// unchanged when it is not a redirect wrapper.
func decodeRedirect(u *url.URL) string {
	if u.Path == "/url" || strings.HasSuffix(u.Path, "/redirect") {
		q := u.Query()
		for _, p := range redirectParams {
			if target := q.Get(p); strings.HasPrefix(target, "http") {
				return target
			}
		}
	}
	return u.String()
}
