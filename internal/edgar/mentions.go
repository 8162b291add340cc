package edgar

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultContextWindow is how many characters of surrounding text are kept on
// each side of a matched company name.
const DefaultContextWindow = 200

// collaborationIndicators are phrases whose presence near a mention suggests
// a business relationship rather than an incidental reference.
var collaborationIndicators = []string{
	"partner",
	"agreement",
	"collaboration",
	"joint venture",
	"alliance",
	"strategic relationship",
	"license agreement",
	"co-develop",
}

// FindContexts returns the deduplicated context windows around each
// whole-word, case-insensitive occurrence of name in text. Windows clamped at
// a document edge keep their ellipsis only on the truncated side.
func FindContexts(text, name string, window int) []string {
	name = strings.TrimSpace(name)
	if name == "" || text == "" {
		return nil
	}
	if window <= 0 {
		window = DefaultContextWindow
	}

	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`)
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var contexts []string
	for _, loc := range re.FindAllStringIndex(text, -1) {
		start := loc[0] - window
		end := loc[1] + window

		if start < 0 {
			start = 0
		}
		if end > len(text) {
			end = len(text)
		}
		// Window bounds are byte offsets; move them onto rune boundaries so
		// the clamp never splits a multi-byte character.
		for start > 0 && !utf8.RuneStart(text[start]) {
			start--
		}
		for end < len(text) && !utf8.RuneStart(text[end]) {
			end++
		}

		prefix, suffix := "...", "..."
		if start == 0 {
			prefix = ""
		}
		if end == len(text) {
			suffix = ""
		}

		ctx := prefix + strings.TrimSpace(text[start:end]) + suffix
		if !seen[ctx] {
			seen[ctx] = true
			contexts = append(contexts, ctx)
		}
	}
	return contexts
}

// ContainsIndicator reports whether text contains any collaboration
// indicator phrase, case-insensitively.
func ContainsIndicator(text string) bool {
	lower := strings.ToLower(text)
	for _, ind := range collaborationIndicators {
		if strings.Contains(lower, ind) {
			return true
		}
	}
	return false
}
