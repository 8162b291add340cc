package extract

import (
	"regexp"
	"strings"
)

var (
	runsOfSpace = regexp.MustCompile(`\s{2,}`)

	// Zero-width characters and BOM that survive HTML-to-text conversion.
	zeroWidth = strings.NewReplacer(
		"\u200b", "", // zero-width space
		"\u200c", "", // zero-width non-joiner
		"\u200d", "", // zero-width joiner
		"\ufeff", "", // BOM
	)

	lineBreaks = strings.NewReplacer(
		"\r\n", " ",
		"\r", " ",
		"\n", " ",
	)
)

// CleanText normalizes extracted text: non-breaking spaces become regular
// spaces, zero-width/BOM characters are dropped, line breaks are flattened,
// runs of whitespace collapse to a single space, characters outside the
// basic multilingual plane are removed, and the result is trimmed.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = zeroWidth.Replace(s)
	s = lineBreaks.Replace(s)
	s = strings.Map(func(r rune) rune {
		if r > 0xFFFF {
			return -1
		}
		return r
	}, s)
	s = runsOfSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
