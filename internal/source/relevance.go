package source

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/sells-group/collab-radar/internal/model"
)

var fold = cases.Fold()

// FilterRelevant keeps a result iff the case-folded concatenation of its
// title and snippet contains both company names as substrings. This is a
// deliberately blunt test, not tokenized matching: legal-suffix variants
// ("Acme" vs "Acme Inc.") in the query names cause false negatives, which
// is why both the raw and suffix-normalized names are tried.
func FilterRelevant(in []model.RawResult, subject, counterparty string) []model.RawResult {
	subjects := candidateNames(subject)
	counterparties := candidateNames(counterparty)

	out := make([]model.RawResult, 0, len(in))
	for _, r := range in {
		text := fold.String(r.Title + " " + r.Snippet)
		if containsAny(text, subjects) && containsAny(text, counterparties) {
			out = append(out, r)
		}
	}
	return out
}

// candidateNames returns the folded name plus its legal-suffix-stripped
// variant when that differs.
func candidateNames(name string) []string {
	folded := fold.String(strings.TrimSpace(name))
	stripped := fold.String(StripLegalSuffix(name))
	if stripped != "" && stripped != folded {
		return []string{folded, stripped}
	}
	return []string{folded}
}

func containsAny(text string, names []string) bool {
	for _, n := range names {
		if n != "" && strings.Contains(text, n) {
			return true
		}
	}
	return false
}

// legalSuffixes lists common legal entity suffixes stripped during name
// normalization. Longest variants are not required to come first; suffixes
// are distinct.
var legalSuffixes = []string{
	" inc.", " inc", " incorporated",
	" corp.", " corp", " corporation",
	" llc", " l.l.c.",
	" ltd.", " ltd", " limited",
	" plc", " p.l.c.",
	" co.", " co",
	" lp", " l.p.",
	" llp", " l.l.p.",
	" gmbh", " ag", " s.a.", " n.v.",
}

// StripLegalSuffix removes one trailing legal entity suffix from a company
// name, if present.
func StripLegalSuffix(name string) string {
	trimmed := strings.TrimSpace(name)
	lower := strings.ToLower(trimmed)
	for _, suffix := range legalSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return strings.TrimSpace(trimmed[:len(trimmed)-len(suffix)])
		}
	}
	return trimmed
}
