package source

import "fmt"

// queryTemplates order matters: the bare co-mention runs first, then the
// keyword-qualified variants.
var queryTemplates = []string{
	"",
	"partnership",
	"collaboration",
	"joint venture",
	"agreement",
}

// PlanQueries expands a (subject, counterparty) pair into the fixed ordered
// query set. Both names are quoted for exact-phrase matching. Empty inputs
// yield degenerate but well-formed queries; validation is the caller's job.
func PlanQueries(subject, counterparty string) []string {
	queries := make([]string, 0, len(queryTemplates))
	for _, kw := range queryTemplates {
		q := fmt.Sprintf("%q %q", subject, counterparty)
		if kw != "" {
			q += " " + kw
		}
		queries = append(queries, q)
	}
	return queries
}
