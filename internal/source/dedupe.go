package source

import "github.com/sells-group/collab-radar/internal/model"

// Dedupe collapses results to one per absolute URL. When duplicates exist
// the last-seen record wins wholesale; fields are not merged. Output order
// follows first appearance of each URL, so Dedupe is idempotent.
func Dedupe(in []model.RawResult) []model.RawResult {
	byURL := make(map[string]model.RawResult, len(in))
	order := make([]string, 0, len(in))
	for _, r := range in {
		if _, seen := byURL[r.URL]; !seen {
			order = append(order, r.URL)
		}
		byURL[r.URL] = r
	}
	out := make([]model.RawResult, 0, len(order))
	for _, u := range order {
		out = append(out, byURL[u])
	}
	return out
}
