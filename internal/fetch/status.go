package fetch

import "fmt"

// Status classifies the outcome of a fetch.
type Status string

const (
	StatusSuccess         Status = "success"
	StatusNavigationError Status = "navigation_error"
	StatusTimeout         Status = "timeout"
	StatusBlocked         Status = "blocked"
)

// Result is a fetched document. HTML is empty unless Status is success.
type Result struct {
	URL    string
	HTML   string
	Status Status
}

// SelectorTimeoutError reports that an expected result-container selector
// never appeared. Unlike a transient network failure, this usually means the
// upstream page layout changed and the adapter needs maintenance, so it is
// kept distinguishable in logs.
type SelectorTimeoutError struct {
	Selector string
	URL      string
}

func (e *SelectorTimeoutError) Error() string {
	return fmt.Sprintf("fetch: selector %q not found on %s", e.Selector, e.URL)
}

// NavigationError reports that a page could not be loaded at all.
type NavigationError struct {
	URL string
	Err error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("fetch: navigate %s: %v", e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }

// BlockedError reports that the upstream served an anti-bot challenge
// instead of content.
type BlockedError struct {
	URL       string
	BlockType BlockType
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("fetch: blocked (%s) at %s", e.BlockType, e.URL)
}
