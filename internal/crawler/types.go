// Package crawler defines core types shared across subsystems.
package crawler

import (
	"fmt"
	"time"
)

// Task is one fetch-extract-schedule unit of work: a single URL at a single
// hop depth. Tasks are immutable once created; a child's depth is always the
// parent's depth plus one.
type Task struct {
	URL   string
	Depth int
}

// Completion marks that a task finished, regardless of whether the fetch
// succeeded. It is the value a task handle resolves to.
type Completion struct {
	URL   string
	Depth int
}

// String renders the marker in url@depth form for logs.
func (c Completion) String() string {
	return fmt.Sprintf("%s@%d", c.URL, c.Depth)
}

// PageResult holds everything recorded for one successfully fetched page.
// Results are never mutated after insertion into the visited store.
type PageResult struct {
	URL       string    `json:"url"`
	Raw       string    `json:"raw"`
	Headers   []string  `json:"headers"`
	Depth     int       `json:"depth"`
	FetchedAt time.Time `json:"fetched_at"`
}

// FetchResponse is the result returned by a Fetcher implementation.
type FetchResponse struct {
	URL        string
	StatusCode int
	Body       []byte
	Duration   time.Duration
}

// Extraction is the structured data pulled out of one page body. Links hold
// raw href values as they appeared in the document, not yet resolved.
type Extraction struct {
	Headers []string
	Links   []string
}
