package crawler

import (
	"context"
	"time"
)

// Fetcher performs a single blocking HTTP GET and returns the body plus
// metadata. Implementations must treat non-success statuses as errors.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (FetchResponse, error)
}

// Extractor pulls headings and outgoing links out of a page body. It must be
// pure: the same body always yields the same extraction.
type Extractor interface {
	Extract(body []byte) (Extraction, error)
}

// Sink receives the final aggregated crawl data once the run has drained.
type Sink interface {
	Write(ctx context.Context, pages map[string]PageResult) error
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}

// IDGenerator produces run IDs (UUIDs).
type IDGenerator interface {
	NewID() (string, error)
}
