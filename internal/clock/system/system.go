// Package system adapts the wall clock to the crawler.Clock interface.
package system

import (
	"time"

	"github.com/mdevereaux/spiderling/internal/crawler"
)

// Clock reads the real wall clock, normalized to UTC so every recorded
// FetchedAt compares cleanly regardless of host timezone.
type Clock struct{}

var _ crawler.Clock = Clock{}

// New returns a Clock.
func New() *Clock {
	return &Clock{}
}

// Now returns the current UTC time.
func (Clock) Now() time.Time {
	return time.Now().UTC()
}
