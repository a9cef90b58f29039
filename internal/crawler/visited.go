package crawler

import "sync"

// VisitedStore maps fetched URLs to their results. All inserts and reads are
// serialized by one mutex, so the store never holds more than one result per
// URL. The visited check and the later insert are deliberately not one
// atomic claim: two tasks submitted for the same URL before either records
// may both fetch it, and the first completed insert wins.
type VisitedStore struct {
	mu    sync.RWMutex
	pages map[string]PageResult
}

// NewVisitedStore constructs an empty store.
func NewVisitedStore() *VisitedStore {
	return &VisitedStore{
		pages: make(map[string]PageResult),
	}
}

// Contains reports whether a result has been recorded for url. Absence means
// not yet claimed or the fetch did not succeed.
func (s *VisitedStore) Contains(url string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.pages[url]
	return ok
}

// Record inserts url -> result unless an entry already exists. It reports
// whether the result was stored; a false return means a concurrent duplicate
// fetch got there first and its entry stands untouched.
func (s *VisitedStore) Record(url string, result PageResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.pages[url]; exists {
		return false
	}
	s.pages[url] = result
	return true
}

// Len returns the number of recorded pages.
func (s *VisitedStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pages)
}

// Snapshot returns a copy of the recorded pages, safe to hand to a sink
// after the run has drained.
func (s *VisitedStore) Snapshot() map[string]PageResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]PageResult, len(s.pages))
	for url, page := range s.pages {
		out[url] = page
	}
	return out
}
