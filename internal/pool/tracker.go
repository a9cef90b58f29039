package pool

import (
	"sync"

	"github.com/mdevereaux/spiderling/internal/crawler"
)

// Tracker holds the handles of every outstanding task. Running tasks
// register the handles of the children they spawn, so the set grows while it
// is being drained; emptiness is only meaningful under the tracker's lock.
type Tracker struct {
	mu      sync.Mutex
	pending []*Handle
}

// NewTracker constructs an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Register adds a handle to the pending set. Safe to call from any
// goroutine, including task bodies mid-drain.
func (t *Tracker) Register(h *Handle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending = append(t.pending, h)
}

// Pending returns the number of handles not yet drained.
func (t *Tracker) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending)
}

// DrainAll waits for every registered handle, including handles registered
// by tasks that complete during the drain, and returns once none remain.
// A task registers its children before its own handle resolves, so popping
// and waiting one handle at a time cannot miss descendants. Termination is
// guaranteed because depth strictly increases per hop and is capped.
func (t *Tracker) DrainAll(onDone func(crawler.Completion)) {
	for {
		h := t.pop()
		if h == nil {
			return
		}
		c := h.Wait()
		if onDone != nil {
			onDone(c)
		}
	}
}

func (t *Tracker) pop() *Handle {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.pending) == 0 {
		return nil
	}
	h := t.pending[0]
	t.pending = t.pending[1:]
	return h
}
