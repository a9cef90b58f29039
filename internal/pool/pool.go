// Package pool runs crawl task bodies on a fixed set of workers and tracks
// their completion through handles.
package pool

import (
	"sync"

	"github.com/mdevereaux/spiderling/internal/crawler"
)

// Task is the body executed for one scheduled crawl unit. It returns the
// completion marker its handle resolves to.
type Task func() crawler.Completion

// Handle is a reference to a scheduled-but-possibly-incomplete task
// execution. It resolves exactly once, when the task body returns.
type Handle struct {
	done       chan struct{}
	completion crawler.Completion
}

// Wait blocks until the task finishes and returns its completion marker.
// Waiters are expected to be patient: tasks observe cancellation themselves
// and return promptly once the run context ends, so a drain over cancelled
// work terminates without any forced kill.
func (h *Handle) Wait() crawler.Completion {
	<-h.done
	return h.completion
}

// Done exposes the completion channel for select-based callers.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

type submission struct {
	fn     Task
	handle *Handle
}

// Pool executes tasks with bounded concurrency. Submissions never block and
// may come from inside a running task, which is what lets a crawl fan out.
// The backlog is unbounded; only execution is capped at the worker count.
type Pool struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []submission
	closed bool
	wg     sync.WaitGroup
}

// New starts a pool with the given number of workers.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	p := &Pool{}
	p.cond = sync.NewCond(&p.mu)
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.work()
	}
	return p
}

// Submit queues fn for execution and returns its handle immediately. If the
// pool has been closed, fn runs inline on the caller so the returned handle
// still resolves.
func (p *Pool) Submit(fn Task) *Handle {
	h := &Handle{done: make(chan struct{})}
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		h.completion = fn()
		close(h.done)
		return h
	}
	p.queue = append(p.queue, submission{fn: fn, handle: h})
	p.mu.Unlock()
	p.cond.Signal()
	return h
}

// Close stops accepting new work and blocks until the backlog is executed
// and every worker has exited. Nothing in flight is force-killed.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()
	p.cond.Broadcast()
	p.wg.Wait()
}

func (p *Pool) work() {
	defer p.wg.Done()
	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.closed {
			p.cond.Wait()
		}
		if len(p.queue) == 0 {
			p.mu.Unlock()
			return
		}
		s := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()

		s.handle.completion = s.fn()
		close(s.handle.done)
	}
}
