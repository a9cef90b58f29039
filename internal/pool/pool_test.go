package pool

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mdevereaux/spiderling/internal/crawler"
)

func TestPoolRunsSubmittedTasks(t *testing.T) {
	t.Parallel()

	p := New(2)
	defer p.Close()

	h := p.Submit(func() crawler.Completion {
		return crawler.Completion{URL: "https://a.test/", Depth: 0}
	})

	c := h.Wait()
	require.Equal(t, "https://a.test/", c.URL)
	require.Equal(t, 0, c.Depth)
	require.Equal(t, "https://a.test/@0", c.String())
}

func TestPoolBoundsConcurrency(t *testing.T) {
	t.Parallel()

	const workers = 3
	const tasks = 30

	p := New(workers)
	defer p.Close()

	var running, peak atomic.Int64
	var handles []*Handle
	for i := 0; i < tasks; i++ {
		handles = append(handles, p.Submit(func() crawler.Completion {
			now := running.Add(1)
			for {
				old := peak.Load()
				if now <= old || peak.CompareAndSwap(old, now) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			running.Add(-1)
			return crawler.Completion{}
		}))
	}
	for _, h := range handles {
		h.Wait()
	}

	require.LessOrEqual(t, peak.Load(), int64(workers))
	require.Positive(t, peak.Load())
}

func TestPoolSubmitFromRunningTask(t *testing.T) {
	t.Parallel()

	// A single worker must not deadlock when a task submits follow-up work;
	// submission only queues, it never waits for execution.
	p := New(1)
	defer p.Close()

	var child *Handle
	var childOnce sync.Once
	parent := p.Submit(func() crawler.Completion {
		childOnce.Do(func() {
			child = p.Submit(func() crawler.Completion {
				return crawler.Completion{URL: "child", Depth: 1}
			})
		})
		return crawler.Completion{URL: "parent", Depth: 0}
	})

	pc := parent.Wait()
	require.Equal(t, "parent", pc.URL)
	cc := child.Wait()
	require.Equal(t, "child", cc.URL)
	require.Equal(t, 1, cc.Depth)
}

func TestPoolSubmitNeverBlocks(t *testing.T) {
	t.Parallel()

	p := New(1)
	defer p.Close()

	block := make(chan struct{})
	p.Submit(func() crawler.Completion {
		<-block
		return crawler.Completion{}
	})

	// With the only worker busy, further submissions must still return
	// promptly no matter how many pile up.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			p.Submit(func() crawler.Completion { return crawler.Completion{} })
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("submissions blocked behind a busy worker")
	}
	close(block)
}

func TestPoolCloseDrainsBacklog(t *testing.T) {
	t.Parallel()

	p := New(2)

	var executed atomic.Int64
	for i := 0; i < 50; i++ {
		p.Submit(func() crawler.Completion {
			executed.Add(1)
			return crawler.Completion{}
		})
	}
	p.Close()

	require.Equal(t, int64(50), executed.Load())
}

func TestPoolSubmitAfterCloseRunsInline(t *testing.T) {
	t.Parallel()

	p := New(1)
	p.Close()

	h := p.Submit(func() crawler.Completion {
		return crawler.Completion{URL: "late", Depth: 3}
	})

	select {
	case <-h.Done():
	default:
		t.Fatal("handle for post-close submission should resolve immediately")
	}
	require.Equal(t, "late", h.Wait().URL)
}
