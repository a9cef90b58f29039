package pool

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mdevereaux/spiderling/internal/crawler"
)

func TestTrackerDrainEmpty(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	var drained int
	tr.DrainAll(func(crawler.Completion) { drained++ })
	require.Zero(t, drained)
	require.Zero(t, tr.Pending())
}

func TestTrackerDrainAllWaitsForRegisteredHandles(t *testing.T) {
	t.Parallel()

	p := New(2)
	defer p.Close()
	tr := NewTracker()

	for i := 0; i < 10; i++ {
		tr.Register(p.Submit(func() crawler.Completion {
			return crawler.Completion{URL: "page", Depth: 0}
		}))
	}

	var drained atomic.Int64
	tr.DrainAll(func(crawler.Completion) { drained.Add(1) })
	require.Equal(t, int64(10), drained.Load())
	require.Zero(t, tr.Pending())
}

func TestTrackerDrainSeesHandlesRegisteredMidDrain(t *testing.T) {
	t.Parallel()

	// Mirrors the crawl fan-out: a task registers its children before its
	// own handle resolves, so the drain keeps going until the whole tree
	// has finished.
	p := New(3)
	defer p.Close()
	tr := NewTracker()

	const maxDepth = 4
	var spawn func(depth int) crawler.Completion
	spawn = func(depth int) crawler.Completion {
		if depth < maxDepth {
			for i := 0; i < 2; i++ {
				d := depth + 1
				tr.Register(p.Submit(func() crawler.Completion {
					return spawn(d)
				}))
			}
		}
		return crawler.Completion{URL: "node", Depth: depth}
	}

	tr.Register(p.Submit(func() crawler.Completion {
		return spawn(0)
	}))

	var drained atomic.Int64
	tr.DrainAll(func(c crawler.Completion) {
		require.LessOrEqual(t, c.Depth, maxDepth)
		drained.Add(1)
	})

	// Full binary tree of depth 4: 1+2+4+8+16 nodes.
	require.Equal(t, int64(31), drained.Load())
	require.Zero(t, tr.Pending())
}
