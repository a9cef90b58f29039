package sinks

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/mdevereaux/spiderling/internal/metrics"
	"github.com/mdevereaux/spiderling/internal/progress"
)

// TestPrometheusSinkRecordsMetrics ensures the package-level collectors are
// incremented from events. The collectors are global, so this test asserts
// deltas rather than absolute values and does not run in parallel with
// itself.
func TestPrometheusSinkRecordsMetrics(t *testing.T) {
	sink := NewPrometheusSink()

	startedBefore := testutil.ToFloat64(metrics.FetchesStarted)
	fetchedBefore := testutil.ToFloat64(metrics.PagesFetched)
	errorsBefore := testutil.ToFloat64(metrics.FetchErrors)
	skippedBefore := testutil.ToFloat64(metrics.TasksSkipped)
	bytesBefore := testutil.ToFloat64(metrics.BytesFetched)

	now := time.Now()
	sink.Consume(progress.Event{RunID: "run-1", TS: now, Stage: progress.StageFetchStart, URL: "https://a.test/"})
	sink.Consume(progress.Event{RunID: "run-1", TS: now, Stage: progress.StageFetchDone, URL: "https://a.test/", Bytes: 1024})
	sink.Consume(progress.Event{RunID: "run-1", TS: now, Stage: progress.StageFetchError, URL: "https://b.test/"})
	sink.Consume(progress.Event{RunID: "run-1", TS: now, Stage: progress.StageTaskSkipped, URL: "https://a.test/"})
	sink.Consume(progress.Event{RunID: "run-1", TS: now, Stage: progress.StageRunDone})

	require.InDelta(t, 1.0, testutil.ToFloat64(metrics.FetchesStarted)-startedBefore, 1e-9)
	require.InDelta(t, 1.0, testutil.ToFloat64(metrics.PagesFetched)-fetchedBefore, 1e-9)
	require.InDelta(t, 1.0, testutil.ToFloat64(metrics.FetchErrors)-errorsBefore, 1e-9)
	require.InDelta(t, 1.0, testutil.ToFloat64(metrics.TasksSkipped)-skippedBefore, 1e-9)
	require.InDelta(t, 1024.0, testutil.ToFloat64(metrics.BytesFetched)-bytesBefore, 1e-9)
}
