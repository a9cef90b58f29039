package sinks

import (
	"github.com/mdevereaux/spiderling/internal/metrics"
	"github.com/mdevereaux/spiderling/internal/progress"
)

// PrometheusSink maps progress events onto the package-level Prometheus
// collectors in internal/metrics.
type PrometheusSink struct{}

// NewPrometheusSink constructs a PrometheusSink.
func NewPrometheusSink() *PrometheusSink {
	return &PrometheusSink{}
}

// Consume increments the collectors matching the event stage.
func (s *PrometheusSink) Consume(evt progress.Event) {
	switch evt.Stage {
	case progress.StageFetchStart:
		metrics.FetchesStarted.Inc()
	case progress.StageFetchDone:
		metrics.PagesFetched.Inc()
		metrics.BytesFetched.Add(float64(evt.Bytes))
	case progress.StageFetchError:
		metrics.FetchErrors.Inc()
	case progress.StageTaskSkipped:
		metrics.TasksSkipped.Inc()
	case progress.StageRunDone:
	}
}
