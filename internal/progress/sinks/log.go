// Package sinks provides progress.Sink implementations.
package sinks

import (
	"go.uber.org/zap"

	"github.com/mdevereaux/spiderling/internal/progress"
)

// LogSink emits structured logs for the progress stream. It is useful during
// development or when no metrics endpoint is running.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink wires a Zap logger to the sink interface.
func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{logger: logger}
}

// Consume logs the event using structured fields.
func (s *LogSink) Consume(evt progress.Event) {
	s.logger.Debug("progress event",
		zap.String("run_id", evt.RunID),
		zap.String("stage", string(evt.Stage)),
		zap.String("url", evt.URL),
		zap.Int("depth", evt.Depth),
		zap.Int64("bytes", evt.Bytes),
		zap.Duration("dur", evt.Dur),
		zap.String("note", evt.Note),
	)
}
