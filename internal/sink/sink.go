// Package sink writes the final aggregated crawl data to its destination.
package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/mdevereaux/spiderling/internal/crawler"
)

const stdoutTarget = "stdout"

// Select returns the sink matching the configured output target: the
// literal "stdout" streams pretty JSON to standard output, anything else is
// treated as a file path.
func Select(target string, logger *zap.Logger) crawler.Sink {
	if target == "" || target == stdoutTarget {
		return NewStreamSink(os.Stdout)
	}
	return NewFileSink(target, logger)
}

// StreamSink writes the crawl data as indented JSON to a writer.
type StreamSink struct {
	w io.Writer
}

// NewStreamSink returns a sink writing to w.
func NewStreamSink(w io.Writer) *StreamSink {
	return &StreamSink{w: w}
}

// Write marshals and streams the page map.
func (s *StreamSink) Write(ctx context.Context, pages map[string]crawler.PageResult) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context canceled: %w", err)
	}
	payload, err := json.MarshalIndent(pages, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	payload = append(payload, '\n')
	if _, err := s.w.Write(payload); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// FileSink saves the crawl data as one JSON document on disk.
type FileSink struct {
	path   string
	logger *zap.Logger
}

// NewFileSink returns a sink writing to path.
func NewFileSink(path string, logger *zap.Logger) *FileSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileSink{path: path, logger: logger}
}

// Write marshals the page map and writes it to the configured path.
func (s *FileSink) Write(ctx context.Context, pages map[string]crawler.PageResult) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context canceled: %w", err)
	}
	payload, err := json.MarshalIndent(pages, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create output dir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("write output %s: %w", s.path, err)
	}
	s.logger.Info("results written", zap.String("path", s.path), zap.Int("pages", len(pages)))
	return nil
}
