// Package progress defines the event stream emitted by crawl tasks.
package progress

import (
	"errors"
	"time"
)

// Stage denotes the type of milestone represented by an Event.
type Stage string

// Supported progress stages.
const (
	StageTaskSkipped Stage = "TASK_SKIPPED"
	StageFetchStart  Stage = "FETCH_START"
	StageFetchDone   Stage = "FETCH_DONE"
	StageFetchError  Stage = "FETCH_ERROR"
	StageRunDone     Stage = "RUN_DONE"
)

// Event captures a single milestone of crawler progress.
type Event struct {
	// RunID identifies the crawl run the event belongs to.
	RunID string
	// TS is the UTC timestamp recorded by the emitter.
	TS time.Time
	// Stage denotes which task or run milestone occurred.
	Stage Stage
	// URL is the page the task was working, empty for run-level events.
	URL string
	// Depth is the hop count of the emitting task.
	Depth int
	// Bytes carries the response size for fetch completions.
	Bytes int64
	// Dur captures fetch latency or total run time.
	Dur time.Duration
	// Note lets emitters attach low-volume context (e.g. error text).
	Note string
}

// Validate performs coarse validation on Event payloads.
func (e Event) Validate() error {
	if e.RunID == "" {
		return errors.New("run id is required")
	}
	if e.TS.IsZero() {
		return errors.New("timestamp is required")
	}
	switch e.Stage {
	case StageRunDone:
	case StageTaskSkipped, StageFetchStart, StageFetchDone, StageFetchError:
		if e.URL == "" {
			return errors.New("task events require a url")
		}
	default:
		return errors.New("unknown stage")
	}
	return nil
}
