package engine

import (
	"context"

	"go.uber.org/zap"

	"github.com/mdevereaux/spiderling/internal/crawler"
	"github.com/mdevereaux/spiderling/internal/progress"
)

// scrape runs the body of one crawl task: check cancellation, check the
// depth bound and the visited store, fetch, record, and fan out children.
// Every exit path returns the task's completion marker; no failure here is
// fatal to the run.
func (e *Engine) scrape(ctx context.Context, task crawler.Task) crawler.Completion {
	marker := crawler.Completion{URL: task.URL, Depth: task.Depth}
	e.tasksRun.Add(1)

	if ctx.Err() != nil {
		e.tasksSkipped.Add(1)
		e.emit(progress.Event{Stage: progress.StageTaskSkipped, URL: task.URL, Depth: task.Depth, Note: "cancelled"})
		return marker
	}

	// The visited check here and the Record below are intentionally two
	// separate operations: concurrent tasks for the same URL may both pass
	// this check and fetch twice, and only the first Record sticks.
	if task.Depth > e.cfg.MaxDepth || e.visited.Contains(task.URL) {
		e.tasksSkipped.Add(1)
		e.emit(progress.Event{Stage: progress.StageTaskSkipped, URL: task.URL, Depth: task.Depth, Note: "visited or depth cap"})
		e.logger.Debug("skipping task",
			zap.String("url", task.URL),
			zap.Int("depth", task.Depth),
		)
		return marker
	}

	e.emit(progress.Event{Stage: progress.StageFetchStart, URL: task.URL, Depth: task.Depth})
	resp, err := e.fetcher.Fetch(ctx, task.URL)
	if err != nil {
		e.fetchErrors.Add(1)
		e.emit(progress.Event{Stage: progress.StageFetchError, URL: task.URL, Depth: task.Depth, Note: err.Error()})
		e.logger.Warn("fetch failed",
			zap.String("url", task.URL),
			zap.Int("depth", task.Depth),
			zap.Error(err),
		)
		return marker
	}

	extraction, err := e.extractor.Extract(resp.Body)
	if err != nil {
		e.fetchErrors.Add(1)
		e.emit(progress.Event{Stage: progress.StageFetchError, URL: task.URL, Depth: task.Depth, Note: err.Error()})
		e.logger.Warn("extract failed",
			zap.String("url", task.URL),
			zap.Int("depth", task.Depth),
			zap.Error(err),
		)
		return marker
	}

	if e.visited.Record(task.URL, crawler.PageResult{
		URL:       task.URL,
		Raw:       string(resp.Body),
		Headers:   extraction.Headers,
		Depth:     task.Depth,
		FetchedAt: e.clock.Now().UTC(),
	}) {
		e.pagesStored.Add(1)
	}
	e.emit(progress.Event{
		Stage: progress.StageFetchDone,
		URL:   task.URL,
		Depth: task.Depth,
		Bytes: int64(len(resp.Body)),
		Dur:   resp.Duration,
	})

	childDepth := task.Depth + 1
	if childDepth > e.cfg.MaxDepth {
		return marker
	}
	for _, href := range extraction.Links {
		next, err := crawler.ResolveHref(task.URL, href)
		if err != nil {
			e.logger.Debug("dropping unresolvable href",
				zap.String("base", task.URL),
				zap.String("href", href),
				zap.Error(err),
			)
			continue
		}
		// Children are submitted even if the target looks visited right
		// now; the duplicate check runs inside the child itself.
		e.schedule(ctx, crawler.Task{URL: next, Depth: childDepth})
	}
	return marker
}
