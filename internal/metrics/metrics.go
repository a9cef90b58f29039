// Package metrics exposes Prometheus collectors for the crawler.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// FetchesStarted tracks the number of fetch attempts initiated.
	FetchesStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "spiderling_fetches_started_total",
		Help: "The total number of HTTP fetch attempts initiated.",
	})
	// TasksSkipped tracks tasks ended early by the depth cap, the visited
	// check, or cancellation.
	TasksSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "spiderling_tasks_skipped_total",
		Help: "The total number of tasks skipped before fetching.",
	})
	// PagesFetched tracks successful fetch-and-record completions.
	PagesFetched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "spiderling_pages_fetched_total",
		Help: "The total number of pages successfully fetched and recorded.",
	})
	// FetchErrors tracks fetches ending in a network or HTTP status error.
	FetchErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "spiderling_fetch_errors_total",
		Help: "The total number of failed fetch attempts.",
	})
	// BytesFetched tracks the cumulative size of fetched bodies.
	BytesFetched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "spiderling_bytes_fetched_total",
		Help: "The total number of body bytes fetched.",
	})
)

// Handler returns an http.Handler exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
