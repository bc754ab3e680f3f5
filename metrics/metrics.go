// Package metrics exposes Prometheus collectors for fetch, crawl and
// analysis activity.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/seo-optimizer/semantic/fetcher"
)

// Namespace prefixes every metric name
const Namespace = "semantic"

// Metrics holds all collectors. It satisfies fetcher.Observer and
// crawler.Observer.
type Metrics struct {
	FetchAttemptsTotal *prometheus.CounterVec
	FetchDuration      *prometheus.HistogramVec
	PagesTotal         *prometheus.CounterVec
	CrawlDuration      prometheus.Histogram
	CrawlPages         prometheus.Histogram
	CrawlsInFlight     prometheus.Gauge
	AnalysesTotal      *prometheus.CounterVec
	CrawlCacheLookups  *prometheus.CounterVec
}

// New creates and registers all collectors on reg, or on the default
// registerer when reg is nil.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	m := &Metrics{}

	m.FetchAttemptsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "fetch",
			Name:      "attempts_total",
			Help:      "Fetch strategy attempts by outcome and failure reason",
		},
		[]string{"strategy", "outcome", "reason"},
	)

	m.FetchDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "fetch",
			Name:      "duration_seconds",
			Help:      "Duration of a single fetch strategy attempt",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
		},
		[]string{"strategy"},
	)

	m.PagesTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "crawl",
			Name:      "pages_total",
			Help:      "Pages processed by the crawler by status",
		},
		[]string{"status"},
	)

	m.CrawlDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "crawl",
			Name:      "duration_seconds",
			Help:      "Wall time of a complete crawl",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
		},
	)

	m.CrawlPages = factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "crawl",
			Name:      "pages",
			Help:      "Pages returned per crawl",
			Buckets:   []float64{1, 2, 5, 10, 15, 20, 25},
		},
	)

	m.CrawlsInFlight = factory.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "crawl",
			Name:      "in_flight",
			Help:      "Crawls currently running",
		},
	)

	m.AnalysesTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "analysis",
			Name:      "total",
			Help:      "Completed analyze calls by mode and result",
		},
		[]string{"mode", "result"},
	)

	m.CrawlCacheLookups = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "analysis",
			Name:      "crawl_cache_lookups_total",
			Help:      "Crawl cache lookups by result",
		},
		[]string{"result"},
	)

	return m
}

// ObserveFetch records one strategy attempt
func (m *Metrics) ObserveFetch(strategy string, outcome fetcher.Outcome, reason fetcher.Reason, elapsed time.Duration) {
	r := string(reason)
	if r == "" {
		r = "none"
	}
	m.FetchAttemptsTotal.WithLabelValues(strategy, outcome.String(), r).Inc()
	m.FetchDuration.WithLabelValues(strategy).Observe(elapsed.Seconds())
}

func (m *Metrics) CrawlStarted() { m.CrawlsInFlight.Inc() }

func (m *Metrics) PageCrawled(status string) { m.PagesTotal.WithLabelValues(status).Inc() }

func (m *Metrics) CrawlCompleted(pages int, elapsed time.Duration) {
	m.CrawlsInFlight.Dec()
	m.CrawlPages.Observe(float64(pages))
	m.CrawlDuration.Observe(elapsed.Seconds())
}

// AnalysisCompleted records an analyze call; result is "ok" or an error kind
func (m *Metrics) AnalysisCompleted(mode, result string) {
	m.AnalysesTotal.WithLabelValues(mode, result).Inc()
}

// CacheLookup records a crawl cache hit or miss
func (m *Metrics) CacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CrawlCacheLookups.WithLabelValues(result).Inc()
}
