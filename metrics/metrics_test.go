package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/seo-optimizer/semantic/fetcher"
)

func TestObserveFetch(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveFetch("proxy", fetcher.Retryable, fetcher.ReasonCORS, 20*time.Millisecond)
	m.ObserveFetch("direct", fetcher.Success, "", 40*time.Millisecond)
	m.ObserveFetch("direct", fetcher.Success, "", 40*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchAttemptsTotal.WithLabelValues("proxy", "retryable", "cors")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.FetchAttemptsTotal.WithLabelValues("direct", "success", "none")))
}

func TestCrawlLifecycle(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.CrawlStarted()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CrawlsInFlight))

	m.PageCrawled("ok")
	m.PageCrawled("ok")
	m.PageCrawled("dropped")
	m.CrawlCompleted(2, time.Second)

	assert.Equal(t, 0.0, testutil.ToFloat64(m.CrawlsInFlight))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.PagesTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PagesTotal.WithLabelValues("dropped")))
}

func TestAnalysisCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.AnalysisCompleted("url", "ok")
	m.AnalysisCompleted("url", "validation")
	m.CacheLookup(true)
	m.CacheLookup(false)
	m.CacheLookup(false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AnalysesTotal.WithLabelValues("url", "validation")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CrawlCacheLookups.WithLabelValues("miss")))
}

func TestSeparateRegistries(t *testing.T) {
	// registering twice on fresh registries must not panic
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
