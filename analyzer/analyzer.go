// Package analyzer is the entry point of an analysis run: it validates
// input, crawls or wraps text, and aggregates the result into an Analysis.
package analyzer

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/seo-optimizer/semantic/aggregate"
	"github.com/seo-optimizer/semantic/crawler"
	"github.com/seo-optimizer/semantic/logging"
	"github.com/seo-optimizer/semantic/models"
	"github.com/seo-optimizer/semantic/stats"
)

// Crawler runs a site crawl. *crawler.Crawler satisfies it.
type Crawler interface {
	Crawl(ctx context.Context, seed string, onProgress crawler.ProgressFunc) (*crawler.Result, error)
}

// StatsRecorder receives monthly counters. *stats.Storage satisfies it.
type StatsRecorder interface {
	Increment(d stats.Delta)
	CrawlCompleted(pages, failures int, fallback bool)
}

// Recorder receives analysis metrics. *metrics.Metrics satisfies it.
type Recorder interface {
	AnalysisCompleted(mode, result string)
	CacheLookup(hit bool)
}

// CacheStats describes the crawl cache
type CacheStats struct {
	Entries int           `json:"entries"`
	TTL     time.Duration `json:"ttl"`
	MaxSize int           `json:"maxSize"`
}

// Analyzer performs url and text analyses
type Analyzer struct {
	crawler   Crawler
	cache     *crawlCache
	stats     StatsRecorder
	metrics   Recorder
	logger    logging.Logger
	strict    bool
	now       func() time.Time
	done      chan struct{}
	closeOnce sync.Once
}

type Option func(*Analyzer)

func WithLogger(l logging.Logger) Option { return func(a *Analyzer) { a.logger = l } }

func WithStats(s StatsRecorder) Option { return func(a *Analyzer) { a.stats = s } }

func WithMetrics(m Recorder) Option { return func(a *Analyzer) { a.metrics = m } }

// WithCache sets the crawl cache TTL and size. A zero TTL disables caching.
func WithCache(ttl time.Duration, maxSize int) Option {
	return func(a *Analyzer) {
		if maxSize <= 0 {
			maxSize = defaultMaxCacheSize
		}
		a.cache = newCrawlCache(ttl, maxSize)
	}
}

// WithStrict makes a failed seed fetch an error instead of a fallback page
func WithStrict(strict bool) Option { return func(a *Analyzer) { a.strict = strict } }

// New creates an Analyzer. Close stops its cache cleanup goroutine.
func New(c Crawler, opts ...Option) *Analyzer {
	a := &Analyzer{
		crawler: c,
		cache:   newCrawlCache(defaultCacheTTL, defaultMaxCacheSize),
		logger:  logging.NewNop(),
		now:     time.Now,
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.cache.enabled() {
		go a.cache.periodicCleanup(defaultCleanupInterval, a.done)
	}
	return a
}

// Close stops background work
func (a *Analyzer) Close() {
	a.closeOnce.Do(func() { close(a.done) })
}

// Analyze runs one analysis of input in the given mode
func (a *Analyzer) Analyze(ctx context.Context, input string, mode models.Mode) (models.Analysis, error) {
	return a.AnalyzeWithProgress(ctx, input, mode, nil)
}

// AnalyzeWithProgress is Analyze with crawl progress reporting. Progress is
// only emitted in url mode and only when the crawl is not served from cache.
func (a *Analyzer) AnalyzeWithProgress(ctx context.Context, input string, mode models.Mode, onProgress crawler.ProgressFunc) (models.Analysis, error) {
	start := a.now()
	var (
		analysis models.Analysis
		err      error
	)

	switch mode {
	case models.ModeURL:
		analysis, err = a.analyzeURL(ctx, strings.TrimSpace(input), onProgress)
	case models.ModeText:
		analysis, err = a.analyzeText(input)
	default:
		err = &ValidationError{Field: "mode", Message: `Mode must be "url" or "text".`}
	}

	a.record(mode, err)
	if err != nil {
		a.logger.Warn("analysis failed",
			logging.String("mode", string(mode)),
			logging.Err(err),
			logging.Duration("elapsed", a.now().Sub(start)))
		return models.Analysis{}, err
	}

	a.logger.Info("analysis completed",
		logging.String("id", analysis.ID),
		logging.String("mode", string(mode)),
		logging.Int("pages", len(analysis.Pages)),
		logging.Int("topics", len(analysis.Topics)),
		logging.Duration("elapsed", a.now().Sub(start)))
	return analysis, nil
}

// ValidateURL checks that input is an absolute http or https URL
func ValidateURL(input string) (*url.URL, error) {
	u, err := url.Parse(input)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, &ValidationError{Field: "input", Message: msgInvalidURL}
	}
	return u, nil
}

func (a *Analyzer) analyzeURL(ctx context.Context, input string, onProgress crawler.ProgressFunc) (models.Analysis, error) {
	if _, err := ValidateURL(input); err != nil {
		return models.Analysis{}, err
	}

	res, err := a.crawl(ctx, input, onProgress)
	if err != nil {
		return models.Analysis{}, err
	}

	site := aggregate.Aggregate(res.Pages)
	summary := res.Summary
	return models.Analysis{
		ID:               uuid.NewString(),
		URL:              input,
		Mode:             models.ModeURL,
		Timestamp:        a.now(),
		Pages:            res.Pages,
		Topics:           site.Topics,
		Entities:         site.Entities,
		DomainNiche:      site.DomainNiche,
		SEOMetrics:       site.SEOMetrics,
		SemanticClusters: site.SemanticClusters,
		URLSuggestions:   site.URLSuggestions,
		CrawlSummary:     &summary,
	}, nil
}

// crawl serves from cache when possible and records crawl counters
func (a *Analyzer) crawl(ctx context.Context, seed string, onProgress crawler.ProgressFunc) (*crawler.Result, error) {
	if a.cache.enabled() {
		res, hit := a.cache.get(seed)
		a.cacheLookup(hit)
		if hit {
			a.logger.Debug("crawl cache hit", logging.String("url", seed))
			return res, nil
		}
	}

	res, err := a.crawler.Crawl(ctx, seed, onProgress)
	if err != nil {
		if errors.Is(err, crawler.ErrInvalidSeed) {
			return nil, &ValidationError{Field: "input", Message: msgInvalidURL}
		}
		return nil, crawlErrorFrom(seed, err)
	}

	if a.stats != nil {
		ok := len(res.Pages)
		if res.Fallback() {
			ok = 0
		}
		a.stats.CrawlCompleted(ok, res.Dropped, res.Fallback())
	}

	if ctx.Err() != nil {
		return nil, &CrawlError{URL: seed, Reason: ReasonCanceled, Err: ctx.Err()}
	}
	if res.Fallback() && a.strict {
		return nil, crawlErrorFrom(seed, res.SeedErr)
	}

	a.cache.put(seed, res)
	return res, nil
}

func (a *Analyzer) cacheLookup(hit bool) {
	if a.metrics != nil {
		a.metrics.CacheLookup(hit)
	}
	if a.stats != nil {
		if hit {
			a.stats.Increment(stats.Delta{CacheHits: 1})
		} else {
			a.stats.Increment(stats.Delta{CacheMisses: 1})
		}
	}
}

func (a *Analyzer) record(mode models.Mode, err error) {
	if a.stats != nil && err == nil {
		a.stats.Increment(stats.Delta{Analyses: 1})
	}
	if a.metrics == nil {
		return
	}
	var (
		ve *ValidationError
		ce *CrawlError
	)
	result := "ok"
	switch {
	case errors.As(err, &ve):
		result = "validation"
	case errors.As(err, &ce):
		result = "crawl"
	case err != nil:
		result = "error"
	}
	a.metrics.AnalysisCompleted(string(mode), result)
}

// ClearCache empties the crawl cache
func (a *Analyzer) ClearCache() { a.cache.clear() }

// GetCacheStats reports the crawl cache size and settings
func (a *Analyzer) GetCacheStats() CacheStats {
	return CacheStats{
		Entries: a.cache.len(),
		TTL:     a.cache.ttl,
		MaxSize: a.cache.maxSize,
	}
}
