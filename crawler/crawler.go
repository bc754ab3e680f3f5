// Package crawler runs the bounded same-domain crawl and analyzes each page
// as it arrives.
package crawler

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/seo-optimizer/semantic/entities"
	"github.com/seo-optimizer/semantic/extractor"
	"github.com/seo-optimizer/semantic/fetcher"
	"github.com/seo-optimizer/semantic/logging"
	"github.com/seo-optimizer/semantic/models"
	"github.com/seo-optimizer/semantic/seo"
	"github.com/seo-optimizer/semantic/topics"
)

// Page statuses reported to the Observer
const (
	StatusOK       = "ok"
	StatusDropped  = "dropped"
	StatusFallback = "fallback"
)

// Progress statuses
const (
	ProgressCrawling = "crawling"
	ProgressComplete = "complete"
)

const (
	progressBuffer = 64
	// totalSlack pads the estimated total while the queue is still growing
	totalSlack = 5
)

// ErrInvalidSeed is returned when the seed is not an absolute http(s) URL
var ErrInvalidSeed = errors.New("invalid seed URL")

// PageFetcher retrieves raw HTML. *fetcher.Fetcher satisfies it.
type PageFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*fetcher.Page, error)
}

// Observer receives crawl lifecycle events. *metrics.Metrics satisfies it.
type Observer interface {
	CrawlStarted()
	PageCrawled(status string)
	CrawlCompleted(pages int, elapsed time.Duration)
}

// Progress is an advisory snapshot of the crawl
type Progress struct {
	Current int    `json:"current"`
	Total   int    `json:"total"`
	URL     string `json:"url"`
	Status  string `json:"status"`
}

// ProgressFunc receives progress snapshots. It runs on its own goroutine and
// snapshots are dropped while it is busy, so it never stalls the crawl.
type ProgressFunc func(Progress)

// Result is the outcome of one crawl
type Result struct {
	Pages   []models.PageResult
	Summary models.CrawlSummary
	// Dropped counts URLs whose fetch or extraction failed
	Dropped int
	// SeedErr is why the seed page was dropped, if it was
	SeedErr error
}

// Fallback reports whether the only page is a synthesized placeholder
func (r *Result) Fallback() bool {
	return len(r.Pages) == 1 && r.Pages[0].Fallback
}

// Config bounds the crawl
type Config struct {
	MaxPages   int
	BatchSize  int
	BatchDelay time.Duration
}

// WithDefaults clamps the limits to the allowed ranges
func (c Config) WithDefaults() Config {
	if c.MaxPages <= 0 || c.MaxPages > models.MaxPages {
		c.MaxPages = models.MaxPages
	}
	if c.BatchSize <= 0 || c.BatchSize > models.DefaultBatchSize {
		c.BatchSize = models.DefaultBatchSize
	}
	if c.BatchDelay < 0 {
		c.BatchDelay = 0
	}
	return c
}

// DefaultConfig uses the package-wide crawl constants
func DefaultConfig() Config {
	return Config{
		MaxPages:   models.MaxPages,
		BatchSize:  models.DefaultBatchSize,
		BatchDelay: models.BatchDelay,
	}
}

// Crawler fetches, extracts and analyzes pages of one site
type Crawler struct {
	fetcher   PageFetcher
	extractor *extractor.Extractor
	entities  *entities.Extractor
	cfg       Config
	logger    logging.Logger
	observer  Observer
	now       func() time.Time
}

type Option func(*Crawler)

func WithConfig(cfg Config) Option { return func(c *Crawler) { c.cfg = cfg.WithDefaults() } }

func WithLogger(l logging.Logger) Option { return func(c *Crawler) { c.logger = l } }

func WithObserver(o Observer) Option { return func(c *Crawler) { c.observer = o } }

func WithExtractor(x *extractor.Extractor) Option { return func(c *Crawler) { c.extractor = x } }

// New creates a crawler around f
func New(f PageFetcher, opts ...Option) *Crawler {
	c := &Crawler{
		fetcher:  f,
		entities: entities.New(),
		cfg:      DefaultConfig(),
		logger:   logging.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.extractor == nil {
		c.extractor = extractor.New(c.logger, false)
	}
	return c
}

// crawlState is shared by the batch workers
type crawlState struct {
	mu         sync.Mutex
	queue      []queued
	seen       map[string]bool
	pages      []indexedPage
	dropped    int
	seedErr    error
	discovered bool
	next       int
}

type queued struct {
	url   string
	order int
}

type indexedPage struct {
	order int
	page  models.PageResult
}

// enqueue adds url unless already seen or the page budget is spent.
// Caller holds mu.
func (s *crawlState) enqueue(u string, maxPages int) {
	if s.seen[u] {
		return
	}
	s.seen[u] = true
	if s.next >= maxPages {
		return
	}
	s.queue = append(s.queue, queued{url: u, order: s.next})
	s.next++
}

// Crawl visits at most MaxPages pages starting at seed, in batches of at most
// BatchSize concurrent fetches. Links are discovered only from the first page
// that extracts successfully. Individual page failures are logged and
// dropped; when nothing could be crawled a fallback page is returned instead.
// The only error is ErrInvalidSeed.
func (c *Crawler) Crawl(ctx context.Context, seed string, onProgress ProgressFunc) (*Result, error) {
	seedURL, err := url.Parse(seed)
	if err != nil || seedURL.Host == "" || (seedURL.Scheme != "http" && seedURL.Scheme != "https") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSeed, seed)
	}

	start := c.now()
	if c.observer != nil {
		c.observer.CrawlStarted()
	}
	progress := startPump(onProgress)
	defer progress.close()

	state := &crawlState{seen: make(map[string]bool)}
	state.enqueue(seed, c.cfg.MaxPages)
	current := 0

	for ctx.Err() == nil {
		state.mu.Lock()
		n := min(c.cfg.BatchSize, len(state.queue))
		batch := append([]queued(nil), state.queue[:n]...)
		state.queue = state.queue[n:]
		for _, q := range batch {
			current++
			progress.send(Progress{
				Current: current,
				Total:   min(len(state.queue)+current+totalSlack, c.cfg.MaxPages),
				URL:     q.url,
				Status:  ProgressCrawling,
			})
		}
		state.mu.Unlock()

		if len(batch) == 0 {
			break
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(c.cfg.BatchSize)
		for _, q := range batch {
			g.Go(func() error {
				c.crawlPage(gctx, seed, q, state)
				return nil
			})
		}
		_ = g.Wait()

		state.mu.Lock()
		remaining := len(state.queue)
		state.mu.Unlock()
		if remaining == 0 {
			break
		}
		if !sleep(ctx, c.cfg.BatchDelay) {
			break
		}
	}

	if ctx.Err() != nil {
		c.logger.Warn("crawl interrupted", logging.String("seed", seed), logging.Err(ctx.Err()))
	}

	pages := c.collect(state)
	if len(pages) == 0 {
		c.logger.Warn("no pages crawled, using fallback page", logging.String("seed", seed))
		pages = []models.PageResult{c.fallbackPage(seed)}
		c.pageCrawled(StatusFallback)
	}

	result := &Result{
		Pages:   pages,
		Summary: c.summary(seedURL, pages),
		Dropped: state.dropped,
		SeedErr: state.seedErr,
	}

	elapsed := c.now().Sub(start)
	if c.observer != nil {
		c.observer.CrawlCompleted(len(pages), elapsed)
	}
	c.logger.Info("crawl finished",
		logging.String("seed", seed),
		logging.Int("pages", len(pages)),
		logging.Int("dropped", state.dropped),
		logging.Duration("elapsed", elapsed))

	progress.send(Progress{Current: len(pages), Total: len(pages), URL: seed, Status: ProgressComplete})
	return result, nil
}

func (c *Crawler) crawlPage(ctx context.Context, seed string, q queued, state *crawlState) {
	page, err := c.fetcher.Fetch(ctx, q.url)
	if err != nil {
		c.drop(state, q, "fetch", err)
		return
	}

	content, doc, err := c.extractor.Extract(q.url, page.HTML)
	if err != nil {
		c.drop(state, q, "extract", err)
		return
	}

	ents := c.entities.Extract(content.BodyText)
	result := models.PageResult{
		URL:        q.url,
		Content:    content,
		Topics:     topics.Analyze(content, ents),
		Entities:   ents,
		SEOMetrics: seo.Score(content),
		CrawledAt:  c.now(),
	}

	state.mu.Lock()
	state.pages = append(state.pages, indexedPage{order: q.order, page: result})
	discover := !state.discovered
	state.discovered = true
	if discover {
		links := extractor.DiscoverLinks(doc, seed, c.cfg.MaxPages-1)
		for _, link := range links {
			state.enqueue(link, c.cfg.MaxPages)
		}
		c.logger.Debug("links discovered", logging.String("url", q.url), logging.Int("count", len(links)))
	}
	state.mu.Unlock()

	c.pageCrawled(StatusOK)
}

func (c *Crawler) drop(state *crawlState, q queued, stage string, err error) {
	fields := []logging.Field{
		logging.String("url", q.url),
		logging.String("stage", stage),
		logging.Err(err),
	}
	var fe *fetcher.FetchError
	if errors.As(err, &fe) {
		fields = append(fields, logging.String("reason", string(fe.Reason)))
	}
	c.logger.Warn("page dropped", fields...)

	state.mu.Lock()
	state.dropped++
	if q.order == 0 {
		state.seedErr = err
	}
	state.mu.Unlock()
	c.pageCrawled(StatusDropped)
}

func (c *Crawler) pageCrawled(status string) {
	if c.observer != nil {
		c.observer.PageCrawled(status)
	}
}

// collect returns the crawled pages in queue order
func (c *Crawler) collect(state *crawlState) []models.PageResult {
	state.mu.Lock()
	defer state.mu.Unlock()

	sort.Slice(state.pages, func(i, j int) bool { return state.pages[i].order < state.pages[j].order })
	out := make([]models.PageResult, 0, len(state.pages))
	for _, p := range state.pages {
		out = append(out, p.page)
	}
	return out
}

func (c *Crawler) fallbackPage(seed string) models.PageResult {
	content := models.FallbackPage(seed)
	return models.PageResult{
		URL:        seed,
		Content:    content,
		Topics:     []models.Topic{},
		Entities:   models.NewEntitySet(),
		SEOMetrics: seo.Score(content),
		CrawledAt:  c.now(),
		Fallback:   true,
	}
}

func (c *Crawler) summary(seed *url.URL, pages []models.PageResult) models.CrawlSummary {
	types := make(map[models.PageType]int)
	for _, p := range pages {
		types[p.SEOMetrics.PageType]++
	}
	return models.CrawlSummary{
		TotalPages: len(pages),
		Domain:     seed.Hostname(),
		PageTypes:  types,
		CrawledAt:  c.now(),
	}
}

// sleep waits d or until ctx is done; it reports whether the full delay elapsed
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
