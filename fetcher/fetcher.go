// Package fetcher retrieves page markup through an ordered chain of strategies.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/seo-optimizer/semantic/logging"
)

// Outcome tells the chain what to do after a strategy returns
type Outcome int

const (
	// Success carries a body; the chain stops.
	Success Outcome = iota
	// Retryable lets the next strategy try.
	Retryable
	// Terminal stops the chain with the attached error.
	Terminal
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Retryable:
		return "retryable"
	default:
		return "terminal"
	}
}

// Result is the typed outcome of a single strategy attempt
type Result struct {
	Outcome     Outcome
	HTML        string
	FinalURL    string
	ContentType string
	Err         *FetchError
}

func succeeded(html, finalURL, contentType string) Result {
	return Result{Outcome: Success, HTML: html, FinalURL: finalURL, ContentType: contentType}
}

func failed(outcome Outcome, err *FetchError) Result {
	return Result{Outcome: outcome, Err: err}
}

// Strategy is one way of retrieving a page
type Strategy interface {
	Name() string
	Fetch(ctx context.Context, rawURL string) Result
}

// Observer is notified of every strategy attempt
type Observer interface {
	ObserveFetch(strategy string, outcome Outcome, reason Reason, elapsed time.Duration)
}

// Page is successfully fetched markup
type Page struct {
	URL         string
	FinalURL    string
	HTML        string
	ContentType string
	Strategy    string
}

// Fetcher tries its strategies in order until one succeeds
type Fetcher struct {
	strategies []Strategy
	logger     logging.Logger
	observer   Observer
}

// Option configures a Fetcher
type Option func(*Fetcher)

func WithLogger(l logging.Logger) Option { return func(f *Fetcher) { f.logger = l } }

func WithObserver(o Observer) Option { return func(f *Fetcher) { f.observer = o } }

// New creates a Fetcher over the given strategies, tried in order
func New(strategies []Strategy, opts ...Option) *Fetcher {
	f := &Fetcher{strategies: strategies, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Strategies returns the names of the configured strategies in order
func (f *Fetcher) Strategies() []string {
	names := make([]string, 0, len(f.strategies))
	for _, s := range f.strategies {
		names = append(names, s.Name())
	}
	return names
}

// Fetch runs the strategy chain. The returned error is always a *FetchError
// unless the URL itself is malformed.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid url %q", rawURL)
	}
	if len(f.strategies) == 0 {
		return nil, &FetchError{URL: rawURL, Strategy: "none", Reason: ReasonNetwork, Err: errors.New("no fetch strategies configured")}
	}

	var last *FetchError
	for _, s := range f.strategies {
		if ctx.Err() != nil {
			return nil, &FetchError{URL: rawURL, Strategy: s.Name(), Reason: ReasonTimeout, Err: ctx.Err()}
		}

		start := time.Now()
		res := s.Fetch(ctx, rawURL)
		if res.Outcome != Success && res.Err == nil {
			res.Err = &FetchError{URL: rawURL, Strategy: s.Name(), Reason: ReasonNetwork}
		}
		f.observe(s.Name(), res, time.Since(start))

		switch res.Outcome {
		case Success:
			final := res.FinalURL
			if final == "" {
				final = rawURL
			}
			return &Page{URL: rawURL, FinalURL: final, HTML: res.HTML, ContentType: res.ContentType, Strategy: s.Name()}, nil
		case Terminal:
			f.logger.Warn("Fetch failed terminally",
				logging.String("url", rawURL),
				logging.String("strategy", s.Name()),
				logging.String("reason", string(res.Err.Reason)))
			return nil, res.Err
		default:
			f.logger.Debug("Fetch strategy failed, trying next",
				logging.String("url", rawURL),
				logging.String("strategy", s.Name()),
				logging.String("reason", string(res.Err.Reason)))
			last = res.Err
		}
	}
	return nil, last
}

func (f *Fetcher) observe(strategy string, res Result, elapsed time.Duration) {
	if f.observer == nil {
		return
	}
	var reason Reason
	if res.Err != nil {
		reason = res.Err.Reason
	}
	f.observer.ObserveFetch(strategy, res.Outcome, reason, elapsed)
}

const (
	// DefaultProxyURL is the relay used when no endpoint is configured
	DefaultProxyURL = "https://api.allorigins.win/get?url="
	// NoProxy disables the relay; only direct requests are made
	NoProxy = "off"
)

// NewDefault builds the standard chain: a proxy relay, then a direct
// request. An empty proxyURL selects DefaultProxyURL.
func NewDefault(proxyURL string, timeout time.Duration, userAgent string, opts ...Option) *Fetcher {
	client := NewHTTPClient(timeout)
	var strategies []Strategy
	switch proxyURL {
	case NoProxy:
	case "":
		strategies = append(strategies, NewProxyStrategy(DefaultProxyURL, client, userAgent))
	default:
		strategies = append(strategies, NewProxyStrategy(proxyURL, client, userAgent))
	}
	strategies = append(strategies, NewDirectStrategy(client, userAgent))
	return New(strategies, opts...)
}
