package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStrategy struct {
	name   string
	result Result
	calls  int
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Fetch(ctx context.Context, rawURL string) Result {
	s.calls++
	return s.result
}

type recordingObserver struct {
	outcomes []Outcome
}

func (r *recordingObserver) ObserveFetch(strategy string, outcome Outcome, reason Reason, elapsed time.Duration) {
	r.outcomes = append(r.outcomes, outcome)
}

func TestChainFallsBackOnRetryable(t *testing.T) {
	first := &stubStrategy{name: "proxy", result: failed(Retryable, &FetchError{Reason: ReasonCORS})}
	second := &stubStrategy{name: "direct", result: succeeded("<html></html>", "", "text/html")}
	obs := &recordingObserver{}

	f := New([]Strategy{first, second}, WithObserver(obs))
	page, err := f.Fetch(context.Background(), "https://example.com")
	require.NoError(t, err)

	assert.Equal(t, "direct", page.Strategy)
	assert.Equal(t, "https://example.com", page.FinalURL)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
	assert.Equal(t, []Outcome{Retryable, Success}, obs.outcomes)
}

func TestChainStopsOnTerminal(t *testing.T) {
	first := &stubStrategy{name: "proxy", result: failed(Terminal, &FetchError{Strategy: "proxy", Reason: ReasonHTTPStatus, StatusCode: 404})}
	second := &stubStrategy{name: "direct", result: succeeded("<html></html>", "", "")}

	_, err := New([]Strategy{first, second}).Fetch(context.Background(), "https://example.com")
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, ReasonHTTPStatus, fe.Reason)
	assert.Equal(t, 0, second.calls)
}

func TestChainReturnsLastFailure(t *testing.T) {
	first := &stubStrategy{name: "proxy", result: failed(Retryable, &FetchError{Strategy: "proxy", Reason: ReasonCORS})}
	second := &stubStrategy{name: "direct", result: failed(Retryable, &FetchError{Strategy: "direct", Reason: ReasonNetwork})}

	_, err := New([]Strategy{first, second}).Fetch(context.Background(), "https://example.com")
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "direct", fe.Strategy)
	assert.Equal(t, ReasonNetwork, fe.Reason)
}

func TestFetchRejectsInvalidURL(t *testing.T) {
	_, err := New(nil).Fetch(context.Background(), "not a url")
	assert.Error(t, err)
}

func TestDirectFetchHTML(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><title>x</title></html>"))
	}))
	defer ts.Close()

	res := NewDirectStrategy(nil, "").Fetch(context.Background(), ts.URL)
	require.Equal(t, Success, res.Outcome)
	assert.Contains(t, res.HTML, "<title>x</title>")
}

func TestDirectRejectsNonHTML(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("{}"))
	}))
	defer ts.Close()

	res := NewDirectStrategy(nil, "").Fetch(context.Background(), ts.URL)
	assert.Equal(t, Terminal, res.Outcome)
	assert.Equal(t, ReasonContentType, res.Err.Reason)
}

func TestDirectStatusClassification(t *testing.T) {
	status := http.StatusNotFound
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	defer ts.Close()

	d := NewDirectStrategy(nil, "")
	res := d.Fetch(context.Background(), ts.URL)
	assert.Equal(t, Terminal, res.Outcome)
	assert.Equal(t, 404, res.Err.StatusCode)

	status = http.StatusServiceUnavailable
	res = d.Fetch(context.Background(), ts.URL)
	assert.Equal(t, Retryable, res.Outcome)
	assert.Equal(t, ReasonHTTPStatus, res.Err.Reason)
}

func TestDirectTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	res := NewDirectStrategy(NewHTTPClient(20*time.Millisecond), "").Fetch(context.Background(), ts.URL)
	assert.Equal(t, Retryable, res.Outcome)
	assert.Equal(t, ReasonTimeout, res.Err.Reason)
}

func TestProxyEnvelope(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "https://example.com/a", r.URL.Query().Get("url"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"contents":"<html><title>proxied</title></html>","status":{"http_code":200}}`))
	}))
	defer ts.Close()

	res := NewProxyStrategy(ts.URL+"/get?url=", nil, "").Fetch(context.Background(), "https://example.com/a")
	require.Equal(t, Success, res.Outcome)
	assert.Contains(t, res.HTML, "proxied")
}

func TestProxyForbiddenIsCORS(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	res := NewProxyStrategy(ts.URL+"/get?url=", nil, "").Fetch(context.Background(), "https://example.com")
	assert.Equal(t, Retryable, res.Outcome)
	assert.Equal(t, ReasonCORS, res.Err.Reason)
}

func TestDefaultChainOrder(t *testing.T) {
	assert.Equal(t, []string{"proxy", "direct"}, NewDefault("", time.Second, "").Strategies())
	assert.Equal(t, []string{"proxy", "direct"}, NewDefault("https://p/get?url=", time.Second, "").Strategies())
	assert.Equal(t, []string{"direct"}, NewDefault(NoProxy, time.Second, "").Strategies())
}

func TestDefaultChainFallsBackToDirect(t *testing.T) {
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer relay.Close()

	var hits int
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><head><title>Direct</title></head></html>"))
	}))
	defer site.Close()

	obs := &recordingObserver{}
	f := NewDefault(relay.URL+"/get?url=", time.Second, "", WithObserver(obs))

	page, err := f.Fetch(context.Background(), site.URL)
	require.NoError(t, err)
	assert.Equal(t, "direct", page.Strategy)
	assert.Equal(t, 1, hits)
	assert.Equal(t, []Outcome{Retryable, Success}, obs.outcomes)
}

func TestDefaultChainTriesBothBeforeFailing(t *testing.T) {
	unavailable := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer unavailable.Close()

	obs := &recordingObserver{}
	f := NewDefault(unavailable.URL+"/get?url=", time.Second, "", WithObserver(obs))

	_, err := f.Fetch(context.Background(), unavailable.URL+"/page")
	require.Error(t, err)
	assert.Len(t, obs.outcomes, 2)

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "direct", fe.Strategy)
	assert.Equal(t, ReasonHTTPStatus, fe.Reason)
	assert.Equal(t, http.StatusServiceUnavailable, fe.StatusCode)
}
