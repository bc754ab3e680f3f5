package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// ProxyStrategy fetches through a relay such as allorigins. The target URL is
// query-escaped and appended to the configured endpoint.
type ProxyStrategy struct {
	endpoint  string
	client    *http.Client
	userAgent string
	sizeCap   int64
}

// NewProxyStrategy creates a proxy strategy for endpoint, e.g.
// "https://api.allorigins.win/get?url=".
func NewProxyStrategy(endpoint string, client *http.Client, userAgent string) *ProxyStrategy {
	if client == nil {
		client = NewHTTPClient(0)
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &ProxyStrategy{endpoint: endpoint, client: client, userAgent: userAgent, sizeCap: DefaultSizeCap}
}

func (p *ProxyStrategy) Name() string { return "proxy" }

// envelope is the JSON wrapper returned by allorigins-style /get endpoints
type envelope struct {
	Contents *string `json:"contents"`
	Status   struct {
		URL      string `json:"url"`
		HTTPCode int    `json:"http_code"`
	} `json:"status"`
}

// Every proxy failure is retryable so the direct strategy always gets a turn.
func (p *ProxyStrategy) Fetch(ctx context.Context, rawURL string) Result {
	fail := func(reason Reason, status int, err error) Result {
		return failed(Retryable, &FetchError{URL: rawURL, Strategy: p.Name(), Reason: reason, StatusCode: status, Err: err})
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+url.QueryEscape(rawURL), nil)
	if err != nil {
		return fail(ReasonNetwork, 0, err)
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return fail(classifyTransportError(err), 0, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden:
		return fail(ReasonCORS, resp.StatusCode, fmt.Errorf("proxy refused request"))
	case resp.StatusCode < 200 || resp.StatusCode >= 400:
		return fail(ReasonHTTPStatus, resp.StatusCode, nil)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, p.sizeCap))
	if err != nil {
		return fail(classifyTransportError(err), resp.StatusCode, err)
	}

	contentType := resp.Header.Get("Content-Type")
	if strings.Contains(contentType, "json") {
		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			return fail(ReasonCORS, resp.StatusCode, fmt.Errorf("malformed proxy envelope: %w", err))
		}
		if env.Status.HTTPCode >= 400 {
			return fail(ReasonHTTPStatus, env.Status.HTTPCode, nil)
		}
		if env.Contents == nil || *env.Contents == "" {
			return fail(ReasonCORS, resp.StatusCode, fmt.Errorf("proxy returned no contents"))
		}
		final := env.Status.URL
		if final == "" {
			final = rawURL
		}
		return succeeded(*env.Contents, final, "text/html; charset=utf-8")
	}

	html, err := decodeUTF8(data, contentType)
	if err != nil {
		return fail(ReasonNetwork, resp.StatusCode, err)
	}
	return succeeded(html, rawURL, contentType)
}
