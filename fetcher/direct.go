package fetcher

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
)

const (
	// DefaultSizeCap bounds how much of a response body is read
	DefaultSizeCap int64 = 5 * 1024 * 1024

	defaultUserAgent = "SemanticAnalyzer/1.0"
)

// NewHTTPClient builds a pooled client with a per-request timeout
func NewHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

// DirectStrategy requests the page straight from its origin
type DirectStrategy struct {
	client    *http.Client
	userAgent string
	sizeCap   int64
}

// NewDirectStrategy creates a direct strategy. A nil client gets a default one.
func NewDirectStrategy(client *http.Client, userAgent string) *DirectStrategy {
	if client == nil {
		client = NewHTTPClient(15 * time.Second)
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &DirectStrategy{client: client, userAgent: userAgent, sizeCap: DefaultSizeCap}
}

func (d *DirectStrategy) Name() string { return "direct" }

func (d *DirectStrategy) Fetch(ctx context.Context, rawURL string) Result {
	fail := func(outcome Outcome, reason Reason, status int, err error) Result {
		return failed(outcome, &FetchError{URL: rawURL, Strategy: d.Name(), Reason: reason, StatusCode: status, Err: err})
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fail(Terminal, ReasonNetwork, 0, err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return fail(Retryable, classifyTransportError(err), 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		outcome := Terminal
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			outcome = Retryable
		}
		return fail(outcome, ReasonHTTPStatus, resp.StatusCode, nil)
	}

	contentType := resp.Header.Get("Content-Type")
	mediaType, _, _ := mime.ParseMediaType(contentType)
	if mediaType != "" && !strings.Contains(mediaType, "text/html") && !strings.Contains(mediaType, "application/xhtml+xml") {
		return fail(Terminal, ReasonContentType, resp.StatusCode, fmt.Errorf("non-html content %q", mediaType))
	}

	var body io.Reader = resp.Body
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return fail(Retryable, ReasonNetwork, resp.StatusCode, err)
		}
		defer gz.Close()
		body = gz
	}

	data, err := io.ReadAll(io.LimitReader(body, d.sizeCap))
	if err != nil {
		return fail(Retryable, classifyTransportError(err), resp.StatusCode, err)
	}
	html, err := decodeUTF8(data, contentType)
	if err != nil {
		return fail(Terminal, ReasonContentType, resp.StatusCode, err)
	}
	return succeeded(html, resp.Request.URL.String(), contentType)
}

// decodeUTF8 converts markup to UTF-8 using the declared or sniffed charset
func decodeUTF8(data []byte, contentType string) (string, error) {
	enc, _, _ := charset.DetermineEncoding(data, contentType)
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		if !utf8.Valid(data) {
			return "", errors.New("undecodable response body")
		}
		out = data
	}
	return string(bytes.TrimPrefix(out, []byte("\xef\xbb\xbf"))), nil
}
