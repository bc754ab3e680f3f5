package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Reason classifies why a fetch failed
type Reason string

const (
	ReasonNetwork     Reason = "network"
	ReasonCORS        Reason = "cors"
	ReasonTimeout     Reason = "timeout"
	ReasonHTTPStatus  Reason = "http_status"
	ReasonContentType Reason = "content_type"
)

// FetchError is returned when no strategy could retrieve a page
type FetchError struct {
	URL        string
	Strategy   string
	Reason     Reason
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("fetch %s via %s: %s", e.URL, e.Strategy, e.Reason)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() error { return e.Err }

// classifyTransportError maps a client.Do error onto a Reason
func classifyTransportError(err error) Reason {
	if errors.Is(err, context.DeadlineExceeded) {
		return ReasonTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ReasonTimeout
	}
	return ReasonNetwork
}
