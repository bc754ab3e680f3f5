package analyzer

import (
	"errors"
	"fmt"

	"github.com/seo-optimizer/semantic/fetcher"
)

// ReasonCanceled marks a crawl aborted by its caller
const ReasonCanceled fetcher.Reason = "canceled"

// ValidationError rejects malformed input before any crawl is attempted
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// CrawlError reports that a crawl could not produce a usable result
type CrawlError struct {
	URL        string
	Reason     fetcher.Reason
	StatusCode int
	Err        error
}

func (e *CrawlError) Error() string {
	msg := fmt.Sprintf("crawl %s: %s", e.URL, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CrawlError) Unwrap() error { return e.Err }

// crawlErrorFrom wraps the cause of a failed seed fetch
func crawlErrorFrom(seed string, cause error) *CrawlError {
	ce := &CrawlError{URL: seed, Reason: fetcher.ReasonNetwork, Err: cause}
	var fe *fetcher.FetchError
	if errors.As(cause, &fe) {
		ce.Reason = fe.Reason
		ce.StatusCode = fe.StatusCode
	}
	return ce
}

const (
	msgInvalidURL  = "Invalid URL format. Please include http:// or https://"
	msgNetwork     = "Unable to access the website. It may be blocking automated requests or be temporarily unavailable."
	msgCORS        = "The website is blocking cross-origin requests. Try again with a different fetch proxy."
	msgTimeout     = "The website took too long to respond. Please try again later."
	msgContentType = "The URL does not point to an HTML page."
	msgCanceled    = "The analysis was canceled before it finished."
	msgGeneric     = "Failed to crawl and analyze website content. Please try again."
)

// UserMessage turns an Analyze error into remediation text. Each failure
// cause gets its own message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}

	var ce *CrawlError
	if errors.As(err, &ce) {
		return reasonMessage(ce.Reason, ce.StatusCode)
	}

	var fe *fetcher.FetchError
	if errors.As(err, &fe) {
		return reasonMessage(fe.Reason, fe.StatusCode)
	}
	return msgGeneric
}

func reasonMessage(reason fetcher.Reason, status int) string {
	switch reason {
	case fetcher.ReasonNetwork:
		return msgNetwork
	case fetcher.ReasonCORS:
		return msgCORS
	case fetcher.ReasonTimeout:
		return msgTimeout
	case fetcher.ReasonHTTPStatus:
		if status != 0 {
			return fmt.Sprintf("The website responded with HTTP %d. Check that the URL is correct and publicly reachable.", status)
		}
		return "The website responded with an error status. Check that the URL is correct and publicly reachable."
	case fetcher.ReasonContentType:
		return msgContentType
	case ReasonCanceled:
		return msgCanceled
	}
	return msgGeneric
}
