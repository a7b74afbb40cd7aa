package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidBaseURL = errors.New("apiclient: invalid base url")
	ErrRequestFailed  = errors.New("apiclient: request failed")
	ErrDecodeResponse = errors.New("apiclient: decode response")
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
	// Body holds the start of the response body.
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("apiclient: unexpected status %d %s", e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("apiclient: unexpected status %d %s: %s", e.Code, http.StatusText(e.Code), e.Body)
}

// StatusCode lets HTTP error handlers map the failure.
func (e *StatusError) StatusCode() int { return e.Code }

// Temporary reports whether the request may succeed if retried.
func (e *StatusError) Temporary() bool { return e.Code >= 500 || e.Code == http.StatusTooManyRequests }
