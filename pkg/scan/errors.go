package scan

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scan conditions.
var (
	// ErrNoImage is returned when a scan is attempted with nothing to send.
	ErrNoImage = errors.New("scan: no image to scan")

	// ErrScanInFlight is returned when a scan is started while another
	// submission is still outstanding.
	ErrScanInFlight = errors.New("scan: scan already in flight")

	// ErrNoEndpoint is returned when the client has no endpoint configured.
	ErrNoEndpoint = errors.New("scan: endpoint required")
)

// APIError represents a non-success response from the scan service.
type APIError struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Body is the raw response body text, surfaced verbatim to the user.
	Body string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("scan: API error %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("scan: API error %d", e.StatusCode)
}

// IsServerError returns true for server-side failures (HTTP 5xx).
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// Message returns the user-facing text for this failure: the response body
// when the service sent one, otherwise the status code.
func (e *APIError) Message() string {
	if e.Body != "" {
		return e.Body
	}
	return fmt.Sprintf("status %d", e.StatusCode)
}
