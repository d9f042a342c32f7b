// Package errors classifies failed exchanges with the backend so callers and
// the client's own failure handling can branch on the kind of failure.
package errors

import (
	"fmt"

	"github.com/slackclone/apiclient/client/internal/types"
)

// Category groups failures by how the caller is expected to react.
type Category int

const (
	// Transport failures never produced a response (DNS, refused, timeout).
	Transport Category = iota

	// Authentication failures are 401 responses: the session is gone.
	Authentication

	// Client failures are the remaining 4xx responses.
	Client

	// Server failures are 5xx responses and anything unexpected.
	Server
)

// String returns a human-readable representation of the category.
func (c Category) String() string {
	switch c {
	case Transport:
		return "Transport"
	case Authentication:
		return "Authentication"
	case Client:
		return "Client"
	case Server:
		return "Server"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// HTTPError describes a response whose status is outside 2xx.
type HTTPError struct {
	Category   Category
	StatusCode int
	Message    string // message field of the body, or DefaultMessage
	Body       []byte
	Method     string
	URL        string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("[%s] %s %s: HTTP %d: %s", e.Category, e.Method, e.URL, e.StatusCode, e.Message)
}

// Is lets errors.Is match a 404 against types.ErrNotFound.
func (e *HTTPError) Is(target error) bool {
	return target == types.ErrNotFound && e.StatusCode == 404
}
