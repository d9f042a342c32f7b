package client

import (
	"errors"
	"net/http"

	errs "github.com/slackclone/apiclient/client/internal/errors"
	"github.com/slackclone/apiclient/client/internal/types"
)

// APIError is returned for responses outside 2xx.
type APIError = errs.HTTPError

// Category classifies an APIError.
type Category = errs.Category

const (
	CategoryTransport      = errs.Transport
	CategoryAuthentication = errs.Authentication
	CategoryClient         = errs.Client
	CategoryServer         = errs.Server
)

// DefaultErrorMessage is reported when a failure carries no message.
const DefaultErrorMessage = errs.DefaultMessage

// Re-export shared SDK error so callers compare against a single symbol.
var ErrNotFound = types.ErrNotFound

// ErrCredentialUnavailable matches every CredentialError.
var ErrCredentialUnavailable = errors.New("credential store unavailable")

// CredentialError reports that the stored token could not be read. The
// request it belongs to was not sent.
type CredentialError struct {
	Err error
}

func (e *CredentialError) Error() string { return "read stored token: " + e.Err.Error() }

func (e *CredentialError) Unwrap() error { return e.Err }

func (e *CredentialError) Is(target error) bool { return target == ErrCredentialUnavailable }

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool { return StatusCode(err) == http.StatusUnauthorized }

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
