package client

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file avoids cluttering
// client.go and makes it easy to discover all available knobs at a glance.

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/slackclone/apiclient/credential"
	"github.com/slackclone/apiclient/session"
)

// Option configures a Client during construction in New.
//
// Options run in order before the resty client is built, so transport
// options (WithHTTPClient, WithDebugLogging) compose in the order given.
type Option func(*Client) error

// WithBaseURL overrides the base URL taken from the environment.
func WithBaseURL(raw string) Option {
	return func(c *Client) error {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("base url must be absolute, got %q", raw)
		}
		c.baseURL = raw
		return nil
	}
}

// WithHeader adds or replaces a default header sent on every request.
// Per-request headers still take precedence.
func WithHeader(name, value string) Option {
	return func(c *Client) error {
		if name == "" {
			return fmt.Errorf("header name must not be empty")
		}
		c.headers.Set(name, value)
		return nil
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client must not be nil")
		}
		c.http = hc
		return nil
	}
}

// WithHTTPTimeout sets the underlying http.Client Timeout.
//
// Prefer per-request context deadlines where possible; this timeout is a
// coarse safety net bounding a single exchange. The value must be greater
// than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithDebugLogging wraps the client's transport so each request/response is
// dumped at debug level when enabled is true. Authorization values are
// redacted from the dumps.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			if _, already := c.http.Transport.(*debugTransport); !already {
				c.http.Transport = &debugTransport{base: c.http.Transport}
			}
		}
		return nil
	}
}

// WithCredentialStore sets where the bearer token is read from and cleared.
// Defaults to an empty in-memory store.
func WithCredentialStore(s credential.Store) Option {
	return func(c *Client) error {
		if s == nil {
			return fmt.Errorf("credential store must not be nil")
		}
		c.store = s
		return nil
	}
}

// WithSessionExpiredHandler sets what happens after a 401 cleared the
// stored token. Defaults to session.Nop.
func WithSessionExpiredHandler(h session.Handler) Option {
	return func(c *Client) error {
		if h == nil {
			return fmt.Errorf("session handler must not be nil")
		}
		c.session = h
		return nil
	}
}

// WithLogger sets the logger failures are reported to. Defaults to the
// global zerolog logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) error {
		c.log = l
		return nil
	}
}
