// Package session reacts to the backend rejecting the stored credential.
package session

import (
	"context"
	"fmt"
	"net/url"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
)

// LoginPath is where an expired session is sent.
const LoginPath = "/login"

// Handler is invoked once per request whose response is a 401, after the
// stored token has been cleared. An error returned here replaces the
// original failure seen by the caller.
type Handler interface {
	SessionExpired(ctx context.Context) error
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(ctx context.Context) error

func (f HandlerFunc) SessionExpired(ctx context.Context) error { return f(ctx) }

// Nop ignores session expiry.
var Nop Handler = HandlerFunc(func(context.Context) error { return nil })

// LoginURL resolves LoginPath against the application origin, dropping any
// path the origin carries (a full-page navigation to "/login" is
// origin-relative).
func LoginURL(appURL string) (string, error) {
	base, err := url.Parse(appURL)
	if err != nil {
		return "", fmt.Errorf("parse app url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return "", fmt.Errorf("app url %q must be absolute", appURL)
	}
	return base.ResolveReference(&url.URL{Path: LoginPath}).String(), nil
}

// Redirector navigates the user to the login page.
type Redirector struct {
	LoginURL string

	// Open performs the navigation. Defaults to opening the system browser.
	Open func(url string) error
}

// NewRedirector returns a Redirector that opens loginURL in the browser.
func NewRedirector(loginURL string) *Redirector {
	return &Redirector{LoginURL: loginURL, Open: browser.OpenURL}
}

// SessionExpired implements Handler.
func (r *Redirector) SessionExpired(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	open := r.Open
	if open == nil {
		open = browser.OpenURL
	}
	log.Warn().Str("login_url", r.LoginURL).Msg("session expired, redirecting to login")
	if err := open(r.LoginURL); err != nil {
		return fmt.Errorf("navigate to %s: %w", r.LoginURL, err)
	}
	return nil
}
