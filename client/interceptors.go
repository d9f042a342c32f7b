package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	errs "github.com/slackclone/apiclient/client/internal/errors"
)

// exchange carries per-send state from the resty hooks back to Send.
type exchange struct {
	credErr error
}

type exchangeKey struct{}

func withExchange(ctx context.Context, st *exchange) context.Context {
	return context.WithValue(ctx, exchangeKey{}, st)
}

func exchangeFrom(ctx context.Context) *exchange {
	st, _ := ctx.Value(exchangeKey{}).(*exchange)
	return st
}

// attachCredential runs before every request is sent. A stored token becomes
// the Authorization header; no token means no header. A store that cannot be
// read aborts the request.
func (c *Client) attachCredential(_ *resty.Client, r *resty.Request) error {
	token, ok, err := c.store.Get(r.Context())
	if err != nil {
		cerr := &CredentialError{Err: err}
		if st := exchangeFrom(r.Context()); st != nil {
			st.credErr = cerr
		}
		return cerr
	}
	if ok {
		r.SetHeader("Authorization", "Bearer "+token)
	}
	return nil
}

// reject runs for every failed exchange. A first 401 for req clears the
// stored token and notifies the session handler; if either step fails its
// error is returned instead of failure. Otherwise the failure is logged and
// returned unchanged.
func (c *Client) reject(ctx context.Context, req *Request, method string, failure error) error {
	var apiErr *APIError
	isHTTP := errors.As(failure, &apiErr)

	if isHTTP && apiErr.StatusCode == http.StatusUnauthorized && !req.Retried {
		req.Retried = true
		if err := c.expireSession(context.WithoutCancel(ctx)); err != nil {
			return err
		}
	}

	message := errs.DefaultMessage
	ev := c.log.Error().Str("method", method).Str("path", req.Path)
	if isHTTP {
		message = apiErr.Message
		ev = ev.Int("status", apiErr.StatusCode)
		recordAPIError(apiErr.Category)
	} else {
		ev = ev.AnErr("cause", failure)
		recordAPIError(errs.Transport)
	}
	ev.Msg("API Error: " + message)

	return failure
}

func (c *Client) expireSession(ctx context.Context) error {
	sessionExpiredTotal.Inc()
	if err := c.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear stored token: %w", err)
	}
	if err := c.session.SessionExpired(ctx); err != nil {
		return fmt.Errorf("handle expired session: %w", err)
	}
	return nil
}

func newAPIError(method string, resp *resty.Response) *APIError {
	url := ""
	if resp.Request != nil {
		url = resp.Request.URL
	}
	return errs.NewHTTPError(method, url, resp.StatusCode(), resp.Body())
}
