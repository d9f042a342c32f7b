package client

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/slackclone/apiclient/client/internal/api"
	"github.com/slackclone/apiclient/config"
	"github.com/slackclone/apiclient/credential"
	"github.com/slackclone/apiclient/session"
)

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client is the single integration point for code that talks to the backend
// API. Every request carries the default headers and, when a token is stored,
// a bearer Authorization header. Failed responses are logged, a 401 clears
// the stored token and hands control to the session handler, and the failure
// is always returned to the caller.
//
// A Client is safe for concurrent use. A single *Request must not be sent
// concurrently.
type Client struct {
	baseURL string
	headers http.Header
	http    *http.Client
	rc      *resty.Client

	store   credential.Store
	session session.Handler
	log     zerolog.Logger
}

// New constructs a Client. The base URL comes from NEXT_PUBLIC_API_URL when
// set and non-empty, otherwise http://localhost:8080/api/v1; WithBaseURL
// overrides both.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		baseURL: config.APIURL(),
		headers: http.Header{"Content-Type": []string{"application/json"}},
		http:    &http.Client{Timeout: 30 * time.Second},
		store:   credential.NewMemory(""),
		session: session.Nop,
		log:     log.Logger,
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	c.rc = resty.NewWithClient(c.http).
		SetBaseURL(c.baseURL).
		SetLogger(restyLogger{l: c.log})
	for name := range c.headers {
		c.rc.SetHeader(name, c.headers.Get(name))
	}
	c.rc.OnBeforeRequest(c.attachCredential)

	return c, nil
}

// BaseURL returns the root every request path is resolved against.
func (c *Client) BaseURL() string { return c.baseURL }

// Credentials returns the store the client reads its bearer token from.
func (c *Client) Credentials() credential.Store { return c.store }

// Send issues req and applies the response handling described on Client.
//
// On success the response is returned untouched. On failure the error is
// either an *APIError (the server answered outside 2xx), the transport error
// unchanged (no response), a *CredentialError (the token could not be read
// and nothing was sent), or the error raised while handling an expired
// session, which replaces the original failure.
func (c *Client) Send(ctx context.Context, req *Request) (*resty.Response, error) {
	if req == nil {
		return nil, errors.New("nil request")
	}
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	st := &exchange{}
	r := c.rc.R().SetContext(withExchange(ctx, st))
	for name, values := range req.Header {
		r.Header.Del(name)
		for _, v := range values {
			r.Header.Add(name, v)
		}
	}
	if len(req.Query) > 0 {
		r.SetQueryParamsFromValues(req.Query)
	}
	if req.Body != nil {
		r.SetBody(req.Body)
	}

	resp, err := r.Execute(method, req.Path)
	if st.credErr != nil {
		return nil, st.credErr
	}
	if err != nil {
		recordRequest(method, 0)
		return resp, c.reject(ctx, req, method, err)
	}

	recordRequest(method, resp.StatusCode())
	if resp.IsSuccess() {
		return resp, nil
	}
	failure := newAPIError(method, resp)
	return resp, c.reject(ctx, req, method, failure)
}

// Get issues a GET for path.
func (c *Client) Get(ctx context.Context, path string) (*resty.Response, error) {
	return c.Send(ctx, &Request{Method: http.MethodGet, Path: path})
}

// Post issues a POST for path with body encoded as JSON.
func (c *Client) Post(ctx context.Context, path string, body any) (*resty.Response, error) {
	return c.Send(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put issues a PUT for path with body encoded as JSON.
func (c *Client) Put(ctx context.Context, path string, body any) (*resty.Response, error) {
	return c.Send(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Delete issues a DELETE for path.
func (c *Client) Delete(ctx context.Context, path string) (*resty.Response, error) {
	return c.Send(ctx, &Request{Method: http.MethodDelete, Path: path})
}

// --------------------------------------------------------------------
// Health
// --------------------------------------------------------------------

// Ping checks that the backend is reachable.
func (c *Client) Ping(ctx context.Context) (*PingResponse, error) {
	return api.Ping(ctx, c)
}

// --------------------------------------------------------------------
// Auth operations - delegated to internal/api
// --------------------------------------------------------------------

// Register creates an account and stores the returned session token.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	auth, err := api.Register(ctx, c, req)
	if err != nil {
		return nil, err
	}
	if err := c.store.Set(ctx, auth.Token); err != nil {
		return nil, err
	}
	return auth, nil
}

// Login authenticates and stores the returned session token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	auth, err := api.Login(ctx, c, req)
	if err != nil {
		return nil, err
	}
	if err := c.store.Set(ctx, auth.Token); err != nil {
		return nil, err
	}
	return auth, nil
}

// Logout forgets the stored session token. The backend keeps no session
// state, so nothing is sent.
func (c *Client) Logout(ctx context.Context) error {
	return c.store.Clear(ctx)
}

// Profile returns the authenticated user.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	return api.Profile(ctx, c)
}

// --------------------------------------------------------------------
// Workspace operations - delegated to internal/api
// --------------------------------------------------------------------

// CreateWorkspace creates a workspace owned by the authenticated user.
func (c *Client) CreateWorkspace(ctx context.Context, req CreateWorkspaceRequest) (*Workspace, error) {
	return api.CreateWorkspace(ctx, c, req)
}

// ListWorkspaces returns one page of the workspaces the user has joined.
func (c *Client) ListWorkspaces(ctx context.Context, params ListWorkspacesParams) ([]Workspace, error) {
	return api.ListWorkspaces(ctx, c, params)
}

// GetWorkspace fetches a workspace by ID.
func (c *Client) GetWorkspace(ctx context.Context, workspaceID string) (*Workspace, error) {
	return api.GetWorkspace(ctx, c, workspaceID)
}

// JoinWorkspace requests membership of a workspace. Membership starts out
// pending on the backend.
func (c *Client) JoinWorkspace(ctx context.Context, workspaceID string) error {
	return api.JoinWorkspace(ctx, c, workspaceID)
}
