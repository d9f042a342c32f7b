package types

import (
	"net/http"
	"net/url"
)

// ------------------------------
// Request Types
// ------------------------------

// RegisterRequest holds parameters for a new account.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest holds account credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateWorkspaceRequest holds parameters for a new workspace.
type CreateWorkspaceRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Logo     string `json:"logo"`
}

// JoinWorkspaceRequest identifies the workspace to join.
type JoinWorkspaceRequest struct {
	WorkspaceID string `json:"workspace_id"`
}

// ListWorkspacesParams controls pagination of the workspace listing.
// Zero values fall back to page 1 and limit 10.
type ListWorkspacesParams struct {
	Page  int
	Limit int
}

// ------------------------------
// Outbound request configuration
// ------------------------------

// Request is the mutable configuration of one outbound call. Path is
// resolved against the client's base URL. Header values override the
// client defaults (including Content-Type).
//
// Retried is set by the client the first time a 401 for this request is
// handled; sending the same *Request again will not repeat the
// credential clear and login navigation.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   any

	Retried bool
}
