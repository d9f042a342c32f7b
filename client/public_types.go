package client

import "github.com/slackclone/apiclient/client/internal/types"

// Public type aliases so SDK consumers can import only the client package.
type (
	// Outbound request configuration
	Request = types.Request

	// Requests
	RegisterRequest        = types.RegisterRequest
	LoginRequest           = types.LoginRequest
	CreateWorkspaceRequest = types.CreateWorkspaceRequest
	ListWorkspacesParams   = types.ListWorkspacesParams

	// Domain entities
	User         = types.User
	AuthResponse = types.AuthResponse
	Workspace    = types.Workspace

	// Responses
	PingResponse = types.PingResponse
)

// Errors re-exported in errors.go
