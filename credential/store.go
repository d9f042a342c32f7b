// Package credential holds the bearer token shared by every outbound call.
//
// A Store is the Go counterpart of the browser's local storage slot that the
// web frontend keeps its session token in: it is written by the login flow,
// read before each request, and cleared when the backend rejects the session.
package credential

import "context"

// TokenKey is the storage key the bearer token lives under.
const TokenKey = "token"

// Store reads and invalidates the stored bearer token.
//
// Get reports ok=false when no token is stored; err is reserved for the
// store itself being unreadable. Implementations must be safe for
// concurrent use.
type Store interface {
	Get(ctx context.Context) (token string, ok bool, err error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
