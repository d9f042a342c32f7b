package session

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ID accepts both the string and numeric user ids the backend has issued.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("user_id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Claims are the fields the backend puts in its session tokens.
type Claims struct {
	UserID ID     `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Inspect decodes token without verifying its signature. The client has no
// key to verify with; the result is for display only and never for
// authorization decisions.
func Inspect(token string) (*Claims, error) {
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("decode session token: %w", err)
	}
	return claims, nil
}

// Expired reports whether the token's exp lies before now. Tokens without
// exp never expire locally.
func (c *Claims) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(c.ExpiresAt.Time)
}
