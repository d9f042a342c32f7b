package fakeapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/slackclone/apiclient/session"
)

var errRevoked = errors.New("token revoked")

type claimsKey struct{}

func userIDString(id int32) string { return strconv.FormatInt(int64(id), 10) }

// issue signs an HS256 session token for u.
func (s *Server) issue(u User) (string, error) {
	now := s.now()
	c := session.Claims{
		UserID: session.ID(userIDString(u.ID)),
		Email:  u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
}

func (s *Server) verify(token string) (*session.Claims, error) {
	if s.isRevoked(token) {
		return nil, errRevoked
	}
	c := &session.Claims{}
	_, err := jwt.ParseWithClaims(token, c, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	return c, nil
}

// requireAuth rejects requests without a valid bearer token.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeError(w, http.StatusUnauthorized, "Authorization header required", nil)
			return
		}
		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			writeError(w, http.StatusUnauthorized, "Invalid authorization header format", nil)
			return
		}
		c, err := s.verify(parts[1])
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid or expired token", err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, c)))
	})
}

func claimsFrom(ctx context.Context) (*session.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*session.Claims)
	return c, ok
}

// callerID returns the numeric user id of the authenticated caller.
func callerID(ctx context.Context) (int32, bool) {
	c, ok := claimsFrom(ctx)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(string(c.UserID), 10, 32)
	if err != nil {
		return 0, false
	}
	return int32(id), true
}

// Revoke makes token fail verification from now on.
func (s *Server) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[token] = struct{}{}
}

func (s *Server) isRevoked(token string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.revoked[token]
	return ok
}

// defaultTTL matches the lifetime of the backend's tokens.
const defaultTTL = 24 * time.Hour
