// Package fakeapi is an in-process stand-in for the slack-clone backend.
// It serves the same routes and response envelope under BasePath, keeps
// everything in memory and signs real HS256 session tokens, so the client
// and CLI can be exercised end to end without a database.
package fakeapi

import (
	"context"
	"crypto/rand"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// BasePath is the prefix every route is mounted under.
const BasePath = "/api/v1"

// Options configures a Server. Zero values select defaults.
type Options struct {
	// Secret signs session tokens. Random per Server when empty.
	Secret []byte
	// TokenTTL is the lifetime of issued tokens. Defaults to 24h.
	TokenTTL time.Duration
	// Now is the clock used for issuing and verifying tokens.
	Now func() time.Time
	// BcryptCost defaults to bcrypt.DefaultCost; tests use bcrypt.MinCost.
	BcryptCost int
}

// Server is the fake backend. It is safe for concurrent use.
type Server struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	db     *memoryDB
	router *mux.Router

	mu      sync.RWMutex
	revoked map[string]struct{}
}

// New builds a Server with its routes registered.
func New(opts Options) *Server {
	s := &Server{
		secret:  opts.Secret,
		ttl:     opts.TokenTTL,
		now:     opts.Now,
		revoked: make(map[string]struct{}),
	}
	if len(s.secret) == 0 {
		s.secret = make([]byte, 32)
		_, _ = rand.Read(s.secret)
	}
	if s.ttl <= 0 {
		s.ttl = defaultTTL
	}
	if s.now == nil {
		s.now = time.Now
	}
	cost := opts.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	s.db = newMemoryDB(cost)
	s.router = s.buildRouter()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// buildRouter wires HTTP routes to handlers.
func (s *Server) buildRouter() *mux.Router {
	root := mux.NewRouter()
	root.Use(recoverer)
	root.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Route not found", nil)
	})
	root.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
	})

	api := root.PathPrefix(BasePath).Subrouter()

	// Health
	api.HandleFunc("/ping", s.ping).Methods("GET")

	// Auth
	api.HandleFunc("/auth/register", s.register).Methods("POST")
	api.HandleFunc("/auth/login", s.login).Methods("POST")

	protected := api.NewRoute().Subrouter()
	protected.Use(s.requireAuth)
	protected.HandleFunc("/auth/profile", s.profile).Methods("GET")

	// Workspaces
	protected.HandleFunc("/workspaces", s.createWorkspace).Methods("POST")
	protected.HandleFunc("/workspaces", s.listWorkspaces).Methods("GET")
	protected.HandleFunc("/workspaces/join", s.joinWorkspace).Methods("POST")
	protected.HandleFunc("/workspaces/{id}", s.getWorkspace).Methods("GET")
	return root
}

// Serve runs the fake backend on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, s *Server, log zerolog.Logger) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Str("base_path", BasePath).Msg("Fake API starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down fake API")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Err(err).Msg("Fake API forced to shutdown")
			return err
		}
		return nil
	case err := <-errCh:
		log.Error().Err(err).Msg("Fake API failed")
		return err
	}
}
