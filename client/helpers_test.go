package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	"github.com/slackclone/apiclient/credential"
)

// logCapture collects zerolog JSON events written by the client.
type logCapture struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (l *logCapture) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.Write(p)
}

func (l *logCapture) logger() zerolog.Logger { return zerolog.New(l) }

// errorMessages returns the message of every error-level event.
func (l *logCapture) errorMessages(t *testing.T) []string {
	t.Helper()
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []string
	for _, line := range strings.Split(strings.TrimSpace(l.buf.String()), "\n") {
		if line == "" {
			continue
		}
		var ev map[string]any
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			t.Fatalf("bad log line %q: %v", line, err)
		}
		if ev["level"] == "error" {
			msg, _ := ev["message"].(string)
			out = append(out, msg)
		}
	}
	return out
}

// countingHandler records SessionExpired calls.
type countingHandler struct {
	calls atomic.Int32
	err   error
}

func (h *countingHandler) SessionExpired(context.Context) error {
	h.calls.Add(1)
	return h.err
}

// brokenStore fails the operations it is told to.
type brokenStore struct {
	credential.Store
	getErr, clearErr error
}

func (s *brokenStore) Get(ctx context.Context) (string, bool, error) {
	if s.getErr != nil {
		return "", false, s.getErr
	}
	return s.Store.Get(ctx)
}

func (s *brokenStore) Clear(ctx context.Context) error {
	if s.clearErr != nil {
		return s.clearErr
	}
	return s.Store.Clear(ctx)
}

var errBoom = errors.New("boom")

func jsonHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func newTestClient(t *testing.T, srv *httptest.Server, opts ...Option) *Client {
	t.Helper()
	all := append([]Option{WithBaseURL(srv.URL)}, opts...)
	c, err := New(all...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func zerologNop() zerolog.Logger { return zerolog.Nop() }

func memoryWith(token string) credential.Store { return credential.NewMemory(token) }
