package credential

import (
	"context"
	"sync"
)

// Memory keeps the token in process memory. Useful for tests and short-lived
// tools that should not leave a session behind.
type Memory struct {
	mu    sync.RWMutex
	token string
	set   bool
}

var _ Store = (*Memory)(nil)

// NewMemory returns a Memory store, pre-populated when token is non-empty.
func NewMemory(token string) *Memory {
	return &Memory{token: token, set: token != ""}
}

func (m *Memory) Get(ctx context.Context) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, m.set, nil
}

func (m *Memory) Set(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token, m.set = token, token != ""
	return nil
}

func (m *Memory) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token, m.set = "", false
	return nil
}
