package credential

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemory("")

	_, ok, err := m.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "abc123"))
	tok, ok, err := m.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc123", tok)

	require.NoError(t, m.Clear(ctx))
	_, ok, _ = m.Get(ctx)
	assert.False(t, ok)
}

func TestMemoryStoreCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := NewMemory("x").Get(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryStoreConcurrent(t *testing.T) {
	ctx := context.Background()
	m := NewMemory("seed")
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); _, _, _ = m.Get(ctx) }()
		go func() { defer wg.Done(); _ = m.Clear(ctx) }()
	}
	wg.Wait()
	_, ok, _ := m.Get(ctx)
	assert.False(t, ok)
}

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "nested", "storage.json"))
	_, ok, err := f.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, f.Clear(context.Background()))
}

func TestFileStoreRoundTripAndClear(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "storage.json")
	f := NewFile(path)

	require.NoError(t, f.Set(ctx, "abc123"))

	// A second store over the same file sees the persisted token.
	tok, ok, err := NewFile(path).Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc123", tok)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, f.Clear(ctx))
	_, ok, err = f.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStoreClearKeepsOtherKeys(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"theme":"dark","token":"abc"}`), 0o600))

	require.NoError(t, NewFile(path).Clear(ctx))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var kv map[string]string
	require.NoError(t, json.Unmarshal(data, &kv))
	assert.Equal(t, map[string]string{"theme": "dark"}, kv)
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, _, err := NewFile(path).Get(context.Background())
	assert.Error(t, err)
}
