package stt_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/veselins/parla/store"
	"github.com/veselins/parla/stt"
)

// newEngine builds an Engine over kv with a fast poll interval so tests
// don't wait on the production 500ms grid.
func newEngine(t *testing.T, kv store.KV) *stt.Engine {
	t.Helper()

	e, err := stt.NewEngine(stt.EngineOptions{
		Store:        kv,
		PollInterval: 10 * time.Millisecond,
		ProbeTimeout: 200 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

// fakeKV wraps a real KV and lets tests observe Get traffic and inject read
// failures per key and attempt.
type fakeKV struct {
	store.KV

	mu       sync.Mutex
	attempts map[string]int
	// failGet, when set, is consulted on every Get with the key and its
	// 1-based attempt number; a non-nil return fails the read.
	failGet func(key string, attempt int) error
}

func newFakeKV(inner store.KV) *fakeKV {
	return &fakeKV{
		KV:       inner,
		attempts: make(map[string]int),
	}
}

func (f *fakeKV) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	f.attempts[key]++
	attempt := f.attempts[key]
	failGet := f.failGet
	f.mu.Unlock()

	if failGet != nil {
		if err := failGet(key, attempt); err != nil {
			return nil, err
		}
	}
	return f.KV.Get(ctx, key)
}

// gets returns how many times key was read.
func (f *fakeKV) gets(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.attempts[key]
}

// getKeys returns every key that was read at least once.
func (f *fakeKV) getKeys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.attempts))
	for key := range f.attempts {
		keys = append(keys, key)
	}
	return keys
}
