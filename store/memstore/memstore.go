// Package memstore is an in-memory store.KV with real expiry semantics,
// used by tests and single-process development setups.
package memstore

import (
	"context"
	"path"
	"sync"
	"time"

	"github.com/veselins/parla/store"
)

type entry struct {
	value     []byte
	expiresAt time.Time // zero means no expiry
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Store implements store.KV over a mutex-guarded map. Expired entries are
// reaped lazily on access.
type Store struct {
	mu      sync.Mutex
	entries map[string]entry
}

var _ store.KV = (*Store)(nil)

func New() *Store {
	return &Store{
		entries: make(map[string]entry),
	}
}

func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := entry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	s.entries[key] = e

	return nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	if e.expired(time.Now()) {
		delete(s.entries, key)
		return nil, store.ErrNotFound
	}

	return append([]byte(nil), e.value...), nil
}

func (s *Store) Del(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)

	return nil
}

func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return false, nil
	}
	if e.expired(time.Now()) {
		delete(s.entries, key)
		return false, nil
	}

	return true, nil
}

func (s *Store) Scan(ctx context.Context, match string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	var keys []string
	for key, e := range s.entries {
		if e.expired(now) {
			delete(s.entries, key)
			continue
		}
		ok, err := path.Match(match, key)
		if err != nil {
			return nil, err
		}
		if ok {
			keys = append(keys, key)
		}
	}

	return keys, nil
}
