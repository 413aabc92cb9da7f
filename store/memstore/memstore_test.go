package memstore_test

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/veselins/parla/store"
	"github.com/veselins/parla/store/memstore"
)

func TestSetGetDel(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := memstore.New()

	if err := s.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "v" {
		t.Errorf("Get(k) = %q, want %q", got, "v")
	}

	if err := s.Del(ctx, "k"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if _, err := s.Get(ctx, "k"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get after Del: error = %v, want ErrNotFound", err)
	}

	// Deleting an absent key is not an error.
	if err := s.Del(ctx, "k"); err != nil {
		t.Errorf("Del(absent): %v", err)
	}
}

func TestGetAbsent(t *testing.T) {
	t.Parallel()

	s := memstore.New()
	if _, err := s.Get(context.Background(), "nope"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get(absent): error = %v, want ErrNotFound", err)
	}
}

func TestTTLExpiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := memstore.New()

	if err := s.Set(ctx, "short", []byte("v"), 30*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "forever", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	time.Sleep(60 * time.Millisecond)

	if _, err := s.Get(ctx, "short"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get(expired): error = %v, want ErrNotFound", err)
	}
	exists, err := s.Exists(ctx, "short")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if exists {
		t.Error("Exists(expired) = true, want false")
	}

	if _, err := s.Get(ctx, "forever"); err != nil {
		t.Errorf("Get(no ttl): %v", err)
	}
}

func TestValueIsolation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := memstore.New()

	value := []byte("abc")
	if err := s.Set(ctx, "k", value, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	value[0] = 'z'

	got, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "abc" {
		t.Errorf("stored value mutated through caller slice: %q", got)
	}
}

func TestScan(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := memstore.New()

	for _, key := range []string{"a1:audio", "b2:audio", "a1:text", "status"} {
		if err := s.Set(ctx, key, []byte("v"), 0); err != nil {
			t.Fatalf("Set(%q): %v", key, err)
		}
	}
	if err := s.Set(ctx, "gone:audio", []byte("v"), 20*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(40 * time.Millisecond)

	keys, err := s.Scan(ctx, "*:audio")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	sort.Strings(keys)

	want := []string{"a1:audio", "b2:audio"}
	if len(keys) != len(want) {
		t.Fatalf("Scan(*:audio) = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Scan(*:audio)[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}
