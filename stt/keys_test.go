package stt_test

import (
	"testing"

	"github.com/veselins/parla/stt"
)

func TestNewJobKey_Format(t *testing.T) {
	t.Parallel()

	key, err := stt.NewJobKey()
	if err != nil {
		t.Fatalf("NewJobKey: %v", err)
	}
	if len(key) != 32 {
		t.Errorf("NewJobKey() length = %d, want 32", len(key))
	}
	for i, r := range key {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			t.Errorf("NewJobKey()[%d] = %q, want lowercase hex", i, r)
		}
	}
}

func TestNewJobKey_Distinct(t *testing.T) {
	t.Parallel()

	const n = 10000
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		key, err := stt.NewJobKey()
		if err != nil {
			t.Fatalf("NewJobKey: %v", err)
		}
		if _, ok := seen[key]; ok {
			t.Fatalf("NewJobKey() produced duplicate %q after %d keys", key, i)
		}
		seen[key] = struct{}{}
	}
}

func TestKeySchema(t *testing.T) {
	t.Parallel()

	if got := stt.AudioKey("abc123"); got != "abc123:audio" {
		t.Errorf("AudioKey(abc123) = %q, want %q", got, "abc123:audio")
	}
	if got := stt.TextKey("abc123"); got != "abc123:text" {
		t.Errorf("TextKey(abc123) = %q, want %q", got, "abc123:text")
	}
}

func TestJobKeyFromAudioKey(t *testing.T) {
	t.Parallel()

	jobKey, ok := stt.JobKeyFromAudioKey("abc123:audio")
	if !ok || jobKey != "abc123" {
		t.Errorf("JobKeyFromAudioKey(abc123:audio) = %q, %v, want abc123, true", jobKey, ok)
	}

	if _, ok := stt.JobKeyFromAudioKey("abc123:text"); ok {
		t.Error("JobKeyFromAudioKey(abc123:text) = true, want false")
	}
}
