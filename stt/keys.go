package stt

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	audioSuffix = ":audio"
	textSuffix  = ":text"
)

// AudioKeyPattern matches every pending audio record; workers scan with it
// to discover jobs.
const AudioKeyPattern = "*" + audioSuffix

// NewJobKey mints a 128-bit random job key, rendered as 32 lowercase hex
// characters. Keys namespace one submission's records in the shared store and
// are never reused, so collisions would let one job read another's result;
// 128 random bits make that negligible at any plausible submission volume.
func NewJobKey() (string, error) {
	var raw [16]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}
	return hex.EncodeToString(raw[:]), nil
}

// AudioKey is the store key holding the submitted audio bytes for jobKey.
func AudioKey(jobKey string) string {
	return jobKey + audioSuffix
}

// TextKey is the store key the worker writes the transcript to for jobKey.
func TextKey(jobKey string) string {
	return jobKey + textSuffix
}

// JobKeyFromAudioKey recovers the job key from an audio record's store key.
// Workers use it after discovering pending records via a key scan.
func JobKeyFromAudioKey(audioKey string) (string, bool) {
	jobKey, found := strings.CutSuffix(audioKey, audioSuffix)
	return jobKey, found
}
