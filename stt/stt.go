// Package stt implements the asynchronous speech-to-text hand-off: a
// browser-recorded clip is written to the shared store under a fresh job key,
// an out-of-process recognition worker picks it up, and the caller polls for
// the transcript under a deadline. The store is the only channel between the
// two sides.
//
// Store key schema, per job key K (a 32-char lowercase hex string):
//
//	{K}:audio          raw audio bytes, 60s expiry, written once by Submit
//	{K}:text           UTF-8 transcript, written once by the worker,
//	                   consumed (read then deleted) exactly once by AwaitResult
//	stt_service:status worker-pool health flag, "ready" when jobs will be picked up
package stt

import "time"

// StatusKey is the well-known store key holding the worker pool's health
// token. The core only ever reads it.
const StatusKey = "stt_service:status"

// StatusReady is the token the worker pool writes while it is accepting jobs.
const StatusReady = "ready"

// AudioRecordTTL caps how long an unconsumed audio record occupies the store.
// Nothing ever deletes audio records explicitly; expiry is the cleanup.
const AudioRecordTTL = 60 * time.Second

const (
	// DefaultAwaitTimeout bounds how long a caller waits for a transcript.
	DefaultAwaitTimeout = 30 * time.Second

	// DefaultPollInterval is the fixed delay between result polls. It bounds
	// worst-case extra latency for sub-second jobs while keeping store load
	// predictable; a blocking-pop design would remove it at the cost of a
	// subscription per request.
	DefaultPollInterval = 500 * time.Millisecond

	// DefaultProbeTimeout bounds the availability probe so a store outage
	// can't stall the pre-submission readiness check.
	DefaultProbeTimeout = 2 * time.Second
)

// DefaultMaxClipBytes is the submission size cap.
const DefaultMaxClipBytes = 1024 * 1024 * 4

// maxConsecutiveReadFailures is how many store-read errors in a row the
// await loop tolerates before surfacing a transport error. A successful read
// (including "not found") resets the count.
const maxConsecutiveReadFailures = 3
