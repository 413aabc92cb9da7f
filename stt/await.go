package stt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/veselins/parla/store"
	"github.com/veselins/parla/utils"
	"go.uber.org/zap"
)

// AwaitResult polls the store until the transcript for jobKey appears, the
// timeout elapses, or the store fails repeatedly. On success the result
// record is deleted before the call returns — that delete is what makes
// consumption one-shot — and the transcript comes back sanitized.
//
// On timeout the audio record is deliberately left alone: its own expiry is
// the cleanup, and there is no cancellation channel to the worker.
//
// A timeout of zero falls back to the engine's configured await timeout.
func (e *Engine) AwaitResult(ctx context.Context, jobKey string, timeout time.Duration) (string, error) {
	log := utils.GetLogFromContext(ctx, e.log).With(zap.String("job_key", jobKey))

	if timeout <= 0 {
		timeout = e.awaitTimeout
	}

	start := time.Now()
	deadline := start.Add(timeout)
	key := TextKey(jobKey)

	failures := 0
	for {
		e.countPoll(ctx)

		value, err := e.store.Get(ctx, key)
		switch {
		case err == nil:
			if err := e.store.Del(ctx, key); err != nil {
				e.recordAwait(ctx, "error", time.Since(start))
				return "", fmt.Errorf("deleting result record: %w", err)
			}
			e.recordAwait(ctx, "ok", time.Since(start))
			log.With(zap.Duration("waited", time.Since(start))).Debug("result record consumed")
			return Escape(string(value)), nil

		case errors.Is(err, store.ErrNotFound):
			failures = 0

		default:
			failures++
			if failures >= maxConsecutiveReadFailures {
				e.recordAwait(ctx, "error", time.Since(start))
				return "", fmt.Errorf("reading result record (%d consecutive failures): %w", failures, err)
			}
			log.With(zap.Error(err), zap.Int("consecutive_failures", failures)).
				Warn("transient store error while polling")
		}

		if time.Now().After(deadline) {
			e.recordAwait(ctx, "timeout", time.Since(start))
			log.With(zap.Duration("timeout", timeout)).Info("no result before deadline")
			return "", ErrTimeout
		}

		select {
		case <-ctx.Done():
			e.recordAwait(ctx, "error", time.Since(start))
			return "", ctx.Err()
		case <-time.After(e.pollInterval):
		}
	}
}
