// Package stttest provides a simulated recognition worker that implements
// the external worker contract against any store.KV: it discovers pending
// audio records, consumes them, and writes transcripts back, while
// maintaining the worker-pool status flag. End-to-end tests run it next to
// an Engine; it also serves single-process development setups where no real
// worker pool exists.
package stttest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/veselins/parla/store"
	"github.com/veselins/parla/stt"
	"github.com/veselins/parla/utils"
	"go.uber.org/zap"
)

// TranscribeFunc produces the transcript for one consumed audio record.
type TranscribeFunc func(audio []byte) (string, error)

type WorkerOptions struct {
	ParentLogger *zap.Logger
	Store        store.KV

	Transcribe TranscribeFunc

	// Latency simulates recognition time between consuming the audio record
	// and writing the result.
	Latency time.Duration

	// PollInterval between scans for pending audio records. Defaults to 25ms.
	PollInterval time.Duration

	// ResultTTL is the defensive expiry on written result records, in case
	// the consumer crashes before deleting them. Defaults to 2 minutes.
	ResultTTL time.Duration
}

type Worker struct {
	log *zap.Logger

	store      store.KV
	transcribe TranscribeFunc

	latency      time.Duration
	pollInterval time.Duration
	resultTTL    time.Duration
}

func NewWorker(options WorkerOptions) (*Worker, error) {
	if options.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if options.Transcribe == nil {
		return nil, fmt.Errorf("transcribe func is required")
	}

	parentLogger := options.ParentLogger
	if parentLogger == nil {
		parentLogger = zap.NewNop()
	}

	w := &Worker{
		log: parentLogger.Named("stt_worker"),

		store:      options.Store,
		transcribe: options.Transcribe,

		latency:      options.Latency,
		pollInterval: options.PollInterval,
		resultTTL:    options.ResultTTL,
	}
	if w.pollInterval <= 0 {
		w.pollInterval = 25 * time.Millisecond
	}
	if w.resultTTL <= 0 {
		w.resultTTL = 2 * time.Minute
	}

	return w, nil
}

// Run marks the pool ready and processes audio records until ctx is done,
// then clears the status flag. Context cancellation is the normal way to
// stop it and returns nil, so Run can go straight into an errgroup.
func (w *Worker) Run(ctx context.Context) error {
	defer utils.PanicRecovery(w.log)

	if err := w.store.Set(ctx, stt.StatusKey, []byte(stt.StatusReady), 0); err != nil {
		return fmt.Errorf("setting status flag: %w", err)
	}
	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()
		if err := w.store.Del(cleanupCtx, stt.StatusKey); err != nil {
			w.log.Warn("clearing status flag", zap.Error(err))
		}
	}()

	w.log.Info("worker ready")

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(w.pollInterval):
		}

		if err := w.sweep(ctx); errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil
		} else if err != nil {
			return fmt.Errorf("sweeping audio records: %w", err)
		}
	}
}

// sweep consumes every pending audio record and writes its transcript.
func (w *Worker) sweep(ctx context.Context) error {
	keys, err := w.store.Scan(ctx, stt.AudioKeyPattern)
	if err != nil {
		return fmt.Errorf("scanning: %w", err)
	}

	for _, key := range keys {
		jobKey, ok := stt.JobKeyFromAudioKey(key)
		if !ok {
			continue
		}

		audio, err := w.store.Get(ctx, key)
		if errors.Is(err, store.ErrNotFound) {
			continue // another worker got there first
		} else if err != nil {
			return fmt.Errorf("reading audio record: %w", err)
		}

		// Consume the record before recognizing so a concurrent worker can't
		// double-process the job.
		if err := w.store.Del(ctx, key); err != nil {
			return fmt.Errorf("deleting audio record: %w", err)
		}

		if w.latency > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(w.latency):
			}
		}

		text, err := w.transcribe(audio)
		if err != nil {
			// Worker failures travel the same channel as transcripts; the
			// consumer sanitizes whatever arrives.
			text = "recognition error: " + err.Error()
		}

		if err := w.store.Set(ctx, stt.TextKey(jobKey), []byte(text), w.resultTTL); err != nil {
			return fmt.Errorf("writing result record: %w", err)
		}

		w.log.With(zap.String("job_key", jobKey), zap.Int("audio_bytes", len(audio))).
			Debug("result record written")
	}

	return nil
}
