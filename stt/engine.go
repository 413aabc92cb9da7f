package stt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/veselins/parla/observe"
	"github.com/veselins/parla/store"
	"github.com/veselins/parla/utils"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Engine ties the hand-off stages together: availability probe, audio
// submission, result await, sanitization. It holds no per-request state, so a
// single Engine serves any number of concurrent callers.
type Engine struct {
	log *zap.Logger

	store   store.KV
	metrics *observe.Metrics

	awaitTimeout time.Duration
	pollInterval time.Duration
	probeTimeout time.Duration
	maxClipBytes int
}

type EngineOptions struct {
	ParentLogger *zap.Logger
	Store        store.KV

	// Metrics is optional; nil disables recording.
	Metrics *observe.Metrics

	// Zero values fall back to the package defaults.
	AwaitTimeout time.Duration
	PollInterval time.Duration
	ProbeTimeout time.Duration
	MaxClipBytes int
}

func NewEngine(options EngineOptions) (*Engine, error) {
	if options.Store == nil {
		return nil, fmt.Errorf("store is required")
	}

	parentLogger := options.ParentLogger
	if parentLogger == nil {
		parentLogger = zap.NewNop()
	}

	e := &Engine{
		log: parentLogger.Named("stt"),

		store:   options.Store,
		metrics: options.Metrics,

		awaitTimeout: options.AwaitTimeout,
		pollInterval: options.PollInterval,
		probeTimeout: options.ProbeTimeout,
		maxClipBytes: options.MaxClipBytes,
	}
	if e.awaitTimeout <= 0 {
		e.awaitTimeout = DefaultAwaitTimeout
	}
	if e.pollInterval <= 0 {
		e.pollInterval = DefaultPollInterval
	}
	if e.probeTimeout <= 0 {
		e.probeTimeout = DefaultProbeTimeout
	}
	if e.maxClipBytes <= 0 {
		e.maxClipBytes = DefaultMaxClipBytes
	}

	return e, nil
}

// Transcribe runs the full pipeline for one clip and blocks until a
// transcript is produced or the await deadline passes. A failure at any stage
// short-circuits the rest and comes back as an *Error whose Message is
// sanitized display text; the returned transcript is sanitized as well.
func (e *Engine) Transcribe(ctx context.Context, clip Clip) (string, error) {
	ctx, log := utils.LogContextWith(ctx, e.log, zap.String("language", clip.Language))

	if err := clip.Validate(e.maxClipBytes); err != nil {
		e.countError(ctx, KindValidation)
		return "", newError(KindValidation, err.Error(), err)
	}

	if !e.ServiceReady(ctx) {
		e.countError(ctx, KindServiceUnavailable)
		log.Info("recognition service not ready, rejecting clip")
		return "", newError(KindServiceUnavailable, "Recognition service is currently unavailable.", nil)
	}

	jobKey, err := e.Submit(ctx, clip)
	if err != nil {
		e.countError(ctx, KindTransport)
		return "", newError(KindTransport, "Could not reach the recognition service.", err)
	}

	ctx = utils.LogContext(ctx, zap.String("job_key", jobKey))

	text, err := e.AwaitResult(ctx, jobKey, e.awaitTimeout)
	switch {
	case errors.Is(err, ErrTimeout) || errors.Is(err, context.DeadlineExceeded):
		e.countError(ctx, KindTimeout)
		return "", newError(KindTimeout, "Recognition timed out", err)
	case err != nil:
		e.countError(ctx, KindTransport)
		return "", newError(KindTransport, "Could not retrieve the transcript.", err)
	}

	return text, nil
}

func (e *Engine) countError(ctx context.Context, kind ErrorKind) {
	if e.metrics == nil {
		return
	}
	e.metrics.Errors.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", string(kind))))
}

func (e *Engine) countPoll(ctx context.Context) {
	if e.metrics == nil {
		return
	}
	e.metrics.Polls.Add(ctx, 1)
}

func (e *Engine) recordAwait(ctx context.Context, outcome string, waited time.Duration) {
	if e.metrics == nil {
		return
	}
	e.metrics.AwaitDuration.Record(ctx, waited.Seconds(), metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (e *Engine) countSubmission(ctx context.Context, language string) {
	if e.metrics == nil {
		return
	}
	e.metrics.Submissions.Add(ctx, 1, metric.WithAttributes(attribute.String("language", language)))
}
