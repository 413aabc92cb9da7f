// Package observe holds the OpenTelemetry metric instruments for the
// transcription hand-off pipeline. Tests should construct Metrics with a
// dedicated metric.MeterProvider (sdk/metric with a ManualReader) to avoid
// cross-test pollution.
package observe

import (
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name for all parla metrics.
const meterName = "github.com/veselins/parla"

// awaitBuckets covers the poll-bounded latency range: results land on a
// 500ms poll grid and time out after tens of seconds.
var awaitBuckets = []float64{
	0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60,
}

// Metrics holds the pipeline instruments. The underlying OTel types are safe
// for concurrent use.
type Metrics struct {
	// Submissions counts audio records written to the store. Attribute:
	// "language" (the caller's hint, "" when absent).
	Submissions metric.Int64Counter

	// AwaitDuration tracks how long the result-await loop ran. Attribute:
	// "outcome" (one of "ok", "timeout", "error").
	AwaitDuration metric.Float64Histogram

	// Polls counts individual result-poll reads.
	Polls metric.Int64Counter

	// Errors counts failed transcriptions. Attribute: "kind" (the error
	// taxonomy value).
	Errors metric.Int64Counter
}

// NewMetrics creates all instruments on the given provider.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.Submissions, err = m.Int64Counter("parla.stt.submissions",
		metric.WithDescription("Audio records submitted to the shared store."),
	); err != nil {
		return nil, err
	}
	if met.AwaitDuration, err = m.Float64Histogram("parla.stt.await.duration",
		metric.WithDescription("Wall-clock duration of the result-await loop."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(awaitBuckets...),
	); err != nil {
		return nil, err
	}
	if met.Polls, err = m.Int64Counter("parla.stt.polls",
		metric.WithDescription("Result-record poll reads."),
	); err != nil {
		return nil, err
	}
	if met.Errors, err = m.Int64Counter("parla.stt.errors",
		metric.WithDescription("Failed transcriptions by error kind."),
	); err != nil {
		return nil, err
	}

	return met, nil
}
