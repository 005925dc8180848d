package opcalc

import (
	"log/slog"

	"github.com/randalmurphal/opcalc/pkg/opcalc/history"
	"github.com/randalmurphal/opcalc/pkg/opcalc/observability"
)

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLogger sets the logger for evaluation events.
// Default: nil (no logging)
//
// Successful evaluations are logged at DEBUG, failure outcomes at INFO.
// The logger is enriched with run_id.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Evaluator) {
		e.logger = logger
	}
}

// WithMetrics enables OpenTelemetry metrics.
// Default: false
//
// Metrics are recorded through the global MeterProvider:
//   - opcalc.evaluations: counter by evaluator
//   - opcalc.failures: counter by evaluator and outcome
//   - opcalc.latency_ms: histogram by evaluator
func WithMetrics(enabled bool) Option {
	return func(e *Evaluator) {
		if enabled {
			e.metrics = observability.NewMetricsRecorder()
		} else {
			e.metrics = observability.NoopMetrics{}
		}
	}
}

// WithTracing enables OpenTelemetry tracing.
// Default: false
//
// Each evaluation gets an "opcalc.evaluate" span from the global
// TracerProvider, parented to any span already in the context.
func WithTracing(enabled bool) Option {
	return func(e *Evaluator) {
		if enabled {
			e.spans = observability.NewSpanManager()
		} else {
			e.spans = observability.NoopSpanManager{}
		}
	}
}

// WithHistory records every evaluation in store.
// Default: nil (nothing is recorded)
//
// A failed write is logged and counted; it never changes the Result.
func WithHistory(store history.Store) Option {
	return func(e *Evaluator) {
		e.store = store
	}
}

// WithRunID sets the run ID that groups this evaluator's history records.
// Default: a random UUID
func WithRunID(runID string) Option {
	return func(e *Evaluator) {
		if runID != "" {
			e.runID = runID
		}
	}
}
