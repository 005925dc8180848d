package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records opcalc metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordEvaluation records one evaluation with its outcome kind.
	// outcome is "none" for success.
	RecordEvaluation(ctx context.Context, evaluator, outcome string, duration time.Duration)

	// RecordSuiteRun records a finished case-suite run.
	RecordSuiteRun(ctx context.Context, suite string, passed, total int, duration time.Duration)

	// RecordStoreError records a failed history write.
	RecordStoreError(ctx context.Context, op string)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	evaluations metric.Int64Counter
	failures    metric.Int64Counter
	latency     metric.Float64Histogram
	suiteRuns   metric.Int64Counter
	suiteFailed metric.Int64Counter
	storeErrors metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics lazily initializes the shared OTel metrics instance.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("opcalc")

	evaluations, err := meter.Int64Counter("opcalc.evaluations",
		metric.WithDescription("Number of evaluations"),
	)
	if err != nil {
		return nil, err
	}

	failures, err := meter.Int64Counter("opcalc.failures",
		metric.WithDescription("Number of evaluations ending in a failure outcome"),
	)
	if err != nil {
		return nil, err
	}

	latency, err := meter.Float64Histogram("opcalc.latency_ms",
		metric.WithDescription("Evaluation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	suiteRuns, err := meter.Int64Counter("opcalc.suite.runs",
		metric.WithDescription("Number of case-suite runs"),
	)
	if err != nil {
		return nil, err
	}

	suiteFailed, err := meter.Int64Counter("opcalc.suite.failed_cases",
		metric.WithDescription("Number of suite cases whose output did not match"),
	)
	if err != nil {
		return nil, err
	}

	storeErrors, err := meter.Int64Counter("opcalc.store.errors",
		metric.WithDescription("Number of failed history store operations"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		evaluations: evaluations,
		failures:    failures,
		latency:     latency,
		suiteRuns:   suiteRuns,
		suiteFailed: suiteFailed,
		storeErrors: storeErrors,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordEvaluation records an evaluation.
func (m *otelMetrics) RecordEvaluation(ctx context.Context, evaluator, outcome string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("evaluator", evaluator),
		attribute.String("outcome", outcome),
	)
	m.evaluations.Add(ctx, 1, attrs)
	m.latency.Record(ctx, Milliseconds(duration), attrs)

	if outcome != "none" {
		m.failures.Add(ctx, 1, attrs)
	}
}

// RecordSuiteRun records a suite run.
func (m *otelMetrics) RecordSuiteRun(ctx context.Context, suite string, passed, total int, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("suite", suite),
		attribute.Bool("success", passed == total),
	}
	m.suiteRuns.Add(ctx, 1, metric.WithAttributes(attrs...))
	if failed := total - passed; failed > 0 {
		m.suiteFailed.Add(ctx, int64(failed), metric.WithAttributes(attribute.String("suite", suite)))
	}
	m.latency.Record(ctx, Milliseconds(duration), metric.WithAttributes(attribute.String("evaluator", "suite")))
}

// RecordStoreError records a store failure.
func (m *otelMetrics) RecordStoreError(ctx context.Context, op string) {
	m.storeErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", op)))
}
