// Package observability provides structured logging, metrics, and tracing
// for opcalc evaluations and case-suite runs.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"context"
	"log/slog"
	"time"
)

// EnrichLogger adds run context to a logger.
// Returns a new logger with a run_id field.
//
// Example:
//
//	enriched := EnrichLogger(logger, "run-123")
//	enriched.Info("evaluating") // includes run_id
func EnrichLogger(logger *slog.Logger, runID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("run_id", runID))
}

// LogEvaluation logs a finished evaluation. Successful evaluations are
// logged at DEBUG, failure outcomes at INFO. A failure outcome is a valid
// result and is never logged as an error.
func LogEvaluation(logger *slog.Logger, evaluator, input, output, outcome string, durationMs float64) {
	if logger == nil {
		return
	}
	level := slog.LevelDebug
	if outcome != "none" {
		level = slog.LevelInfo
	}
	logger.Log(context.Background(), level, "evaluation completed",
		slog.String("evaluator", evaluator),
		slog.String("input", input),
		slog.String("output", output),
		slog.String("outcome", outcome),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogSuiteStart logs the start of a case-suite run.
func LogSuiteStart(logger *slog.Logger, suite string, cases int) {
	if logger == nil {
		return
	}
	logger.Info("suite run starting",
		slog.String("suite", suite),
		slog.Int("cases", cases),
	)
}

// LogSuiteComplete logs the end of a case-suite run.
func LogSuiteComplete(logger *slog.Logger, suite string, passed, total int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Info("suite run completed",
		slog.String("suite", suite),
		slog.Int("passed", passed),
		slog.Int("total", total),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogCaseMismatch logs a case whose actual output did not match.
func LogCaseMismatch(logger *slog.Logger, caseName, expected, actual string) {
	if logger == nil {
		return
	}
	logger.Debug("case mismatch",
		slog.String("case", caseName),
		slog.String("expected", expected),
		slog.String("actual", actual),
	)
}

// LogStoreError logs a history store failure (non-fatal).
func LogStoreError(logger *slog.Logger, op string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("history store failed",
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	elapsed := done()
func TimedOperation() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}

// Milliseconds converts d to fractional milliseconds for log fields.
func Milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
