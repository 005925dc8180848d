package opcalc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/randalmurphal/opcalc/pkg/opcalc/history"
	"github.com/randalmurphal/opcalc/pkg/opcalc/observability"
)

// Mode names one of the two evaluators.
type Mode string

const (
	// ModeTriple is the token-triple evaluator (EvaluateTriple).
	ModeTriple Mode = "triple"

	// ModeTyped is the typed-operand calculator (EvaluateTyped).
	ModeTyped Mode = "typed"
)

// ParseMode returns the Mode named s.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeTriple, ModeTyped:
		return Mode(s), true
	}
	return "", false
}

// Evaluator runs the pure evaluation functions with logging, metrics,
// tracing and history attached. The zero-option Evaluator has no side
// effects.
//
// An Evaluator is safe for concurrent use when its history store is.
type Evaluator struct {
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
	store   history.Store
	runID   string
}

// New creates an Evaluator.
//
// Example:
//
//	ev := opcalc.New(
//	    opcalc.WithLogger(logger),
//	    opcalc.WithMetrics(true),
//	    opcalc.WithHistory(store),
//	)
//	r := ev.Triple(ctx, "10 / 4")
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.runID == "" {
		e.runID = uuid.NewString()
	}
	e.logger = observability.EnrichLogger(e.logger, e.runID)
	return e
}

// RunID returns the run ID that groups this evaluator's records.
func (e *Evaluator) RunID() string {
	return e.runID
}

// Logger returns the configured logger, or nil.
func (e *Evaluator) Logger() *slog.Logger {
	return e.logger
}

// Metrics returns the metrics recorder. Never nil.
func (e *Evaluator) Metrics() observability.MetricsRecorder {
	return e.metrics
}

// Spans returns the span manager. Never nil.
func (e *Evaluator) Spans() observability.SpanManager {
	return e.spans
}

// Triple evaluates expression with EvaluateTriple.
func (e *Evaluator) Triple(ctx context.Context, expression string) Result {
	return e.observe(ctx, ModeTriple, expression, func() Result {
		return EvaluateTriple(expression)
	})
}

// Typed evaluates a op b with EvaluateTyped.
func (e *Evaluator) Typed(ctx context.Context, a any, op string, b any) Result {
	input := fmt.Sprintf("%v %s %v", a, op, b)
	return e.observe(ctx, ModeTyped, input, func() Result {
		return EvaluateTyped(a, op, b)
	})
}

// observe wraps one evaluation with span, metrics, logging and history.
func (e *Evaluator) observe(ctx context.Context, mode Mode, input string, eval func() Result) Result {
	elapsed := observability.TimedOperation()
	spanCtx, span := e.spans.StartEvaluationSpan(ctx, string(mode), e.runID)

	r := eval()

	duration := elapsed()
	outcome := r.Kind().String()
	output := r.String()

	e.spans.EndEvaluationSpan(span, outcome)
	e.metrics.RecordEvaluation(spanCtx, string(mode), outcome, duration)
	observability.LogEvaluation(e.logger, string(mode), input, output, outcome, observability.Milliseconds(duration))

	if e.store != nil {
		rec := history.Record{
			ID:        uuid.NewString(),
			RunID:     e.runID,
			Evaluator: string(mode),
			Input:     input,
			Output:    output,
			Outcome:   outcome,
			Timestamp: time.Now(),
		}
		if err := e.store.Append(ctx, rec); err != nil {
			observability.LogStoreError(e.logger, "append", err)
			e.metrics.RecordStoreError(ctx, "append")
		}
	}
	return r
}
