package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracer uses the global OTel tracer provider.
var tracer = otel.Tracer("opcalc")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartEvaluationSpan starts a span for a single evaluation.
	StartEvaluationSpan(ctx context.Context, evaluator, runID string) (context.Context, trace.Span)

	// EndEvaluationSpan completes an evaluation span with its outcome kind.
	// Failure outcomes are ordinary results, so the span status stays Ok.
	EndEvaluationSpan(span trace.Span, outcome string)

	// StartSuiteSpan starts a span for a case-suite run. Evaluation spans
	// started from the returned context are its children.
	StartSuiteSpan(ctx context.Context, suite, runID string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

func (m *otelSpanManager) StartEvaluationSpan(ctx context.Context, evaluator, runID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "opcalc.evaluate",
		trace.WithAttributes(
			attribute.String("opcalc.evaluator", evaluator),
			attribute.String("run.id", runID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

func (m *otelSpanManager) EndEvaluationSpan(span trace.Span, outcome string) {
	if span == nil {
		return
	}
	span.SetAttributes(attribute.String("opcalc.outcome", outcome))
	span.SetStatus(codes.Ok, "")
	span.End()
}

func (m *otelSpanManager) StartSuiteSpan(ctx context.Context, suite, runID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "opcalc.suite",
		trace.WithAttributes(
			attribute.String("suite.name", suite),
			attribute.String("run.id", runID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
