package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// GetTracer returns the tracer for the namestorm service.
func GetTracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// StartChatSpan starts a span covering one user send action.
func StartChatSpan(ctx context.Context, historyLen int) (context.Context, trace.Span) {
	return GetTracer().Start(ctx, "chat.send",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.Int("chat.history_length", historyLen),
		),
	)
}

// AddLoopStats attaches brainstorm loop statistics to a span.
func AddLoopStats(span trace.Span, rounds, checked, found int) {
	span.SetAttributes(
		attribute.Int("brainstorm.rounds", rounds),
		attribute.Int("brainstorm.checked", checked),
		attribute.Int("brainstorm.found", found),
	)
}

// RecordError records an error on a span.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
