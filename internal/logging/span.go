package logging

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("avatargen")

// Span ties an OpenTelemetry span to the request logger so both carry the same ids.
type Span struct {
	name   string
	logger *slog.Logger
	start  time.Time
	otel   trace.Span
	err    error
}

// StartSpan derives a child span from the provided context. When no tracer provider is
// installed the otel span is a no-op and ids are generated locally.
func StartSpan(ctx context.Context, name string) (context.Context, *Span) {
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, otelSpan := tracer.Start(ctx, name)
	logger := FromContext(ctx)

	traceID, spanID := "", ""
	if sc := otelSpan.SpanContext(); sc.IsValid() {
		traceID, spanID = sc.TraceID().String(), sc.SpanID().String()
	}

	if existing := TraceIDFromContext(ctx); existing != "" {
		traceID = existing
	} else {
		if traceID == "" {
			traceID = uuid.NewString()
		}
		ctx = withString(ctx, traceIDKey, traceID)
		logger = logger.With(slog.String("trace_id", traceID))
	}
	if spanID == "" {
		spanID = uuid.NewString()
	}

	logger = logger.With(
		slog.String("span_id", spanID),
		slog.String("span_name", name),
	)
	if parent := SpanIDFromContext(ctx); parent != "" {
		logger = logger.With(slog.String("parent_span_id", parent))
	}

	ctx = WithLogger(ctx, logger)
	ctx = withString(ctx, spanIDKey, spanID)

	return ctx, &Span{name: name, logger: logger, start: time.Now(), otel: otelSpan}
}

// Fail marks the span as failed; the error is reported when the span ends.
func (s *Span) Fail(err error) {
	if s == nil || err == nil {
		return
	}
	s.err = err
	s.otel.RecordError(err)
	s.otel.SetStatus(codes.Error, err.Error())
}

// End finalizes the span and emits a completion log entry.
func (s *Span) End() {
	if s == nil {
		return
	}
	s.otel.End()
	if s.err != nil {
		s.logger.Warn("span failed", slog.Duration("duration", time.Since(s.start)), slog.Any("error", s.err))
		return
	}
	s.logger.Debug("span completed", slog.Duration("duration", time.Since(s.start)))
}
