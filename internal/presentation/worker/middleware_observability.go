package workerpresentation

import (
	"context"

	"github.com/Zhima-Mochi/minishop-catalog/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-catalog/internal/observability"
	"github.com/Zhima-Mochi/minishop-catalog/internal/observability/logctx"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// WithEventContext injects an event-scoped logger for background handlers.
// Fields: event_id (generated if empty), trace_id/span_id when valid, and the
// caller's low-cardinality attributes such as "event" or "use_case".
func WithEventContext(
	ctx context.Context,
	base observability.Logger,
	tel observability.Observability,
	attrs map[string]string,
) context.Context {
	if base == nil {
		base = observability.NopLogger()
		if tel != nil {
			base = tel.Logger()
		}
	}
	if attrs == nil {
		attrs = make(map[string]string)
	}

	fields := make([]observability.Field, 0, len(attrs)+3)

	evtID := attrs["event_id"]
	if evtID == "" {
		evtID = uuid.NewString()
	}
	fields = append(fields, observability.F("event_id", evtID))

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		fields = append(fields,
			observability.F("trace_id", sc.TraceID().String()),
			observability.F("span_id", sc.SpanID().String()),
		)
	}

	for k, v := range attrs {
		if k == "event_id" || v == "" {
			continue
		}
		fields = append(fields, observability.F(k, v))
	}

	return logctx.With(ctx, base.With(fields...))
}

// Middleware wraps a bus handler so every delivery runs with an event-scoped logger.
// idOf extracts a stable event id when the event carries one.
func Middleware(
	base observability.Logger,
	tel observability.Observability,
	idOf func(outbox.Event) string,
	next outbox.Handler,
) outbox.Handler {
	return func(ctx context.Context, e outbox.Event) error {
		attrs := map[string]string{"event": e.EventName()}
		if idOf != nil {
			attrs["event_id"] = idOf(e)
		}
		return next(WithEventContext(ctx, base, tel, attrs), e)
	}
}
