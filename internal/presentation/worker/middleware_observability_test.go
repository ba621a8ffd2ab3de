package workerpresentation

import (
	"context"
	"testing"

	domoutbox "github.com/Zhima-Mochi/minishop-catalog/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-catalog/internal/infrastructure/observability/zaplogger"
	"github.com/Zhima-Mochi/minishop-catalog/internal/observability/logctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type pingEvent struct{ id string }

func (pingEvent) EventName() string { return "test.ping" }

func TestWithEventContext(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zaplogger.New(zap.New(core))

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: trace.TraceID{1},
		SpanID:  trace.SpanID{2},
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	ctx = WithEventContext(ctx, base, nil, map[string]string{"event": "test.ping", "empty": ""})
	logctx.From(ctx).Info("handled")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.NotEmpty(t, fields["event_id"])
	assert.Equal(t, "test.ping", fields["event"])
	assert.Equal(t, sc.TraceID().String(), fields["trace_id"])
	assert.Equal(t, sc.SpanID().String(), fields["span_id"])
	assert.NotContains(t, fields, "empty")
}

func TestMiddlewareUsesEventID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zaplogger.New(zap.New(core))

	h := Middleware(base, nil, func(e domoutbox.Event) string { return e.(pingEvent).id },
		func(ctx context.Context, _ domoutbox.Event) error {
			logctx.From(ctx).Info("handled")
			return nil
		})
	require.NoError(t, h(context.Background(), pingEvent{id: "evt-1"}))

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "evt-1", logs.All()[0].ContextMap()["event_id"])
}
