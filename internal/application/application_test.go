package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	infraobs "github.com/Zhima-Mochi/minishop-catalog/internal/infrastructure/observability"
	"github.com/Zhima-Mochi/minishop-catalog/internal/infrastructure/observability/zaplogger"
	"github.com/Zhima-Mochi/minishop-catalog/internal/observability"
	"github.com/Zhima-Mochi/minishop-catalog/internal/observability/logctx"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newInstruments(t *testing.T) (*Instruments, *prometheus.Registry, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	reg := prometheus.NewRegistry()
	tel := infraobs.NewWithPrometheus(nil, zaplogger.New(zap.New(core)), reg)
	return NewInstruments(tel, "test-service"), reg, logs
}

func TestRunSuccess(t *testing.T) {
	ins, reg, logs := newInstruments(t)

	ctx, run := ins.Begin(context.Background(), "thing.do", "DoThing")
	assert.NotNil(t, logctx.From(ctx))
	run.Annotate(observability.F("count", 3))
	run.End(nil)

	done := logs.FilterMessage("use_case_done").All()
	require.Len(t, done, 1)
	fields := done[0].ContextMap()
	assert.Equal(t, "test-service", fields["service"])
	assert.Equal(t, "thing.do", fields["use_case"])
	assert.Equal(t, OutcomeSuccess, fields["outcome"])
	assert.Equal(t, StatusOK, fields["status"])
	assert.EqualValues(t, 3, fields["count"])
	assert.NotContains(t, fields, "error")

	expected := `
# HELP usecase_requests_total Total number of use case invocations.
# TYPE usecase_requests_total counter
usecase_requests_total{outcome="success",use_case="thing.do"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "usecase_requests_total"))
}

func TestRunFailure(t *testing.T) {
	ins, _, logs := newInstruments(t)

	_, run := ins.Begin(context.Background(), "thing.do", "DoThing")
	run.End(errors.New("boom"))

	_, run = ins.Begin(context.Background(), "thing.do", "DoThing")
	run.Fail("THING_INVALID")
	run.End(errors.New("invalid"))

	done := logs.FilterMessage("use_case_done").All()
	require.Len(t, done, 2)
	assert.Equal(t, "ERROR", done[0].ContextMap()["status"])
	assert.Equal(t, "boom", done[0].ContextMap()["error"])
	assert.Equal(t, OutcomeError, done[1].ContextMap()["outcome"])
	assert.Equal(t, "THING_INVALID", done[1].ContextMap()["status"])
}

func TestObserveExternal(t *testing.T) {
	ins, reg, _ := newInstruments(t)
	ins.ObserveExternal("outbox", "order.placed", OutcomeSuccess, 0)

	n, err := testutil.GatherAndCount(reg, "external_requests_total", "external_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestNilTelemetry(t *testing.T) {
	ins := NewInstruments(nil, "svc")
	assert.NotPanics(t, func() {
		_, run := ins.Begin(context.Background(), "x", "X")
		run.End(nil)
	})
}
