package zaplogger

import (
	"errors"
	"testing"

	"github.com/Zhima-Mochi/minishop-catalog/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := New(zap.New(core), observability.F("service", "catalog"))

	log.With(observability.F("use_case", "product.save")).
		Warn("failed", observability.F("error", errors.New("boom")), observability.F("count", 2))
	log.Debug("noise")

	require.Equal(t, 2, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)

	ctx := entry.ContextMap()
	assert.Equal(t, "catalog", ctx["service"])
	assert.Equal(t, "product.save", ctx["use_case"])
	assert.Equal(t, "boom", ctx["error"])
	assert.EqualValues(t, 2, ctx["count"])
}
