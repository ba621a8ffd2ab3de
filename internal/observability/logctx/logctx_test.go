package logctx

import (
	"context"
	"testing"

	"github.com/Zhima-Mochi/minishop-catalog/internal/infrastructure/observability/zaplogger"
	"github.com/Zhima-Mochi/minishop-catalog/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromOr(t *testing.T) {
	assert.NotNil(t, FromOr(context.Background(), nil))
	assert.Nil(t, From(context.Background()))

	core, logs := observer.New(zapcore.InfoLevel)
	base := zaplogger.New(zap.New(core))

	ctx, derived := WithFields(context.Background(), base, observability.F("request_id", "r-1"))
	assert.Same(t, derived, From(ctx))

	FromOr(ctx, nil).Info("hello")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "r-1", logs.All()[0].ContextMap()["request_id"])
}
