package observability

import (
	"testing"

	"github.com/Zhima-Mochi/minishop-catalog/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithPrometheusRegistersInstruments(t *testing.T) {
	reg := prometheus.NewRegistry()
	tel := NewWithPrometheus(nil, nil, reg)

	tel.Metrics().Counter(observability.MStockLow).Add(1, observability.L("product_id", "1"))
	tel.Metrics().Counter(observability.MUsecaseRequests).Add(1,
		observability.L("use_case", "order.save"),
		observability.L("outcome", "success"),
	)
	tel.Metrics().Histogram(observability.MUsecaseDuration).Observe(0.01, observability.L("use_case", "order.save"))

	n, err := testutil.GatherAndCount(reg, "stock_low_total", "usecase_requests_total", "usecase_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	assert.NotNil(t, tel.Tracer())
	assert.NotNil(t, tel.Logger())
}

func TestUnknownMetricKeyIsNop(t *testing.T) {
	tel := New(nil, nil, nil, nil)
	assert.NotPanics(t, func() {
		tel.Metrics().Counter("missing").Add(1)
		tel.Metrics().Histogram("missing").Observe(1)
	})
}
