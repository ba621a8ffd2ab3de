package prometrics

import (
	"strings"
	"testing"

	"github.com/Zhima-Mochi/minishop-catalog/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg, "minishop", "")

	c := r.Counter("orders_total", "Orders.", "outcome")
	c.Add(1, observability.L("outcome", "success"))
	c.Bind(observability.L("outcome", "error")).Add(2)

	// same name hands back the registered vector instead of panicking
	again := r.Counter("orders_total", "Orders.", "outcome")
	again.Add(1, observability.L("outcome", "success"))

	expected := `
# HELP minishop_orders_total Orders.
# TYPE minishop_orders_total counter
minishop_orders_total{outcome="error"} 2
minishop_orders_total{outcome="success"} 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "minishop_orders_total"))
}

func TestHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg, "", "")

	h := r.Histogram("latency_seconds", "Latency.", []float64{0.1, 1}, "route")
	h.Observe(0.05, observability.L("route", "/health"))
	h.Bind(observability.L("route", "/health")).Observe(0.5)

	n, err := testutil.GatherAndCount(reg, "latency_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
