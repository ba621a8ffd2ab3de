package product

import (
	"context"
	"strings"
	"testing"
	"time"

	domain "github.com/Zhima-Mochi/minishop-catalog/internal/domain/product"
	"github.com/Zhima-Mochi/minishop-catalog/internal/infrastructure/outbox"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockAlertWorker(t *testing.T) {
	tel, reg, logs := newTelemetry(t)

	bus := outbox.NewBus(tel.Logger())
	bus.Start(context.Background())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		bus.Stop(ctx)
	})
	NewStockAlertWorker(bus, tel).Start()

	evt := domain.NewStockLowEvent(domain.Product{ID: 3, Name: "JVC HAFX8R Headphone", Quantity: 2}, 5)
	require.NoError(t, bus.Publish(context.Background(), evt))

	expected := `
# HELP stock_low_total Count of low-stock alerts per product.
# TYPE stock_low_total counter
stock_low_total{product_id="3"} 1
`
	assert.Eventually(t, func() bool {
		return testutil.GatherAndCompare(reg, strings.NewReader(expected), "stock_low_total") == nil
	}, time.Second, 5*time.Millisecond)

	assert.Eventually(t, func() bool {
		return logs.FilterMessage("stock_low").Len() == 1
	}, time.Second, 5*time.Millisecond)

	entry := logs.FilterMessage("stock_low").All()[0]
	fields := entry.ContextMap()
	assert.Equal(t, evt.EventID, fields["event_id"])
	assert.Equal(t, "product.stock_low", fields["event"])
	assert.EqualValues(t, 2, fields["quantity"])
}

func TestStockAlertWorkerEndToEnd(t *testing.T) {
	tel, reg, _ := newTelemetry(t)
	f := newFixture(t)

	bus := outbox.NewBus(tel.Logger())
	bus.Start(context.Background())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		bus.Stop(ctx)
	})
	NewStockAlertWorker(bus, tel).Start()

	svc := NewService(f.cart, f.repo, mapLocalizer(messages), bus, tel)
	require.NoError(t, svc.UpdateProductStocks(context.Background(), 1, 8))

	assert.Eventually(t, func() bool {
		n, err := testutil.GatherAndCount(reg, "stock_low_total")
		return err == nil && n == 1
	}, time.Second, 5*time.Millisecond)
}
