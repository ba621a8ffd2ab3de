package order

import (
	"context"
	"testing"
	"time"

	"github.com/Zhima-Mochi/minishop-catalog/internal/infrastructure/outbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerLogsPlacedOrders(t *testing.T) {
	st := newStores(t)

	bus := outbox.NewBus(st.tel.Logger())
	bus.Start(context.Background())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		bus.Stop(ctx)
	})
	NewWorker(st.orders, bus, st.tel).Start()

	s := st.session()
	s.orders = NewService(s.cart, st.orders, s.products, bus, st.tel)
	s.add(t, 2, 3)

	o, err := s.orders.SaveOrder(context.Background(), validForm())
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return st.logs.FilterMessage("order_placed").Len() == 1
	}, time.Second, 5*time.Millisecond)

	fields := st.logs.FilterMessage("order_placed").All()[0].ContextMap()
	assert.EqualValues(t, o.ID, fields["order_id"])
	assert.EqualValues(t, 3, fields["units"])
	assert.Equal(t, "order-worker", fields["service"])
}
