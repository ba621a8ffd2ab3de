package main

import (
	"context"
	"testing"

	appOrder "github.com/Zhima-Mochi/minishop-catalog/internal/application/order"
	appProduct "github.com/Zhima-Mochi/minishop-catalog/internal/application/product"
	"github.com/Zhima-Mochi/minishop-catalog/internal/domain/cart"
	"github.com/Zhima-Mochi/minishop-catalog/internal/infrastructure/i18n"
	"github.com/Zhima-Mochi/minishop-catalog/internal/infrastructure/outbox"
	"github.com/Zhima-Mochi/minishop-catalog/internal/observability"
	"github.com/Zhima-Mochi/minishop-catalog/internal/pkg/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type session struct {
	cart     *cart.Cart
	products *appProduct.Service
	orders   *appOrder.Service
}

func newSession(st stores, bus *outbox.Bus, cfg config.Config) session {
	c := cart.New()
	products := newProductService(c, st, i18n.New("en"), bus, observability.Nop(), cfg)
	orders := appOrder.NewService(c, st.orders, products, bus, observability.Nop())
	return session{cart: c, products: products, orders: orders}
}

func TestCheckoutAcrossStores(t *testing.T) {
	drivers := map[string]config.Config{
		"memory": {StoreDriver: config.StoreMemory, LowStockThreshold: 5},
		"sqlite": {StoreDriver: config.StoreSQLite, SQLiteDSN: "file:" + uuid.NewString() + "?mode=memory&cache=shared", LowStockThreshold: 5},
	}
	for name, cfg := range drivers {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			st, err := openStores(cfg)
			require.NoError(t, err)
			t.Cleanup(func() { _ = st.close() })

			require.NoError(t, seedIfEmpty(ctx, st.products))
			// a second run must not duplicate the catalog
			require.NoError(t, seedIfEmpty(ctx, st.products))

			for name, check := range st.checks {
				assert.NoError(t, check(ctx), name)
			}

			bus := outbox.NewBus(nil)
			sess := newSession(st, bus, cfg)

			catalog, err := sess.products.GetAllProducts(ctx)
			require.NoError(t, err)
			require.Len(t, catalog, 5)

			sess.cart.AddItem(catalog[0], 2)
			o, err := sess.orders.SaveOrder(ctx, appOrder.Form{
				Name: "name", Address: "address", City: "city", Country: "country",
			})
			require.NoError(t, err)
			assert.Equal(t, 1, o.ID)
			assert.False(t, o.Date.IsZero())

			p, err := sess.products.GetProductByID(ctx, catalog[0].ID)
			require.NoError(t, err)
			assert.Equal(t, 8, p.Quantity)
		})
	}
}
