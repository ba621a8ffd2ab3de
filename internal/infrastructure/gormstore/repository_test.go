package gormstore

import (
	"context"
	"testing"
	"time"

	"github.com/Zhima-Mochi/minishop-catalog/internal/domain/order"
	"github.com/Zhima-Mochi/minishop-catalog/internal/domain/product"
	"github.com/Zhima-Mochi/minishop-catalog/internal/infrastructure/storetest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// openTestDB gives each test its own named in-memory database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func TestProductRepository(t *testing.T) {
	storetest.RunProductRepository(t, func(t *testing.T) product.Repository {
		return NewProductRepository(openTestDB(t))
	})
}

func TestOrderRepository(t *testing.T) {
	storetest.RunOrderRepository(t, func(t *testing.T) order.Repository {
		return NewOrderRepository(openTestDB(t))
	})
}

func TestPing(t *testing.T) {
	db := openTestDB(t)
	assert.NoError(t, Ping(context.Background(), db))
}

func TestDeletingProductKeepsOrderLines(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	products := storetest.Seeded(t, func(*testing.T) product.Repository { return NewProductRepository(db) })
	orders := NewOrderRepository(db)

	saved, err := orders.Insert(ctx, storetest.Checkout(time.Now().UTC(), order.Line{ProductID: 1, Quantity: 2}))
	require.NoError(t, err)
	require.NoError(t, products.Delete(ctx, 1))

	got, err := orders.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, []order.Line{{ProductID: 1, Quantity: 2}}, got.Lines)
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	assert.NoError(t, Migrate(db))
}
