// Package storetest holds the behaviour every product and order store must share.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/Zhima-Mochi/minishop-catalog/internal/domain/order"
	"github.com/Zhima-Mochi/minishop-catalog/internal/domain/product"
	"github.com/Zhima-Mochi/minishop-catalog/internal/infrastructure/seed"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ProductFactory returns an empty store private to the calling test.
type ProductFactory func(t *testing.T) product.Repository

type OrderFactory func(t *testing.T) order.Repository

// Seeded returns a store from newRepo holding the reference catalog.
func Seeded(t *testing.T, newRepo ProductFactory) product.Repository {
	t.Helper()
	repo := newRepo(t)
	require.NoError(t, seed.Catalog(context.Background(), repo))
	return repo
}

func RunProductRepository(t *testing.T, newRepo ProductFactory) {
	ctx := context.Background()

	t.Run("list is ordered by id", func(t *testing.T) {
		repo := Seeded(t, newRepo)
		products, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, products, 5)
		for i, p := range products {
			assert.Equal(t, i+1, p.ID)
		}
	})

	t.Run("list on empty store", func(t *testing.T) {
		products, err := newRepo(t).List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, products)
		assert.Empty(t, products)
	})

	t.Run("get", func(t *testing.T) {
		repo := Seeded(t, newRepo)
		p, err := repo.Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Echo Dot", p.Name)
		assert.Equal(t, "(2nd Generation) - Black", p.Description)
		assert.Equal(t, 10, p.Quantity)
		assert.Equal(t, "92.5", p.Price.String())

		p, err = repo.Get(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "Anker 3ft / 0.9m Nylon Braided", p.Name)
		assert.Equal(t, 20, p.Quantity)
		assert.True(t, p.Price.Equal(decimal.RequireFromString("9.99")))

		_, err = repo.Get(ctx, 9)
		assert.ErrorIs(t, err, product.ErrNotFound)
		_, err = repo.Get(ctx, 0)
		assert.ErrorIs(t, err, product.ErrNotFound)
		_, err = repo.Get(ctx, -1)
		assert.ErrorIs(t, err, product.ErrNotFound)
	})

	t.Run("decrement stock", func(t *testing.T) {
		repo := Seeded(t, newRepo)
		p, err := repo.DecrementStock(ctx, 1, 3)
		require.NoError(t, err)
		assert.Equal(t, 7, p.Quantity)

		stored, err := repo.Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 7, stored.Quantity)
	})

	t.Run("decrement stock rejects", func(t *testing.T) {
		repo := Seeded(t, newRepo)
		_, err := repo.DecrementStock(ctx, 1, 0)
		assert.ErrorIs(t, err, product.ErrInvalidQuantity)
		_, err = repo.DecrementStock(ctx, 1, 11)
		assert.ErrorIs(t, err, product.ErrInsufficientStock)
		_, err = repo.DecrementStock(ctx, 42, 1)
		assert.ErrorIs(t, err, product.ErrNotFound)

		stored, err := repo.Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 10, stored.Quantity)
	})

	t.Run("decrement to zero", func(t *testing.T) {
		repo := Seeded(t, newRepo)
		p, err := repo.DecrementStock(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, 0, p.Quantity)
	})

	t.Run("decrement stocks applies every line", func(t *testing.T) {
		repo := Seeded(t, newRepo)
		updated, err := repo.DecrementStocks(ctx, []product.StockAdjustment{
			{ProductID: 1, Quantity: 2},
			{ProductID: 3, Quantity: 5},
		})
		require.NoError(t, err)
		require.Len(t, updated, 2)
		assert.Equal(t, 8, updated[0].Quantity)
		assert.Equal(t, 25, updated[1].Quantity)
	})

	t.Run("decrement stocks is all or nothing", func(t *testing.T) {
		repo := Seeded(t, newRepo)
		_, err := repo.DecrementStocks(ctx, []product.StockAdjustment{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 21},
		})
		assert.ErrorIs(t, err, product.ErrInsufficientStock)

		_, err = repo.DecrementStocks(ctx, []product.StockAdjustment{
			{ProductID: 1, Quantity: 2},
			{ProductID: 77, Quantity: 1},
		})
		assert.ErrorIs(t, err, product.ErrNotFound)

		p1, err := repo.Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 10, p1.Quantity)
		p2, err := repo.Get(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, 20, p2.Quantity)
	})

	t.Run("insert assigns the next id", func(t *testing.T) {
		repo := Seeded(t, newRepo)
		in, err := product.New("TestProduct", "Description", "Details", 3, decimal.NewFromInt(2))
		require.NoError(t, err)

		saved, err := repo.Insert(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, 6, saved.ID)

		products, err := repo.List(ctx)
		require.NoError(t, err)
		last := products[len(products)-1]
		assert.Equal(t, "TestProduct", last.Name)
		assert.Equal(t, "Details", last.Details)
		assert.Equal(t, 3, last.Quantity)
		assert.True(t, last.Price.Equal(decimal.NewFromInt(2)))
	})

	t.Run("delete", func(t *testing.T) {
		repo := Seeded(t, newRepo)
		require.NoError(t, repo.Delete(ctx, 1))

		products, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, products, 4)

		assert.ErrorIs(t, repo.Delete(ctx, 1), product.ErrNotFound)
		_, err = repo.Get(ctx, 1)
		assert.ErrorIs(t, err, product.ErrNotFound)
	})

	t.Run("ids are never reused", func(t *testing.T) {
		repo := Seeded(t, newRepo)
		require.NoError(t, repo.Delete(ctx, 5))

		in, err := product.New("after delete", "", "", 1, decimal.NewFromInt(1))
		require.NoError(t, err)
		saved, err := repo.Insert(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, 6, saved.ID)
	})
}

// Checkout is the reference order used by the order store checks.
func Checkout(date time.Time, lines ...order.Line) *order.Order {
	if len(lines) == 0 {
		lines = []order.Line{{ProductID: 1, Quantity: 1}}
	}
	return &order.Order{
		Name:    "name",
		Address: "address",
		City:    "city",
		Country: "country",
		Zip:     "zip",
		Date:    date,
		Lines:   lines,
	}
}

func RunOrderRepository(t *testing.T, newRepo OrderFactory) {
	ctx := context.Background()
	date := time.Date(2019, 9, 17, 21, 6, 0, 0, time.UTC)

	t.Run("insert and get", func(t *testing.T) {
		repo := newRepo(t)
		saved, err := repo.Insert(ctx, Checkout(date,
			order.Line{ProductID: 1, Quantity: 2},
			order.Line{ProductID: 4, Quantity: 1},
		))
		require.NoError(t, err)
		assert.Equal(t, 1, saved.ID)

		got, err := repo.Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "name", got.Name)
		assert.Equal(t, "address", got.Address)
		assert.Equal(t, "city", got.City)
		assert.Equal(t, "country", got.Country)
		assert.Equal(t, "zip", got.Zip)
		assert.True(t, date.Equal(got.Date))
		assert.Equal(t, []order.Line{{ProductID: 1, Quantity: 2}, {ProductID: 4, Quantity: 1}}, got.Lines)
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := newRepo(t).Get(ctx, 9)
		assert.ErrorIs(t, err, order.ErrNotFound)
	})

	t.Run("list keeps insertion order", func(t *testing.T) {
		repo := newRepo(t)
		orders, err := repo.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, orders)
		assert.Empty(t, orders)

		_, err = repo.Insert(ctx, Checkout(date))
		require.NoError(t, err)
		_, err = repo.Insert(ctx, Checkout(date.Add(time.Hour), order.Line{ProductID: 2, Quantity: 3}))
		require.NoError(t, err)

		orders, err = repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, 1, orders[0].ID)
		assert.Equal(t, 2, orders[1].ID)
		assert.Equal(t, 3, orders[1].Units())
	})
}
