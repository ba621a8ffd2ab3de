package seed

import (
	"context"
	"testing"

	"github.com/Zhima-Mochi/minishop-catalog/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository()
	require.NoError(t, Catalog(ctx, repo))

	products, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, len(Products()))

	for i, p := range products {
		assert.Equal(t, i+1, p.ID)
		assert.Equal(t, (i+1)*10, p.Quantity)
	}
	assert.Equal(t, "92.5", products[0].Price.String())
	assert.Equal(t, "Tangle-Free Micro USB Cable", products[1].Description)
}

func TestCatalogStopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Catalog(ctx, memory.NewProductRepository()), context.Canceled)
}
