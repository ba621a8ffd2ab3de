package product

import "context"

type Repository interface {
	Get(ctx context.Context, id int) (*Product, error)
	List(ctx context.Context) ([]Product, error)
	Insert(ctx context.Context, p *Product) (*Product, error)
	Delete(ctx context.Context, id int) error
	DecrementStock(ctx context.Context, id, amount int) (*Product, error)
	// DecrementStocks applies every adjustment or none of them and returns the
	// updated products in adjustment order.
	DecrementStocks(ctx context.Context, adjustments []StockAdjustment) ([]Product, error)
}
