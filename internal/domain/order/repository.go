package order

import "context"

type Repository interface {
	Get(ctx context.Context, id int) (*Order, error)
	// List returns orders in insertion order.
	List(ctx context.Context) ([]Order, error)
	Insert(ctx context.Context, order *Order) (*Order, error)
}
