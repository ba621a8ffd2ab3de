package memory

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/Zhima-Mochi/minishop-catalog/internal/domain/order"
)

type OrderRepository struct {
	mu     sync.RWMutex
	orders map[int]*domain.Order
	ids    []int
	nextID int
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders: make(map[int]*domain.Order),
		nextID: 1,
	}
}

func (r *OrderRepository) Insert(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("order repository: order is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := order.Clone()
	stored.ID = r.nextID
	r.nextID++
	r.orders[stored.ID] = stored
	r.ids = append(r.ids, stored.ID)
	return stored.Clone(), nil
}

func (r *OrderRepository) Get(ctx context.Context, id int) (*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return order.Clone(), nil
}

func (r *OrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Order, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, *r.orders[id].Clone())
	}
	return out, nil
}
