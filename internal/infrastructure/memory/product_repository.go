package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	domain "github.com/Zhima-Mochi/minishop-catalog/internal/domain/product"
)

// ProductRepository keeps products in a map guarded by a single lock, which also
// serialises every stock read-modify-write.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[int]*domain.Product
	nextID   int
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		products: make(map[int]*domain.Product),
		nextID:   1,
	}
}

func (r *ProductRepository) Get(ctx context.Context, id int) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p.Clone(), nil
}

func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ProductRepository) Insert(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("product repository: product is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := p.Clone()
	stored.ID = r.nextID
	r.nextID++
	r.products[stored.ID] = stored
	return stored.Clone(), nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *ProductRepository) DecrementStock(ctx context.Context, id, amount int) (*domain.Product, error) {
	updated, err := r.DecrementStocks(ctx, []domain.StockAdjustment{{ProductID: id, Quantity: amount}})
	if err != nil {
		return nil, err
	}
	return &updated[0], nil
}

func (r *ProductRepository) DecrementStocks(ctx context.Context, adjustments []domain.StockAdjustment) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Work on copies so a failing adjustment leaves the stored products untouched.
	staged := make(map[int]*domain.Product, len(adjustments))
	for _, adj := range adjustments {
		p, ok := staged[adj.ProductID]
		if !ok {
			stored, found := r.products[adj.ProductID]
			if !found {
				return nil, fmt.Errorf("product %d: %w", adj.ProductID, domain.ErrNotFound)
			}
			p = stored.Clone()
			staged[adj.ProductID] = p
		}
		if err := p.Deduct(adj.Quantity); err != nil {
			return nil, fmt.Errorf("product %d: %w", adj.ProductID, err)
		}
	}

	for id, p := range staged {
		r.products[id] = p
	}

	out := make([]domain.Product, 0, len(adjustments))
	for _, adj := range adjustments {
		out = append(out, *r.products[adj.ProductID])
	}
	return out, nil
}
