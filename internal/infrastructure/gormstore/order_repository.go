package gormstore

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/Zhima-Mochi/minishop-catalog/internal/domain/order"
	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func orderedLines(db *gorm.DB) *gorm.DB { return db.Order("id") }

func (r *OrderRepository) Insert(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, fmt.Errorf("order repository: order is required")
	}
	rec := toOrderRecord(order)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, fmt.Errorf("order repository: insert: %w", err)
	}
	stored := rec.toDomain()
	return &stored, nil
}

func (r *OrderRepository) Get(ctx context.Context, id int) (*domain.Order, error) {
	var rec orderRecord
	err := r.db.WithContext(ctx).Preload("Lines", orderedLines).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("order repository: get %d: %w", id, err)
	}
	o := rec.toDomain()
	return &o, nil
}

func (r *OrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	var recs []orderRecord
	if err := r.db.WithContext(ctx).Preload("Lines", orderedLines).Order("id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("order repository: list: %w", err)
	}
	out := make([]domain.Order, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.toDomain())
	}
	return out, nil
}
