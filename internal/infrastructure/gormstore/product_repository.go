package gormstore

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/Zhima-Mochi/minishop-catalog/internal/domain/product"
	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Get(ctx context.Context, id int) (*domain.Product, error) {
	var rec productRecord
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("product repository: get %d: %w", id, err)
	}
	p := rec.toDomain()
	return &p, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	var recs []productRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("product repository: list: %w", err)
	}
	out := make([]domain.Product, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.toDomain())
	}
	return out, nil
}

func (r *ProductRepository) Insert(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if p == nil {
		return nil, fmt.Errorf("product repository: product is required")
	}
	rec := toProductRecord(p)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, fmt.Errorf("product repository: insert: %w", err)
	}
	stored := rec.toDomain()
	return &stored, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int) error {
	res := r.db.WithContext(ctx).Delete(&productRecord{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("product repository: delete %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) DecrementStock(ctx context.Context, id, amount int) (*domain.Product, error) {
	updated, err := r.DecrementStocks(ctx, []domain.StockAdjustment{{ProductID: id, Quantity: amount}})
	if err != nil {
		return nil, err
	}
	return &updated[0], nil
}

// DecrementStocks runs every adjustment in one transaction. Each decrement is a
// single guarded UPDATE, so concurrent checkouts cannot oversell.
func (r *ProductRepository) DecrementStocks(ctx context.Context, adjustments []domain.StockAdjustment) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(adjustments))

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, adj := range adjustments {
			if adj.Quantity <= 0 {
				return fmt.Errorf("product %d: %w", adj.ProductID, domain.ErrInvalidQuantity)
			}

			res := tx.Model(&productRecord{}).
				Where("id = ? AND quantity >= ?", adj.ProductID, adj.Quantity).
				UpdateColumn("quantity", gorm.Expr("quantity - ?", adj.Quantity))
			if res.Error != nil {
				return fmt.Errorf("product %d: decrement: %w", adj.ProductID, res.Error)
			}

			var rec productRecord
			err := tx.First(&rec, "id = ?", adj.ProductID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("product %d: %w", adj.ProductID, domain.ErrNotFound)
			}
			if err != nil {
				return fmt.Errorf("product %d: reload: %w", adj.ProductID, err)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("product %d: %w", adj.ProductID, domain.ErrInsufficientStock)
			}
			out = append(out, rec.toDomain())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
