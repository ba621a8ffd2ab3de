package product

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("product: not found")
	ErrInvalidQuantity   = errors.New("product: quantity must be greater than zero")
	ErrInsufficientStock = errors.New("product: insufficient stock")
	ErrInvalidProduct    = errors.New("product: invalid product")
)

// Product is a catalog entry. Quantity is the stock on hand and never drops below zero.
type Product struct {
	ID          int
	Name        string
	Description string
	Details     string
	Quantity    int
	Price       decimal.Decimal
}

// StockAdjustment asks the store to take Quantity units of ProductID out of stock.
type StockAdjustment struct {
	ProductID int
	Quantity  int
}

func New(name, description, details string, quantity int, price decimal.Decimal) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must be zero or greater", ErrInvalidProduct)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("%w: price must be zero or greater", ErrInvalidProduct)
	}
	return &Product{
		Name:        name,
		Description: description,
		Details:     details,
		Quantity:    quantity,
		Price:       price,
	}, nil
}

func (p *Product) Deduct(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if quantity > p.Quantity {
		return ErrInsufficientStock
	}
	p.Quantity -= quantity
	return nil
}

// Clone returns a detached copy.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}
