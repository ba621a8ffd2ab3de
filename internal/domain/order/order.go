package order

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNotFound        = errors.New("order: not found")
	ErrNoLines         = errors.New("order: at least one line is required")
	ErrInvalidLine     = errors.New("order: invalid line")
	ErrInvalidShipping = errors.New("order: invalid shipping details")
)

// Line references a product by id only; deleting the product leaves the line intact.
type Line struct {
	ProductID int
	Quantity  int
}

// Order is created once at checkout and never changes afterwards.
type Order struct {
	ID      int
	Name    string
	Address string
	City    string
	Country string
	Zip     string
	Date    time.Time
	Lines   []Line
}

type Shipping struct {
	Name    string
	Address string
	City    string
	Country string
	Zip     string
}

// Validate reports the first missing required field. Zip is optional.
func (s Shipping) Validate() error {
	required := []struct{ field, value string }{
		{"name", s.Name},
		{"address", s.Address},
		{"city", s.City},
		{"country", s.Country},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidShipping, r.field)
		}
	}
	return nil
}

func New(shipping Shipping, date time.Time, lines []Line) (*Order, error) {
	if err := shipping.Validate(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrNoLines
	}
	for i, l := range lines {
		if l.ProductID <= 0 {
			return nil, fmt.Errorf("%w: line %d: product id %d", ErrInvalidLine, i, l.ProductID)
		}
		if l.Quantity <= 0 {
			return nil, fmt.Errorf("%w: line %d: quantity %d", ErrInvalidLine, i, l.Quantity)
		}
	}

	return &Order{
		Name:    shipping.Name,
		Address: shipping.Address,
		City:    shipping.City,
		Country: shipping.Country,
		Zip:     shipping.Zip,
		Date:    date,
		Lines:   append([]Line(nil), lines...),
	}, nil
}

func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Lines = append([]Line(nil), o.Lines...)
	return &clone
}

// Units is the total quantity across all lines.
func (o *Order) Units() int {
	n := 0
	for _, l := range o.Lines {
		n += l.Quantity
	}
	return n
}
