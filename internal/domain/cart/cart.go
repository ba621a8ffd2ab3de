package cart

import (
	"sync"

	"github.com/Zhima-Mochi/minishop-catalog/internal/domain/product"
	"github.com/shopspring/decimal"
)

// Line is a product selection awaiting checkout.
type Line struct {
	Product  product.Product
	Quantity int
}

// Cart holds one session's selections, keyed by product id, in the order they were first added.
type Cart struct {
	mu    sync.RWMutex
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// AddItem merges quantity into the existing line for p, or appends a new line.
// A quantity below one is ignored, so every line keeps a positive quantity.
func (c *Cart) AddItem(p product.Product, quantity int) {
	if quantity <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Product.ID == p.ID {
			c.lines[i].Quantity += quantity
			return
		}
	}
	c.lines = append(c.lines, Line{Product: p, Quantity: quantity})
}

func (c *Cart) RemoveLine(p product.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Product.ID == p.ID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

func (c *Cart) Clear() {
	c.mu.Lock()
	c.lines = nil
	c.mu.Unlock()
}

// Lines returns a copy of the current lines.
func (c *Cart) Lines() []Line {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Line(nil), c.lines...)
}

func (c *Cart) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lines)
}

func (c *Cart) IsEmpty() bool { return c.Len() == 0 }

// Line returns the line at index i.
func (c *Cart) Line(i int) (Line, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i < 0 || i >= len(c.lines) {
		return Line{}, false
	}
	return c.lines[i], true
}

func (c *Cart) FindProduct(id int) (product.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, l := range c.lines {
		if l.Product.ID == id {
			return l.Product, true
		}
	}
	return product.Product{}, false
}

// TotalValue is the sum of price times quantity over all lines.
func (c *Cart) TotalValue() decimal.Decimal {
	c.mu.RLock()
	defer c.mu.RUnlock()
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

// AverageValue is the total value divided by the number of units, zero for an empty cart.
func (c *Cart) AverageValue() decimal.Decimal {
	total := c.TotalValue()

	c.mu.RLock()
	units := 0
	for _, l := range c.lines {
		units += l.Quantity
	}
	c.mu.RUnlock()

	if units == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(units)))
}

// Adjustments turns the lines into stock decrement requests.
func (c *Cart) Adjustments() []product.StockAdjustment {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]product.StockAdjustment, 0, len(c.lines))
	for _, l := range c.lines {
		out = append(out, product.StockAdjustment{ProductID: l.Product.ID, Quantity: l.Quantity})
	}
	return out
}
