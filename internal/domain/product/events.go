package product

import (
	"time"

	"github.com/google/uuid"
)

// StockLowEvent is emitted when a stock adjustment leaves a product at or below the alert threshold.
type StockLowEvent struct {
	EventID    string
	ProductID  int
	Name       string
	Quantity   int
	Threshold  int
	OccurredAt time.Time
}

func (StockLowEvent) EventName() string { return "product.stock_low" }

func NewStockLowEvent(p Product, threshold int) StockLowEvent {
	return StockLowEvent{
		EventID:    uuid.NewString(),
		ProductID:  p.ID,
		Name:       p.Name,
		Quantity:   p.Quantity,
		Threshold:  threshold,
		OccurredAt: time.Now().UTC(),
	}
}
