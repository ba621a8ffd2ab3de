package order

import (
	"time"

	"github.com/google/uuid"
)

// PlacedEvent is emitted after an order has been persisted.
type PlacedEvent struct {
	EventID    string
	OrderID    int
	Lines      []Line
	OccurredAt time.Time
}

func (PlacedEvent) EventName() string { return "order.placed" }

func NewPlacedEvent(o *Order) PlacedEvent {
	return PlacedEvent{
		EventID:    uuid.NewString(),
		OrderID:    o.ID,
		Lines:      append([]Line(nil), o.Lines...),
		OccurredAt: time.Now().UTC(),
	}
}
