package product

import (
	"context"
	"strconv"

	"github.com/Zhima-Mochi/minishop-catalog/internal/application"
	domoutbox "github.com/Zhima-Mochi/minishop-catalog/internal/domain/outbox"
	domain "github.com/Zhima-Mochi/minishop-catalog/internal/domain/product"
	"github.com/Zhima-Mochi/minishop-catalog/internal/observability"
	workerpresentation "github.com/Zhima-Mochi/minishop-catalog/internal/presentation/worker"

	"go.opentelemetry.io/otel/attribute"
)

const (
	workerService   = "product-worker"
	useCaseStockLow = "product.worker.stock_low"
)

// StockAlertWorker reports products whose stock fell to the alert threshold.
type StockAlertWorker struct {
	subscriber domoutbox.Subscriber
	tel        observability.Observability

	ins      *application.Instruments
	stockLow observability.Counter // stock_low_total{product_id}
}

func NewStockAlertWorker(subscriber domoutbox.Subscriber, tel observability.Observability) *StockAlertWorker {
	if tel == nil {
		tel = observability.Nop()
	}
	return &StockAlertWorker{
		subscriber: subscriber,
		tel:        tel,
		ins:        application.NewInstruments(tel, workerService),
		stockLow:   tel.Metrics().Counter(observability.MStockLow),
	}
}

func (w *StockAlertWorker) Start() {
	if w.subscriber == nil {
		return
	}
	w.subscriber.Subscribe(domain.StockLowEvent{}.EventName(), workerpresentation.Middleware(
		w.ins.Logger(), w.tel, eventID, w.handleStockLow,
	))
}

func (w *StockAlertWorker) handleStockLow(ctx context.Context, e domoutbox.Event) (err error) {
	evt, ok := e.(domain.StockLowEvent)

	_, run := w.ins.Begin(ctx, useCaseStockLow, "StockLow",
		attribute.String("event", e.EventName()),
	)
	defer func() { run.End(err) }()

	if !ok {
		run.SetStatus("IGNORED")
		return nil
	}

	run.Span().SetAttributes(
		attribute.Int("product.id", evt.ProductID),
		attribute.Int("product.quantity", evt.Quantity),
	)
	run.Logger().Warn("stock_low",
		observability.F("product_id", evt.ProductID),
		observability.F("product_name", evt.Name),
		observability.F("quantity", evt.Quantity),
		observability.F("threshold", evt.Threshold),
	)
	w.stockLow.Add(1, observability.L("product_id", strconv.Itoa(evt.ProductID)))
	return nil
}

func eventID(e domoutbox.Event) string {
	if evt, ok := e.(domain.StockLowEvent); ok {
		return evt.EventID
	}
	return ""
}
