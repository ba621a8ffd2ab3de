package order

import (
	"context"

	"github.com/Zhima-Mochi/minishop-catalog/internal/application"
	domain "github.com/Zhima-Mochi/minishop-catalog/internal/domain/order"
	domoutbox "github.com/Zhima-Mochi/minishop-catalog/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-catalog/internal/observability"
	workerpresentation "github.com/Zhima-Mochi/minishop-catalog/internal/presentation/worker"

	"go.opentelemetry.io/otel/attribute"
)

const (
	workerService     = "order-worker"
	useCasePlacedSeen = "order.worker.placed"
)

// Worker confirms placed orders against the store and records them in the audit log.
type Worker struct {
	repo       domain.Repository
	subscriber domoutbox.Subscriber
	tel        observability.Observability

	ins *application.Instruments
}

func NewWorker(repo domain.Repository, subscriber domoutbox.Subscriber, tel observability.Observability) *Worker {
	if tel == nil {
		tel = observability.Nop()
	}
	return &Worker{
		repo:       repo,
		subscriber: subscriber,
		tel:        tel,
		ins:        application.NewInstruments(tel, workerService),
	}
}

func (w *Worker) Start() {
	if w.subscriber == nil || w.repo == nil {
		return
	}
	w.subscriber.Subscribe(domain.PlacedEvent{}.EventName(), workerpresentation.Middleware(
		w.ins.Logger(), w.tel, placedEventID, w.handlePlaced,
	))
}

func (w *Worker) handlePlaced(ctx context.Context, e domoutbox.Event) (err error) {
	evt, ok := e.(domain.PlacedEvent)

	ctx, run := w.ins.Begin(ctx, useCasePlacedSeen, "OrderPlaced",
		attribute.String("event", e.EventName()),
	)
	defer func() { run.End(err) }()

	if !ok {
		run.SetStatus("IGNORED")
		return nil
	}
	run.Span().SetAttributes(attribute.Int("order.id", evt.OrderID))

	o, err := w.repo.Get(ctx, evt.OrderID)
	if err != nil {
		run.Fail("ORDER_LOAD_FAILED")
		return err
	}

	run.Logger().Info("order_placed",
		observability.F("order_id", o.ID),
		observability.F("lines", len(o.Lines)),
		observability.F("units", o.Units()),
		observability.F("country", o.Country),
	)
	return nil
}

func placedEventID(e domoutbox.Event) string {
	if evt, ok := e.(domain.PlacedEvent); ok {
		return evt.EventID
	}
	return ""
}
