package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Zhima-Mochi/minishop-catalog/internal/application"
	"github.com/Zhima-Mochi/minishop-catalog/internal/domain/cart"
	domain "github.com/Zhima-Mochi/minishop-catalog/internal/domain/order"
	domoutbox "github.com/Zhima-Mochi/minishop-catalog/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-catalog/internal/domain/product"
	"github.com/Zhima-Mochi/minishop-catalog/internal/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	orderService   = "order-service"
	useCaseSave    = "order.save"
	useCaseGet     = "order.get"
	useCaseList    = "order.list"
	publishPeer    = "outbox"
	publishTimeout = 300 * time.Millisecond
)

var (
	ErrInvalidArgument = errors.New("order: invalid argument")
	ErrEmptyCart       = errors.New("order: cart is empty")
)

// StockAdjuster deducts the lines of one checkout from stock.
type StockAdjuster interface {
	DeductStock(ctx context.Context, adj []product.StockAdjustment) error
}

// Form carries the shipping details of a checkout. Lines always come from the cart.
type Form struct {
	Name    string
	Address string
	City    string
	Country string
	Zip     string
	Date    time.Time
}

func (f Form) shipping() domain.Shipping {
	return domain.Shipping{
		Name:    f.Name,
		Address: f.Address,
		City:    f.City,
		Country: f.Country,
		Zip:     f.Zip,
	}
}

type Option func(*Service)

// WithClock replaces time.Now for orders submitted without a date.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// Service places and reads orders for one shopping session.
type Service struct {
	cart      *cart.Cart
	repo      domain.Repository
	stock     StockAdjuster
	publisher domoutbox.Publisher
	now       func() time.Time

	ins *application.Instruments
}

func NewService(
	c *cart.Cart,
	repo domain.Repository,
	stock StockAdjuster,
	publisher domoutbox.Publisher,
	tel observability.Observability,
	opts ...Option,
) *Service {
	if c == nil {
		c = cart.New()
	}
	s := &Service{
		cart:      c,
		repo:      repo,
		stock:     stock,
		publisher: publisher,
		now:       time.Now,
		ins:       application.NewInstruments(tel, orderService),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SaveOrder checks out the cart: it validates shipping, deducts stock and persists the order.
// The cart is left as is.
func (s *Service) SaveOrder(ctx context.Context, form Form) (_ *domain.Order, err error) {
	ctx, run := s.ins.Begin(ctx, useCaseSave, "SaveOrder",
		attribute.Int("cart.lines", s.cart.Len()),
	)
	defer func() { run.End(err) }()

	shipping := form.shipping()
	if verr := shipping.Validate(); verr != nil {
		run.Fail("SHIPPING_INVALID")
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, verr)
	}

	cartLines := s.cart.Lines()
	if len(cartLines) == 0 {
		run.Fail("CART_EMPTY")
		return nil, ErrEmptyCart
	}
	// One snapshot feeds both the order lines and the stock deduction.
	lines := make([]domain.Line, 0, len(cartLines))
	adj := make([]product.StockAdjustment, 0, len(cartLines))
	for _, l := range cartLines {
		lines = append(lines, domain.Line{ProductID: l.Product.ID, Quantity: l.Quantity})
		adj = append(adj, product.StockAdjustment{ProductID: l.Product.ID, Quantity: l.Quantity})
	}

	date := form.Date
	if date.IsZero() {
		date = s.now()
	}

	entity, derr := domain.New(shipping, date, lines)
	if derr != nil {
		run.Fail("DOMAIN_CONSTRUCTION_FAILED")
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, derr)
	}
	if err := ctx.Err(); err != nil {
		run.Fail("CONTEXT_CANCELED")
		return nil, err
	}

	if s.stock != nil {
		if serr := s.stock.DeductStock(ctx, adj); serr != nil {
			run.Fail("STOCK_UPDATE_FAILED")
			return nil, fmt.Errorf("order: stock: %w", serr)
		}
	}

	saved, err := s.repo.Insert(ctx, entity)
	if err != nil {
		run.Fail("REPO_INSERT_FAILED")
		return nil, fmt.Errorf("order: insert: %w", err)
	}

	if perr := s.publishPlaced(ctx, saved); perr != nil {
		run.SetStatus("EVENT_PUBLISH_FAILED")
		run.Span().RecordError(perr)
		run.Annotate(observability.F("event_publish_error", perr.Error()))
	}

	run.Span().SetAttributes(attribute.Int("order.id", saved.ID))
	run.Span().AddEvent("order.placed",
		trace.WithAttributes(attribute.Int("order.id", saved.ID)),
	)
	run.Annotate(
		observability.F("order_id", saved.ID),
		observability.F("units", saved.Units()),
	)
	return saved, nil
}

// GetOrder returns nil without error when no order has the id.
func (s *Service) GetOrder(ctx context.Context, id int) (_ *domain.Order, err error) {
	ctx, run := s.ins.Begin(ctx, useCaseGet, "GetOrder", attribute.Int("order.id", id))
	defer func() { run.End(err) }()

	o, err := s.repo.Get(ctx, id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		run.SetStatus("NOT_FOUND")
		return nil, nil
	case err != nil:
		run.Fail("REPO_GET_FAILED")
		return nil, fmt.Errorf("order: get %d: %w", id, err)
	}
	return o, nil
}

// GetOrders lists orders in placement order. The result is never nil.
func (s *Service) GetOrders(ctx context.Context) (_ []domain.Order, err error) {
	ctx, run := s.ins.Begin(ctx, useCaseList, "ListOrders")
	defer func() { run.End(err) }()

	orders, err := s.repo.List(ctx)
	if err != nil {
		run.Fail("REPO_LIST_FAILED")
		return nil, fmt.Errorf("order: list: %w", err)
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	run.Annotate(observability.F("count", len(orders)))
	return orders, nil
}

// publishPlaced is best-effort; the order is already persisted.
func (s *Service) publishPlaced(ctx context.Context, o *domain.Order) error {
	if s.publisher == nil {
		return nil
	}
	evt := domain.NewPlacedEvent(o)

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	start := time.Now()
	outcome := application.OutcomeSuccess
	err := s.publisher.Publish(pubCtx, evt)
	if err == nil && pubCtx.Err() != nil {
		err = pubCtx.Err()
	}
	if err != nil {
		outcome = application.OutcomeError
	}
	s.ins.ObserveExternal(publishPeer, evt.EventName(), outcome, time.Since(start))
	return err
}
