package product

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Zhima-Mochi/minishop-catalog/internal/application"
	"github.com/Zhima-Mochi/minishop-catalog/internal/domain/cart"
	domoutbox "github.com/Zhima-Mochi/minishop-catalog/internal/domain/outbox"
	domain "github.com/Zhima-Mochi/minishop-catalog/internal/domain/product"
	"github.com/Zhima-Mochi/minishop-catalog/internal/observability"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

const (
	productService           = "product-service"
	publishPeer              = "outbox"
	publishTimeout           = 300 * time.Millisecond
	DefaultLowStockThreshold = 5

	useCaseList             = "product.list"
	useCaseGet              = "product.get"
	useCaseUpdateStock      = "product.update_stock"
	useCaseUpdateQuantities = "product.update_quantities"
	useCaseSave             = "product.save"
	useCaseDelete           = "product.delete"
)

// Message keys resolved through the Localizer.
const (
	KeyMissingName             = "MissingName"
	KeyMissingPrice            = "MissingPrice"
	KeyPriceNotANumber         = "PriceNotANumber"
	KeyPriceNotGreaterThanZero = "PriceNotGreaterThanZero"
	KeyMissingStock            = "MissingStock"
	KeyStockNotAnInteger       = "StockNotAnInteger"
	KeyStockNotGreaterThanZero = "StockNotGreaterThanZero"
)

var ErrInvalidArgument = errors.New("product: invalid argument")

// Localizer resolves a message key to display text.
type Localizer interface {
	Lookup(key string) string
}

// ViewModel is the form-facing projection of a product; Stock and Price stay textual.
type ViewModel struct {
	ID          int
	Name        string
	Description string
	Details     string
	Stock       string
	Price       string
}

type Option func(*Service)

// WithLowStockThreshold sets the remaining quantity at or below which a stock_low event is published.
func WithLowStockThreshold(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.lowStock = n
		}
	}
}

// Service exposes catalog operations for one shopping session.
type Service struct {
	cart      *cart.Cart
	repo      domain.Repository
	localizer Localizer
	publisher domoutbox.Publisher
	lowStock  int

	ins *application.Instruments
}

func NewService(
	c *cart.Cart,
	repo domain.Repository,
	localizer Localizer,
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
		localizer: localizer,
		publisher: publisher,
		lowStock:  DefaultLowStockThreshold,
		ins:       application.NewInstruments(tel, productService),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) GetAllProducts(ctx context.Context) (_ []domain.Product, err error) {
	ctx, run := s.ins.Begin(ctx, useCaseList, "ListProducts")
	defer func() { run.End(err) }()

	products, err := s.repo.List(ctx)
	if err != nil {
		run.Fail("REPO_LIST_FAILED")
		return nil, fmt.Errorf("product: list: %w", err)
	}
	run.Annotate(observability.F("count", len(products)))
	return products, nil
}

func (s *Service) GetAllProductsViewModel(ctx context.Context) ([]ViewModel, error) {
	products, err := s.GetAllProducts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ViewModel, 0, len(products))
	for i := range products {
		out = append(out, toViewModel(&products[i]))
	}
	return out, nil
}

// GetProductByID returns nil without error when no product has the id.
func (s *Service) GetProductByID(ctx context.Context, id int) (_ *domain.Product, err error) {
	ctx, run := s.ins.Begin(ctx, useCaseGet, "GetProduct", attribute.Int("product.id", id))
	defer func() { run.End(err) }()

	p, err := s.repo.Get(ctx, id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		run.SetStatus("NOT_FOUND")
		return nil, nil
	case err != nil:
		run.Fail("REPO_GET_FAILED")
		return nil, fmt.Errorf("product: get %d: %w", id, err)
	}
	return p, nil
}

func (s *Service) GetProductByIDViewModel(ctx context.Context, id int) (*ViewModel, error) {
	p, err := s.GetProductByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	vm := toViewModel(p)
	return &vm, nil
}

// UpdateProductStocks removes quantity units from a single product.
func (s *Service) UpdateProductStocks(ctx context.Context, id, quantity int) (err error) {
	ctx, run := s.ins.Begin(ctx, useCaseUpdateStock, "UpdateProductStocks",
		attribute.Int("product.id", id),
		attribute.Int("quantity", quantity),
	)
	defer func() { run.End(err) }()

	p, err := s.repo.DecrementStock(ctx, id, quantity)
	if err != nil {
		run.Fail(stockStatus(err))
		return fmt.Errorf("product: update stock %d: %w", id, err)
	}
	s.alertIfLow(ctx, run, []domain.Product{*p})
	return nil
}

// UpdateProductQuantities deducts every cart line from stock in one all-or-nothing step.
func (s *Service) UpdateProductQuantities(ctx context.Context) error {
	return s.DeductStock(ctx, s.cart.Adjustments())
}

// DeductStock applies adj in one all-or-nothing step. Callers that already hold a
// snapshot of the cart pass it here so the deduction matches what they recorded.
func (s *Service) DeductStock(ctx context.Context, adj []domain.StockAdjustment) (err error) {
	ctx, run := s.ins.Begin(ctx, useCaseUpdateQuantities, "UpdateProductQuantities",
		attribute.Int("cart.lines", len(adj)),
	)
	defer func() { run.End(err) }()

	if len(adj) == 0 {
		run.SetStatus("EMPTY_CART")
		return nil
	}

	updated, err := s.repo.DecrementStocks(ctx, adj)
	if err != nil {
		run.Fail(stockStatus(err))
		return fmt.Errorf("product: update quantities: %w", err)
	}
	run.Annotate(observability.F("products", len(updated)))
	s.alertIfLow(ctx, run, updated)
	return nil
}

// CheckProductModelErrors runs every rule and returns the localized messages of those that fail.
func (s *Service) CheckProductModelErrors(vm ViewModel) []string {
	var keys []string

	if strings.TrimSpace(vm.Name) == "" {
		keys = append(keys, KeyMissingName)
	}

	price := strings.TrimSpace(vm.Price)
	if price == "" {
		keys = append(keys, KeyMissingPrice)
	}
	if d, err := decimal.NewFromString(price); err != nil {
		keys = append(keys, KeyPriceNotANumber)
	} else if !d.IsPositive() {
		keys = append(keys, KeyPriceNotGreaterThanZero)
	}

	stock := strings.TrimSpace(vm.Stock)
	if stock == "" {
		keys = append(keys, KeyMissingStock)
	}
	if n, err := strconv.Atoi(stock); err != nil {
		keys = append(keys, KeyStockNotAnInteger)
	} else if n <= 0 {
		keys = append(keys, KeyStockNotGreaterThanZero)
	}

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, s.lookup(k))
	}
	return msgs
}

// SaveProduct inserts a new product built from the view model.
func (s *Service) SaveProduct(ctx context.Context, vm *ViewModel) (_ *domain.Product, err error) {
	ctx, run := s.ins.Begin(ctx, useCaseSave, "SaveProduct")
	defer func() { run.End(err) }()

	if vm == nil {
		run.Fail("NIL_PRODUCT")
		return nil, fmt.Errorf("%w: product is required", ErrInvalidArgument)
	}
	price, perr := decimal.NewFromString(strings.TrimSpace(vm.Price))
	if perr != nil {
		run.Fail("PRICE_INVALID")
		return nil, fmt.Errorf("%w: price %q: %v", ErrInvalidArgument, vm.Price, perr)
	}
	stock, serr := strconv.Atoi(strings.TrimSpace(vm.Stock))
	if serr != nil {
		run.Fail("STOCK_INVALID")
		return nil, fmt.Errorf("%w: stock %q: %v", ErrInvalidArgument, vm.Stock, serr)
	}

	entity, derr := domain.New(strings.TrimSpace(vm.Name), vm.Description, vm.Details, stock, price)
	if derr != nil {
		run.Fail("DOMAIN_CONSTRUCTION_FAILED")
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, derr)
	}

	saved, err := s.repo.Insert(ctx, entity)
	if err != nil {
		run.Fail("REPO_INSERT_FAILED")
		return nil, fmt.Errorf("product: insert: %w", err)
	}
	run.Span().SetAttributes(attribute.Int("product.id", saved.ID))
	run.Annotate(observability.F("product_id", saved.ID))
	return saved, nil
}

// DeleteProduct drops the product from the session cart and then from the store.
func (s *Service) DeleteProduct(ctx context.Context, id int) (err error) {
	ctx, run := s.ins.Begin(ctx, useCaseDelete, "DeleteProduct", attribute.Int("product.id", id))
	defer func() { run.End(err) }()

	p, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			run.Fail("NOT_FOUND")
		} else {
			run.Fail("REPO_GET_FAILED")
		}
		return fmt.Errorf("product: delete %d: %w", id, err)
	}

	s.cart.RemoveLine(*p)

	if err = s.repo.Delete(ctx, id); err != nil {
		run.Fail("REPO_DELETE_FAILED")
		return fmt.Errorf("product: delete %d: %w", id, err)
	}
	return nil
}

// alertIfLow publishes a stock_low event per product at or below the threshold. Failures are logged only.
func (s *Service) alertIfLow(ctx context.Context, run *application.Run, products []domain.Product) {
	if s.publisher == nil {
		return
	}
	for _, p := range products {
		if p.Quantity > s.lowStock {
			continue
		}
		evt := domain.NewStockLowEvent(p, s.lowStock)

		pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
		start := time.Now()
		outcome := application.OutcomeSuccess
		perr := s.publisher.Publish(pubCtx, evt)
		if perr == nil && pubCtx.Err() != nil {
			perr = pubCtx.Err()
		}
		cancel()

		if perr != nil {
			outcome = application.OutcomeError
			run.Span().RecordError(perr)
			run.Logger().Warn("event_publish_failed",
				observability.F("event", evt.EventName()),
				observability.F("product_id", p.ID),
				observability.F("error", perr.Error()),
			)
		}
		s.ins.ObserveExternal(publishPeer, evt.EventName(), outcome, time.Since(start))
	}
}

func (s *Service) lookup(key string) string {
	if s.localizer == nil {
		return key
	}
	return s.localizer.Lookup(key)
}

func stockStatus(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrInvalidQuantity):
		return "QUANTITY_INVALID"
	default:
		return "REPO_UPDATE_FAILED"
	}
}

func toViewModel(p *domain.Product) ViewModel {
	return ViewModel{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Details:     p.Details,
		Stock:       strconv.Itoa(p.Quantity),
		Price:       p.Price.String(),
	}
}
