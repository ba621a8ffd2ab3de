package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appOrder "github.com/Zhima-Mochi/minishop-catalog/internal/application/order"
	appProduct "github.com/Zhima-Mochi/minishop-catalog/internal/application/product"
	"github.com/Zhima-Mochi/minishop-catalog/internal/domain/cart"
	domorder "github.com/Zhima-Mochi/minishop-catalog/internal/domain/order"
	domproduct "github.com/Zhima-Mochi/minishop-catalog/internal/domain/product"
	"github.com/Zhima-Mochi/minishop-catalog/internal/infrastructure/gormstore"
	"github.com/Zhima-Mochi/minishop-catalog/internal/infrastructure/i18n"
	"github.com/Zhima-Mochi/minishop-catalog/internal/infrastructure/memory"
	infraobs "github.com/Zhima-Mochi/minishop-catalog/internal/infrastructure/observability"
	"github.com/Zhima-Mochi/minishop-catalog/internal/infrastructure/observability/oteltrace"
	"github.com/Zhima-Mochi/minishop-catalog/internal/infrastructure/observability/zaplogger"
	"github.com/Zhima-Mochi/minishop-catalog/internal/infrastructure/outbox"
	"github.com/Zhima-Mochi/minishop-catalog/internal/infrastructure/seed"
	"github.com/Zhima-Mochi/minishop-catalog/internal/observability"
	"github.com/Zhima-Mochi/minishop-catalog/internal/pkg/config"
	"github.com/Zhima-Mochi/minishop-catalog/internal/pkg/logging"
	httppresentation "github.com/Zhima-Mochi/minishop-catalog/internal/presentation/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

type stores struct {
	products domproduct.Repository
	orders   domorder.Repository
	checks   map[string]httppresentation.Check
	close    func() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	baseLogger := logging.MustNewLogger(logging.Options{
		Service: cfg.ServiceName,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		LogFile: cfg.LogFile,
	})
	defer func() { _ = baseLogger.Sync() }()
	zap.ReplaceGlobals(baseLogger)

	systemLogger := logging.WithTrace(baseLogger, logging.SystemTraceID, logging.SystemSpanID)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	tel := infraobs.NewWithPrometheus(
		oteltrace.New(cfg.ServiceName),
		zaplogger.New(baseLogger),
		registry,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(cfg)
	if err != nil {
		systemLogger.Fatal("store_open_failed", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer func() {
		if err := st.close(); err != nil {
			systemLogger.Error("store_close_failed", zap.Error(err))
		}
	}()

	if cfg.SeedCatalog {
		if err := seedIfEmpty(ctx, st.products); err != nil {
			systemLogger.Fatal("catalog_seed_failed", zap.Error(err))
		}
	}

	// In-memory event bus carrying stock and order events to the workers.
	bus := outbox.NewBus(tel.Logger())
	bus.Start(ctx)
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		bus.Stop(stopCtx)
	}()

	appProduct.NewStockAlertWorker(bus, tel).Start()
	appOrder.NewWorker(st.orders, bus, tel).Start()

	localizer := i18n.New(cfg.Locale)
	products := newProductService(nil, st, localizer, bus, tel, cfg)
	catalog, err := products.GetAllProducts(ctx)
	if err != nil {
		systemLogger.Fatal("catalog_load_failed", zap.Error(err))
	}
	systemLogger.Info("catalog_ready",
		zap.Int("products", len(catalog)),
		zap.String("store", cfg.StoreDriver),
		zap.String("locale", localizer.Locale()),
	)

	handler := httppresentation.NewHandler(registry, st.checks, tel.Logger(), tel)
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		systemLogger.Info("http_server_start",
			zap.String("addr", server.Addr),
		)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			systemLogger.Error("http_server_error",
				zap.Error(err),
			)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		systemLogger.Error("http_server_shutdown_error",
			zap.Error(err),
		)
	} else {
		systemLogger.Info("http_server_stopped")
	}
}

// newProductService binds the catalog operations to the configured store. A nil cart gets a fresh one.
func newProductService(
	c *cart.Cart,
	st stores,
	localizer appProduct.Localizer,
	bus *outbox.Bus,
	tel observability.Observability,
	cfg config.Config,
) *appProduct.Service {
	return appProduct.NewService(c, st.products, localizer, bus, tel,
		appProduct.WithLowStockThreshold(cfg.LowStockThreshold),
	)
}

func openStores(cfg config.Config) (stores, error) {
	switch cfg.StoreDriver {
	case config.StoreSQLite:
		db, err := gormstore.Open(cfg.SQLiteDSN)
		if err != nil {
			return stores{}, err
		}
		return stores{
			products: gormstore.NewProductRepository(db),
			orders:   gormstore.NewOrderRepository(db),
			checks: map[string]httppresentation.Check{
				"sqlite": func(ctx context.Context) error { return gormstore.Ping(ctx, db) },
			},
			close: func() error { return gormstore.Close(db) },
		}, nil
	default:
		return stores{
			products: memory.NewProductRepository(),
			orders:   memory.NewOrderRepository(),
			close:    func() error { return nil },
		}, nil
	}
}

// seedIfEmpty loads the reference catalog unless a persistent store already holds products.
func seedIfEmpty(ctx context.Context, repo domproduct.Repository) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	return seed.Catalog(ctx, repo)
}
