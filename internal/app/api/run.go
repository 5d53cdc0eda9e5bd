// Package api boots the storefront HTTP API process.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	storefrontserver "github.com/emberline/storefront-api/server"

	commerceclient "github.com/emberline/storefront-api/internal/clients/graphql/commerce"
	cartcommerce "github.com/emberline/storefront-api/internal/domains/cart/adapters/commerce"
	cartlocalstore "github.com/emberline/storefront-api/internal/domains/cart/adapters/localstore"
	cartmemory "github.com/emberline/storefront-api/internal/domains/cart/adapters/memory"
	cartobs "github.com/emberline/storefront-api/internal/domains/cart/adapters/observability"
	cartpostgres "github.com/emberline/storefront-api/internal/domains/cart/adapters/persistence/postgres"
	cartworkflows "github.com/emberline/storefront-api/internal/domains/cart/adapters/workflows"
	cartapp "github.com/emberline/storefront-api/internal/domains/cart/application"
	cartports "github.com/emberline/storefront-api/internal/domains/cart/ports"
	catalogcache "github.com/emberline/storefront-api/internal/domains/catalog/adapters/cache"
	catalogcommerce "github.com/emberline/storefront-api/internal/domains/catalog/adapters/commerce"
	catalogmemory "github.com/emberline/storefront-api/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/emberline/storefront-api/internal/domains/catalog/application"
	catalogports "github.com/emberline/storefront-api/internal/domains/catalog/ports"
	"github.com/emberline/storefront-api/internal/platform/migrations"
	platformobservability "github.com/emberline/storefront-api/internal/platform/observability"
	platformpostgres "github.com/emberline/storefront-api/internal/platform/postgres"
	temporalworkflows "github.com/emberline/storefront-api/internal/platform/temporal/workflows/cart"
)

// Run boots the storefront HTTP API with observability, gateways, stores,
// and maintenance wired.
func Run(ctx context.Context) error {
	const serviceName = "storefront-api"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	db, cleanupDB := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanupDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	catalogGateway, cartGateway := buildGateways(cfg, logger)

	catalogService := catalogapp.NewService(
		catalogcache.NewGateway(catalogGateway, catalogcache.WithTTL(cfg.CatalogCacheTTL)),
	)

	obsOptions := []cartobs.Option{
		cartobs.WithLogger(logger),
		cartobs.WithTracer(instruments.Tracer("internal.cart.application")),
		cartobs.WithMeter(instruments.Meter("internal.cart.application")),
	}
	if db != nil {
		obsOptions = append(obsOptions, cartobs.WithActivityRecorder(cartpostgres.NewActivityLog(db)))
	}
	cartService := cartobs.New(cartapp.NewService(cartGateway), obsOptions...)

	handleStore, cleanupHandles := buildHandleStore(cfg, db, logger)
	defer cleanupHandles()

	maintenance := cartports.MaintenanceOrchestrator(cartworkflows.NewInlineCartMaintenance(handleStore))
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal maintenance unavailable, purging inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		maintenance = cartworkflows.NewTemporalCartMaintenance(temporalClient, temporalworkflows.DefaultActivityRetention)
		logger.Info("Temporal maintenance enabled", slog.String("namespace", cfg.TemporalNamespace))
	}
	if cfg.PurgeIntervalMinutes > 0 {
		go runPurgeLoop(ctx, maintenance, time.Duration(cfg.PurgeIntervalMinutes)*time.Minute, logger)
	}

	router := storefrontserver.NewRouter(
		storefrontserver.NewCartAPI(cartService),
		storefrontserver.NewCatalogAPI(catalogService),
		otelgin.Middleware(serviceName),
	)
	addr := ":" + cfg.Port
	logger.Info("storefront API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("storefront API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// buildGateways dials the commerce platform when configured and falls back
// to in-memory fixtures otherwise, keeping local development self-contained.
func buildGateways(cfg Config, logger *slog.Logger) (catalogports.Gateway, cartports.Gateway) {
	if !cfg.CommerceConfigured() {
		logger.Warn("COMMERCE_STORE_DOMAIN/COMMERCE_API_TOKEN not set, serving in-memory fixtures")
		return catalogmemory.NewGateway(), cartmemory.NewGateway()
	}
	client, err := commerceclient.New(cfg.CommerceStoreDomain, cfg.CommerceAPIVersion, cfg.CommerceAccessToken)
	if err != nil {
		logger.Warn("failed to build commerce client, serving in-memory fixtures", slog.String("error", err.Error()))
		return catalogmemory.NewGateway(), cartmemory.NewGateway()
	}
	logger.Info("commerce gateways configured", slog.String("store", cfg.CommerceStoreDomain))
	return catalogcommerce.NewGateway(client), cartcommerce.NewGateway(client)
}

// buildHandleStore prefers PostgreSQL, then a local SQLite file, then memory.
func buildHandleStore(cfg Config, db *gorm.DB, logger *slog.Logger) (cartports.HandleStore, func()) {
	if db != nil {
		logger.Info("cart handle store configured with postgres")
		return cartpostgres.NewHandleStore(db), func() {}
	}
	if cfg.HandleDBPath != "" {
		store, err := cartlocalstore.Open(cfg.HandleDBPath)
		if err != nil {
			logger.Warn("failed to open local handle store, falling back to memory", slog.String("error", err.Error()))
			return cartmemory.NewHandleStore(), func() {}
		}
		logger.Info("cart handle store configured with sqlite", slog.String("path", cfg.HandleDBPath))
		return store, func() { _ = store.Close() }
	}
	logger.Warn("no durable handle store configured, using memory")
	return cartmemory.NewHandleStore(), func() {}
}

func runPurgeLoop(ctx context.Context, maintenance cartports.MaintenanceOrchestrator, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purged, err := maintenance.PurgeExpiredHandles(ctx)
			if err != nil {
				logger.Warn("handle purge failed", slog.String("error", err.Error()))
				continue
			}
			logger.Info("expired cart handles purged", slog.Int64("purged", purged))
		}
	}
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	logger := workerlog.NewStructuredLogger(effectiveLogger(instruments))
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    logger,
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
