package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"

	cartlocalstore "github.com/emberline/storefront-api/internal/domains/cart/adapters/localstore"
	cartmemory "github.com/emberline/storefront-api/internal/domains/cart/adapters/memory"
	cartpostgres "github.com/emberline/storefront-api/internal/domains/cart/adapters/persistence/postgres"
	cartports "github.com/emberline/storefront-api/internal/domains/cart/ports"
	"github.com/emberline/storefront-api/internal/platform/migrations"
	platformobservability "github.com/emberline/storefront-api/internal/platform/observability"
	platformpostgres "github.com/emberline/storefront-api/internal/platform/postgres"
	cartactivities "github.com/emberline/storefront-api/internal/platform/temporal/activities/cart"
	cartworkflows "github.com/emberline/storefront-api/internal/platform/temporal/workflows/cart"
)

func main() {
	ctx := context.Background()
	const serviceName = "storefront-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	handles, trimmer, cleanupStores := buildMaintenanceStores(ctx, logger)
	defer cleanupStores()
	activities := cartactivities.NewActivities(handles, trimmer)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, cartworkflows.CartMaintenanceTaskQueue, worker.Options{})
	w.RegisterWorkflow(cartworkflows.CartMaintenanceWorkflow)
	w.RegisterActivityWithOptions(activities.PurgeExpiredHandles, activity.RegisterOptions{Name: cartactivities.PurgeExpiredHandlesActivityName})
	w.RegisterActivityWithOptions(activities.TrimActivityLog, activity.RegisterOptions{Name: cartactivities.TrimActivityLogActivityName})

	logger.Info("worker listening", slog.String("taskQueue", cartworkflows.CartMaintenanceTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

// buildMaintenanceStores mirrors the API's handle-store fallback chain. The
// activity trimmer only exists when postgres is configured; the workflow
// skips the trim otherwise.
func buildMaintenanceStores(ctx context.Context, logger *slog.Logger) (cartports.HandleStore, cartactivities.ActivityTrimmer, func()) {
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	if db != nil {
		if err := migrations.Run(db); err != nil {
			logger.Error("worker failed to run migrations", slog.String("error", err.Error()))
			cleanup()
			os.Exit(1)
		}
		logger.Info("worker maintenance stores configured with postgres")
		return cartpostgres.NewHandleStore(db), cartpostgres.NewActivityLog(db), cleanup
	}
	if path := os.Getenv("CART_HANDLE_DB_PATH"); path != "" {
		store, err := cartlocalstore.Open(path)
		if err == nil {
			logger.Info("worker handle store configured with sqlite", slog.String("path", path))
			return store, nil, func() { _ = store.Close() }
		}
		logger.Warn("worker failed to open local handle store, falling back to memory", slog.String("error", err.Error()))
	}
	logger.Warn("worker running against in-memory handle store; purges will be no-ops across restarts")
	return cartmemory.NewHandleStore(), nil, func() {}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
