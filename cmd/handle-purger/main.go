// Command handle-purger runs a one-shot purge of expired cart handles,
// intended for cron use when no Temporal cluster is deployed.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	cartlocalstore "github.com/emberline/storefront-api/internal/domains/cart/adapters/localstore"
	cartpostgres "github.com/emberline/storefront-api/internal/domains/cart/adapters/persistence/postgres"
	cartports "github.com/emberline/storefront-api/internal/domains/cart/ports"
	"github.com/emberline/storefront-api/internal/platform/migrations"
	platformpostgres "github.com/emberline/storefront-api/internal/platform/postgres"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	store, cleanup := openHandleStore(ctx, logger)
	defer cleanup()
	if store == nil {
		log.Fatal("POSTGRES_DSN or CART_HANDLE_DB_PATH must be set; nothing to purge")
	}

	purged, err := store.PurgeExpired(ctx, time.Now())
	if err != nil {
		log.Fatalf("failed to purge cart handles: %v", err)
	}
	log.Printf("cart handle purge completed, removed %d", purged)
}

func openHandleStore(ctx context.Context, logger *slog.Logger) (cartports.HandleStore, func()) {
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	if db != nil {
		if err := migrations.Run(db); err != nil {
			cleanup()
			log.Fatalf("failed to run migrations: %v", err)
		}
		return cartpostgres.NewHandleStore(db), cleanup
	}
	if path := strings.TrimSpace(os.Getenv("CART_HANDLE_DB_PATH")); path != "" {
		store, err := cartlocalstore.Open(path)
		if err != nil {
			log.Fatalf("failed to open local handle store: %v", err)
		}
		return store, func() { _ = store.Close() }
	}
	return nil, func() {}
}
