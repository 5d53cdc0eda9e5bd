//go:build pact
// +build pact

package provider_test

import (
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	pacttest "github.com/emberline/storefront-api/test/pact"

	cartmemory "github.com/emberline/storefront-api/internal/domains/cart/adapters/memory"
	cartobs "github.com/emberline/storefront-api/internal/domains/cart/adapters/observability"
	cartapp "github.com/emberline/storefront-api/internal/domains/cart/application"
	cartdomain "github.com/emberline/storefront-api/internal/domains/cart/domain"
	catalogmemory "github.com/emberline/storefront-api/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/emberline/storefront-api/internal/domains/catalog/application"
	catalogdomain "github.com/emberline/storefront-api/internal/domains/catalog/domain"
	storefrontserver "github.com/emberline/storefront-api/server"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestStorefrontProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateCartBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			return nil, nil
		},
		pacttest.StateCartExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			if setup {
				app.carts.SeedCart(pacttest.ExistingCartID, cartdomain.LineInput{
					MerchandiseID: pacttest.SeededVariantID,
					Quantity:      2,
				})
			}
			return nil, nil
		},
		pacttest.StateCartMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.carts.DropCart(pacttest.MissingCartID)
			return nil, nil
		},
		pacttest.StateCatalogSeeded: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	carts  *cartmemory.Gateway
	server *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	carts := cartmemory.NewGateway()
	carts.SeedVariant(pacttest.SeededVariantID, pacttest.SeededVariantTitle, "24.00")
	carts.SeedVariant(pacttest.SeededVariant2, pacttest.SeededVariant2Title, "12.50")
	cartService := cartobs.New(cartapp.NewService(carts))

	catalog := catalogmemory.NewGateway()
	catalog.SeedProducts(
		catalogdomain.Product{ID: "gid://pact/Product/1", Handle: pacttest.ProductHandle, Title: "Ember Candle"},
		catalogdomain.Product{ID: "gid://pact/Product/2", Handle: "wax-melt-trio", Title: "Wax Melt Trio"},
	)
	catalog.SeedCollections(catalogdomain.Collection{
		ID:     "gid://pact/Collection/1",
		Handle: pacttest.CollectionHandle,
		Title:  "Bestsellers",
	})
	catalogService := catalogapp.NewService(catalog)

	router := storefrontserver.NewRouter(
		storefrontserver.NewCartAPI(cartService),
		storefrontserver.NewCatalogAPI(catalogService),
	)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{
		carts:  carts,
		server: server,
	}
}
