package storefrontserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	cataloghttpmapper "github.com/emberline/storefront-api/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/emberline/storefront-api/internal/domains/catalog/ports"
	apierrors "github.com/emberline/storefront-api/internal/shared/errors"
)

// CatalogAPI wires HTTP transport with the catalog bounded context service.
type CatalogAPI struct {
	service catalogports.Service
}

// NewCatalogAPI creates a CatalogAPI backed by the provided service.
func NewCatalogAPI(service catalogports.Service) CatalogAPI {
	return CatalogAPI{service: service}
}

// parseLimit reads the optional limit query parameter; absent means zero,
// which the service replaces with its default.
func parseLimit(c *gin.Context) (int, bool) {
	raw := strings.TrimSpace(c.Query("limit"))
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		apierrors.Respond(c, apierrors.NewValidationProblem("limit: must be an integer"))
		return 0, false
	}
	return limit, true
}

// Get /products?handle=&limit=
// List products, or fetch one by handle
func (api *CatalogAPI) GetProducts(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}
	if handle := strings.TrimSpace(c.Query("handle")); handle != "" {
		product, err := api.service.GetProduct(c.Request.Context(), handle)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"product": cataloghttpmapper.FromProduct(product)})
		return
	}
	products, err := api.service.ListProducts(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": cataloghttpmapper.FromProductList(products)})
}

// Get /collections?handle=&limit=
// List collections, or fetch one by handle with a product page
func (api *CatalogAPI) GetCollections(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}
	if handle := strings.TrimSpace(c.Query("handle")); handle != "" {
		collection, err := api.service.GetCollection(c.Request.Context(), handle, limit)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"collection": cataloghttpmapper.FromCollection(collection)})
		return
	}
	collections, err := api.service.ListCollections(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"collections": cataloghttpmapper.FromCollectionList(collections)})
}
