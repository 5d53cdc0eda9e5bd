// Package storefrontserver exposes the storefront HTTP surface: cart
// operations and catalog reads, with problem+json error bodies.
package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route binds an HTTP method and path to a handler.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
}

// Routes is the list of the server's routes.
type Routes []Route

// NewRouter returns a gin engine with all API routes attached. Middlewares
// (logging, tracing, recovery) are appended in the order given.
func NewRouter(cartAPI CartAPI, catalogAPI CatalogAPI, middlewares ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	for _, middleware := range middlewares {
		if middleware != nil {
			router.Use(middleware)
		}
	}

	routes := Routes{
		{
			Name:        "GetCart",
			Method:      http.MethodGet,
			Pattern:     "/cart",
			HandlerFunc: cartAPI.GetCart,
		},
		{
			Name:        "CreateCart",
			Method:      http.MethodPost,
			Pattern:     "/cart",
			HandlerFunc: cartAPI.CreateCart,
		},
		{
			Name:        "AddCartLines",
			Method:      http.MethodPost,
			Pattern:     "/cart/add",
			HandlerFunc: cartAPI.AddLines,
		},
		{
			Name:        "UpdateCartLines",
			Method:      http.MethodPost,
			Pattern:     "/cart/update",
			HandlerFunc: cartAPI.UpdateLines,
		},
		{
			Name:        "RemoveCartLines",
			Method:      http.MethodPost,
			Pattern:     "/cart/remove",
			HandlerFunc: cartAPI.RemoveLines,
		},
		{
			Name:        "GetProducts",
			Method:      http.MethodGet,
			Pattern:     "/products",
			HandlerFunc: catalogAPI.GetProducts,
		},
		{
			Name:        "GetCollections",
			Method:      http.MethodGet,
			Pattern:     "/collections",
			HandlerFunc: catalogAPI.GetCollections,
		},
	}

	for _, route := range routes {
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}

	return router
}
