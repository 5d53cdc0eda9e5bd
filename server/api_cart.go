package storefrontserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	carthttpmapper "github.com/emberline/storefront-api/internal/domains/cart/adapters/http/mapper"
	cartports "github.com/emberline/storefront-api/internal/domains/cart/ports"
	apierrors "github.com/emberline/storefront-api/internal/shared/errors"
)

// CartAPI wires HTTP transport with the cart bounded context service.
type CartAPI struct {
	service cartports.Service
}

// NewCartAPI creates a CartAPI backed by the provided service.
func NewCartAPI(service cartports.Service) CartAPI {
	return CartAPI{service: service}
}

type cartResponse struct {
	Cart *carthttpmapper.Cart `json:"cart"`
}

// Get /cart?cartId=
// Fetch the current cart snapshot
func (api *CartAPI) GetCart(c *gin.Context) {
	cartID := strings.TrimSpace(c.Query("cartId"))
	if cartID == "" {
		apierrors.Respond(c, apierrors.NewValidationProblem("cartId: cart ID is required"))
		return
	}
	cart, err := api.service.GetCart(c.Request.Context(), cartID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartResponse{Cart: carthttpmapper.FromCart(cart)})
}

// Post /cart
// Create a cart, optionally seeded with lines
func (api *CartAPI) CreateCart(c *gin.Context) {
	var payload carthttpmapper.CreateCartRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	cart, err := api.service.CreateCart(c.Request.Context(), carthttpmapper.ToLineInputs(payload.Lines))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartResponse{Cart: carthttpmapper.FromCart(cart)})
}

// Post /cart/add
// Append lines to an existing cart
func (api *CartAPI) AddLines(c *gin.Context) {
	var payload carthttpmapper.AddLinesRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	cart, err := api.service.AddLines(c.Request.Context(), payload.CartID, carthttpmapper.ToLineInputs(payload.Lines))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartResponse{Cart: carthttpmapper.FromCart(cart)})
}

// Post /cart/update
// Rewrite quantities on existing lines
func (api *CartAPI) UpdateLines(c *gin.Context) {
	var payload carthttpmapper.UpdateLinesRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	cart, err := api.service.UpdateLines(c.Request.Context(), payload.CartID, carthttpmapper.ToLineUpdates(payload.Lines))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartResponse{Cart: carthttpmapper.FromCart(cart)})
}

// Post /cart/remove
// Delete lines by ID
func (api *CartAPI) RemoveLines(c *gin.Context) {
	var payload carthttpmapper.RemoveLinesRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	cart, err := api.service.RemoveLines(c.Request.Context(), payload.CartID, payload.LineIDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartResponse{Cart: carthttpmapper.FromCart(cart)})
}
