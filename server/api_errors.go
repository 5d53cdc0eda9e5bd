package storefrontserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	cartapp "github.com/emberline/storefront-api/internal/domains/cart/application"
	catalogapp "github.com/emberline/storefront-api/internal/domains/catalog/application"
	catalogports "github.com/emberline/storefront-api/internal/domains/catalog/ports"
	apierrors "github.com/emberline/storefront-api/internal/shared/errors"
)

// respondServiceError maps application errors onto RFC 7807 responses:
// validation failures become 400, typed misses 404, everything else is an
// upstream failure.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cartapp.ErrInvalidInput), errors.Is(err, catalogapp.ErrInvalidInput):
		apierrors.Respond(c, apierrors.NewValidationProblem(err.Error()))
	case errors.Is(err, cartapp.ErrCartNotFound):
		apierrors.Respond(c, apierrors.ErrNotFound.WithDetail("cart not found"))
	case errors.Is(err, catalogports.ErrNotFound):
		apierrors.Respond(c, apierrors.ErrNotFound.WithDetail(err.Error()))
	default:
		apierrors.Respond(c, apierrors.ErrUpstream.WithDetail(err.Error()))
	}
}

// respondBindError reports a malformed request body.
func respondBindError(c *gin.Context, err error) {
	apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
}
