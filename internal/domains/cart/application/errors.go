package application

import (
	"errors"

	"github.com/emberline/storefront-api/internal/domains/cart/ports"
)

// ErrInvalidInput signals the request failed validation before any network
// call was made.
var ErrInvalidInput = errors.New("invalid cart input")

// ErrCartNotFound is re-exported so callers need not import ports.
var ErrCartNotFound = ports.ErrCartNotFound
