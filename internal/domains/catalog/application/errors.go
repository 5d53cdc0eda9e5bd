package application

import (
	"errors"

	"github.com/emberline/storefront-api/internal/domains/catalog/ports"
)

// ErrInvalidInput signals the request violated a catalog constraint.
var ErrInvalidInput = errors.New("invalid catalog input")

// ErrNotFound is re-exported so callers need not import ports.
var ErrNotFound = ports.ErrNotFound
