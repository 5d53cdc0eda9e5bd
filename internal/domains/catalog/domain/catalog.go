// Package domain holds read-only catalog projections of the remote commerce
// platform. Nothing here is ever mutated locally.
package domain

import (
	"github.com/emberline/storefront-api/internal/shared/money"
)

// Image is a catalog image with display metadata.
type Image struct {
	ID      string
	URL     string
	AltText string
	Width   int
	Height  int
}

// SelectedOption names one axis of a variant (e.g. Size / M).
type SelectedOption struct {
	Name  string
	Value string
}

// Variant is a purchasable configuration of a product.
type Variant struct {
	ID                string
	Title             string
	AvailableForSale  bool
	QuantityAvailable int
	Price             money.Money
	CompareAtPrice    *money.Money
	SelectedOptions   []SelectedOption
	Image             *Image
}

// OnSale reports whether the variant's compare-at price exceeds its price.
func (v Variant) OnSale() bool {
	return money.IsOnSale(v.Price, v.CompareAtPrice)
}

// PriceRange spans the cheapest and most expensive variant of a product.
type PriceRange struct {
	MinVariantPrice money.Money
	MaxVariantPrice money.Money
}

// Product is a catalog product with its image and variant sets.
type Product struct {
	ID               string
	Handle           string
	Title            string
	Description      string
	DescriptionHTML  string
	AvailableForSale bool
	Tags             []string
	Vendor           string
	ProductType      string
	PriceRange       PriceRange
	Images           []Image
	Variants         []Variant
}

// Collection groups products under a handle; Products holds the page
// requested from the platform, empty for list reads.
type Collection struct {
	ID              string
	Handle          string
	Title           string
	Description     string
	DescriptionHTML string
	Image           *Image
	Products        []Product
}
