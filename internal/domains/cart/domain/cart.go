// Package domain models the cart aggregate as the remote commerce platform
// owns it: snapshots are replaced wholesale from server responses, and the
// only partial edits are the optimistic client-side copies produced here.
package domain

import (
	"errors"
	"time"

	"github.com/emberline/storefront-api/internal/domains/catalog/domain"
	"github.com/emberline/storefront-api/internal/shared/money"
)

var (
	ErrEmptyMerchandiseID = errors.New("merchandise id is required")
	ErrEmptyLineID        = errors.New("line id is required")
	ErrNonPositiveQty     = errors.New("quantity must be a positive integer")
)

// ProductRef is the slim product reference carried on a cart line.
type ProductRef struct {
	ID            string
	Handle        string
	Title         string
	FeaturedImage *domain.Image
}

// Merchandise identifies the purchased variant on a cart line.
type Merchandise struct {
	ID              string
	Title           string
	SelectedOptions []domain.SelectedOption
	Product         ProductRef
}

// Line is a single cart entry. Its ID is stable across quantity updates but
// reissued by the platform when the line is removed and re-added.
type Line struct {
	ID          string
	Quantity    int
	Cost        money.Money
	Merchandise Merchandise
}

// Cost is the cart-level cost breakdown. Tax may be absent until the
// platform computes it.
type Cost struct {
	Subtotal money.Money
	Total    money.Money
	Tax      *money.Money
}

// Cart is an immutable-per-fetch snapshot of the remote cart.
type Cart struct {
	ID            string
	CheckoutURL   string
	TotalQuantity int
	Cost          Cost
	Lines         []Line
}

// Clone deep-copies the snapshot so optimistic edits never alias a
// previously published one.
func (c *Cart) Clone() *Cart {
	if c == nil {
		return nil
	}
	copied := *c
	copied.Lines = make([]Line, len(c.Lines))
	for i, line := range c.Lines {
		copied.Lines[i] = cloneLine(line)
	}
	if c.Cost.Tax != nil {
		tax := *c.Cost.Tax
		copied.Cost.Tax = &tax
	}
	return &copied
}

func cloneLine(line Line) Line {
	copied := line
	copied.Merchandise.SelectedOptions = append([]domain.SelectedOption{}, line.Merchandise.SelectedOptions...)
	if line.Merchandise.Product.FeaturedImage != nil {
		img := *line.Merchandise.Product.FeaturedImage
		copied.Merchandise.Product.FeaturedImage = &img
	}
	return copied
}

// WithLineQuantity returns an optimistic copy with the targeted line's
// quantity replaced. Totals and costs are left untouched; the next server
// snapshot supersedes them. Unknown line IDs yield an unchanged copy.
func (c *Cart) WithLineQuantity(lineID string, quantity int) *Cart {
	copied := c.Clone()
	if copied == nil {
		return nil
	}
	for i := range copied.Lines {
		if copied.Lines[i].ID == lineID {
			copied.Lines[i].Quantity = quantity
			break
		}
	}
	return copied
}

// WithoutLine returns an optimistic copy with the targeted line filtered out.
func (c *Cart) WithoutLine(lineID string) *Cart {
	copied := c.Clone()
	if copied == nil {
		return nil
	}
	lines := copied.Lines[:0]
	for _, line := range copied.Lines {
		if line.ID != lineID {
			lines = append(lines, line)
		}
	}
	copied.Lines = lines
	return copied
}

// FindLine returns the line with the given ID, or nil.
func (c *Cart) FindLine(lineID string) *Line {
	if c == nil {
		return nil
	}
	for i := range c.Lines {
		if c.Lines[i].ID == lineID {
			return &c.Lines[i]
		}
	}
	return nil
}

// LineInput requests that merchandise be added to a cart.
type LineInput struct {
	MerchandiseID string
	Quantity      int
}

// Validate enforces the line invariants.
func (in LineInput) Validate() error {
	if in.MerchandiseID == "" {
		return ErrEmptyMerchandiseID
	}
	if in.Quantity <= 0 {
		return ErrNonPositiveQty
	}
	return nil
}

// LineUpdate rewrites the quantity of an existing line.
type LineUpdate struct {
	LineID   string
	Quantity int
}

// Validate enforces the update invariants. A zero-or-below quantity is the
// removal path, never a valid update.
func (u LineUpdate) Validate() error {
	if u.LineID == "" {
		return ErrEmptyLineID
	}
	if u.Quantity <= 0 {
		return ErrNonPositiveQty
	}
	return nil
}

// Handle pairs the opaque remote cart identifier with its local expiry.
// The two values are persisted and cleared atomically as a pair.
type Handle struct {
	CartID    string
	ExpiresAt time.Time
}

// Expired reports whether the handle has outlived its expiry.
func (h Handle) Expired(now time.Time) bool {
	return now.After(h.ExpiresAt)
}
