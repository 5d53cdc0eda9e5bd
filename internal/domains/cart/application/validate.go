package application

import (
	"fmt"
	"strings"

	"github.com/emberline/storefront-api/internal/domains/cart/domain"
)

// violations aggregates field-path messages so a caller sees every problem
// in one pass, e.g. "lines[1].quantity: must be a positive integer".
type violations struct {
	messages []string
}

func (v *violations) addf(path, reason string, args ...any) {
	v.messages = append(v.messages, path+": "+fmt.Sprintf(reason, args...))
}

func (v *violations) err() error {
	if len(v.messages) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(v.messages, ", "))
}

func validateCartID(v *violations, cartID string) {
	if strings.TrimSpace(cartID) == "" {
		v.addf("cartId", "cart ID is required")
	}
}

// validateLineInputs checks a batch of add/create lines. The whole batch is
// rejected when any element is invalid.
func validateLineInputs(v *violations, lines []domain.LineInput, required bool) {
	if len(lines) == 0 {
		if required {
			v.addf("lines", "at least one line item is required")
		}
		return
	}
	for i, line := range lines {
		if strings.TrimSpace(line.MerchandiseID) == "" {
			v.addf(fmt.Sprintf("lines[%d].merchandiseId", i), "merchandise ID is required")
		}
		if line.Quantity <= 0 {
			v.addf(fmt.Sprintf("lines[%d].quantity", i), "must be a positive integer")
		}
	}
}

func validateLineUpdates(v *violations, lines []domain.LineUpdate) {
	if len(lines) == 0 {
		v.addf("lines", "at least one line item is required")
		return
	}
	for i, line := range lines {
		if strings.TrimSpace(line.LineID) == "" {
			v.addf(fmt.Sprintf("lines[%d].id", i), "line ID is required")
		}
		if line.Quantity <= 0 {
			v.addf(fmt.Sprintf("lines[%d].quantity", i), "must be a positive integer")
		}
	}
}

func validateLineIDs(v *violations, lineIDs []string) {
	if len(lineIDs) == 0 {
		v.addf("lineIds", "at least one line ID is required")
		return
	}
	for i, id := range lineIDs {
		if strings.TrimSpace(id) == "" {
			v.addf(fmt.Sprintf("lineIds[%d]", i), "line ID is required")
		}
	}
}
