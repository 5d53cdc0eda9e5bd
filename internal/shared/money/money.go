// Package money models amounts as decimal strings paired with an ISO 4217
// currency code, the shape the commerce platform returns them in.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an immutable amount/currency pair. The amount stays a decimal
// string end to end; parsing never depends on the process locale.
type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

var (
	ErrEmptyAmount      = errors.New("amount is required")
	ErrInvalidAmount    = errors.New("amount is not a decimal number")
	ErrCurrencyMismatch = errors.New("currency codes differ")
)

// New validates the pair and returns it unchanged.
func New(amount, currencyCode string) (Money, error) {
	m := Money{Amount: strings.TrimSpace(amount), CurrencyCode: strings.ToUpper(strings.TrimSpace(currencyCode))}
	if _, err := m.Decimal(); err != nil {
		return Money{}, err
	}
	return m, nil
}

// Zero returns a zero amount in the given currency.
func Zero(currencyCode string) Money {
	return Money{Amount: "0.0", CurrencyCode: strings.ToUpper(strings.TrimSpace(currencyCode))}
}

// Decimal parses the amount.
func (m Money) Decimal() (decimal.Decimal, error) {
	if strings.TrimSpace(m.Amount) == "" {
		return decimal.Decimal{}, ErrEmptyAmount
	}
	d, err := decimal.NewFromString(m.Amount)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrInvalidAmount, m.Amount)
	}
	return d, nil
}

// IsZero reports whether the amount parses to zero. Unparseable amounts are
// not zero.
func (m Money) IsZero() bool {
	d, err := m.Decimal()
	return err == nil && d.IsZero()
}

// Format renders the amount with two fraction digits and the currency code,
// e.g. "42.50 USD".
func (m Money) Format() string {
	d, err := m.Decimal()
	if err != nil {
		return strings.TrimSpace(m.Amount + " " + m.CurrencyCode)
	}
	return d.StringFixed(2) + " " + m.CurrencyCode
}

// Add sums two amounts of the same currency.
func Add(a, b Money) (Money, error) {
	if a.CurrencyCode != b.CurrencyCode {
		return Money{}, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, a.CurrencyCode, b.CurrencyCode)
	}
	da, err := a.Decimal()
	if err != nil {
		return Money{}, err
	}
	db, err := b.Decimal()
	if err != nil {
		return Money{}, err
	}
	return Money{Amount: da.Add(db).String(), CurrencyCode: a.CurrencyCode}, nil
}

// IsOnSale reports whether compareAt is strictly greater than price. A
// missing or unparseable compare-at price means no sale.
func IsOnSale(price Money, compareAt *Money) bool {
	if compareAt == nil {
		return false
	}
	p, err := price.Decimal()
	if err != nil {
		return false
	}
	c, err := compareAt.Decimal()
	if err != nil {
		return false
	}
	return c.GreaterThan(p)
}
