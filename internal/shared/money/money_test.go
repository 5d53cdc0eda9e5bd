package money

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_RejectsNonDecimal(t *testing.T) {
	_, err := New("12,50", "EUR")
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = New("", "EUR")
	require.ErrorIs(t, err, ErrEmptyAmount)
}

func TestNew_NormalizesCurrency(t *testing.T) {
	m, err := New(" 19.99", " usd ")
	require.NoError(t, err)
	require.Equal(t, "19.99", m.Amount)
	require.Equal(t, "USD", m.CurrencyCode)
}

func TestFormat(t *testing.T) {
	m, err := New("42.5", "USD")
	require.NoError(t, err)
	require.Equal(t, "42.50 USD", m.Format())
}

func TestAdd_CurrencyMismatch(t *testing.T) {
	a := Money{Amount: "1.00", CurrencyCode: "USD"}
	b := Money{Amount: "1.00", CurrencyCode: "EUR"}
	_, err := Add(a, b)
	require.ErrorIs(t, err, ErrCurrencyMismatch)
}

func TestAdd(t *testing.T) {
	a := Money{Amount: "10.25", CurrencyCode: "USD"}
	b := Money{Amount: "0.75", CurrencyCode: "USD"}
	sum, err := Add(a, b)
	require.NoError(t, err)
	require.Equal(t, "11", sum.Amount)
	require.Equal(t, "USD", sum.CurrencyCode)
}

func TestIsOnSale(t *testing.T) {
	price := Money{Amount: "30.00", CurrencyCode: "USD"}
	higher := Money{Amount: "45.00", CurrencyCode: "USD"}
	equal := Money{Amount: "30.00", CurrencyCode: "USD"}

	require.True(t, IsOnSale(price, &higher))
	require.False(t, IsOnSale(price, &equal))
	require.False(t, IsOnSale(price, nil))
	require.False(t, IsOnSale(price, &Money{Amount: "broken", CurrencyCode: "USD"}))
}

func TestZeroIsZero(t *testing.T) {
	require.True(t, Zero("USD").IsZero())
	require.False(t, Money{Amount: "0.01", CurrencyCode: "USD"}.IsZero())
}
