package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		currency string
		wantErr  bool
	}{
		{name: "valid amount", amount: 199.99, currency: "USD"},
		{name: "zero is valid", amount: 0, currency: "USD"},
		{name: "defaults currency", amount: 10, currency: ""},
		{name: "negative rejected", amount: -1, wantErr: true},
		{name: "nan rejected", amount: math.NaN(), wantErr: true},
		{name: "inf rejected", amount: math.Inf(1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMoney(tt.amount, tt.currency)
			if tt.wantErr {
				require.Error(t, err)
				var violation *ContractViolationError
				require.ErrorAs(t, err, &violation)
				assert.Equal(t, "price.amount", violation.Field)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.amount, m.Float64(), 1e-9)
			if tt.currency == "" {
				assert.Equal(t, DefaultCurrency, m.Currency)
			} else {
				assert.Equal(t, tt.currency, m.Currency)
			}
		})
	}
}

func TestMoneyComparison(t *testing.T) {
	cheap := MustMoney(99.99, "USD")
	pricey := MustMoney(100, "USD")

	less, err := cheap.LessThan(pricey)
	require.NoError(t, err)
	assert.True(t, less)

	c, err := pricey.Cmp(cheap)
	require.NoError(t, err)
	assert.Equal(t, 1, c)

	c, err = cheap.Cmp(MustMoney(99.99, "USD"))
	require.NoError(t, err)
	assert.Equal(t, 0, c)
}

func TestMoneyCurrencyMismatch(t *testing.T) {
	usd := MustMoney(10, "USD")
	eur := MustMoney(10, "EUR")

	_, err := usd.Cmp(eur)
	require.ErrorIs(t, err, ErrCurrencyMismatch)

	_, err = usd.Sub(eur)
	require.ErrorIs(t, err, ErrCurrencyMismatch)
}

func TestMoneySub(t *testing.T) {
	budget := MustMoney(200, "USD")
	price := MustMoney(224.50, "USD")

	delta, err := budget.Sub(price)
	require.NoError(t, err)
	f, _ := delta.Float64()
	assert.InDelta(t, -24.50, f, 1e-9)
}

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "149.50 USD", MustMoney(149.5, "USD").String())
}
