package models

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is assumed whenever a price source does not state one.
const DefaultCurrency = "USD"

// ErrCurrencyMismatch is returned when two Money values in different
// currencies are compared or combined.
var ErrCurrencyMismatch = fmt.Errorf("money: currency mismatch")

// Money is an exact decimal amount in a single currency. Values are
// immutable; all operations return new values.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// NewMoney validates and builds a Money value. Amounts must be finite and
// non-negative; violations are reported as a ContractViolationError so the
// caller can tell a bad provider payload from a transient failure.
func NewMoney(amount float64, currency string) (Money, error) {
	if currency == "" {
		currency = DefaultCurrency
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Money{}, &ContractViolationError{Field: "price.amount", Reason: "must be finite"}
	}
	if amount < 0 {
		return Money{}, &ContractViolationError{Field: "price.amount", Reason: "must not be negative"}
	}
	return Money{Amount: decimal.NewFromFloat(amount), Currency: currency}, nil
}

// MustMoney is NewMoney for fixture data and tests; it panics on invalid input.
func MustMoney(amount float64, currency string) Money {
	m, err := NewMoney(amount, currency)
	if err != nil {
		panic(err)
	}
	return m
}

// Validate re-checks the invariants on a Money value received from an
// external provider.
func (m Money) Validate() error {
	if m.Amount.IsNegative() {
		return &ContractViolationError{Field: "price.amount", Reason: "must not be negative"}
	}
	return nil
}

// Cmp compares two same-currency amounts: -1 if m < other, 0 if equal, 1 if greater.
func (m Money) Cmp(other Money) (int, error) {
	if m.Currency != other.Currency {
		return 0, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.Currency, other.Currency)
	}
	return m.Amount.Cmp(other.Amount), nil
}

// LessThan reports whether m is strictly cheaper than other.
func (m Money) LessThan(other Money) (bool, error) {
	c, err := m.Cmp(other)
	if err != nil {
		return false, err
	}
	return c < 0, nil
}

// Sub returns m - other as a signed decimal. The result may be negative,
// so it is a plain decimal rather than a Money.
func (m Money) Sub(other Money) (decimal.Decimal, error) {
	if m.Currency != other.Currency {
		return decimal.Zero, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.Currency, other.Currency)
	}
	return m.Amount.Sub(other.Amount), nil
}

// Float64 returns the amount as a float, for ratio math in scoring.
func (m Money) Float64() float64 {
	f, _ := m.Amount.Float64()
	return f
}

func (m Money) String() string {
	return m.Amount.StringFixed(2) + " " + m.Currency
}
