package kernel

import (
	"salesorder/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrMoneyIsNotConstructed is returned when validating a zero-value Money.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("Money must be created via NewMoney or ZeroMoney")

// Money is a non-negative monetary amount with two-decimal presentation.
type Money struct {
	amount      decimal.Decimal
	constructed bool
}

// NewMoney rejects negative amounts.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", amount.String(), 0, "unbounded")
	}
	return Money{amount: amount, constructed: true}, nil
}

func ZeroMoney() Money {
	return Money{amount: decimal.Zero, constructed: true}
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount), constructed: true}
}

// Multiply scales the amount by a non-negative integer factor.
func (m Money) Multiply(factor int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(factor))), constructed: true}
}

// IsEqual compares by value, so 10 and 10.00 are equal.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) String() string {
	return m.amount.StringFixed(2)
}

func (m Money) Validate() error {
	if !m.constructed {
		return ErrMoneyIsNotConstructed
	}
	return nil
}
