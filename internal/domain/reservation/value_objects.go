package reservation

import (
	"errors"
	"fmt"
)

// Money is a fixed-point currency amount in cents. All pricing and payment
// amounts flow through this type; floats never touch money.
type Money struct {
	cents int64
}

func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

func NewMoneyFromCents(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errors.New("money cannot be negative")
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) Sub(other Money) Money {
	return Money{cents: m.cents - other.cents}
}

func (m Money) MulNights(nights int) Money {
	return Money{cents: m.cents * int64(nights)}
}

// Percent returns pct% of the amount, truncated toward zero.
func (m Money) Percent(pct int64) Money {
	return Money{cents: m.cents * pct / 100}
}

func (m Money) GreaterThan(other Money) bool {
	return m.cents > other.cents
}

// String renders the amount as a decimal, e.g. 12000 cents → "120.00".
func (m Money) String() string {
	sign := ""
	c := m.cents
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}
