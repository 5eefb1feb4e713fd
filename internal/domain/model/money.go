//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a currency amount in rupiah. It decodes from JSON numbers or
// numeric strings and always encodes as a bare JSON number.
type Money struct {
	decimal.Decimal
}

// NewMoney builds a Money from a whole rupiah amount.
func NewMoney(v int64) Money {
	return Money{decimal.NewFromInt(v)}
}

// ParseMoney parses user input such as "1500000" or "1500000.50".
func ParseMoney(s string) (Money, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Money{}, false
	}
	return Money{d}, true
}

// MarshalJSON encodes the amount without quotes.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.String()), nil
}

// UnmarshalJSON accepts numbers, quoted numbers, and null.
func (m *Money) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		m.Decimal = decimal.Zero
		return nil
	}
	return m.Decimal.UnmarshalJSON(b)
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return Money{m.Decimal.Add(o.Decimal)}
}

// Cmp compares two amounts (-1, 0, +1).
func (m Money) Cmp(o Money) int {
	return m.Decimal.Cmp(o.Decimal)
}
