package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money represents custom type for processing money.
type Money struct {
	decimal decimal.Decimal
}

// Zero represents zero (0) amount.
// Zero always equals to 0 and to 0.0...N.
var Zero = NewFromInt(0)

// NewFromString parses string and returns decimal amount.
// If s is zero value, will be returned Zero decimal without throwing an error.
func NewFromString(s string) (Money, error) {
	if len(s) == 0 {
		return Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, err
	}
	return Money{d}, nil
}

// NewFromInt returns decimal from integer number.
func NewFromInt(i int64) Money {
	d := decimal.NewFromInt(i)
	return Money{d}
}

// Inc increments left amount by right.
// Same as left = left + right; left+=right
func (m *Money) Inc(right Money) {
	m.decimal = m.decimal.Add(right.decimal)
}

// Sub decrements left amount by right.
// Same as left = left - right; left-=right
func (m *Money) Sub(right Money) {
	m.decimal = m.decimal.Sub(right.decimal)
}

// Equal reports whether two amounts represent the same value.
func (m Money) Equal(right Money) bool {
	return m.decimal.Equal(right.decimal)
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.decimal.IsPositive()
}

// String returns plain string representation of the amount.
func (m Money) String() string {
	return m.decimal.String()
}

// StringFixed returns string representation with 2 places after digit.
// Resulting string will be rounded to nearest.
func (m Money) StringFixed() string {
	return m.decimal.StringFixed(2)
}

// Grouped returns string representation with thousand separators,
// e.g. 150000 -> "150,000".
func (m Money) Grouped() string {
	s := m.decimal.String()

	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}

	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	for i, digit := range intPart {
		if i != 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	result := b.String()
	if hasFrac {
		result += "." + fracPart
	}
	if negative {
		result = "-" + result
	}

	return result
}
