// Package money provides a fixed-point currency amount held as an integer
// count of minor units (cents). All arithmetic is integer-only.
package money

import (
	"math"
	"strconv"
	"strings"

	"github.com/sangkips/receiptbook-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// Money is an amount in minor currency units. Ledger amounts are never negative.
type Money int64

// Zero is the empty amount.
const Zero Money = 0

// DefaultSymbol is prefixed by Format.
const DefaultSymbol = "$"

// FromCents wraps a raw minor-unit count.
func FromCents(cents int64) Money { return Money(cents) }

// Cents returns the raw minor-unit count.
func (m Money) Cents() int64 { return int64(m) }

// IsZero returns true if the amount is zero.
func (m Money) IsZero() bool { return m == 0 }

// IsPositive returns true if the amount is greater than zero.
func (m Money) IsPositive() bool { return m > 0 }

// MaxAmount is the largest representable amount.
const MaxAmount Money = math.MaxInt64

// Add adds two amounts. The result saturates at MaxAmount; use AddChecked
// where an overflow must be rejected.
func Add(a, b Money) Money {
	sum, err := AddChecked(a, b)
	if err != nil {
		return MaxAmount
	}
	return sum
}

// AddChecked adds two non-negative amounts, failing with an invalid amount
// error when the sum does not fit.
func AddChecked(a, b Money) (Money, error) {
	if a < 0 || b < 0 {
		return Zero, apperror.New(apperror.KindInvalidAmount, "amount cannot be negative")
	}
	if a > MaxAmount-b {
		return Zero, apperror.New(apperror.KindInvalidAmount, "amount exceeds the maximum amount")
	}
	return a + b, nil
}

// Subtract returns a - b, clamped at zero.
func Subtract(a, b Money) Money {
	if b >= a {
		return Zero
	}
	return a - b
}

// Multiply returns quantity units of unit. A negative operand or a product
// that does not fit fails with an invalid amount error.
func Multiply(quantity int64, unit Money) (Money, error) {
	if quantity < 0 || unit < 0 {
		return Zero, apperror.New(apperror.KindInvalidAmount, "amount cannot be negative")
	}
	if quantity != 0 && unit > MaxAmount/Money(quantity) {
		return Zero, apperror.New(apperror.KindInvalidAmount, "amount exceeds the maximum amount")
	}
	return Money(quantity) * unit, nil
}

// Sum adds any number of amounts, saturating at MaxAmount.
func Sum(values ...Money) Money {
	var total Money
	for _, v := range values {
		total = Add(total, v)
	}
	return total
}

// String renders the amount with the default symbol, e.g. "$1,234.50".
func (m Money) String() string {
	return FormatWith(m, DefaultSymbol)
}

// Format renders m for display using the default symbol.
func Format(m Money) string {
	return FormatWith(m, DefaultSymbol)
}

// FormatWith renders m with the given currency symbol, thousands separators
// and two decimal places.
func FormatWith(m Money, symbol string) string {
	cents := int64(m)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	major := strconv.FormatInt(cents/100, 10)
	minor := cents % 100

	var b strings.Builder
	b.WriteString(sign)
	b.WriteString(symbol)
	for i, r := range major {
		if i > 0 && (len(major)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	if minor < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(minor, 10))
	return b.String()
}

var maxCents = decimal.NewFromInt(int64(MaxAmount))

// Parse reads a display string such as "$1,234.50" or "20" into Money.
// Every character other than digits and '.' is ignored, and the value is
// rounded to the nearest cent. A minus sign ahead of the digits, a missing
// number, more than one decimal separator or an out-of-range value fails
// with an invalid amount error.
func Parse(s string) (Money, error) {
	var cleaned strings.Builder
	negative := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.':
			cleaned.WriteRune(r)
		case r == '-' && cleaned.Len() == 0:
			negative = true
		}
	}

	raw := cleaned.String()
	if negative {
		return Zero, apperror.New(apperror.KindInvalidAmount, "amount cannot be negative")
	}
	if strings.Trim(raw, ".") == "" {
		return Zero, apperror.New(apperror.KindInvalidAmount, "amount must contain a number")
	}
	if strings.Count(raw, ".") > 1 {
		return Zero, apperror.New(apperror.KindInvalidAmount, "amount has more than one decimal separator")
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return Zero, apperror.New(apperror.KindInvalidAmount, "amount is not a valid number")
	}

	cents := d.Shift(2).Round(0)
	if cents.GreaterThan(maxCents) {
		return Zero, apperror.New(apperror.KindInvalidAmount, "amount is too large")
	}
	return Money(cents.IntPart()), nil
}
