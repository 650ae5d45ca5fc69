// Package money parses and validates monetary amounts.
//
// Amounts are carried as decimal.Decimal everywhere past the transport
// boundary. Parsing happens once: Parse and ParsePositive reject anything
// that is not a plain or comma-grouped decimal number, Coerce maps invalid input to zero for
// callers that must never fail.
package money

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits stored for every amount.
const Scale = 2

var ErrInvalidAmount = errors.New("invalid amount")

var hundred = decimal.NewFromInt(100)

var groupedAmount = regexp.MustCompile(`^[-+]?\d{1,3}(,\d{3})+(\.\d+)?$`)

// Parse accepts a dot decimal separator and comma thousands groups
// (1,234.50), and rounds half-up to Scale digits. Any other comma is
// rejected.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	if strings.Contains(s, ",") {
		if !groupedAmount.MatchString(s) {
			return decimal.Zero, ErrInvalidAmount
		}
		s = strings.ReplaceAll(s, ",", "")
	}
	if strings.ContainsAny(s, "eE") {
		return decimal.Zero, ErrInvalidAmount
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d.Round(Scale), nil
}

// ParsePositive is Parse restricted to amounts strictly greater than zero
// after rounding.
func ParsePositive(s string) (decimal.Decimal, error) {
	d, err := Parse(s)
	if err != nil {
		return decimal.Zero, err
	}
	if err := RequirePositive(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// Coerce never fails: invalid input yields zero.
func Coerce(s string) decimal.Decimal {
	d, err := Parse(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func RequirePositive(d decimal.Decimal) error {
	if !d.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

// Normalize rounds an already-typed amount to the stored scale.
func Normalize(d decimal.Decimal) decimal.Decimal {
	return d.Round(Scale)
}

func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// Percent returns part/whole*100, or zero when whole is not positive.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}

// Average returns total/count, or zero for an empty set.
func Average(total decimal.Decimal, count int) decimal.Decimal {
	if count <= 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(count)))
}

func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}
