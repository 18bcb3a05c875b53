package decimal

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// Money is a presentation-side monetary amount. The projection engine works in float64;
// values are converted to Money only when they are rounded for display or export.
type Money struct {
	decimal.Decimal
}

// NewMoney converts an engine float into Money without rounding.
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// NewMoneyFromDecimal wraps an existing decimal.
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString parses a plain decimal string such as "1234.50".
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Zero returns a zero amount.
func Zero() Money {
	return Money{decimal.Zero}
}

// Round rounds to cents (half away from zero).
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// RoundDollars rounds to the nearest whole dollar (half away from zero).
func (m Money) RoundDollars() Money {
	return Money{m.Decimal.Round(0)}
}

// Annual converts a monthly amount to annual.
func (m Money) Annual() Money {
	return Money{m.Decimal.Mul(twelve)}
}

// Monthly converts an annual amount to monthly.
func (m Money) Monthly() Money {
	return Money{m.Decimal.Div(twelve)}
}

// PercentOf returns percent% of the amount, e.g. closing costs of 3 on a home price.
func (m Money) PercentOf(percent float64) Money {
	return Money{m.Decimal.Mul(decimal.NewFromFloat(percent)).Div(hundred)}
}

func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// Abs returns the magnitude of the amount.
func (m Money) Abs() Money {
	return Money{m.Decimal.Abs()}
}

func (m Money) GreaterThan(other Money) bool {
	return m.Decimal.GreaterThan(other.Decimal)
}

func (m Money) LessThan(other Money) bool {
	return m.Decimal.LessThan(other.Decimal)
}

func (m Money) Equal(other Money) bool {
	return m.Decimal.Equal(other.Decimal)
}

// Float64 returns the nearest float64; exactness is not reported.
func (m Money) Float64() float64 {
	return m.Decimal.InexactFloat64()
}

// String returns the amount with two decimals and no currency symbol.
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders the amount as "$1,234.56" (or "-$1,234.56").
func (m Money) Format() string {
	return formatWithSymbol(m.Decimal.StringFixed(2))
}

// FormatDollars renders the amount rounded to whole dollars, e.g. "$1,235".
func (m Money) FormatDollars() string {
	return formatWithSymbol(m.Decimal.Round(0).StringFixed(0))
}

func formatWithSymbol(fixed string) string {
	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")
	intPart, frac, hasFrac := strings.Cut(fixed, ".")

	var b strings.Builder
	if neg && strings.Trim(fixed, "0.") != "" {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	b.WriteString(groupThousands(intPart))
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	lead := len(digits) % 3
	var b strings.Builder
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
