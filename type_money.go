package papertrade

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency of a simulation when none is configured.
const DefaultCurrency = "USD"

// Money represents a monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M creates a Money from a numeric value and a currency code.
func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// MaxAmount is the largest amount, in major units, accepted from users and
// quote sources.
const MaxAmount = 1_000_000_000_000

var maxAmount = decimal.NewFromInt(MaxAmount)

// ParseMoney parses a decimal string into a Money of the given currency.
// Amounts beyond MaxAmount are reported as ErrInvalidAmount.
func ParseMoney(s, currency string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	m := Money{value: d, cur: currency}
	if err := m.checkRange(); err != nil {
		return Money{}, err
	}
	return m, nil
}

// checkRange fails with ErrInvalidAmount when |m| exceeds MaxAmount.
func (m Money) checkRange() error {
	if !within(m.value, maxAmount) {
		return fmt.Errorf("%w: cannot exceed %d", ErrInvalidAmount, MaxAmount)
	}
	return nil
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the string representation of the money value, e.g. "$1,500.00".
// It follows the currency template of go-money for amounts of any size.
func (m Money) String() string {
	cur := m.currency()
	f := cur.Formatter()
	dec := m.value.Round(int32(f.Fraction))
	digits := dec.Abs().StringFixed(int32(f.Fraction))

	intPart, fraction, _ := strings.Cut(digits, ".")
	var sb strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteString(f.Thousand)
		}
		sb.WriteRune(r)
	}
	if f.Fraction > 0 {
		sb.WriteString(f.Decimal)
		sb.WriteString(fraction)
	}

	sa := strings.Replace(f.Template, "1", sb.String(), 1)
	sa = strings.Replace(sa, "$", f.Grapheme, 1)
	if dec.IsNegative() {
		sa = "-" + sa
	}
	return sa
}

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as a "-"
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Currency() string                { return m.cur }
func (m Money) Decimal() decimal.Decimal        { return m.value }
func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) LessThanOrEqual(n Money) bool    { return m.value.LessThanOrEqual(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Mul(n Quantity) Money            { return Money{value: m.value.Mul(n.value), cur: m.cur} }
func (m Money) Div(n Quantity) Money            { return Money{value: m.value.Div(n.value), cur: m.cur} }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch " + A.cur + "!=" + B.cur)
	}
	return A.cur
}
