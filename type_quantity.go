package papertrade

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// within reports whether |d| <= limit. Decimals with an exponent beyond ±18
// are always out of range.
func within(d decimal.Decimal, limit decimal.Decimal) bool {
	if e := d.Exponent(); e > 18 || e < -18 {
		return false
	}
	return d.Abs().LessThanOrEqual(limit)
}

// MaxQuantity is the largest number of shares of a single order.
const MaxQuantity = 1_000_000_000

var maxQuantity = decimal.NewFromInt(MaxQuantity)

// Quantity is a number of shares. Trades only ever use whole shares.
type Quantity struct {
	value decimal.Decimal
}

// Q creates a Quantity from a number.
func Q[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Quantity {
	return Quantity{value: newDecimal(value)}
}

// ParseQuantity parses a positive whole number of shares.
// Anything else is reported as ErrInvalidQuantity.
func ParseQuantity(s string) (Quantity, error) {
	s = strings.TrimSpace(s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Quantity{}, fmt.Errorf("%w: %q is not a number", ErrInvalidQuantity, s)
	}
	q := Quantity{value: d}
	if err := q.Validate(); err != nil {
		return Quantity{}, err
	}
	return q, nil
}

// Validate checks that q is a positive whole number, at most MaxQuantity.
func (q Quantity) Validate() error {
	if !within(q.value, maxQuantity) {
		return fmt.Errorf("%w: cannot exceed %d shares", ErrInvalidQuantity, MaxQuantity)
	}
	if !q.value.IsPositive() {
		return fmt.Errorf("%w: must be positive, got %s", ErrInvalidQuantity, q)
	}
	if !q.IsWhole() {
		return fmt.Errorf("%w: must be a whole number of shares, got %s", ErrInvalidQuantity, q)
	}
	return nil
}

func (q Quantity) Equal(p Quantity) bool       { return q.value.Equal(p.value) }
func (q Quantity) LessThan(p Quantity) bool    { return q.value.LessThan(p.value) }
func (q Quantity) GreaterThan(p Quantity) bool { return q.value.GreaterThan(p.value) }
func (q Quantity) Add(p Quantity) Quantity     { return Quantity{value: q.value.Add(p.value)} }
func (q Quantity) Sub(p Quantity) Quantity     { return Quantity{value: q.value.Sub(p.value)} }
func (q Quantity) IsNegative() bool            { return q.value.IsNegative() }
func (q Quantity) IsPositive() bool            { return q.value.IsPositive() }
func (q Quantity) IsZero() bool                { return q.value.IsZero() }
func (q Quantity) IsWhole() bool               { return q.value.Equal(q.value.Truncate(0)) }
func (q Quantity) String() string              { return q.value.String() }

func (q Quantity) MarshalJSON() ([]byte, error) {
	return q.value.MarshalJSON()
}

func (q *Quantity) UnmarshalJSON(decimalBytes []byte) error {
	return q.value.UnmarshalJSON(decimalBytes)
}
