// Package money provides the exact-precision monetary value used throughout
// the payment lifecycle. Every amount is held as a decimal and can be
// serialised alongside a raw, lossless encoding of itself.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultPrecision is the number of significant digits recorded in the raw
// encoding of an amount.
const DefaultPrecision int32 = 20

// RawValue is the lossless representation of a BigNumber. Value always holds
// the exact decimal string, so no precision is lost when the numeric
// representation of a store rounds.
type RawValue struct {
	Value     string `json:"value"     bson:"value"`
	Precision int32  `json:"precision" bson:"precision"`
}

// BigNumber is an immutable monetary amount.
type BigNumber struct {
	value decimal.Decimal
}

// Zero is the zero amount.
var Zero = BigNumber{value: decimal.Zero}

// New wraps a decimal.
func New(d decimal.Decimal) BigNumber {
	return BigNumber{value: d}
}

// NewFromInt returns the amount for a whole number of currency units.
func NewFromInt(i int64) BigNumber {
	return BigNumber{value: decimal.NewFromInt(i)}
}

// NewFromFloat returns the amount closest to f. Prefer NewFromString where
// the amount originates as text.
func NewFromFloat(f float64) BigNumber {
	return BigNumber{value: decimal.NewFromFloat(f)}
}

// NewFromString parses a decimal string such as "200" or "10.25".
func NewFromString(s string) (BigNumber, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Zero, fmt.Errorf("amount [%s] format incorrect", s)
	}
	return BigNumber{value: d}, nil
}

// NewFromRaw rebuilds an amount from its raw encoding.
func NewFromRaw(raw RawValue) (BigNumber, error) {
	if raw.Value == "" {
		return Zero, fmt.Errorf("raw amount has no value")
	}
	return NewFromString(raw.Value)
}

// Sum adds every amount together.
func Sum(amounts ...BigNumber) BigNumber {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a.value)
	}
	return BigNumber{value: total}
}

// Decimal returns the underlying decimal.
func (b BigNumber) Decimal() decimal.Decimal {
	return b.value
}

// Raw returns the lossless encoding of the amount.
func (b BigNumber) Raw() RawValue {
	return RawValue{Value: b.value.String(), Precision: DefaultPrecision}
}

func (b BigNumber) Add(o BigNumber) BigNumber {
	return BigNumber{value: b.value.Add(o.value)}
}

func (b BigNumber) Sub(o BigNumber) BigNumber {
	return BigNumber{value: b.value.Sub(o.value)}
}

// Cmp returns -1, 0 or +1 as b is less than, equal to or greater than o.
func (b BigNumber) Cmp(o BigNumber) int {
	return b.value.Cmp(o.value)
}

func (b BigNumber) Equal(o BigNumber) bool {
	return b.value.Equal(o.value)
}

func (b BigNumber) GreaterThan(o BigNumber) bool {
	return b.value.GreaterThan(o.value)
}

func (b BigNumber) GreaterThanOrEqual(o BigNumber) bool {
	return b.value.GreaterThanOrEqual(o.value)
}

func (b BigNumber) LessThan(o BigNumber) bool {
	return b.value.LessThan(o.value)
}

func (b BigNumber) IsPositive() bool {
	return b.value.IsPositive()
}

func (b BigNumber) IsZero() bool {
	return b.value.IsZero()
}

// Min returns the smaller of b and o.
func (b BigNumber) Min(o BigNumber) BigNumber {
	if o.value.LessThan(b.value) {
		return o
	}
	return b
}

// String returns the exact decimal representation, e.g. "200" or "10.5".
func (b BigNumber) String() string {
	return b.value.String()
}

// StringFixed returns the amount rounded to places decimal places.
func (b BigNumber) StringFixed(places int32) string {
	return b.value.StringFixed(places)
}

// Float64 returns the nearest float. It is only meant for presentation.
func (b BigNumber) Float64() float64 {
	f, _ := b.value.Float64()
	return f
}

// MarshalJSON writes the amount as a bare JSON number.
func (b BigNumber) MarshalJSON() ([]byte, error) {
	return []byte(b.value.String()), nil
}

// UnmarshalJSON accepts both JSON numbers and quoted decimal strings.
func (b *BigNumber) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*b = Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("error decoding amount [%s]: [%v]", s, err)
	}
	b.value = d
	return nil
}
