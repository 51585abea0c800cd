package section

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Integer is an integer field. It keeps the text it was read from and writes
// that text back while the value is unchanged.
type Integer struct {
	Value int
	raw   string
	orig  int
}

func NewInteger(v int) Integer {
	return Integer{Value: v}
}

func parseInteger(s string) (Integer, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return Integer{}, err
	}
	return Integer{Value: v, raw: s, orig: v}, nil
}

func (n Integer) String() string {
	if n.raw != "" && n.Value == n.orig {
		return n.raw
	}
	return strconv.Itoa(n.Value)
}

func (n Integer) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// Decimal is a decimal field with the same text-preserving behavior as Integer.
type Decimal struct {
	Value decimal.Decimal
	raw   string
	orig  decimal.Decimal
}

func NewDecimal(v decimal.Decimal) Decimal {
	return Decimal{Value: v}
}

func parseDecimal(s string) (Decimal, error) {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return Decimal{}, err
	}
	return Decimal{Value: v, raw: s, orig: v}, nil
}

func (d Decimal) String() string {
	if d.raw != "" && d.Value.Equal(d.orig) {
		return d.raw
	}
	return d.Value.String()
}

func (d Decimal) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
