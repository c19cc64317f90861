// Package money provides an exact fixed-point representation for monetary
// amounts. Amounts are held as integer cents; conversion to floating point
// happens only when formatting for output, never during arithmetic.
package money

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidAmount indicates a string that cannot be parsed as a monetary amount.
var ErrInvalidAmount = errors.New("invalid monetary amount")

// Cents is a monetary amount in hundredths of the currency unit.
type Cents int64

// Parse converts a decimal string to Cents.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators, an
// optional leading minus sign, and performs half-up rounding on the third
// decimal digit. Whether negative amounts are acceptable is a policy decision
// left to the caller.
//
// Examples:
//
//	Parse("12.34")  -> 1234
//	Parse("12,34")  -> 1234
//	Parse("12.345") -> 1235 (rounds up)
//	Parse("-49.50") -> -4950
func Parse(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", ".")

	negative := false
	switch {
	case strings.HasPrefix(s, "-"):
		negative = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	if s == "" || s == "." {
		return 0, ErrInvalidAmount
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	// Only ASCII digits: the fraction is read by byte indexing below, so a
	// multibyte digit rune would corrupt the amount instead of failing.
	for i := 0; i < len(intPart); i++ {
		if intPart[i] < '0' || intPart[i] > '9' {
			return 0, ErrInvalidAmount
		}
	}
	for i := 0; i < len(fracPart); i++ {
		if fracPart[i] < '0' || fracPart[i] > '9' {
			return 0, ErrInvalidAmount
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	// Take the first two fractional digits, then half-up rounding on the third.
	var frac int64
	if len(fracPart) > 0 {
		frac = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			frac += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				frac++
			}
		}
	}

	// Guard against overflow when scaling to cents.
	if iv > ((1<<63-1)-frac)/100 {
		return 0, ErrInvalidAmount
	}

	cents := iv*100 + frac
	if negative {
		cents = -cents
	}
	return Cents(cents), nil
}

// Float64 returns the amount as a float64. Use only at output boundaries;
// arithmetic on the result loses cent-level exactness.
func (c Cents) Float64() float64 {
	return float64(c) / 100.0
}

// String formats the amount as a plain decimal with two fractional digits,
// e.g. "150.50" or "-49.50".
func (c Cents) String() string {
	n := int64(c)
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	return sign + strconv.FormatInt(n/100, 10) + "." + pad2(n%100)
}

// Abs returns the magnitude of the amount.
func (c Cents) Abs() Cents {
	if c < 0 {
		return -c
	}
	return c
}

// IsNegative reports whether the amount is below zero.
func (c Cents) IsNegative() bool {
	return c < 0
}

// MarshalJSON encodes the amount as a bare JSON number with two decimal
// digits. This is the single float conversion point for output.
func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalJSON decodes either a JSON number or a quoted decimal string,
// parsing the raw digits directly so no binary float ever carries the value.
func (c *Cents) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" {
		return nil
	}
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
