// Package units converts host model lengths to meters and renders numbers the
// way the STF format expects them, independent of any locale configuration.
package units

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// FeetToMeters is the factor from the host's internal length unit (decimal feet)
// to meters.
const FeetToMeters = 0.3048

// ErrMalformedQuantity is returned by ParseQuantity when a host-formatted
// string does not start with a number.
var ErrMalformedQuantity = errors.New("malformed quantity")

// ToMeters converts a length in host units to meters.
func ToMeters(v float64) float64 {
	return v * FeetToMeters
}

// SignificantDigits is the precision Format rounds to before rendering.
const SignificantDigits = 15

// Format renders v with a dot decimal separator and no digit grouping. The value
// is rounded to SignificantDigits significant digits first, so conversion noise
// such as 0.9144000000000001 prints as 0.9144. Exponent notation is never used.
func Format(v float64) string {
	if v == 0 {
		// Normalizes -0.
		return "0"
	}
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', SignificantDigits, 64), 64)
	if err != nil {
		rounded = v
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

// FormatAll renders each value with Format and joins them with single spaces.
func FormatAll(vs ...float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = Format(v)
	}
	return strings.Join(parts, " ")
}

// Quantity is a number split from its unit suffix, e.g. "100.00 VA".
type Quantity struct {
	Value float64
	Unit  string
}

// ParseQuantity splits a host-formatted parameter string into its numeric value
// and trailing unit. The number must use a dot decimal separator; the unit may be
// empty. Leading and trailing whitespace is ignored.
func ParseQuantity(s string) (Quantity, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Quantity{}, fmt.Errorf("%w: empty value", ErrMalformedQuantity)
	}

	end := 0
	for i, r := range s {
		if unicode.IsDigit(r) || r == '.' || r == '-' || r == '+' || r == 'e' || r == 'E' {
			// An 'e' only belongs to the number when a digit follows it.
			if (r == 'e' || r == 'E') && !exponentFollows(s[i+1:]) {
				break
			}
			end = i + 1
			continue
		}
		break
	}
	if end == 0 {
		return Quantity{}, fmt.Errorf("%w: %q has no numeric part", ErrMalformedQuantity, s)
	}

	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return Quantity{}, fmt.Errorf("%w: %q: %v", ErrMalformedQuantity, s, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Quantity{}, fmt.Errorf("%w: %q is not finite", ErrMalformedQuantity, s)
	}

	rest := s[end:]
	if strings.IndexAny(rest, ",.") == 0 {
		// Comma decimals and digit grouping end up here.
		return Quantity{}, fmt.Errorf("%w: %q is not a plain decimal", ErrMalformedQuantity, s)
	}

	return Quantity{Value: v, Unit: strings.TrimSpace(rest)}, nil
}

func exponentFollows(rest string) bool {
	rest = strings.TrimLeft(rest, "+-")
	return rest != "" && rest[0] >= '0' && rest[0] <= '9'
}
