// Package precision parses a single numeric token and recovers the
// decimal precision it was printed in, unifying fixed and scientific
// notation under one "effective decimal places" currency (spec.md §4.1).
package precision

import (
	"strconv"
	"strings"

	"github.com/jonlighthall/tldiff/domain/core"
)

// maxEffectiveDP is the clamp ceiling spec.md §4.1 applies to the
// scientific-notation effective-decimal-places computation, guarding
// against absurd results for extreme exponents.
const maxEffectiveDP = 10

// Info is the outcome of parsing one numeric token.
type Info struct {
	Value                  float64
	DecimalPlaces          int
	SignificantFigures     int
	IsScientific           bool
	Exponent               int
	EffectiveDecimalPlaces int
}

// Parse extracts value, precision, and notation metadata from a single
// numeric token. Leading/trailing whitespace is tolerated; the token
// itself must not contain embedded whitespace (the line parser is
// responsible for tokenizing on whitespace runs first).
func Parse(token string) (Info, error) {
	s := strings.TrimSpace(token)
	if s == "" {
		return Info{}, core.ErrParseToken
	}

	mantissa, expPart, isScientific := splitExponent(s)
	if mantissa == "" {
		return Info{}, core.ErrParseToken
	}

	value, err := strconv.ParseFloat(normalizeExponentMarker(s), 64)
	if err != nil {
		return Info{}, core.ErrParseToken
	}

	decimalPlaces := countDecimalPlaces(mantissa)
	sigFigs := countSignificantFigures(mantissa)

	exponent := 0
	if isScientific {
		exponent, err = strconv.Atoi(expPart)
		if err != nil {
			return Info{}, core.ErrParseToken
		}
	}

	info := Info{
		Value:              value,
		DecimalPlaces:      decimalPlaces,
		SignificantFigures: sigFigs,
		IsScientific:       isScientific,
		Exponent:           exponent,
	}
	info.EffectiveDecimalPlaces = effectiveDecimalPlaces(info)
	if info.EffectiveDecimalPlaces < 0 {
		return Info{}, core.ErrNegativeDecimalPlaces
	}
	return info, nil
}

// effectiveDecimalPlaces implements spec.md §4.1's unification of fixed
// and scientific notation into one precision currency.
func effectiveDecimalPlaces(info Info) int {
	if !info.IsScientific {
		return info.DecimalPlaces
	}
	ndp := info.SignificantFigures - 1 - info.Exponent
	if ndp < 0 {
		return 0
	}
	if ndp > maxEffectiveDP {
		return maxEffectiveDP
	}
	return ndp
}

// splitExponent separates a token into its mantissa and exponent parts,
// recognizing e/E (standard) and d/D (Fortran double-precision) markers
// identically, per spec.md §6.
func splitExponent(s string) (mantissa, exponent string, isScientific bool) {
	for i, r := range s {
		switch r {
		case 'e', 'E', 'd', 'D':
			return s[:i], s[i+1:], true
		}
	}
	return s, "", false
}

// normalizeExponentMarker rewrites a Fortran d/D exponent marker to e/E
// so strconv.ParseFloat accepts it; e/E tokens pass through unchanged.
func normalizeExponentMarker(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case 'd', 'D':
			return 'e'
		default:
			return r
		}
	}, s)
}

// countDecimalPlaces counts digits after the decimal point in a
// (possibly signed) fixed-notation mantissa.
func countDecimalPlaces(mantissa string) int {
	i := strings.IndexByte(mantissa, '.')
	if i < 0 {
		return 0
	}
	return len(mantissa[i+1:])
}

// countSignificantFigures counts digits after stripping sign and
// leading zeros, per spec.md §4.1. An all-zero mantissa counts as one
// significant figure.
func countSignificantFigures(mantissa string) int {
	digits := make([]byte, 0, len(mantissa))
	for i := 0; i < len(mantissa); i++ {
		c := mantissa[i]
		if c >= '0' && c <= '9' {
			digits = append(digits, c)
		}
	}

	start := 0
	for start < len(digits) && digits[start] == '0' {
		start++
	}
	if start == len(digits) {
		if len(digits) > 0 {
			return 1
		}
		return 0
	}
	return len(digits) - start
}
