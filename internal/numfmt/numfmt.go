// Package numfmt renders and rounds float64 values the way the frame table
// and the generated scripts expect them: shortest round-trip digits, integers
// without a decimal point, and nearest rounding with ties toward +Inf.
package numfmt

import (
	"math"
	"strconv"
	"strings"
)

// Format returns the shortest decimal text that parses back to v.
// Magnitudes at or above 1e21 and non-zero magnitudes below 1e-6 use
// exponent notation ("1e+21", "1.5e-7").
func Format(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		// covers -0
		return "0"
	}

	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		return mant + "e" + sign + digits
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Round rounds to the nearest integer, with halves going toward +Inf:
// Round(2.5) == 3, Round(-2.5) == -2.
func Round(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	f := math.Floor(x)
	if x-f >= 0.5 {
		f++
	}
	if f == 0 && math.Signbit(x) {
		return math.Copysign(0, -1)
	}
	return f
}

// Pad renders floor(|v|) left-padded with zeros to at least width digits.
func Pad(v float64, width int) string {
	s := Format(math.Floor(math.Abs(v)))
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
