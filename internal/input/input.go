// Package input turns user-typed numeric text into parameter values.
package input

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/ivlev/beat2frame/internal/numfmt"
)

// leading decimal number, optional exponent; trailing text is ignored
var numberPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// Parse reads the leading decimal number of s ("12.5fps" is 12.5).
// ok is false when there is none or it is not finite.
func Parse(s string) (v float64, ok bool) {
	s = strings.TrimLeft(s, " \t\r\n")
	m := numberPrefix.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// ParseNumber returns the number in s, or fallback when s holds none.
// Callers pass the field's previous value as fallback so a bad edit keeps
// the last good value.
func ParseNumber(s string, fallback float64) float64 {
	if v, ok := Parse(s); ok {
		return v
	}
	return fallback
}

// Step adds delta to the number in s, treating unreadable text as 0, and
// returns the new text.
func Step(s string, delta float64) string {
	v, ok := Parse(s)
	if !ok {
		v = 0
	}
	return numfmt.Format(v + delta)
}
