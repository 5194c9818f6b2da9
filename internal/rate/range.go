// Package rate parses multiplier range strings like "0.7-0.9".
//
// Two readings of a range string coexist: Average produces the display/default
// multiplier (neutral 1 on failure), ParseRange produces clamped slider bounds
// (0.5-1.5 on failure). Both are total functions; malformed input falls back
// to the documented defaults instead of returning an error.
package rate

import (
	"strconv"
	"strings"
)

const (
	// DefaultMin is the fallback lower bound for an unparsable range
	DefaultMin = 0.5

	// DefaultMax is the fallback upper bound for an unparsable range
	DefaultMax = 1.5

	// FloorMin is the practical floor for any multiplier bound
	FloorMin = 0.1

	// halfSpread is the spread applied around a single-value range
	halfSpread = 0.5

	// minSpan keeps max strictly above min
	minSpan = 0.01
)

// ParseRange parses a "min-max" or single-value range string into numeric
// bounds. A single value v becomes (v-0.5, v+0.5). Anything unparsable yields
// the provided defaults. The returned min is floored at FloorMin and max is
// forced to at least min+0.01.
func ParseRange(text string, defaultMin, defaultMax float64) (float64, float64) {
	min, max := defaultMin, defaultMax

	if lo, hi, n := splitParts(text); n == 2 {
		min, max = lo, hi
		if min > max {
			min, max = max, min
		}
	} else if n == 1 {
		min = lo - halfSpread
		max = lo + halfSpread
	}

	if min < FloorMin {
		min = FloorMin
	}
	if max < min+minSpan {
		max = min + minSpan
	}
	return min, max
}

// Average returns the mean of a two-part range, the value of a single-part
// range, or the neutral multiplier 1 when the text is unparsable.
func Average(text string) float64 {
	if lo, hi, n := splitParts(text); n == 2 {
		return (lo + hi) / 2
	} else if n == 1 {
		return lo
	}
	return 1
}

// splitParts splits on "-" and parses the pieces. n reports how many numeric
// parts were found: 2 for a well-formed range, 1 for a single value, 0 for
// anything else.
func splitParts(text string) (lo, hi float64, n int) {
	parts := strings.Split(strings.TrimSpace(text), "-")

	switch len(parts) {
	case 1:
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return 0, 0, 0
		}
		return v, 0, 1
	case 2:
		a, errA := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		b, errB := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if errA != nil || errB != nil {
			return 0, 0, 0
		}
		return a, b, 2
	default:
		return 0, 0, 0
	}
}
