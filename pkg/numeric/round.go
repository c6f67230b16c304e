package numeric

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round2 rounds v to two decimal places, half away from zero, on the shortest
// decimal representation of v. 2.675 therefore becomes 2.68 even though its
// binary value is slightly below the midpoint. NaN and ±Inf are returned unchanged.
func Round2(v float64) float64 {
	if !IsFinite(v) {
		return v
	}
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// IsFinite reports whether every value is neither NaN nor ±Inf.
func IsFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Mean returns the arithmetic mean of values, or 0 for an empty slice. It uses a
// running mean so large finite inputs do not overflow an intermediate sum.
func Mean(values []float64) float64 {
	var mean float64
	for i, v := range values {
		mean += (v - mean) / float64(i+1)
	}
	return mean
}
