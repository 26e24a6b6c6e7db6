package util

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Coerce returns a value that is at least min and at most max, otherwise value
func Coerce[T constraints.Integer | constraints.Float](value, min, max T) T {
	if value > max {
		return max
	}
	if value < min {
		return min
	}
	return value
}

// Ratio calculates the ration that target has in comparison to rangeMin and rangeMax
// Make sure that:
// rangeMin <= target <= rangeMax
// rangeMax - rangeMin != 0
func Ratio(target float64, rangeMin float64, rangeMax float64) float64 {
	return (target - rangeMin) / (rangeMax - rangeMin)
}

// MapRange linearly maps value from [inMin..inMax] to [outMin..outMax].
// The result is not clamped, values outside the input range are extrapolated.
func MapRange(value, inMin, inMax, outMin, outMax float64) float64 {
	return outMin + Ratio(value, inMin, inMax)*(outMax-outMin)
}

// UpdateExponentialAvg calculates the new exponentially weighted moving average
// for the given smoothing factor alpha in (0..1]
func UpdateExponentialAvg(oldAvg float64, alpha float64, newValue float64) float64 {
	return alpha*newValue + (1-alpha)*oldAvg
}

// ApproachExponentially moves current towards target by the given fraction of the remaining distance
func ApproachExponentially(current float64, target float64, fraction float64) float64 {
	return current + (target-current)*fraction
}

// RoundToInt rounds half away from zero
func RoundToInt(value float64) int {
	return int(math.Round(value))
}
