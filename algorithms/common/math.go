package common

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Basic statistical functions used across algorithms using gonum for robustness

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// PopVariance calculates the population variance (divide by n).
// The descriptor heuristics are defined on population moments.
func PopVariance(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	mean := Mean(data)
	sum := 0.0
	for _, v := range data {
		d := v - mean
		sum += d * d
	}
	return sum / float64(len(data))
}

// PopStdDev calculates the population standard deviation
func PopStdDev(data []float64) float64 {
	return math.Sqrt(PopVariance(data))
}

// RMS calculates root mean square
func RMS(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	sumSquares := 0.0
	for _, val := range data {
		sumSquares += val * val
	}

	return math.Sqrt(sumSquares / float64(len(data)))
}

// Clamp constrains a value to a range
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Clamp01 constrains a score to [0, 1]
func Clamp01(value float64) float64 {
	return Clamp(value, 0.0, 1.0)
}
