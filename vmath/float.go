package vmath

import "math"

// Epsilon is the float64 machine epsilon (2^-52), the gap between 1.0 and the next representable value
const Epsilon = 0x1p-52

// ApproxEqual reports whether a and b differ by less than Epsilon
// Absolute comparison only; values far from the unit range compare as exact equality
func ApproxEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// IsFinite reports whether f is neither NaN nor an infinity
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
