// Package buf provides overflow-safe arithmetic for buffer and allocation
// sizing.
package buf

import "math"

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// MulOverflowSafe multiplies a and b, returning ok = false when the result
// would overflow int. This is essential for count * elementSize calculations
// in zeroed-array allocations.
func MulOverflowSafe(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	// For positive numbers, check if result would overflow
	if a > 0 && b > 0 {
		if a > math.MaxInt/b {
			return 0, false
		}
	}
	// For negative numbers
	if a < 0 && b < 0 {
		if a < math.MaxInt/b {
			return 0, false
		}
	}
	// Mixed signs - check against MinInt
	if a > 0 && b < 0 {
		if b < math.MinInt/a {
			return 0, false
		}
	}
	if a < 0 && b > 0 {
		if a < math.MinInt/b {
			return 0, false
		}
	}
	return a * b, true
}
