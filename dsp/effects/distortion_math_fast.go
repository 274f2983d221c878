//go:build fastmath

package effects

import "github.com/meko-christian/algo-approx"

// mathSqrt computes sqrt(x) using fast approximation. Only the drive
// offset uses it, once per parameter reload.
func mathSqrt(x float64) float64 {
	return approx.FastSqrt(x)
}
