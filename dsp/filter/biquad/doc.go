// Package biquad provides second-order IIR filters designed with the RBJ
// audio EQ cookbook.
//
// [Design] synthesizes a0-normalized [Coefficients] for a [Kind]. A [Filter]
// holds one channel of Direct Form I history and re-derives its
// coefficients only when the center frequency or sample rate actually
// changes, which keeps parameter reloads cheap and idempotent.
package biquad
