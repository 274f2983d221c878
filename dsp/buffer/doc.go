// Package buffer holds the sample containers used by the effect chain:
// Buffer and Pool for reusable float32 blocks, and Clip, a growable buffer
// read back at a fractional, variable rate.
package buffer
