// Package interp provides the interpolation primitive behind fractional-rate
// clip playback.
//
//   - [Linear2]: 2-point linear interpolation
package interp
