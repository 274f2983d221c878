// Package spectrum measures the frequency response of effects and chains.
//
// Analyze turns an impulse response into FFT bins; the helpers around it
// extract magnitude, power, phase and group delay, resample the result onto
// arbitrary frequencies and smooth it in fractional octaves. Goertzel
// filters measure a single tone, which also covers nonlinear stages whose
// impulse response says little about their steady-state gain.
package spectrum
