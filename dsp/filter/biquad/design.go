package biquad

import "math"

// minQ replaces a zero quality factor.
const minQ = 1e-9

// Coefficients holds a single second-order section with a0 normalized to
// 1 (not stored):
//
//	y[n] = B0*x[n] + B1*x[n-1] + B2*x[n-2] - A1*y[n-1] - A2*y[n-2]
type Coefficients struct {
	B0, B1, B2 float64 // feedforward
	A1, A2     float64 // feedback
}

// Design returns the cookbook coefficients for kind at centerFreq (Hz) and
// sampleRate (Hz). gainDB only affects Peak and the shelves.
func Design(kind Kind, centerFreq, sampleRate, q, gainDB float64) Coefficients {
	return normalize(rawDesign(kind, centerFreq, sampleRate, q, gainDB))
}

func rawDesign(kind Kind, centerFreq, sampleRate, q, gainDB float64) (b0, b1, b2, a0, a1, a2 float64) {
	if q == 0 {
		q = minQ
	}

	a := math.Pow(10, gainDB/40)
	w0 := 2 * math.Pi * centerFreq / sampleRate
	sn, cs := math.Sincos(w0)
	alpha := sn / (2 * q)
	beta := math.Sqrt(a + a)

	switch kind {
	case Lowpass:
		b0 = (1 - cs) / 2
		b1 = 1 - cs
		b2 = (1 - cs) / 2
		a0 = 1 + alpha
		a1 = -2 * cs
		a2 = 1 - alpha
	case Highpass:
		b0 = (1 + cs) / 2
		b1 = -(1 + cs)
		b2 = (1 + cs) / 2
		a0 = 1 + alpha
		a1 = -2 * cs
		a2 = 1 - alpha
	case Bandpass:
		b0 = alpha
		b1 = 0
		b2 = -alpha
		a0 = 1 + alpha
		a1 = -2 * cs
		a2 = 1 - alpha
	case Notch:
		b0 = 1
		b1 = -2 * cs
		b2 = 1
		a0 = 1 + alpha
		a1 = -2 * cs
		a2 = 1 - alpha
	case Peak:
		b0 = 1 + alpha*a
		b1 = -2 * cs
		b2 = 1 - alpha*a
		a0 = 1 + alpha/a
		a1 = -2 * cs
		a2 = 1 - alpha/a
	case LowShelf:
		b0 = a * ((a + 1) - (a-1)*cs + beta*sn)
		b1 = 2 * a * ((a - 1) - (a+1)*cs)
		b2 = a * ((a + 1) - (a-1)*cs - beta*sn)
		a0 = (a + 1) + (a-1)*cs + beta*sn
		a1 = -2 * ((a - 1) + (a+1)*cs)
		a2 = (a + 1) + (a-1)*cs - beta*sn
	case HighShelf:
		b0 = a * ((a + 1) + (a-1)*cs + beta*sn)
		b1 = -2 * a * ((a - 1) + (a+1)*cs)
		b2 = a * ((a + 1) + (a-1)*cs - beta*sn)
		a0 = (a + 1) - (a-1)*cs + beta*sn
		a1 = 2 * ((a - 1) - (a+1)*cs)
		a2 = (a + 1) - (a-1)*cs - beta*sn
	case Custom:
		b0 = -alpha
		b1 = 0
		b2 = alpha
		a0 = 2 + alpha
		a1 = -2 * cs
		a2 = 2 - alpha
	default:
		// Unknown kinds pass the signal through.
		b0, a0 = 1, 1
	}

	return b0, b1, b2, a0, a1, a2
}

func normalize(b0, b1, b2, a0, a1, a2 float64) Coefficients {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return Coefficients{}
	}

	return Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
