package spectrum

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"
	"sync"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-fxchain/dsp/core"
)

type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

// split unpacks in into pooled real and imaginary slices.
func split(in []complex128) (re, im []float64, buf *scratchBuf) {
	n := len(in)

	buf = scratchPool.Get().(*scratchBuf)
	if cap(buf.data) < 2*n {
		buf.data = make([]float64, 2*n)
	}

	re, im = buf.data[:n], buf.data[n:2*n]
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	return re, im, buf
}

// Magnitude returns |X[k]| for each bin.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := split(in)
	vecmath.Magnitude(out, re, im)
	scratchPool.Put(buf)

	return out
}

// Power returns |X[k]|^2 for each bin.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := split(in)
	vecmath.Power(out, re, im)
	scratchPool.Put(buf)

	return out
}

// Phase returns arg(X[k]) in radians.
func Phase(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	for i, c := range in {
		out[i] = cmplx.Phase(c)
	}

	return out
}

const dbFloor = -300

// ToDB converts linear magnitudes to decibels in place, flooring at
// -300 dB.
func ToDB(mag []float64) []float64 {
	for i, m := range mag {
		mag[i] = max(core.LinearToDB(m), dbFloor)
	}

	return mag
}

// UnwrapPhase returns a copy of phase with ±2π jumps removed.
func UnwrapPhase(phase []float64) []float64 {
	if len(phase) == 0 {
		return nil
	}

	out := make([]float64, len(phase))
	out[0] = phase[0]

	offset := 0.0
	for i := 1; i < len(phase); i++ {
		switch d := phase[i] - phase[i-1]; {
		case d > math.Pi:
			offset -= 2 * math.Pi
		case d < -math.Pi:
			offset += 2 * math.Pi
		}

		out[i] = phase[i] + offset
	}

	return out
}

// GroupDelay computes the group delay in samples from an unwrapped phase
// sampled on the bins of an fftSize-point FFT. Interior bins use a
// centered difference, the end points one-sided ones.
func GroupDelay(unwrapped []float64, fftSize int) ([]float64, error) {
	if len(unwrapped) < 2 {
		return nil, fmt.Errorf("spectrum: group delay needs at least 2 phase points: %d", len(unwrapped))
	}

	if fftSize <= 0 {
		return nil, fmt.Errorf("spectrum: group delay fftSize must be > 0: %d", fftSize)
	}

	dw := 2 * math.Pi / float64(fftSize)
	last := len(unwrapped) - 1

	out := make([]float64, len(unwrapped))
	for i := range unwrapped {
		var dphi float64

		switch i {
		case 0:
			dphi = unwrapped[1] - unwrapped[0]
		case last:
			dphi = unwrapped[i] - unwrapped[i-1]
		default:
			dphi = (unwrapped[i+1] - unwrapped[i-1]) / 2
		}

		out[i] = -dphi / dw
	}

	return out, nil
}

// Interpolate evaluates the piecewise-linear curve (x, y) at each query
// point. x must be strictly increasing; queries outside it hold the end
// values.
func Interpolate(x, y, query []float64) ([]float64, error) {
	if len(x) == 0 || len(x) != len(y) {
		return nil, fmt.Errorf("spectrum: interpolate needs matching non-empty x/y: %d, %d", len(x), len(y))
	}

	for i := 1; i < len(x); i++ {
		if !(x[i] > x[i-1]) {
			return nil, fmt.Errorf("spectrum: interpolate x must be strictly increasing at index %d", i)
		}
	}

	last := len(x) - 1

	out := make([]float64, len(query))
	for i, q := range query {
		switch {
		case q <= x[0]:
			out[i] = y[0]
		case q >= x[last]:
			out[i] = y[last]
		default:
			j := sort.SearchFloat64s(x, q)
			t := (q - x[j-1]) / (x[j] - x[j-1])
			out[i] = y[j-1] + t*(y[j]-y[j-1])
		}
	}

	return out, nil
}

// SmoothFractionalOctave averages values over a 1/fraction octave band
// around each frequency. freqHz must be positive and strictly increasing.
func SmoothFractionalOctave(freqHz, values []float64, fraction int) ([]float64, error) {
	if len(freqHz) == 0 || len(freqHz) != len(values) {
		return nil, fmt.Errorf("spectrum: smoothing needs matching non-empty inputs: %d, %d", len(freqHz), len(values))
	}

	if fraction <= 0 {
		return nil, fmt.Errorf("spectrum: smoothing fraction must be > 0: %d", fraction)
	}

	for i, f := range freqHz {
		if f <= 0 || (i > 0 && !(f > freqHz[i-1])) {
			return nil, fmt.Errorf("spectrum: smoothing frequencies must be positive and increasing at index %d", i)
		}
	}

	halfBand := math.Pow(2, 1/(2*float64(fraction)))

	out := make([]float64, len(values))
	for i, f := range freqHz {
		lo, hi := f/halfBand, f*halfBand

		i0 := sort.SearchFloat64s(freqHz, lo)
		i1 := sort.Search(len(freqHz), func(k int) bool { return freqHz[k] > hi })

		if i0 >= i1 {
			out[i] = values[i]
			continue
		}

		sum := 0.0
		for _, v := range values[i0:i1] {
			sum += v
		}

		out[i] = sum / float64(i1-i0)
	}

	return out, nil
}
