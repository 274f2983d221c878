package spectrum

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-fxchain/dsp/core"
)

// ErrFFTSize is returned for FFT sizes that are not a power of two of at
// least 2, or that are shorter than the impulse response.
var ErrFFTSize = errors.New("spectrum: invalid FFT size")

// Option configures Analyze.
type Option func(*config)

type config struct {
	window bool
}

// WithWindow fades the impulse response out with the falling half of a
// Hann window before the FFT. Use it for responses that have not decayed
// by the end of the analysis length.
func WithWindow() Option {
	return func(cfg *config) { cfg.window = true }
}

// Response holds the non-negative frequency bins of an impulse response.
type Response struct {
	SampleRate float64
	FFTSize    int
	// Bins has FFTSize/2+1 entries, DC to Nyquist.
	Bins []complex128
}

// Analyze zero-pads ir to fftSize and transforms it.
func Analyze(ir []float64, fftSize int, sampleRate float64, opts ...Option) (*Response, error) {
	if fftSize < 2 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("%w: %d is not a power of two", ErrFFTSize, fftSize)
	}

	if len(ir) > fftSize {
		return nil, fmt.Errorf("%w: %d is shorter than the %d-sample response", ErrFFTSize, fftSize, len(ir))
	}

	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("spectrum: sample rate must be > 0: %v", sampleRate)
	}

	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	src := ir
	if cfg.window && len(ir) > 0 {
		src = make([]float64, len(ir))
		copy(src, ir)
		vecmath.MulBlockInPlace(src, fadeOut(len(src)))
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("spectrum: FFT plan: %w", err)
	}

	padded := make([]complex128, fftSize)
	for i, v := range src {
		padded[i] = complex(v, 0)
	}

	freq := make([]complex128, fftSize)
	if err := plan.Forward(freq, padded); err != nil {
		return nil, fmt.Errorf("spectrum: forward FFT: %w", err)
	}

	return &Response{
		SampleRate: sampleRate,
		FFTSize:    fftSize,
		Bins:       freq[:fftSize/2+1],
	}, nil
}

// fadeOut is the falling half of a Hann window: 1 at the first sample,
// approaching 0 at the last.
func fadeOut(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 * (1 + math.Cos(math.Pi*float64(i)/float64(n)))
	}

	return w
}

// Magnitude returns |H| per bin.
func (r *Response) Magnitude() []float64 { return Magnitude(r.Bins) }

// MagnitudeDB returns 20·log10|H| per bin.
func (r *Response) MagnitudeDB() []float64 { return ToDB(r.Magnitude()) }

// Power returns |H|^2 per bin.
func (r *Response) Power() []float64 { return Power(r.Bins) }

// Phase returns the unwrapped phase per bin.
func (r *Response) Phase() []float64 { return UnwrapPhase(Phase(r.Bins)) }

// GroupDelay returns the group delay per bin in samples.
func (r *Response) GroupDelay() ([]float64, error) {
	return GroupDelay(r.Phase(), r.FFTSize)
}

// Frequencies returns the centre frequency of every bin in Hz.
func (r *Response) Frequencies() []float64 {
	out := make([]float64, len(r.Bins))
	for k := range out {
		out[k] = BinFrequency(k, r.FFTSize, r.SampleRate)
	}

	return out
}

// MagnitudeDBAt interpolates the dB magnitude at the given frequencies.
func (r *Response) MagnitudeDBAt(freqs []float64) ([]float64, error) {
	return Interpolate(r.Frequencies(), r.MagnitudeDB(), freqs)
}

// MagnitudeResponse returns |H| for bins 0..fftSize/2 of the zero-padded
// impulse response.
func MagnitudeResponse(ir []float64, fftSize int, opts ...Option) ([]float64, error) {
	r, err := Analyze(ir, fftSize, 1, opts...)
	if err != nil {
		return nil, err
	}

	return r.Magnitude(), nil
}

// PowerResponse is MagnitudeResponse squared.
func PowerResponse(ir []float64, fftSize int, opts ...Option) ([]float64, error) {
	r, err := Analyze(ir, fftSize, 1, opts...)
	if err != nil {
		return nil, err
	}

	return r.Power(), nil
}

// BinFrequency returns the frequency of bin k in Hz.
func BinFrequency(k, fftSize int, sampleRate float64) float64 {
	if fftSize <= 0 {
		return 0
	}

	return float64(k) * sampleRate / float64(fftSize)
}

// LogFrequencies returns n frequencies spaced logarithmically from lo to
// hi inclusive.
func LogFrequencies(lo, hi float64, n int) []float64 {
	if n <= 0 || lo <= 0 || hi < lo {
		return nil
	}

	if n == 1 {
		return []float64{lo}
	}

	out := make([]float64, n)
	ratio := math.Log(hi / lo)

	for i := range out {
		out[i] = lo * math.Exp(ratio*float64(i)/float64(n-1))
	}

	out[n-1] = hi

	return out
}
