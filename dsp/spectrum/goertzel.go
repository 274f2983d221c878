package spectrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fxchain/dsp/core"
)

// Goertzel evaluates a single DFT term over all samples fed since the last
// Reset. Choose the block length so the target frequency completes a whole
// number of cycles, or accept some leakage.
type Goertzel struct {
	frequency float64
	coeff     float64
	s0, s1    float64
}

// NewGoertzel returns a single-bin detector for frequency, which must lie in
// [0, sampleRate/2].
func NewGoertzel(frequency, sampleRate float64) (*Goertzel, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("goertzel: sample rate must be > 0: %v", sampleRate)
	}

	if !(frequency >= 0 && frequency <= sampleRate/2) {
		return nil, fmt.Errorf("goertzel: frequency must be between 0 and sampleRate/2: %v", frequency)
	}

	return &Goertzel{
		frequency: frequency,
		coeff:     2 * math.Cos(2*math.Pi*frequency/sampleRate),
	}, nil
}

// Frequency returns the target frequency in Hz.
func (g *Goertzel) Frequency() float64 { return g.frequency }

func (g *Goertzel) Reset() {
	g.s0, g.s1 = 0, 0
}

// ProcessBlock feeds a block of samples.
func (g *Goertzel) ProcessBlock(in []float32) {
	s0, s1, coeff := g.s0, g.s1, g.coeff
	for _, x := range in {
		s0, s1 = float64(x)+coeff*s0-s1, s0
	}

	g.s0, g.s1 = s0, s1
}

// Power returns |X|^2 for the samples seen so far.
func (g *Goertzel) Power() float64 {
	return g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
}

// Magnitude returns |X| for the samples seen so far.
func (g *Goertzel) Magnitude() float64 {
	p := g.Power()
	if p <= 0 {
		return 0
	}

	return math.Sqrt(p)
}

// ToneGainDB compares the component at frequency in out against the one in
// in and returns the ratio in dB. Both slices should cover the same span
// of a steady tone.
func ToneGainDB(in, out []float32, frequency, sampleRate float64) (float64, error) {
	gi, err := NewGoertzel(frequency, sampleRate)
	if err != nil {
		return 0, err
	}

	gi.ProcessBlock(in)

	ref := gi.Magnitude()
	if ref == 0 {
		return 0, fmt.Errorf("goertzel: no %v Hz component in the reference signal", frequency)
	}

	gi.Reset()
	gi.ProcessBlock(out)

	m := gi.Magnitude()
	if m <= core.DBToLinear(dbFloor)*ref {
		return dbFloor, nil
	}

	return 20 * math.Log10(m/ref), nil
}
