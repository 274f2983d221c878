package effects

import (
	"github.com/cwbudde/algo-fxchain/dsp/core"
	"github.com/cwbudde/algo-fxchain/dsp/delay"
	"github.com/cwbudde/algo-fxchain/dsp/params"
)

const (
	smootherWindow        = 100
	smootherInitialSpread = 6
	smootherMinSpread     = 1
	smootherGain          = 1.5
)

// Smoother convolves the last 100 input samples with a parabolic kernel
//
//	k[i] = 1 − clamp((i − 50)/spread, −1, 1)²
//
// scaled by 1.5/spread. The spread follows delayTime·100; wider spreads
// smooth more and add more delay.
type Smoother struct {
	Base

	windows [Channels]*delay.Line
	kernel  [smootherWindow]float32
	spread  float32
}

// NewSmoother returns a smoother with spread 6.
func NewSmoother() *Smoother {
	s := &Smoother{}
	for ch := range Channels {
		// The window size is a positive constant.
		s.windows[ch], _ = delay.New(smootherWindow)
	}

	s.setSpread(smootherInitialSpread)

	return s
}

func (s *Smoother) Process(ch int, in, out []float32) {
	if !validChannel(ch) {
		copy(out, in)
		return
	}

	w := s.windows[ch]
	gain := smootherGain / s.spread

	for i, x := range in {
		w.Write(x)

		var acc float32
		for k, coef := range s.kernel {
			acc += coef * w.Tap(k)
		}

		out[i] = acc * gain
	}
}

// UpdateParams recomputes the kernel when delayTime·100 moved.
func (s *Smoother) UpdateParams(p params.Snapshot) {
	s.setSpread(p.DelayTime() * 100)
}

// Spread returns the current kernel half-width in samples.
func (s *Smoother) Spread() float32 { return s.spread }

// Kernel returns a copy of the current kernel.
func (s *Smoother) Kernel() []float32 {
	k := make([]float32, len(s.kernel))
	copy(k, s.kernel[:])

	return k
}

func (s *Smoother) Reset() {
	for _, w := range s.windows {
		w.Reset()
	}
}

func (s *Smoother) setSpread(spread float32) {
	spread = max(spread, smootherMinSpread)
	if spread == s.spread {
		return
	}

	s.spread = spread

	for i := range s.kernel {
		r := core.Clamp(float32(i-smootherWindow/2)/spread, -1, 1)
		s.kernel[i] = 1 - r*r
	}
}
