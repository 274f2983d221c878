// Package lfo provides a low-frequency sine modulator driven by an integer
// sample clock, so its phase never drifts no matter how long it runs.
package lfo

import (
	"math"

	"github.com/cwbudde/algo-fxchain/dsp/core"
)

// Sine is a unit-amplitude sine whose time base counts samples modulo
// Period. The default period is one second at the nominal sample rate.
type Sine struct {
	period int
	time   int
}

// New returns a sine LFO with the given period in samples. Non-positive
// periods fall back to the nominal rate.
func New(period int) *Sine {
	if period <= 0 {
		period = int(core.NominalSampleRate)
	}

	return &Sine{period: period}
}

// Forward advances the clock by n samples.
func (s *Sine) Forward(n int) {
	if n <= 0 {
		return
	}

	s.time = (s.time + n%s.period) % s.period
}

// Value returns sin(2π·time/period).
func (s *Sine) Value() float32 {
	return float32(math.Sin(2 * math.Pi * float64(s.time) / float64(s.period)))
}

// Time returns the clock position in [0, Period).
func (s *Sine) Time() int { return s.time }

// Period returns the cycle length in samples.
func (s *Sine) Period() int { return s.period }

// Reset rewinds the clock to zero.
func (s *Sine) Reset() { s.time = 0 }
