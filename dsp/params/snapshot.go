package params

import (
	"math"

	"github.com/cwbudde/algo-fxchain/dsp/core"
)

// Snapshot is a point-in-time copy of a Set. It is a plain value, safe to
// pass to the audio path by copy.
type Snapshot struct {
	values     [numControls]float32
	SampleRate float64
}

// DefaultSnapshot returns the values a fresh Set holds.
func DefaultSnapshot() Snapshot {
	return New().Snapshot()
}

// Get returns the captured value of c, or 0 for an unknown control.
func (s Snapshot) Get(c Control) float32 {
	if !c.valid() {
		return 0
	}

	return s.values[c]
}

// With returns a copy of s with c replaced, clamped as Set would.
func (s Snapshot) With(c Control, v float32) Snapshot {
	if c.valid() && !math.IsNaN(float64(v)) {
		lo, hi := c.Range()
		s.values[c] = core.Clamp(v, lo, hi)
	}

	return s
}

func (s Snapshot) DryWet() float32        { return s.values[DryWet] }
func (s Snapshot) Slew() float32          { return s.values[Slew] }
func (s Snapshot) DelayTime() float32     { return s.values[DelayTime] }
func (s Snapshot) DelayFeedback() float32 { return s.values[DelayFeedback] }
func (s Snapshot) Cutoff() float32        { return s.values[Cutoff] }
