package params

import (
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-fxchain/dsp/core"
)

// Set is the shared parameter store. The zero value is not usable; call
// New.
type Set struct {
	values     [numControls]atomic.Uint32 // float32 bits
	sampleRate atomic.Uint64              // float64 bits
	dirty      atomic.Bool
}

// New returns a Set holding the defaults at the nominal sample rate. It
// starts dirty so the first processed block configures every effect.
func New() *Set {
	s := &Set{}
	for c := range numControls {
		s.values[c].Store(math.Float32bits(c.Default()))
	}

	s.sampleRate.Store(math.Float64bits(core.NominalSampleRate))
	s.dirty.Store(true)

	return s
}

// Get returns the current value of c, or 0 for an unknown control.
func (s *Set) Get(c Control) float32 {
	if !c.valid() {
		return 0
	}

	return math.Float32frombits(s.values[c].Load())
}

// Set stores v, clamped to the control's range, and marks the set dirty.
// NaN and unknown controls are ignored.
func (s *Set) Set(c Control, v float32) {
	if !c.valid() || math.IsNaN(float64(v)) {
		return
	}

	lo, hi := c.Range()
	s.values[c].Store(math.Float32bits(core.Clamp(v, lo, hi)))
	s.dirty.Store(true)
}

// SetNormalized maps a host-normalized value in [0, 1] onto c:
//
//	dry_wet, delay_feedback  v
//	slew                     20·1000^v
//	delay_time               1 − 0.99v
//	cutoff                   0.99v + 0.01
func (s *Set) SetNormalized(c Control, v float32) {
	if math.IsNaN(float64(v)) {
		return
	}

	v = core.Clamp(v, 0, 1)

	switch c {
	case Slew:
		v = float32(20 * math.Pow(1000, float64(v)))
	case DelayTime:
		v = 1 - 0.99*v
	case Cutoff:
		v = 0.99*v + 0.01
	}

	s.Set(c, v)
}

// Normalized is the inverse of SetNormalized.
func (s *Set) Normalized(c Control) float32 {
	v := s.Get(c)

	switch c {
	case Slew:
		if v <= 0 {
			return 0
		}

		return core.Clamp(float32(math.Log(float64(v)/20)/math.Log(1000)), 0, 1)
	case DelayTime:
		return core.Clamp((1-v)/0.99, 0, 1)
	case Cutoff:
		return core.Clamp((v-0.01)/0.99, 0, 1)
	default:
		return v
	}
}

// SampleRate returns the host sample rate in Hz.
func (s *Set) SampleRate() float64 {
	return math.Float64frombits(s.sampleRate.Load())
}

// SetSampleRate stores a new host rate and marks the set dirty. Non-positive
// rates are ignored.
func (s *Set) SetSampleRate(fs float64) {
	if !(fs > 0) || math.IsInf(fs, 0) {
		return
	}

	s.sampleRate.Store(math.Float64bits(fs))
	s.dirty.Store(true)
}

// Dirty reports whether a write happened since the last TakeDirty.
func (s *Set) Dirty() bool {
	return s.dirty.Load()
}

// MarkDirty forces the next TakeDirty to report true.
func (s *Set) MarkDirty() {
	s.dirty.Store(true)
}

// TakeDirty clears the dirty flag and reports whether it was set. Callers
// take their Snapshot after TakeDirty returns true: a write racing with
// the reload re-raises the flag and is picked up on the next block.
func (s *Set) TakeDirty() bool {
	return s.dirty.Swap(false)
}

// Snapshot copies every value into an immutable Snapshot. It does not
// touch the dirty flag.
func (s *Set) Snapshot() Snapshot {
	var snap Snapshot
	for c := range numControls {
		snap.values[c] = math.Float32frombits(s.values[c].Load())
	}

	snap.SampleRate = s.SampleRate()

	return snap
}
