package effects

import (
	"github.com/cwbudde/algo-fxchain/dsp/core"
	"github.com/cwbudde/algo-fxchain/dsp/params"
)

const defaultSlewAmount = 1.0

// slewAmount converts the slew control (units per second) to a per-sample
// step.
func slewAmount(p params.Snapshot) float32 {
	if p.SampleRate <= 0 {
		return defaultSlewAmount
	}

	return float32(float64(p.Slew()) / p.SampleRate)
}

// Slew limits the per-sample change of the signal to ±amount, where
// amount = slew / sampleRate.
type Slew struct {
	Base

	prev   [Channels]float32
	amount float32
}

// NewSlew returns a limiter with amount 1, which passes full-scale audio
// until the first reload.
func NewSlew() *Slew {
	return &Slew{amount: defaultSlewAmount}
}

func (s *Slew) Process(ch int, in, out []float32) {
	if !validChannel(ch) {
		copy(out, in)
		return
	}

	prev, amount := s.prev[ch], s.amount
	for i, target := range in {
		prev += core.Clamp(target-prev, -amount, amount)
		out[i] = prev
	}

	s.prev[ch] = prev
}

func (s *Slew) UpdateParams(p params.Snapshot) {
	s.amount = slewAmount(p)
}

// Amount returns the per-sample step limit.
func (s *Slew) Amount() float32 { return s.amount }

// SetAmount overrides the step limit until the next reload.
func (s *Slew) SetAmount(amount float32) { s.amount = max(amount, 0) }

func (s *Slew) Reset() {
	s.prev = [Channels]float32{}
}

// SecondOrderSlew tracks the slope of the signal. Each sample it moves
// the slope toward the target slope by the acceleration and integrates it.
//
// Without WithAccelerationLimit the acceleration is applied in full and the
// stage reproduces its input exactly. With it, the acceleration is clamped
// to ±amount, which bounds the curvature of the output.
type SecondOrderSlew struct {
	Base

	prevSample [Channels]float32
	prevSlope  [Channels]float32
	amount     float32
	limitAccel bool
}

// SecondOrderSlewOption configures a SecondOrderSlew.
type SecondOrderSlewOption func(*SecondOrderSlew)

// WithAccelerationLimit clamps the acceleration term to ±amount.
func WithAccelerationLimit() SecondOrderSlewOption {
	return func(s *SecondOrderSlew) { s.limitAccel = true }
}

func NewSecondOrderSlew(opts ...SecondOrderSlewOption) *SecondOrderSlew {
	s := &SecondOrderSlew{amount: defaultSlewAmount}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *SecondOrderSlew) Process(ch int, in, out []float32) {
	if !validChannel(ch) {
		copy(out, in)
		return
	}

	sample, slope, amount := s.prevSample[ch], s.prevSlope[ch], s.amount

	for i, target := range in {
		accel := (target - sample) - slope
		if s.limitAccel {
			accel = core.Clamp(accel, -amount, amount)
		}

		slope += accel
		sample += slope
		out[i] = sample
	}

	s.prevSample[ch], s.prevSlope[ch] = sample, slope
}

func (s *SecondOrderSlew) UpdateParams(p params.Snapshot) {
	s.amount = slewAmount(p)
}

// Amount returns the acceleration limit.
func (s *SecondOrderSlew) Amount() float32 { return s.amount }

// AccelerationLimited reports whether the clamp is active.
func (s *SecondOrderSlew) AccelerationLimited() bool { return s.limitAccel }

func (s *SecondOrderSlew) Reset() {
	s.prevSample = [Channels]float32{}
	s.prevSlope = [Channels]float32{}
}
