package effects

import "github.com/cwbudde/algo-fxchain/dsp/params"

// Channels is the number of independent channel states each stage keeps.
const Channels = 2

// DefaultLatency is the latency every stage reports unless it overrides
// Latency.
const DefaultLatency = 1

// Effect is one stage of the chain.
//
// Process reads in and writes out for channel ch; both have the same
// length. UpdateParams re-derives cached coefficients and must leave them
// unchanged when called again with an equal snapshot. Latency reports the
// stage's delay in samples.
type Effect interface {
	Process(ch int, in, out []float32)
	UpdateParams(p params.Snapshot)
	Latency() int
}

// Resetter is implemented by stages that can clear their signal state
// without losing configuration.
type Resetter interface {
	Reset()
}

// Base supplies the default behaviour: Process copies input to output,
// UpdateParams does nothing and Latency is DefaultLatency. Stages embed it
// and override what they need.
type Base struct{}

func (Base) Process(_ int, in, out []float32) { copy(out, in) }

func (Base) UpdateParams(params.Snapshot) {}

func (Base) Latency() int { return DefaultLatency }

// validChannel reports whether ch addresses per-channel state. Stages pass
// other channels through unchanged.
func validChannel(ch int) bool {
	return ch >= 0 && ch < Channels
}
