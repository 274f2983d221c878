package effects

import "github.com/cwbudde/algo-fxchain/dsp/delay"

const (
	integratorHistory = 1000
	// integratorLeak is the fraction of the trailing average bled from the
	// sum each sample.
	integratorLeak = 20.0 / 44100.0
)

// Integrator is a leaky running sum. The trailing average of the last
// 1000 sums is bled off the accumulator and subtracted from the output,
// which keeps the integral centred instead of drifting with DC.
type Integrator struct {
	Base

	sums    [Channels]float32
	history [Channels]*delay.Line
	// totals tracks the sum of each history line so the average is O(1).
	totals [Channels]float64
}

func NewIntegrator() *Integrator {
	it := &Integrator{}
	for ch := range Channels {
		it.history[ch], _ = delay.New(integratorHistory)
	}

	return it
}

func (it *Integrator) Process(ch int, in, out []float32) {
	if !validChannel(ch) {
		copy(out, in)
		return
	}

	h := it.history[ch]
	sum, total := it.sums[ch], it.totals[ch]

	for i, x := range in {
		avg := float32(total / integratorHistory)

		sum += x - avg*integratorLeak
		out[i] = sum - avg*(1-integratorLeak)

		total += float64(sum) - float64(h.Push(sum))
	}

	it.sums[ch], it.totals[ch] = sum, total
}

func (it *Integrator) Reset() {
	for ch := range Channels {
		it.history[ch].Reset()
		it.sums[ch] = 0
		it.totals[ch] = 0
	}
}
