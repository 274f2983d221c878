package effects

import (
	"github.com/cwbudde/algo-fxchain/dsp/core"
	"github.com/cwbudde/algo-fxchain/dsp/filter/biquad"
	"github.com/cwbudde/algo-fxchain/dsp/params"
)

const (
	filterInitialFreq = 1000.0
	filterQ           = 1.0
	// filterCutoffScale maps the cutoff control onto Hz.
	filterCutoffScale = 10000.0
)

// Filter runs each channel through its own biquad of the Custom kind,
// tuned to cutoff·10 kHz.
type Filter struct {
	Base

	sections [Channels]*biquad.Filter
}

// NewFilter returns a filter stage at 1 kHz, 44.1 kHz, Q 1.
func NewFilter() *Filter {
	return NewFilterKind(biquad.Custom)
}

// NewFilterKind returns a filter stage using another cookbook response.
func NewFilterKind(kind biquad.Kind) *Filter {
	f := &Filter{}
	for ch := range Channels {
		f.sections[ch] = biquad.NewFilter(kind, filterInitialFreq, core.NominalSampleRate, filterQ, 0)
	}

	return f
}

func (f *Filter) Process(ch int, in, out []float32) {
	if !validChannel(ch) {
		copy(out, in)
		return
	}

	f.sections[ch].ProcessBlockTo(out, in)
}

// UpdateParams retunes both channels. Unchanged values leave the
// coefficients alone.
func (f *Filter) UpdateParams(p params.Snapshot) {
	freq := float64(p.Cutoff() * filterCutoffScale)
	for _, s := range f.sections {
		s.UpdateSampleRate(p.SampleRate)
		s.UpdateCenterFreq(freq)
	}
}

// Section returns the biquad of channel ch.
func (f *Filter) Section(ch int) *biquad.Filter {
	return f.sections[ch]
}

func (f *Filter) Reset() {
	for _, s := range f.sections {
		s.Reset()
	}
}
