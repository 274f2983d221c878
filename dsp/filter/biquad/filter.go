package biquad

// Filter is one channel of a cookbook biquad with Direct Form I history.
// The design inputs are cached so that repeated updates with unchanged
// values leave the coefficients untouched.
type Filter struct {
	Coefficients

	kind       Kind
	centerFreq float64
	sampleRate float64
	q          float64
	gainDB     float64

	x1, x2 float64
	y1, y2 float64
}

// NewFilter returns a filter designed for the given response with zero
// history.
func NewFilter(kind Kind, centerFreq, sampleRate, q, gainDB float64) *Filter {
	f := &Filter{}
	f.Configure(kind, centerFreq, sampleRate, q, gainDB)

	return f
}

// Configure re-derives the coefficients. History is kept, so a running
// filter can be retuned without a click from cleared state.
func (f *Filter) Configure(kind Kind, centerFreq, sampleRate, q, gainDB float64) {
	f.kind = kind
	f.centerFreq = centerFreq
	f.sampleRate = sampleRate
	f.q = q
	f.gainDB = gainDB
	f.Coefficients = Design(kind, centerFreq, sampleRate, q, gainDB)
}

// UpdateCenterFreq retunes the filter when centerFreq differs from the
// cached value and is a no-op otherwise.
func (f *Filter) UpdateCenterFreq(centerFreq float64) {
	if centerFreq == f.centerFreq {
		return
	}

	f.Configure(f.kind, centerFreq, f.sampleRate, f.q, f.gainDB)
}

// UpdateSampleRate re-derives the coefficients for a new sample rate when
// it differs from the cached one.
func (f *Filter) UpdateSampleRate(sampleRate float64) {
	if sampleRate == f.sampleRate || sampleRate <= 0 {
		return
	}

	f.Configure(f.kind, f.centerFreq, sampleRate, f.q, f.gainDB)
}

// Step filters one sample.
func (f *Filter) Step(x float32) float32 {
	xf := float64(x)
	y := f.B0*xf + f.B1*f.x1 + f.B2*f.x2 - f.A1*f.y1 - f.A2*f.y2

	f.x2, f.x1 = f.x1, xf
	f.y2, f.y1 = f.y1, y

	return float32(y)
}

// ProcessBlockTo filters src into dst. Both must have the same length;
// they may alias.
func (f *Filter) ProcessBlockTo(dst, src []float32) {
	if len(dst) != len(src) {
		panic("biquad: dst and src length mismatch")
	}

	for i, x := range src {
		dst[i] = f.Step(x)
	}
}

// Reset clears the history.
func (f *Filter) Reset() {
	f.x1, f.x2, f.y1, f.y2 = 0, 0, 0, 0
}

// State returns the history as [x1, x2, y1, y2].
func (f *Filter) State() [4]float64 {
	return [4]float64{f.x1, f.x2, f.y1, f.y2}
}

// SetState restores history captured by State.
func (f *Filter) SetState(s [4]float64) {
	f.x1, f.x2, f.y1, f.y2 = s[0], s[1], s[2], s[3]
}

// Kind returns the configured response.
func (f *Filter) Kind() Kind { return f.kind }

// CenterFreq returns the cached center frequency in Hz.
func (f *Filter) CenterFreq() float64 { return f.centerFreq }

// SampleRate returns the cached sample rate in Hz.
func (f *Filter) SampleRate() float64 { return f.sampleRate }

// Q returns the configured quality factor as given, before the zero guard.
func (f *Filter) Q() float64 { return f.q }
