package effects

import (
	"github.com/cwbudde/algo-fxchain/dsp/buffer"
	"github.com/cwbudde/algo-fxchain/dsp/lfo"
)

const (
	vibratoLookahead = 512
	vibratoDepth     = 0.02
)

// Vibrato resamples the signal at a rate swinging ±2% around unity with a
// one-second sine LFO. The LFO and the playback rate advance once per
// block, so the modulation is stepped at block boundaries. Each channel
// reads through a 512-sample lookahead clip, which is also the nominal
// delay of the stage.
type Vibrato struct {
	Base

	clips [Channels]*buffer.Clip
	lfos  [Channels]*lfo.Sine
}

// NewVibrato returns a vibrato stage with silent lookahead clips.
func NewVibrato() *Vibrato {
	v := &Vibrato{}
	for ch := range Channels {
		v.clips[ch] = buffer.NewClip(vibratoLookahead, 1, false)
		v.lfos[ch] = lfo.New(0)
	}

	return v
}

// Process advances the LFO by the block length, sets the playback rate,
// queues the block and reads one interpolated sample per output.
func (v *Vibrato) Process(ch int, in, out []float32) {
	if !validChannel(ch) {
		copy(out, in)
		return
	}

	clip, mod := v.clips[ch], v.lfos[ch]

	mod.Forward(len(in))
	clip.SetScale(1 - mod.Value()*vibratoDepth)
	clip.Append(in)

	for i := range out {
		out[i] = clip.ReadAtPlayhead()
	}

	clip.Compact()
}

// Reset refills the lookahead with silence and rewinds the LFOs.
func (v *Vibrato) Reset() {
	for ch := range Channels {
		v.clips[ch].Reset(vibratoLookahead)
		v.clips[ch].SetScale(1)
		v.lfos[ch].Reset()
	}
}
