package effects

import (
	"github.com/cwbudde/algo-fxchain/dsp/core"
	"github.com/cwbudde/algo-fxchain/dsp/delay"
)

const (
	feedbackDelayLength = int(core.NominalSampleRate)
	feedbackDelayGain   = 0.5
)

// FeedbackDelay adds a one-second echo (at the nominal rate) whose
// repeats halve each cycle:
//
//	delayed = line[n − L]
//	line[n] = (x + delayed)·0.5
//	y       = x + delayed
type FeedbackDelay struct {
	Base

	lines [Channels]*delay.Line
}

func NewFeedbackDelay() *FeedbackDelay {
	d := &FeedbackDelay{}
	for ch := range Channels {
		d.lines[ch], _ = delay.New(feedbackDelayLength)
	}

	return d
}

func (d *FeedbackDelay) Process(ch int, in, out []float32) {
	if !validChannel(ch) {
		copy(out, in)
		return
	}

	line := d.lines[ch]
	for i, x := range in {
		delayed := line.Oldest()
		line.Write((x + delayed) * feedbackDelayGain)
		out[i] = x + delayed
	}
}

// Length returns the line length in samples.
func (d *FeedbackDelay) Length() int { return feedbackDelayLength }

func (d *FeedbackDelay) Reset() {
	for _, l := range d.lines {
		l.Reset()
	}
}
