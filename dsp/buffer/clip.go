package buffer

import (
	"math"

	"github.com/cwbudde/algo-fxchain/dsp/interp"
)

// Clip is a growable sample buffer played back at a fractional, variable
// rate. Writers append at the tail; Read consumes from a fractional
// playhead that advances by Scale per sample. Positions without both
// interpolation neighbours read as silence.
type Clip struct {
	buf      []float32
	playhead float32
	scale    float32
	looping  bool
}

// NewClip returns a clip pre-filled with baseSize zeros. The zero prefix is
// the lookahead the playhead may run ahead into when Scale > 1.
func NewClip(baseSize int, scale float32, looping bool) *Clip {
	return &Clip{
		buf:     make([]float32, max(baseSize, 0)),
		scale:   max(scale, 0),
		looping: looping,
	}
}

// NewGrain returns a looping clip holding a copy of samples.
func NewGrain(samples []float32, scale float32) *Clip {
	buf := make([]float32, len(samples))
	copy(buf, samples)

	return &Clip{buf: buf, scale: max(scale, 0), looping: true}
}

// Append adds samples at the tail.
func (c *Clip) Append(samples []float32) {
	c.buf = append(c.buf, samples...)
}

// ReadAtPlayhead returns the sample at the playhead and advances it by
// Scale.
func (c *Clip) ReadAtPlayhead() float32 {
	v := c.Interp(c.playhead)
	c.playhead += c.scale

	if c.looping && len(c.buf) >= 2 {
		span := float32(len(c.buf) - 1)
		if c.playhead >= span {
			c.playhead = float32(math.Mod(float64(c.playhead), float64(span)))
		}
	}

	return v
}

// Interp returns the linear interpolation at fractional position i, or 0
// when i is negative or i+2 exceeds Len.
func (c *Clip) Interp(i float32) float32 {
	if i < 0 || i+2 > float32(len(c.buf)) {
		return 0
	}

	idx := int(i)
	frac := i - float32(idx)

	return interp.Linear2(frac, c.buf[idx], c.buf[idx+1])
}

// Compact drops the samples the playhead has fully passed, keeping one
// sample behind it as interpolation history. Capacity is kept. Looping
// clips are never compacted.
func (c *Clip) Compact() {
	if c.looping || c.playhead <= 1 {
		return
	}

	drop := min(int(c.playhead)-1, len(c.buf))
	if drop <= 0 {
		return
	}

	n := copy(c.buf, c.buf[drop:])
	c.buf = c.buf[:n]
	c.playhead -= float32(drop)
}

// Reset zero-fills the clip back to size samples and rewinds the playhead.
func (c *Clip) Reset(size int) {
	size = max(size, 0)
	if size <= cap(c.buf) {
		c.buf = c.buf[:size]
	} else {
		c.buf = make([]float32, size)
	}

	clear(c.buf)
	c.playhead = 0
}

// SetScale sets the playback rate. Negative rates are clamped to 0.
func (c *Clip) SetScale(scale float32) { c.scale = max(scale, 0) }

// Scale returns the playback rate.
func (c *Clip) Scale() float32 { return c.scale }

// Playhead returns the fractional read position.
func (c *Clip) Playhead() float32 { return c.playhead }

// Len returns the number of buffered samples.
func (c *Clip) Len() int { return len(c.buf) }

// Looping reports whether the playhead wraps.
func (c *Clip) Looping() bool { return c.looping }
