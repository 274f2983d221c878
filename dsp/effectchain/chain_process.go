package effectchain

import (
	"fmt"

	"github.com/cwbudde/algo-fxchain/dsp/core"
	"github.com/cwbudde/algo-fxchain/dsp/params"
)

// ProcessBlock runs one host block. Blocks with more than two channels
// are rejected with ErrTooManyChannels and leave Out untouched; shape
// errors are reported the same way with ErrBlockMismatch. Otherwise the
// parameters are reloaded if dirty and each channel is processed.
func (c *Chain) ProcessBlock(b Block) error {
	if len(b.In) > MaxChannels {
		c.logger.Warn("effectchain: block rejected",
			"channels", len(b.In), "max", MaxChannels)

		return fmt.Errorf("%w: %d channels", ErrTooManyChannels, len(b.In))
	}

	if err := validateBlock(b); err != nil {
		c.logger.Warn("effectchain: block rejected", "error", err)
		return err
	}

	c.Reload()

	for ch, in := range b.In {
		c.process(ch, in, b.Out[ch], c.snapshot.DryWet())
	}

	return nil
}

func validateBlock(b Block) error {
	if len(b.Out) < len(b.In) {
		return fmt.Errorf("%w: %d input channels, %d output channels",
			ErrBlockMismatch, len(b.In), len(b.Out))
	}

	frames := b.Frames()
	for ch, in := range b.In {
		if len(in) != frames || len(b.Out[ch]) != frames {
			return fmt.Errorf("%w: channel %d has %d/%d frames, want %d",
				ErrBlockMismatch, ch, len(in), len(b.Out[ch]), frames)
		}
	}

	return nil
}

// Reload applies pending parameter writes: when the set is dirty it
// clears the flag, snapshots the values and calls UpdateParams on every
// effect in order. It reports whether a reload happened. ProcessBlock
// calls it once per block; hosts that drive Process directly call it
// before the first channel of each block.
func (c *Chain) Reload() bool {
	if !c.params.TakeDirty() {
		return false
	}

	c.apply(c.params.Snapshot())
	c.logger.Debug("effectchain: parameters reloaded",
		"effects", len(c.effects), "sampleRate", c.snapshot.SampleRate)

	return true
}

func (c *Chain) apply(snap params.Snapshot) {
	c.snapshot = snap
	for _, e := range c.effects {
		e.UpdateParams(snap)
	}
}

// Process runs channel ch of one block through the chain and mixes the
// result into out with the dry_wet value of the last reload. It does not
// reload parameters. in and out may alias.
func (c *Chain) Process(ch int, in, out []float32) error {
	if ch < 0 || ch >= MaxChannels {
		return fmt.Errorf("%w: %d", ErrChannelIndex, ch)
	}

	if len(out) != len(in) {
		return fmt.Errorf("%w: %d input frames, %d output frames", ErrBlockMismatch, len(in), len(out))
	}

	c.process(ch, in, out, c.snapshot.DryWet())

	return nil
}

func (c *Chain) process(ch int, in, out []float32, dryWet float32) {
	n := len(in)
	if n == 0 {
		return
	}

	c.ensureCapacity(n)

	// wet starts as a copy of the input, spare as zeroed scratch. Before
	// each stage the two swap roles, so the stage reads the previous
	// output and overwrites the buffer that held the one before it.
	wet, spare := c.bufA[:n], c.bufB[:n]
	core.CopyInto(wet, in)
	core.Zero(spare)

	for _, e := range c.effects {
		wet, spare = spare, wet
		e.Process(ch, spare, wet)
	}

	mix(out, wet, in, dryWet)
}

func (c *Chain) ensureCapacity(n int) {
	if n <= len(c.bufA) {
		return
	}

	c.logger.Debug("effectchain: growing work buffers", "from", len(c.bufA), "to", n)

	c.bufA = core.EnsureLen(c.bufA, n)
	c.bufB = core.EnsureLen(c.bufB, n)
}

// mix writes wet·dryWet + dry·(1 − dryWet). The end points copy instead
// of multiplying so they are exact.
func mix(out, wet, dry []float32, dryWet float32) {
	switch dryWet {
	case 1:
		copy(out, wet)
	case 0:
		copy(out, dry)
	default:
		dw := 1 - dryWet
		for i := range out {
			out[i] = wet[i]*dryWet + dry[i]*dw
		}
	}
}
