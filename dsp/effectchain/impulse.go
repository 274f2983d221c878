package effectchain

// ImpulseResponse measures n samples of channel ch's response to a unit
// impulse, wet/dry mix included. The chain is reset before and after the
// measurement, so any running signal state is lost; pending parameter
// writes are applied first. The impulse is fed in blocks of the work
// buffer size so block-rate effects behave as they do live.
func (c *Chain) ImpulseResponse(ch, n int) ([]float64, error) {
	if ch < 0 || ch >= MaxChannels {
		return nil, ErrChannelIndex
	}

	if n <= 0 {
		return nil, nil
	}

	c.Reset()
	c.Reload()

	in := make([]float32, n)
	out := make([]float32, n)
	in[0] = 1

	step := max(len(c.bufA), 1)
	for start := 0; start < n; start += step {
		end := min(start+step, n)
		c.process(ch, in[start:end], out[start:end], c.snapshot.DryWet())
	}

	c.Reset()

	ir := make([]float64, n)
	for i, v := range out {
		ir[i] = float64(v)
	}

	return ir, nil
}
