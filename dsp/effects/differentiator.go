package effects

// Differentiator outputs the first difference x[n] − x[n−1].
type Differentiator struct {
	Base

	prev [Channels]float32
}

func NewDifferentiator() *Differentiator {
	return &Differentiator{}
}

func (d *Differentiator) Process(ch int, in, out []float32) {
	if !validChannel(ch) {
		copy(out, in)
		return
	}

	prev := d.prev[ch]
	for i, x := range in {
		out[i] = x - prev
		prev = x
	}

	d.prev[ch] = prev
}

func (d *Differentiator) Reset() {
	d.prev = [Channels]float32{}
}
