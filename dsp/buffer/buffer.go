package buffer

// Buffer is one channel of reusable float32 storage. Processing code takes
// raw []float32; use Samples() to bridge.
type Buffer struct {
	samples []float32
}

// New returns a zero-filled Buffer of the given length.
func New(length int) *Buffer {
	return &Buffer{samples: make([]float32, max(length, 0))}
}

// Samples returns the underlying slice.
func (b *Buffer) Samples() []float32 {
	return b.samples
}

// Len returns the current number of samples.
func (b *Buffer) Len() int {
	return len(b.samples)
}

// Resize sets the length to n, reusing capacity when possible. Samples
// exposed beyond the previous length are zeroed.
func (b *Buffer) Resize(n int) {
	n = max(n, 0)
	oldLen := len(b.samples)

	if n <= cap(b.samples) {
		b.samples = b.samples[:n]
	} else {
		s := make([]float32, n)
		copy(s, b.samples)
		b.samples = s
	}

	if n > oldLen {
		clear(b.samples[oldLen:n])
	}
}

// Zero sets all samples to 0.
func (b *Buffer) Zero() {
	clear(b.samples)
}

// Block is one buffer per channel, all of the same length. Hosts take
// blocks from a Pool and hand the chain their Slices.
type Block []*Buffer

// Frames returns the per-channel length, 0 for an empty block.
func (blk Block) Frames() int {
	if len(blk) == 0 {
		return 0
	}

	return blk[0].Len()
}

// Slices returns the per-channel sample slices, reusing dst when it has
// room.
func (blk Block) Slices(dst [][]float32) [][]float32 {
	dst = dst[:0]
	for _, b := range blk {
		dst = append(dst, b.samples)
	}

	return dst
}

// Zero silences every channel.
func (blk Block) Zero() {
	for _, b := range blk {
		b.Zero()
	}
}
