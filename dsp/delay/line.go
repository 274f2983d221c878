package delay

import "fmt"

// Line is a fixed-length circular sample line. Once primed it always holds
// exactly Len samples, so it works both as a FIFO (Push) and as a shift
// register read oldest-to-newest (Tap).
type Line struct {
	buffer   []float32
	writePos int
}

// New returns a zero-filled line of fixed size.
func New(size int) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("delay size must be > 0: %d", size)
	}

	return &Line{buffer: make([]float32, size)}, nil
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Write overwrites the oldest sample with sample.
func (d *Line) Write(sample float32) {
	d.buffer[d.writePos] = sample

	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Push appends sample and returns the sample it displaced, which is the
// oldest one in the line.
func (d *Line) Push(sample float32) float32 {
	oldest := d.buffer[d.writePos]
	d.Write(sample)

	return oldest
}

// Read reads an integer delay in samples. Read(1) is the newest sample and
// Read(Len()) the oldest.
func (d *Line) Read(delay int) float32 {
	size := len(d.buffer)
	readPos := ((d.writePos-delay)%size + size) % size

	return d.buffer[readPos]
}

// Oldest returns the sample the next Write will overwrite.
func (d *Line) Oldest() float32 {
	return d.buffer[d.writePos]
}

// Tap returns the i-th sample counted from the oldest (Tap(0)) to the
// newest (Tap(Len()-1)).
func (d *Line) Tap(i int) float32 {
	pos := d.writePos + i
	if pos >= len(d.buffer) {
		pos -= len(d.buffer)
	}

	return d.buffer[pos]
}

// Reset clears line state.
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}

	d.writePos = 0
}
