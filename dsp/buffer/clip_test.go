package buffer

import "testing"

func TestClipInterp(t *testing.T) {
	t.Parallel()

	c := NewGrain([]float32{0, 10, 20}, 1)

	tests := []struct {
		pos  float32
		want float32
	}{
		{0, 0},
		{0.5, 5},
		{0.75, 7.5},
		{1, 10},   // last position with i+2 <= Len
		{1.25, 0}, // i+2 exceeds Len
		{1.5, 0},
		{-0.5, 0}, // before the buffer
		{7, 0},
	}
	for _, tt := range tests {
		if got := c.Interp(tt.pos); got != tt.want {
			t.Errorf("Interp(%v) = %v, want %v", tt.pos, got, tt.want)
		}
	}
}

func TestClipUnderrunReadsSilence(t *testing.T) {
	t.Parallel()

	c := NewClip(0, 1, false)
	for i := 0; i < 4; i++ {
		if got := c.ReadAtPlayhead(); got != 0 {
			t.Fatalf("read %d = %v, want 0", i, got)
		}
	}

	if c.Playhead() != 4 {
		t.Fatalf("Playhead() = %v, want 4", c.Playhead())
	}
}

func TestClipUnityRateDelaysByPrefix(t *testing.T) {
	t.Parallel()

	c := NewClip(4, 1, false)
	c.Append([]float32{1, 2, 3, 4, 5, 6})

	want := []float32{0, 0, 0, 0, 1, 2}
	for i, w := range want {
		if got := c.ReadAtPlayhead(); got != w {
			t.Fatalf("read %d = %v, want %v", i, got, w)
		}
	}
}

func TestClipCompactKeepsPosition(t *testing.T) {
	t.Parallel()

	c := NewClip(4, 1, false)
	c.Append([]float32{1, 2, 3, 4, 5, 6, 7, 8})

	for i := 0; i < 10; i++ {
		c.ReadAtPlayhead()
	}

	before := c.Interp(c.Playhead())
	capBefore := cap(c.buf)

	c.Compact()

	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}

	if c.Playhead() != 1 {
		t.Fatalf("Playhead() = %v, want 1", c.Playhead())
	}

	if after := c.Interp(c.Playhead()); after != before {
		t.Fatalf("value under playhead changed: %v -> %v", before, after)
	}

	if cap(c.buf) != capBefore {
		t.Fatalf("Compact reallocated: cap %d -> %d", capBefore, cap(c.buf))
	}
}

func TestClipCompactBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		reads     int
		wantLen   int
		wantPhead float32
	}{
		{"no reads", 0, 8, 0},
		{"one read", 1, 8, 1},
		{"two reads", 2, 7, 1},
		{"past the end", 20, 0, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := NewClip(8, 1, false)
			for i := 0; i < tt.reads; i++ {
				c.ReadAtPlayhead()
			}

			c.Compact()

			if c.Len() != tt.wantLen {
				t.Fatalf("Len() = %d, want %d", c.Len(), tt.wantLen)
			}

			if c.Playhead() != tt.wantPhead {
				t.Fatalf("Playhead() = %v, want %v", c.Playhead(), tt.wantPhead)
			}
		})
	}
}

func TestClipLoopingWraps(t *testing.T) {
	t.Parallel()

	c := NewGrain([]float32{0, 1, 2, 3}, 1)
	want := []float32{0, 1, 2, 0, 1, 2, 0}

	for i, w := range want {
		if got := c.ReadAtPlayhead(); got != w {
			t.Fatalf("read %d = %v, want %v", i, got, w)
		}
	}

	c.Compact()

	if c.Len() != 4 {
		t.Fatalf("looping clip was compacted to %d samples", c.Len())
	}
}

func TestClipScaleClampedAndReset(t *testing.T) {
	t.Parallel()

	c := NewClip(4, -1, false)
	if c.Scale() != 0 {
		t.Fatalf("Scale() = %v, want 0", c.Scale())
	}

	c.SetScale(0.5)
	c.Append([]float32{1, 1})
	c.ReadAtPlayhead()
	c.Reset(6)

	if c.Len() != 6 || c.Playhead() != 0 {
		t.Fatalf("after Reset: Len=%d Playhead=%v", c.Len(), c.Playhead())
	}

	if c.Looping() {
		t.Fatal("Looping() = true for NewClip(..., false)")
	}
}
