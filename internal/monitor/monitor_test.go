package monitor

import (
	"context"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"
	"time"

	"github.com/cwbudde/algo-fxchain/dsp/effectchain"
	"github.com/cwbudde/algo-fxchain/dsp/params"
	"github.com/cwbudde/algo-fxchain/internal/testutil"
)

type memSource struct {
	channels [][]float32
	pos      int
	err      error
}

func (s *memSource) ReadFrames(dst [][]float32) (int, error) {
	remaining := len(s.channels[0]) - s.pos
	if remaining <= 0 {
		if s.err != nil {
			return 0, s.err
		}

		return 0, io.EOF
	}

	n := min(len(dst[0]), remaining)
	for ch := range dst {
		copy(dst[ch], s.channels[ch][s.pos:s.pos+n])
	}

	s.pos += n

	return n, nil
}

func (s *memSource) SampleRate() int  { return 44100 }
func (s *memSource) NumChannels() int { return len(s.channels) }
func (s *memSource) NumFrames() int64 { return int64(len(s.channels[0])) }

func TestStreamInterleavesProcessedFrames(t *testing.T) {
	t.Parallel()

	left := testutil.DeterministicSine(440, 44100, 0.5, 333)
	right := testutil.DeterministicNoise(5, 0.5, 333)

	chain, err := effectchain.DefaultRegistry().BuildChain(nil, []string{effectchain.TypeDifferentiator})
	if err != nil {
		t.Fatal(err)
	}

	s := NewStream(&memSource{channels: [][]float32{left, right}}, chain, 64, nil)

	// Odd read sizes split frames across calls.
	var raw []byte

	buf := make([]byte, 37)
	for {
		n, err := s.Read(buf)
		raw = append(raw, buf[:n]...)

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			t.Fatal(err)
		}
	}

	if len(raw) != 333*2*4 {
		t.Fatalf("read %d bytes, want %d", len(raw), 333*2*4)
	}

	if s.Frames() != 333 || s.Rejected() != 0 {
		t.Fatalf("frames = %d, rejected = %d", s.Frames(), s.Rejected())
	}

	for i := range 333 {
		for ch, src := range [][]float32{left, right} {
			got := math.Float32frombits(binary.LittleEndian.Uint32(raw[(i*2+ch)*4:]))

			want := src[i]
			if i > 0 {
				want -= src[i-1]
			}

			if got != want {
				t.Fatalf("frame %d ch %d = %v, want %v", i, ch, got, want)
			}
		}
	}
}

func TestStreamPropagatesDecodeErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	src := &memSource{channels: [][]float32{testutil.Ones(4)}, err: boom}

	s := NewStream(src, effectchain.New(nil, nil), 16, nil)
	defer s.Close()

	n, err := s.Read(make([]byte, 64))
	if n != 16 || err != nil {
		t.Fatalf("first read = %d, %v", n, err)
	}

	if _, err := s.Read(make([]byte, 64)); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
}

func TestStreamClose(t *testing.T) {
	t.Parallel()

	s := NewStream(&memSource{channels: [][]float32{testutil.Ones(64)}}, effectchain.New(nil, nil), 16, nil)

	if _, err := s.Read(make([]byte, 8)); err != nil {
		t.Fatal(err)
	}

	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("second Close = %v", err)
	}

	if n, err := s.Read(make([]byte, 8)); n != 0 || !errors.Is(err, io.ErrClosedPipe) {
		t.Fatalf("read after Close = %d, %v", n, err)
	}
}

func TestSweepWritesControl(t *testing.T) {
	t.Parallel()

	ps := params.New()
	ps.TakeDirty()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	Sweep(ctx, ps, params.Cutoff, 10*time.Millisecond, time.Millisecond)

	if !ps.TakeDirty() {
		t.Fatal("sweep did not mark the set dirty")
	}

	if got := ps.Get(params.Cutoff); got == params.Cutoff.Default() || got < 0.01 || got > 1 {
		t.Fatalf("cutoff = %v", got)
	}
}

func TestSweepInvalidTiming(t *testing.T) {
	t.Parallel()

	ps := params.New()
	ps.TakeDirty()

	Sweep(context.Background(), ps, params.Cutoff, 0, time.Millisecond)

	if ps.Dirty() {
		t.Fatal("invalid timing must not write")
	}
}
