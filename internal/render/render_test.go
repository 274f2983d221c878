package render

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/cwbudde/algo-fxchain/dsp/core"
	"github.com/cwbudde/algo-fxchain/dsp/effectchain"
	"github.com/cwbudde/algo-fxchain/internal/testutil"
)

type memSource struct {
	channels [][]float32
	rate     int
	pos      int
	err      error
}

func (s *memSource) ReadFrames(dst [][]float32) (int, error) {
	if s.err != nil {
		return 0, s.err
	}

	remaining := len(s.channels[0]) - s.pos
	if remaining <= 0 {
		return 0, io.EOF
	}

	n := min(len(dst[0]), remaining)
	for ch := range dst {
		copy(dst[ch], s.channels[ch][s.pos:s.pos+n])
	}

	s.pos += n

	return n, nil
}

func (s *memSource) SampleRate() int  { return s.rate }
func (s *memSource) NumChannels() int { return len(s.channels) }
func (s *memSource) NumFrames() int64 { return int64(len(s.channels[0])) }

type memSink struct {
	channels [][]float32
}

func (s *memSink) WriteFrames(src [][]float32) error {
	if s.channels == nil {
		s.channels = make([][]float32, len(src))
	}

	for ch, samples := range src {
		s.channels[ch] = append(s.channels[ch], samples...)
	}

	return nil
}

func newChain(t *testing.T, names ...string) *effectchain.Chain {
	t.Helper()

	c, err := effectchain.DefaultRegistry().BuildChain(nil, names)
	if err != nil {
		t.Fatal(err)
	}

	return c
}

func TestRunMatchesSingleBlock(t *testing.T) {
	t.Parallel()

	left := testutil.DeterministicSine(220, 48000, 0.9, 1000)
	right := testutil.DeterministicNoise(11, 0.7, 1000)

	src := &memSource{channels: [][]float32{left, right}, rate: 48000}
	sink := &memSink{}

	var last Progress

	chain := newChain(t, effectchain.TypeFilter, effectchain.TypeSlew)

	stats, err := Run(context.Background(), src, sink, chain,
		WithProcessorOptions(core.WithBlockSize(128)),
		WithProgress(func(p Progress) { last = p }))
	if err != nil {
		t.Fatal(err)
	}

	if stats.Frames != 1000 || stats.Blocks != 8 || stats.Rejected != 0 {
		t.Fatalf("stats = %+v", stats)
	}

	if last.Frames != 1000 || last.TotalFrames != 1000 {
		t.Fatalf("last progress = %+v", last)
	}

	if got := chain.Params().SampleRate(); got != 48000 {
		t.Fatalf("chain sample rate = %v, want 48000", got)
	}

	ref := newChain(t, effectchain.TypeFilter, effectchain.TypeSlew)
	ref.Params().SetSampleRate(48000)

	want := [][]float32{make([]float32, 1000), make([]float32, 1000)}
	if err := ref.ProcessBlock(effectchain.Block{In: [][]float32{left, right}, Out: want}); err != nil {
		t.Fatal(err)
	}

	for ch := range want {
		testutil.RequireSliceEqual(t, sink.channels[ch], want[ch])
	}
}

func TestRunSilencesRejectedBlocks(t *testing.T) {
	t.Parallel()

	ones := testutil.Ones(300)
	src := &memSource{channels: [][]float32{ones, ones, ones}, rate: 44100}
	sink := &memSink{}

	stats, err := Run(context.Background(), src, sink, newChain(t, effectchain.TypeSlew),
		WithProcessorOptions(core.WithBlockSize(100)))
	if err != nil {
		t.Fatal(err)
	}

	if stats.Rejected != 3 || stats.Blocks != 3 || stats.Channels != 3 {
		t.Fatalf("stats = %+v", stats)
	}

	for ch := range sink.channels {
		testutil.RequireSliceEqual(t, sink.channels[ch], make([]float32, 300))
	}
}

func TestRunSampleRateOverride(t *testing.T) {
	t.Parallel()

	src := &memSource{channels: [][]float32{testutil.Ones(10)}, rate: 0}
	chain := newChain(t)

	stats, err := Run(context.Background(), src, &memSink{}, chain,
		WithProcessorOptions(core.WithSampleRate(96000)))
	if err != nil {
		t.Fatal(err)
	}

	if stats.SampleRate != 96000 || chain.Params().SampleRate() != 96000 {
		t.Fatalf("sample rate = %d / %v", stats.SampleRate, chain.Params().SampleRate())
	}
}

func TestRunErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")

	src := &memSource{channels: [][]float32{testutil.Ones(10)}, rate: 44100, err: boom}
	if _, err := Run(context.Background(), src, &memSink{}, newChain(t)); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src = &memSource{channels: [][]float32{testutil.Ones(10)}, rate: 44100}
	if _, err := Run(ctx, src, &memSink{}, newChain(t)); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestProcessorViews(t *testing.T) {
	t.Parallel()

	p := NewProcessor(newChain(t, effectchain.TypeDifferentiator), 1, 8, nil)
	if p.BlockSize() != 8 {
		t.Fatalf("BlockSize() = %d", p.BlockSize())
	}

	copy(p.Input()[0], []float32{1, 1, 1})

	out, err := p.Process(3)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceEqual(t, out[0], []float32{1, 0, 0})

	p.Release()

	if p.BlockSize() != 0 || p.Input() != nil {
		t.Error("released processor should hold no buffers")
	}
}

func TestProcessorSilencesRejectedBlock(t *testing.T) {
	t.Parallel()

	p := NewProcessor(newChain(t), 3, 4, nil)
	defer p.Release()

	if got := len(p.Input()); got != 3 {
		t.Fatalf("len(Input()) = %d, want 3", got)
	}

	for _, ch := range p.Input() {
		copy(ch, testutil.Ones(4))
	}

	// Leave stale data in the pooled output so silencing is observable.
	for _, ch := range p.out {
		copy(ch, testutil.Ones(4))
	}

	out, err := p.Process(4)
	if err != nil {
		t.Fatal(err)
	}

	for ch := range out {
		testutil.RequireSliceEqual(t, out[ch], make([]float32, 4))
	}

	if p.Rejected() != 1 || p.Blocks() != 1 {
		t.Errorf("Rejected() = %d, Blocks() = %d", p.Rejected(), p.Blocks())
	}
}
