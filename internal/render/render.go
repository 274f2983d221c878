// Package render drives an effect chain from a decoded source, block by
// block, into a sink. It is shared by the offline renderer and the live
// monitor.
package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/cwbudde/algo-fxchain/dsp/buffer"
	"github.com/cwbudde/algo-fxchain/dsp/core"
	"github.com/cwbudde/algo-fxchain/dsp/effectchain"
)

// Source yields planar frames; audiofile decoders satisfy it.
type Source interface {
	ReadFrames(dst [][]float32) (int, error)
	SampleRate() int
	NumChannels() int
	NumFrames() int64
}

// Sink consumes planar frames; audiofile.WAVEncoder satisfies it.
type Sink interface {
	WriteFrames(src [][]float32) error
}

// Processor owns the block buffers for one stream and runs them through
// a chain. Blocks the chain rejects for having too many channels come
// out as silence.
type Processor struct {
	chain  *effectchain.Chain
	logger *slog.Logger

	inBlk, outBlk   buffer.Block
	in, out         [][]float32
	inView, outView [][]float32

	blocks   int
	rejected int
}

// blockPool backs the Processor buffers of every stream in the process.
var blockPool = buffer.NewPool()

// NewProcessor takes channels × blockSize frames of input and output
// storage from a shared pool. Call Release when the stream is done.
func NewProcessor(chain *effectchain.Chain, channels, blockSize int, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	p := &Processor{
		chain:   chain,
		logger:  logger,
		inBlk:   blockPool.GetBlock(channels, blockSize),
		outBlk:  blockPool.GetBlock(channels, blockSize),
		inView:  make([][]float32, channels),
		outView: make([][]float32, channels),
	}

	p.in = p.inBlk.Slices(make([][]float32, 0, channels))
	p.out = p.outBlk.Slices(make([][]float32, 0, channels))

	return p
}

// Release returns the buffers to the pool. The Processor must not be used
// afterwards.
func (p *Processor) Release() {
	blockPool.PutBlock(p.inBlk)
	blockPool.PutBlock(p.outBlk)
	p.inBlk, p.outBlk = nil, nil
	p.in, p.out = nil, nil
}

// Input returns the full-size input buffers to decode into.
func (p *Processor) Input() [][]float32 { return p.in }

// BlockSize returns the frame capacity of one block.
func (p *Processor) BlockSize() int { return p.inBlk.Frames() }

// Process runs the first n frames of Input through the chain and returns
// views of the output.
func (p *Processor) Process(n int) ([][]float32, error) {
	for ch := range p.in {
		p.inView[ch] = p.in[ch][:n]
		p.outView[ch] = p.out[ch][:n]
	}

	p.blocks++

	err := p.chain.ProcessBlock(effectchain.Block{In: p.inView, Out: p.outView})
	if errors.Is(err, effectchain.ErrTooManyChannels) {
		p.rejected++
		p.outBlk.Zero()

		return p.outView, nil
	}

	if err != nil {
		return nil, err
	}

	return p.outView, nil
}

// Blocks returns the number of blocks processed.
func (p *Processor) Blocks() int { return p.blocks }

// Rejected returns the number of blocks replaced by silence.
func (p *Processor) Rejected() int { return p.rejected }

// Progress is reported after every block.
type Progress struct {
	Frames      int64
	TotalFrames int64
	Elapsed     time.Duration
}

// Stats summarises a finished render.
type Stats struct {
	Frames     int64
	Blocks     int
	Rejected   int
	SampleRate int
	Channels   int
	Elapsed    time.Duration
}

// Option configures Run.
type Option func(*config)

type config struct {
	processor []core.ProcessorOption
	progress  func(Progress)
	logger    *slog.Logger
}

// WithProcessorOptions sets the block size; a sample rate given here
// overrides the one of the source.
func WithProcessorOptions(opts ...core.ProcessorOption) Option {
	return func(cfg *config) { cfg.processor = append(cfg.processor, opts...) }
}

// WithProgress registers a callback invoked after each block.
func WithProgress(fn func(Progress)) Option {
	return func(cfg *config) { cfg.progress = fn }
}

// WithLogger sets the logger for per-render diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) { cfg.logger = logger }
}

// Run processes src through chain into dst until src is exhausted or ctx
// is cancelled.
func Run(ctx context.Context, src Source, dst Sink, chain *effectchain.Chain, opts ...Option) (Stats, error) {
	cfg := config{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&cfg)
	}

	pc := core.ApplyProcessorOptions(append(
		[]core.ProcessorOption{core.WithSampleRate(float64(src.SampleRate()))},
		cfg.processor...)...)

	chain.Params().SetSampleRate(pc.SampleRate)

	stats := Stats{SampleRate: int(pc.SampleRate), Channels: src.NumChannels()}
	start := time.Now()

	proc := NewProcessor(chain, src.NumChannels(), pc.BlockSize, cfg.logger)
	defer proc.Release()

	cfg.logger.Debug("render: start",
		"channels", stats.Channels, "sampleRate", stats.SampleRate,
		"blockSize", pc.BlockSize, "frames", src.NumFrames())

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		n, err := src.ReadFrames(proc.Input())
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return stats, fmt.Errorf("render: read: %w", err)
		}

		out, err := proc.Process(n)
		if err != nil {
			return stats, fmt.Errorf("render: process: %w", err)
		}

		if err := dst.WriteFrames(out); err != nil {
			return stats, fmt.Errorf("render: write: %w", err)
		}

		stats.Frames += int64(n)
		stats.Blocks = proc.Blocks()
		stats.Rejected = proc.Rejected()
		stats.Elapsed = time.Since(start)

		if cfg.progress != nil {
			cfg.progress(Progress{Frames: stats.Frames, TotalFrames: src.NumFrames(), Elapsed: stats.Elapsed})
		}
	}

	stats.Elapsed = time.Since(start)

	if stats.Rejected > 0 {
		cfg.logger.Warn("render: blocks replaced by silence",
			"rejected", stats.Rejected, "channels", stats.Channels)
	}

	return stats, nil
}
