package effectchain

import (
	"log/slog"

	"github.com/cwbudde/algo-fxchain/dsp/core"
	"github.com/cwbudde/algo-fxchain/dsp/effects"
	"github.com/cwbudde/algo-fxchain/dsp/params"
)

// MaxChannels is the largest channel count a block may carry.
const MaxChannels = effects.Channels

// Block is one host callback worth of audio: one slice per channel on
// each side, all of the same length.
type Block struct {
	In  [][]float32
	Out [][]float32
}

// Frames returns the per-channel length of the block.
func (b Block) Frames() int {
	if len(b.In) == 0 {
		return 0
	}

	return len(b.In[0])
}

// Chain threads blocks through an ordered list of effects.
//
// ProcessBlock, Process, Reload, Reset and ImpulseResponse must be called
// from a single goroutine. The parameter set may be written concurrently.
type Chain struct {
	params  *params.Set
	effects []effects.Effect
	specs   []EffectSpec
	logger  *slog.Logger

	snapshot params.Snapshot

	// Work pair reused by every channel; see Process.
	bufA, bufB []float32
}

// Option configures a Chain.
type Option func(*chainConfig)

type chainConfig struct {
	logger       *slog.Logger
	maxBlockSize int
	specs        []EffectSpec
}

// WithLogger sets the logger for reload and rejection diagnostics. The
// default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *chainConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithMaxBlockSize pre-sizes the work buffers so blocks up to n frames
// never allocate.
func WithMaxBlockSize(n int) Option {
	return func(cfg *chainConfig) {
		if n > 0 {
			cfg.maxBlockSize = n
		}
	}
}

// withSpecs records how each effect was built, for Chain.Preset.
func withSpecs(specs []EffectSpec) Option {
	return func(cfg *chainConfig) { cfg.specs = specs }
}

// New returns a chain running fx in order against ps. A nil ps gets a
// fresh parameter set. Nil entries in fx are dropped.
func New(ps *params.Set, fx []effects.Effect, opts ...Option) *Chain {
	cfg := chainConfig{
		logger:       slog.New(slog.DiscardHandler),
		maxBlockSize: core.DefaultProcessorConfig().BlockSize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if ps == nil {
		ps = params.New()
	}

	list := make([]effects.Effect, 0, len(fx))
	specs := make([]EffectSpec, 0, len(fx))

	for i, e := range fx {
		if e == nil {
			continue
		}

		list = append(list, e)

		var spec EffectSpec
		if i < len(cfg.specs) {
			spec = cfg.specs[i]
		}

		specs = append(specs, spec)
	}

	return &Chain{
		params:   ps,
		effects:  list,
		specs:    specs,
		logger:   cfg.logger,
		snapshot: ps.Snapshot(),
		bufA:     make([]float32, cfg.maxBlockSize),
		bufB:     make([]float32, cfg.maxBlockSize),
	}
}

// Params returns the shared parameter set.
func (c *Chain) Params() *params.Set { return c.params }

// Len returns the number of effects.
func (c *Chain) Len() int { return len(c.effects) }

// Effects returns a copy of the effect list.
func (c *Chain) Effects() []effects.Effect {
	out := make([]effects.Effect, len(c.effects))
	copy(out, c.effects)

	return out
}

// Names returns the registry names of the effects; entries are empty for
// effects that were not built from a registry.
func (c *Chain) Names() []string {
	out := make([]string, len(c.specs))
	for i, spec := range c.specs {
		out[i] = spec.Type
	}

	return out
}

// Snapshot returns the parameter values applied by the last reload.
func (c *Chain) Snapshot() params.Snapshot { return c.snapshot }

// Latency returns the summed latency of all effects in samples.
func (c *Chain) Latency() int {
	total := 0
	for _, e := range c.effects {
		total += e.Latency()
	}

	return total
}

// Reset clears the signal state of every effect that supports it and
// forces a parameter reload on the next block.
func (c *Chain) Reset() {
	for _, e := range c.effects {
		if r, ok := e.(effects.Resetter); ok {
			r.Reset()
		}
	}

	clear(c.bufA)
	clear(c.bufB)
	c.params.MarkDirty()
}
