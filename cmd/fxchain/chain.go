package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/cwbudde/algo-fxchain/dsp/effectchain"
	"github.com/cwbudde/algo-fxchain/dsp/params"
)

// ChainFlags select and configure the chain. Without --preset or --effects
// the default preset is used.
type ChainFlags struct {
	Preset     string             `short:"p" type:"existingfile" help:"JSON preset file" xor:"chain"`
	Effects    []string           `short:"e" help:"Comma-separated effect names, in order" xor:"chain"`
	Set        map[string]float64 `help:"Set a control in its native unit (name=value)"`
	Normalized map[string]float64 `help:"Set a control in [0,1] (name=value)"`
}

func (f *ChainFlags) build(logger *slog.Logger) (*effectchain.Chain, error) {
	reg := effectchain.DefaultRegistry()
	opts := []effectchain.Option{effectchain.WithLogger(logger)}

	var (
		chain *effectchain.Chain
		err   error
	)

	switch {
	case f.Preset != "":
		data, readErr := os.ReadFile(f.Preset)
		if readErr != nil {
			return nil, fmt.Errorf("read preset: %w", readErr)
		}

		chain, err = effectchain.LoadPreset(data, reg, opts...)
	case len(f.Effects) > 0:
		chain, err = reg.BuildChain(nil, f.Effects, opts...)
	default:
		chain, err = effectchain.DefaultPreset().Build(reg, opts...)
	}

	if err != nil {
		return nil, err
	}

	if err := applyControls(chain.Params(), f.Set, (*params.Set).Set); err != nil {
		return nil, err
	}

	if err := applyControls(chain.Params(), f.Normalized, (*params.Set).SetNormalized); err != nil {
		return nil, err
	}

	logger.Debug("chain built", "effects", chain.Names(), "latency", chain.Latency())

	return chain, nil
}

func applyControls(ps *params.Set, values map[string]float64, set func(*params.Set, params.Control, float32)) error {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		c, err := params.ParseControl(name)
		if err != nil {
			return err
		}

		set(ps, c, float32(values[name]))
	}

	return nil
}
