package effectchain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/cwbudde/algo-fxchain/dsp/effects"
	"github.com/cwbudde/algo-fxchain/dsp/params"
)

// Preset is the JSON description of a chain:
//
//	{
//	  "name": "warm",
//	  "sampleRate": 48000,
//	  "effects": ["filter", {"type": "distortion", "options": {"inputDrive": true}}],
//	  "params": {"dry_wet": 0.8, "cutoff": 0.4},
//	  "normalized": {"slew": 0.5}
//	}
//
// params are stored as given (clamped to each control's range);
// normalized values go through the host mapping of params.Set.SetNormalized
// and are applied after params.
type Preset struct {
	Name       string             `json:"name,omitempty"`
	SampleRate float64            `json:"sampleRate,omitempty"`
	Effects    []EffectSpec       `json:"effects"`
	Params     map[string]float64 `json:"params,omitempty"`
	Normalized map[string]float64 `json:"normalized,omitempty"`
}

// EffectSpec is one entry of Preset.Effects. In JSON it is either the bare
// type name or an object with type, bypassed and options.
type EffectSpec struct {
	Type     string         `json:"type"`
	Bypassed bool           `json:"bypassed,omitempty"`
	Options  map[string]any `json:"options,omitempty"`
}

type effectSpecObject EffectSpec

// UnmarshalJSON accepts both the string and the object form.
func (s *EffectSpec) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}

		*s = EffectSpec{Type: name}

		return nil
	}

	var obj effectSpecObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	*s = EffectSpec(obj)

	return nil
}

// MarshalJSON writes the bare type name when nothing else is set.
func (s EffectSpec) MarshalJSON() ([]byte, error) {
	if !s.Bypassed && len(s.Options) == 0 {
		return json.Marshal(s.Type)
	}

	return json.Marshal(effectSpecObject(s))
}

func (s EffectSpec) params() Params {
	num, str := parseOptions(s.Options)

	return Params{Type: s.Type, Num: num, Str: str}
}

// DefaultPreset is a cookbook filter followed by a slew limiter.
func DefaultPreset() Preset {
	return Preset{
		Name:    "default",
		Effects: []EffectSpec{{Type: TypeFilter}, {Type: TypeSlew}},
	}
}

// ParsePreset decodes and validates a JSON preset. Unknown top-level
// fields are rejected.
func ParsePreset(data []byte) (Preset, error) {
	var p Preset

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&p); err != nil {
		return Preset{}, fmt.Errorf("%w: %w", ErrInvalidPreset, err)
	}

	if err := p.Validate(); err != nil {
		return Preset{}, err
	}

	return p, nil
}

// Validate checks the preset without building it.
func (p Preset) Validate() error {
	if p.SampleRate < 0 || math.IsNaN(p.SampleRate) || math.IsInf(p.SampleRate, 0) {
		return fmt.Errorf("%w: sample rate %v", ErrInvalidPreset, p.SampleRate)
	}

	for i, spec := range p.Effects {
		if spec.Type == "" {
			return fmt.Errorf("%w: effect %d has no type", ErrInvalidPreset, i)
		}
	}

	for _, values := range []map[string]float64{p.Params, p.Normalized} {
		names := slices.Sorted(maps.Keys(values))
		seen := make(map[params.Control]string, len(names))

		for _, name := range names {
			c, err := params.ParseControl(name)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidPreset, err)
			}

			if prev, ok := seen[c]; ok {
				return fmt.Errorf("%w: %q and %q both set %s", ErrInvalidPreset, prev, name, c)
			}

			seen[c] = name

			if v := values[name]; math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: %s is not finite", ErrInvalidPreset, name)
			}
		}
	}

	return nil
}

// Build instantiates the preset with reg (DefaultRegistry when nil).
// Bypassed entries are skipped.
func (p Preset) Build(reg *Registry, opts ...Option) (*Chain, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if reg == nil {
		reg = DefaultRegistry()
	}

	ps := params.New()
	if p.SampleRate > 0 {
		ps.SetSampleRate(p.SampleRate)
	}

	apply := func(values map[string]float64, set func(params.Control, float32)) {
		for name, v := range values {
			c, _ := params.ParseControl(name) // validated above, one key per control
			set(c, float32(v))
		}
	}
	apply(p.Params, ps.Set)
	apply(p.Normalized, ps.SetNormalized)

	fx := make([]effects.Effect, 0, len(p.Effects))
	specs := make([]EffectSpec, 0, len(p.Effects))

	for _, spec := range p.Effects {
		if spec.Bypassed {
			continue
		}

		e, err := reg.Build(spec.Type, spec.params())
		if err != nil {
			if errors.Is(err, ErrUnknownEffect) {
				return nil, fmt.Errorf("%w: %w", ErrInvalidPreset, err)
			}

			return nil, err
		}

		fx = append(fx, e)
		specs = append(specs, spec)
	}

	opts = append([]Option{withSpecs(specs)}, opts...)

	return New(ps, fx, opts...), nil
}

// LoadPreset parses data and builds the chain it describes.
func LoadPreset(data []byte, reg *Registry, opts ...Option) (*Chain, error) {
	p, err := ParsePreset(data)
	if err != nil {
		return nil, err
	}

	return p.Build(reg, opts...)
}

// Preset describes the chain's current effects and parameter values.
// Effects that were not built from a registry are reported as an error.
func (c *Chain) Preset() (Preset, error) {
	p := Preset{
		SampleRate: c.params.SampleRate(),
		Effects:    make([]EffectSpec, 0, len(c.specs)),
		Params:     make(map[string]float64, len(params.Controls())),
	}

	for i, spec := range c.specs {
		if spec.Type == "" {
			return Preset{}, fmt.Errorf("%w: effect %d has no registry type", ErrInvalidPreset, i)
		}

		p.Effects = append(p.Effects, spec)
	}

	for _, ctl := range params.Controls() {
		p.Params[ctl.String()] = float64(c.params.Get(ctl))
	}

	return p, nil
}
