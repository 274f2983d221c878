package effectchain

import (
	"errors"
	"fmt"
	"slices"

	"github.com/cwbudde/algo-fxchain/dsp/effects"
	"github.com/cwbudde/algo-fxchain/dsp/params"
)

// Factory builds one effect instance from its preset options.
type Factory func(p Params) (effects.Effect, error)

// Registry maps effect type names to their factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory for the given effect type.
func (r *Registry) Register(effectType string, factory Factory) error {
	if effectType == "" {
		return errors.New("effectchain: empty effect type")
	}

	if factory == nil {
		return errors.New("effectchain: nil factory")
	}

	if _, exists := r.factories[effectType]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateEffect, effectType)
	}

	r.factories[effectType] = factory

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(effectType string, factory Factory) {
	err := r.Register(effectType, factory)
	if err != nil {
		panic(err.Error())
	}
}

// Lookup returns the factory for the given effect type, or nil.
func (r *Registry) Lookup(effectType string) Factory {
	return r.factories[effectType]
}

// Names returns the registered type names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Build instantiates an effect of the given type with options p.
func (r *Registry) Build(effectType string, p Params) (effects.Effect, error) {
	factory := r.Lookup(effectType)
	if factory == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEffect, effectType)
	}

	p.Type = effectType

	fx, err := factory(p)
	if err != nil {
		return nil, fmt.Errorf("effectchain: build %q: %w", effectType, err)
	}

	return fx, nil
}

// BuildChain instantiates the named effects with default options and
// returns a chain running them in order.
func (r *Registry) BuildChain(ps *params.Set, names []string, opts ...Option) (*Chain, error) {
	fx := make([]effects.Effect, 0, len(names))
	specs := make([]EffectSpec, 0, len(names))

	for _, name := range names {
		e, err := r.Build(name, Params{})
		if err != nil {
			return nil, err
		}

		fx = append(fx, e)
		specs = append(specs, EffectSpec{Type: name})
	}

	opts = append([]Option{withSpecs(specs)}, opts...)

	return New(ps, fx, opts...), nil
}
