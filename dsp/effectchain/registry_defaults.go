package effectchain

import (
	"github.com/cwbudde/algo-fxchain/dsp/effects"
	"github.com/cwbudde/algo-fxchain/dsp/filter/biquad"
)

// Built-in effect type names.
const (
	TypeDistortion     = "distortion"
	TypeVibrato        = "vibrato"
	TypeFilter         = "filter"
	TypeSmoother       = "smoother"
	TypeDifferentiator = "differentiator"
	TypeIntegrator     = "integrator"
	TypeSlew           = "slew"
	TypeSecondOrder    = "slew2"
	TypeDelay          = "delay"
)

// DefaultRegistry returns a Registry pre-populated with every built-in
// effect.
//
// Recognised options:
//
//	distortion  drive (number, scales delay_feedback·2), inputDrive (bool)
//	filter      kind (string, a biquad kind name; default "custom")
//	slew2       limitAcceleration (bool)
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister(TypeDistortion, func(p Params) (effects.Effect, error) {
		var opts []effects.DistortionOption
		if drive := p.GetNum("drive", 0); drive != 0 {
			opts = append(opts, effects.WithDistortionDrive(drive))
		}

		if p.GetBool("inputDrive", false) {
			opts = append(opts, effects.WithInputDrive())
		}

		return effects.NewDistortion(opts...)
	})
	r.MustRegister(TypeVibrato, func(_ Params) (effects.Effect, error) {
		return effects.NewVibrato(), nil
	})
	r.MustRegister(TypeFilter, func(p Params) (effects.Effect, error) {
		kind, err := biquad.ParseKind(p.GetStr("kind", biquad.Custom.String()))
		if err != nil {
			return nil, err
		}

		return effects.NewFilterKind(kind), nil
	})
	r.MustRegister(TypeSmoother, func(_ Params) (effects.Effect, error) {
		return effects.NewSmoother(), nil
	})
	r.MustRegister(TypeDifferentiator, func(_ Params) (effects.Effect, error) {
		return effects.NewDifferentiator(), nil
	})
	r.MustRegister(TypeIntegrator, func(_ Params) (effects.Effect, error) {
		return effects.NewIntegrator(), nil
	})
	r.MustRegister(TypeSlew, func(_ Params) (effects.Effect, error) {
		return effects.NewSlew(), nil
	})
	r.MustRegister(TypeSecondOrder, func(p Params) (effects.Effect, error) {
		var opts []effects.SecondOrderSlewOption
		if p.GetBool("limitAcceleration", false) {
			opts = append(opts, effects.WithAccelerationLimit())
		}

		return effects.NewSecondOrderSlew(opts...), nil
	})
	r.MustRegister(TypeDelay, func(_ Params) (effects.Effect, error) {
		return effects.NewFeedbackDelay(), nil
	})

	return r
}
