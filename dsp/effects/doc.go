// Package effects provides the stateful stages of the effect chain.
//
// Every stage implements [Effect]: it processes one channel (0 or 1) of a
// block at a time, keeps independent state per channel, and re-derives its
// cached coefficients from a [params.Snapshot] when the chain reloads
// parameters. Stages never hold a reference to the shared parameter store.
//
// Stages in this package:
//   - Distortion: drive-dependent rational soft saturation.
//   - Vibrato: LFO-modulated variable-rate playback.
//   - Filter: cookbook biquad tuned by the cutoff control.
//   - Smoother: windowed parabolic-kernel smoothing.
//   - Differentiator and Integrator: first difference and leaky running sum.
//   - Slew and SecondOrderSlew: rate (and acceleration) limiting.
//   - FeedbackDelay: one-second echo with halving feedback.
//
// All stages run allocation-free once constructed.
package effects
