// Package effectchain runs an ordered list of effects over two-channel
// audio blocks.
//
// A [Chain] owns the effect list and the shared [params.Set]. Once per
// block it checks the set's dirty flag and, if raised, hands every effect
// a fresh snapshot. Each channel is then threaded through the effects by
// swapping two work buffers between stages, and the last stage's output is
// mixed with the dry input by the dry_wet control.
//
// Effects are built by name from a [Registry]; [LoadPreset] assembles a
// chain from a JSON preset.
package effectchain
