package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fxchain/dsp/params"
)

const (
	defaultDistortionDrive = 1.0
	minDistortionDrive     = 0.01
	maxDistortionDrive     = 20.0
)

// Distortion is a rational soft saturator
//
//	n = (sqrt(1 + 4/d) − 1) / 2
//	y = 1 − 1/(d·(x + n)) + n,  x = d·src
//
// where d is the drive, twice the delay-feedback control times the drive
// scale set with WithDistortionDrive. The offset n places the curve
// through the origin.
//
// By default src is the value already present in the output slot, which
// couples the stage to whatever the chain's scratch buffer holds at that
// point. WithInputDrive makes it read the stage input instead.
type Distortion struct {
	Base

	drive      float32
	scale      float32
	offset     float32
	inputDrive bool
}

// DistortionOption mutates construction-time parameters.
type DistortionOption func(*distortionConfig) error

type distortionConfig struct {
	drive      float64
	inputDrive bool
}

// WithDistortionDrive scales the drive. The scale is also the drive used
// until the first reload.
func WithDistortionDrive(drive float64) DistortionOption {
	return func(cfg *distortionConfig) error {
		if drive < minDistortionDrive || drive > maxDistortionDrive || math.IsNaN(drive) {
			return fmt.Errorf("distortion drive must be in [%g, %g]: %f", minDistortionDrive, maxDistortionDrive, drive)
		}

		cfg.drive = drive

		return nil
	}
}

// WithInputDrive makes the stage saturate its input rather than the
// pre-existing output slot.
func WithInputDrive() DistortionOption {
	return func(cfg *distortionConfig) error {
		cfg.inputDrive = true
		return nil
	}
}

// NewDistortion returns a distortion stage with drive scale 1.
func NewDistortion(opts ...DistortionOption) (*Distortion, error) {
	cfg := distortionConfig{drive: defaultDistortionDrive}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	d := &Distortion{scale: float32(cfg.drive), inputDrive: cfg.inputDrive}
	d.setDrive(float32(cfg.drive))

	return d, nil
}

// Process applies the saturation curve.
func (d *Distortion) Process(_ int, in, out []float32) {
	drive, n := d.drive, d.offset

	for i := range out {
		src := out[i]
		if d.inputDrive {
			src = in[i]
		}

		x := src * drive
		out[i] = 1 - 1/(drive*(x+n)) + n
	}
}

// UpdateParams sets the drive to twice the delay-feedback control times
// the drive scale.
func (d *Distortion) UpdateParams(p params.Snapshot) {
	d.setDrive(p.DelayFeedback() * 2 * d.scale)
}

// Drive returns the current drive after flooring.
func (d *Distortion) Drive() float32 { return d.drive }

// DriveScale returns the multiplier applied to the control-derived drive.
func (d *Distortion) DriveScale() float32 { return d.scale }

// Reset is a no-op; the stage is memoryless.
func (d *Distortion) Reset() {}

func (d *Distortion) setDrive(drive float32) {
	drive = max(drive, minDistortionDrive)
	if drive == d.drive {
		return
	}

	d.drive = drive
	d.offset = float32(0.5 * (mathSqrt(1+4/float64(drive)) - 1))
}
