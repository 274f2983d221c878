package params

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownControl is returned when a control name does not resolve.
var ErrUnknownControl = errors.New("params: unknown control")

// Control enumerates the parameters of the chain.
type Control int

const (
	DryWet Control = iota
	Slew
	DelayTime
	DelayFeedback
	Cutoff

	numControls
)

var controlInfo = [numControls]struct {
	name     string
	def      float32
	min, max float32
}{
	DryWet:        {"dry_wet", 1, 0, 1},
	Slew:          {"slew", 1, 0, math.MaxFloat32},
	DelayTime:     {"delay_time", 0.01, 0, 1},
	DelayFeedback: {"delay_feedback", 1, 0, 1},
	Cutoff:        {"cutoff", 1, 0.01, 1},
}

// Controls returns every control in declaration order.
func Controls() []Control {
	out := make([]Control, numControls)
	for i := range out {
		out[i] = Control(i)
	}

	return out
}

func (c Control) valid() bool { return c >= 0 && c < numControls }

func (c Control) String() string {
	if !c.valid() {
		return fmt.Sprintf("Control(%d)", int(c))
	}

	return controlInfo[c].name
}

// Default returns the value a fresh Set starts with.
func (c Control) Default() float32 {
	if !c.valid() {
		return 0
	}

	return controlInfo[c].def
}

// Range returns the inclusive bounds Set clamps to.
func (c Control) Range() (lo, hi float32) {
	if !c.valid() {
		return 0, 0
	}

	return controlInfo[c].min, controlInfo[c].max
}

// ParseControl resolves a control by name. Both the snake_case name and
// its camelCase spelling ("dryWet") are accepted.
func ParseControl(name string) (Control, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "-", "_"))
	for i, info := range controlInfo {
		if key == info.name || key == strings.ReplaceAll(info.name, "_", "") {
			return Control(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownControl, name)
}
