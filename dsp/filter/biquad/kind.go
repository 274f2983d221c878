package biquad

import (
	"fmt"
	"strings"
)

// Kind selects the cookbook response of a biquad.
type Kind int

const (
	Lowpass Kind = iota
	Highpass
	Bandpass
	Notch
	Peak
	LowShelf
	HighShelf
	// Custom is a resonant section with zeros at DC and Nyquist:
	// b0=-α, b1=0, b2=α over a0=2+α, a1=-2cos ω, a2=2-α.
	Custom
)

var kindNames = [...]string{
	Lowpass:   "lowpass",
	Highpass:  "highpass",
	Bandpass:  "bandpass",
	Notch:     "notch",
	Peak:      "peak",
	LowShelf:  "lowshelf",
	HighShelf: "highshelf",
	Custom:    "custom",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return kindNames[k]
}

// ParseKind returns the Kind named s, ignoring case.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}

	return 0, fmt.Errorf("biquad: unknown filter kind %q", s)
}
