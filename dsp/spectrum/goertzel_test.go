package spectrum

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-fxchain/internal/testutil"
)

func TestGoertzelMatchesDFT(t *testing.T) {
	t.Parallel()

	const (
		sampleRate = 48000.0
		freq       = 1000.0
	)

	sig := testutil.DeterministicSine(freq, sampleRate, 1, 1024)

	g, err := NewGoertzel(freq, sampleRate)
	if err != nil {
		t.Fatal(err)
	}

	g.ProcessBlock(sig[:500])
	g.ProcessBlock(sig[500:])

	var dft complex128
	for n, x := range sig {
		dft += complex(float64(x), 0) * cmplx.Exp(complex(0, -2*math.Pi*freq/sampleRate*float64(n)))
	}

	want := cmplx.Abs(dft)
	if got := g.Magnitude(); math.Abs(got-want) > 1e-7*want {
		t.Errorf("Magnitude = %v, want %v", got, want)
	}

	if got, want := g.Power(), want*want; math.Abs(got-want) > 1e-6*want {
		t.Errorf("Power = %v, want %v", got, want)
	}

	g.Reset()

	if g.Power() != 0 || g.Magnitude() != 0 {
		t.Error("Reset should clear the state")
	}

	if g.Frequency() != freq {
		t.Errorf("Frequency() = %v", g.Frequency())
	}
}

func TestNewGoertzelErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		freq, rate float64
	}{
		{"zero rate", 100, 0},
		{"negative frequency", -1, 48000},
		{"above nyquist", 30000, 48000},
		{"nan frequency", math.NaN(), 48000},
		{"inf rate", 100, math.Inf(1)},
	}

	for _, tt := range tests {
		if _, err := NewGoertzel(tt.freq, tt.rate); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestToneGainDB(t *testing.T) {
	t.Parallel()

	in := testutil.DeterministicSine(1000, 48000, 1, 480)

	half := make([]float32, len(in))
	for i, x := range in {
		half[i] = x / 2
	}

	got, err := ToneGainDB(in, half, 1000, 48000)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireNearlyEqual(t, got, -6.0206, 1e-4)

	got, err = ToneGainDB(in, make([]float32, len(in)), 1000, 48000)
	if err != nil || got != -300 {
		t.Errorf("silent output: %v, %v", got, err)
	}

	if _, err := ToneGainDB(make([]float32, 8), in[:8], 1000, 48000); err == nil {
		t.Error("expected error for silent reference")
	}
}
