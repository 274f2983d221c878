package biquad

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func passthrough() Coefficients {
	return Coefficients{B0: 1}
}

var allKinds = []Kind{Lowpass, Highpass, Bandpass, Notch, Peak, LowShelf, HighShelf, Custom}

func TestDesign_A0Folded(t *testing.T) {
	t.Parallel()

	for _, kind := range allKinds {
		for _, q := range []float64{0.1, 0.707, 1, 4} {
			b0, b1, b2, a0, a1, a2 := rawDesign(kind, 1500, 48000, q, 6)
			c := Design(kind, 1500, 48000, q, 6)

			// Scaling back by a0 must reproduce the unnormalized section.
			got := [5]float64{c.B0 * a0, c.B1 * a0, c.B2 * a0, c.A1 * a0, c.A2 * a0}
			want := [5]float64{b0, b1, b2, a1, a2}

			for i := range got {
				if !almostEqual(got[i], want[i], 1e-12) {
					t.Errorf("%v q=%v: coef %d = %v, want %v", kind, q, i, got[i], want[i])
				}
			}
		}
	}
}

func TestDesign_LowpassOracle(t *testing.T) {
	t.Parallel()

	// Cookbook lowpass computed independently for 1 kHz, 44.1 kHz, Q 1.
	w0 := 2 * math.Pi * 1000 / 44100
	alpha := math.Sin(w0) / 2
	cs := math.Cos(w0)
	a0 := 1 + alpha

	want := Coefficients{
		B0: (1 - cs) / 2 / a0,
		B1: (1 - cs) / a0,
		B2: (1 - cs) / 2 / a0,
		A1: -2 * cs / a0,
		A2: (1 - alpha) / a0,
	}

	got := Design(Lowpass, 1000, 44100, 1, 0)
	for i, pair := range [][2]float64{
		{got.B0, want.B0}, {got.B1, want.B1}, {got.B2, want.B2},
		{got.A1, want.A1}, {got.A2, want.A2},
	} {
		if !almostEqual(pair[0], pair[1], 1e-15) {
			t.Errorf("coef %d = %.17g, want %.17g", i, pair[0], pair[1])
		}
	}

	// Reference values for the same design.
	if !almostEqual(got.B0, 0.0047304, 1e-7) || !almostEqual(got.A1, -1.8484969, 1e-7) {
		t.Errorf("unexpected lowpass coefficients %+v", got)
	}
}

func TestDesign_ZeroQUsesEpsilon(t *testing.T) {
	t.Parallel()

	c := Design(Lowpass, 1000, 44100, 0, 0)
	ref := Design(Lowpass, 1000, 44100, minQ, 0)

	if c != ref {
		t.Fatalf("Q=0 design %+v, want %+v", c, ref)
	}

	for _, v := range []float64{c.B0, c.B1, c.B2, c.A1, c.A2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("non-finite coefficient with Q=0: %+v", c)
		}
	}
}

func TestDesign_KindShapes(t *testing.T) {
	t.Parallel()

	const fs = 48000.0

	tests := []struct {
		kind   Kind
		gainDB float64
		freq   float64
		wantDB float64
	}{
		{Lowpass, 0, 10, 0},
		{Highpass, 0, 23000, 0},
		{Bandpass, 0, 1000, 0},
		{Peak, 6, 1000, 6},
		{LowShelf, 6, 10, 6},
		{HighShelf, -6, 23000, -6},
	}
	for _, tt := range tests {
		c := Design(tt.kind, 1000, fs, 0.707, tt.gainDB)
		if got := c.MagnitudeDB(tt.freq, fs); !almostEqual(got, tt.wantDB, 0.1) {
			t.Errorf("%v at %v Hz: %.3f dB, want %.1f dB", tt.kind, tt.freq, got, tt.wantDB)
		}
	}

	// Custom has zeros at DC and Nyquist.
	custom := Design(Custom, 1000, fs, 0.707, 0)
	if db := custom.MagnitudeDB(10, fs); db > -60 {
		t.Errorf("custom at 10 Hz = %.2f dB, want < -60", db)
	}

	notch := Design(Notch, 1000, fs, 0.707, 0)
	if db := notch.MagnitudeDB(1000, fs); db > -60 {
		t.Errorf("notch depth at center = %.2f dB, want < -60", db)
	}
}

func TestFilter_LowpassDCUnity(t *testing.T) {
	t.Parallel()

	f := NewFilter(Lowpass, 1000, 44100, 1, 0)

	var y float32
	for range 4410 {
		y = f.Step(0.5)
	}

	if !almostEqual(float64(y), 0.5, 1e-5) {
		t.Fatalf("DC output = %v, want 0.5", y)
	}
}

func TestFilter_DirectFormI(t *testing.T) {
	t.Parallel()

	f := &Filter{Coefficients: Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}}
	want := []float64{0.25, 0.55, 0.35, 0.048, -0.0044, -0.0028}

	for i, w := range want {
		var x float32
		if i == 0 {
			x = 1
		}

		if got := f.Step(x); !almostEqual(float64(got), w, 1e-7) {
			t.Fatalf("y[%d] = %v, want %v", i, got, w)
		}
	}
}

func TestFilter_UpdateCenterFreqIdempotent(t *testing.T) {
	t.Parallel()

	f := NewFilter(Custom, 1000, 44100, 1, 0)
	f.Step(1)
	f.Step(-0.5)

	state := f.State()
	coeffs := f.Coefficients

	f.UpdateCenterFreq(1000)
	f.UpdateSampleRate(44100)

	if f.Coefficients != coeffs || f.State() != state {
		t.Fatal("unchanged updates modified the filter")
	}

	f.UpdateCenterFreq(5000)

	if f.CenterFreq() != 5000 {
		t.Fatalf("CenterFreq() = %v, want 5000", f.CenterFreq())
	}

	if f.Coefficients != Design(Custom, 5000, 44100, 1, 0) {
		t.Fatal("retune did not re-derive coefficients")
	}

	if f.State() != state {
		t.Fatal("retune cleared history")
	}

	f.UpdateSampleRate(96000)

	if f.SampleRate() != 96000 || f.Coefficients != Design(Custom, 5000, 96000, 1, 0) {
		t.Fatal("sample rate change did not re-derive coefficients")
	}

	f.UpdateSampleRate(0)

	if f.SampleRate() != 96000 {
		t.Fatal("non-positive sample rate must be ignored")
	}
}

func TestFilter_ProcessBlockToAndReset(t *testing.T) {
	t.Parallel()

	f := NewFilter(Highpass, 200, 44100, 0.707, 0)
	ref := NewFilter(Highpass, 200, 44100, 0.707, 0)

	src := []float32{1, 0.5, -0.25, 0, 0.75, -1}
	dst := make([]float32, len(src))
	f.ProcessBlockTo(dst, src)

	for i, x := range src {
		if want := ref.Step(x); dst[i] != want {
			t.Fatalf("dst[%d] = %v, want %v", i, dst[i], want)
		}
	}

	f.Reset()

	if f.State() != [4]float64{} {
		t.Fatalf("Reset left state %v", f.State())
	}

	if f.Kind() != Highpass || f.Q() != 0.707 {
		t.Fatalf("Kind/Q = %v/%v", f.Kind(), f.Q())
	}
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	for _, kind := range allKinds {
		got, err := ParseKind(kind.String())
		if err != nil || got != kind {
			t.Errorf("ParseKind(%q) = %v, %v", kind.String(), got, err)
		}
	}

	if _, err := ParseKind("comb"); err == nil {
		t.Error("expected error for unknown kind")
	}

	if got := Kind(42).String(); got != "Kind(42)" {
		t.Errorf("String() = %q", got)
	}
}
