package spectrum

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-fxchain/dsp/filter/biquad"
	"github.com/cwbudde/algo-fxchain/internal/testutil"
)

func TestLowpassResponseFallsOffAboveCutoff(t *testing.T) {
	t.Parallel()

	const (
		fs      = 44100.0
		fftSize = 4096
	)

	f := biquad.NewFilter(biquad.Lowpass, 1000, fs, 1, 0)

	r, err := Analyze(f.ImpulseResponse(fftSize), fftSize, fs)
	if err != nil {
		t.Fatal(err)
	}

	if len(r.Bins) != fftSize/2+1 {
		t.Fatalf("len(Bins) = %d", len(r.Bins))
	}

	db, err := r.MagnitudeDBAt([]float64{20, 100, 5000, 10000})
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(db[0]) > 0.1 || math.Abs(db[1]) > 0.1 {
		t.Errorf("passband = %.3f / %.3f dB, want ~0", db[0], db[1])
	}

	if !(db[2] < -25 && db[3] < db[2]) {
		t.Errorf("stopband = %.2f / %.2f dB, want falling below -25", db[2], db[3])
	}

	// Bin by bin the FFT agrees with the analytic response.
	coeffs := f.Coefficients
	mag := r.MagnitudeDB()

	for k, freq := range r.Frequencies() {
		want := coeffs.MagnitudeDB(freq, fs)
		if want < -60 {
			continue
		}

		if math.Abs(mag[k]-want) > 0.05 {
			t.Fatalf("bin %d (%.1f Hz): %.3f dB, want %.3f", k, freq, mag[k], want)
		}
	}
}

func TestPureDelayResponse(t *testing.T) {
	t.Parallel()

	ir := make([]float64, 16)
	ir[5] = 1

	r, err := Analyze(ir, 64, 48000)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, r.Magnitude(), ones(33), 1e-12)

	gd, err := r.GroupDelay()
	if err != nil {
		t.Fatal(err)
	}

	for k, v := range gd {
		if math.Abs(v-5) > 1e-9 {
			t.Fatalf("group delay[%d] = %v, want 5", k, v)
		}
	}

	pow, err := PowerResponse(ir, 64)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, pow, ones(33), 1e-12)
}

func TestMagnitudeResponseWindow(t *testing.T) {
	t.Parallel()

	ir := []float64{1, 1, 1, 1}

	plain, err := MagnitudeResponse(ir, 8)
	if err != nil {
		t.Fatal(err)
	}

	windowed, err := MagnitudeResponse(ir, 8, WithWindow())
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(plain[0]-4) > 1e-12 {
		t.Errorf("plain DC = %v, want 4", plain[0])
	}

	if math.Abs(windowed[0]-2.5) > 1e-12 {
		t.Errorf("windowed DC = %v, want 2.5", windowed[0])
	}

	testutil.RequireSliceEqual(t, ir, []float64{1, 1, 1, 1})
}

func TestAnalyzeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ir      []float64
		fftSize int
		fs      float64
		sizeErr bool
	}{
		{"not power of two", []float64{1}, 100, 48000, true},
		{"too small", []float64{1}, 1, 48000, true},
		{"shorter than response", make([]float64, 16), 8, 48000, true},
		{"zero sample rate", []float64{1}, 8, 0, false},
		{"nan sample rate", []float64{1}, 8, math.NaN(), false},
	}

	for _, tt := range tests {
		_, err := Analyze(tt.ir, tt.fftSize, tt.fs)
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}

		if errors.Is(err, ErrFFTSize) != tt.sizeErr {
			t.Errorf("%s: errors.Is(ErrFFTSize) = %v", tt.name, !tt.sizeErr)
		}
	}
}

func TestBinFrequency(t *testing.T) {
	t.Parallel()

	if got := BinFrequency(1, 1024, 48000); got != 46.875 {
		t.Errorf("BinFrequency = %v", got)
	}

	if got := BinFrequency(512, 1024, 48000); got != 24000 {
		t.Errorf("Nyquist bin = %v", got)
	}

	if BinFrequency(3, 0, 48000) != 0 {
		t.Error("zero FFT size should give 0")
	}
}

func TestLogFrequencies(t *testing.T) {
	t.Parallel()

	testutil.RequireSliceNearlyEqual(t, LogFrequencies(10, 1000, 3), []float64{10, 100, 1000}, 1e-9)

	if got := LogFrequencies(20, 20000, 1); len(got) != 1 || got[0] != 20 {
		t.Errorf("single point = %v", got)
	}

	if LogFrequencies(0, 100, 4) != nil || LogFrequencies(100, 10, 4) != nil {
		t.Error("invalid ranges should give nil")
	}
}

func ones(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}

	return out
}
