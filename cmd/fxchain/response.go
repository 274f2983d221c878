package main

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/cwbudde/algo-fxchain/dsp/effectchain"
	"github.com/cwbudde/algo-fxchain/dsp/spectrum"
	"github.com/cwbudde/algo-fxchain/internal/cli"
)

// ResponseCmd measures the impulse response of one channel and prints its
// magnitude at log-spaced frequencies.
type ResponseCmd struct {
	ChainFlags `embed:""`

	SampleRate float64   `default:"0" help:"Sample rate in Hz (0 uses the chain's)"`
	FFTSize    int       `name:"fft-size" default:"8192" help:"Analysis length, a power of two"`
	Points     int       `default:"16" help:"Number of frequencies to print"`
	MinFreq    float64   `default:"20" help:"Lowest frequency in Hz"`
	Smooth     int       `default:"0" help:"Fractional-octave smoothing (3 for 1/3 octave, 0 off)"`
	Window     bool      `help:"Fade the impulse response out before the FFT"`
	GroupDelay bool      `help:"Also print the group delay in samples"`
	Channel    int       `default:"0" help:"Channel to measure"`
	Tone       []float64 `help:"Measure the steady-state gain of sine tones at these frequencies"`
}

func (r *ResponseCmd) Run(g *Globals) error {
	chain, err := r.build(g.logger)
	if err != nil {
		return err
	}

	if r.SampleRate > 0 {
		chain.Params().SetSampleRate(r.SampleRate)
	}

	fs := chain.Params().SampleRate()

	ir, err := chain.ImpulseResponse(r.Channel, r.FFTSize)
	if err != nil {
		return err
	}

	var opts []spectrum.Option
	if r.Window {
		opts = append(opts, spectrum.WithWindow())
	}

	resp, err := spectrum.Analyze(ir, r.FFTSize, fs, opts...)
	if err != nil {
		return err
	}

	freqs := spectrum.LogFrequencies(r.MinFreq, fs/2, r.Points)

	mag := resp.Magnitude()
	if r.Smooth > 0 {
		// DC has no octave band; smooth from the first bin up.
		smoothed, err := spectrum.SmoothFractionalOctave(resp.Frequencies()[1:], mag[1:], r.Smooth)
		if err != nil {
			return err
		}

		copy(mag[1:], smoothed)
	}

	at, err := spectrum.Interpolate(resp.Frequencies(), spectrum.ToDB(mag), freqs)
	if err != nil {
		return err
	}

	header := []string{"Hz", "dB"}

	var gd []float64
	if r.GroupDelay {
		all, err := resp.GroupDelay()
		if err != nil {
			return err
		}

		if gd, err = spectrum.Interpolate(resp.Frequencies()[:len(all)], all, freqs); err != nil {
			return err
		}

		header = append(header, "delay")
	}

	rows := make([][]string, len(freqs))
	for i, f := range freqs {
		rows[i] = []string{strconv.FormatFloat(f, 'f', 1, 64), strconv.FormatFloat(at[i], 'f', 2, 64)}
		if gd != nil {
			rows[i] = append(rows[i], strconv.FormatFloat(gd[i], 'f', 2, 64))
		}
	}

	cli.PrintSection(fmt.Sprintf("Response (%s, %g Hz, %d-point FFT)", chainLabel(chain), fs, r.FFTSize))
	cli.WriteTable(os.Stdout, header, rows)

	if len(r.Tone) > 0 {
		cli.PrintSection("Tone gain")

		for _, f := range r.Tone {
			gain, err := toneGain(chain, r.Channel, f, fs)
			if err != nil {
				return err
			}

			cli.PrintInfo(fmt.Sprintf("  %g Hz", f), fmt.Sprintf("%.2f dB", gain))
		}
	}

	return nil
}

// toneGain runs a sine through the chain and compares the second half of
// the output with the input, leaving the first half for transients.
func toneGain(chain *effectchain.Chain, ch int, freq, fs float64) (float64, error) {
	n := int(fs)
	in := make([]float32, n)

	for i := range in {
		in[i] = float32(math.Sin(2 * math.Pi * freq * float64(i) / fs))
	}

	out := make([]float32, n)

	chain.Reset()
	chain.Reload()

	if err := chain.Process(ch, in, out); err != nil {
		return 0, err
	}

	chain.Reset()

	return spectrum.ToneGainDB(in[n/2:], out[n/2:], freq, fs)
}

func chainLabel(chain *effectchain.Chain) string {
	if chain.Len() == 0 {
		return "empty chain"
	}

	return fmt.Sprint(chain.Names())
}
