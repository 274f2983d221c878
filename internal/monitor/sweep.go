package monitor

import (
	"context"
	"time"

	"github.com/cwbudde/algo-fxchain/dsp/lfo"
	"github.com/cwbudde/algo-fxchain/dsp/params"
)

// Sweep moves control c through its normalised range once per period,
// writing a new value every interval until ctx is done. It is meant to run
// in its own goroutine next to the audio callback.
func Sweep(ctx context.Context, ps *params.Set, c params.Control, period, interval time.Duration) {
	if period <= 0 || interval <= 0 {
		return
	}

	steps := max(int(period/interval), 1)
	osc := lfo.New(steps)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		ps.SetNormalized(c, 0.5+0.5*osc.Value())
		osc.Forward(1)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
