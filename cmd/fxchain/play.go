package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"time"

	"github.com/cwbudde/algo-fxchain/dsp/params"
	"github.com/cwbudde/algo-fxchain/internal/audiofile"
	"github.com/cwbudde/algo-fxchain/internal/cli"
	"github.com/cwbudde/algo-fxchain/internal/monitor"
)

// PlayCmd plays an input file through the chain on the default output
// device, optionally sweeping one control while it plays.
type PlayCmd struct {
	ChainFlags `embed:""`

	Input     string        `arg:"" type:"existingfile" help:"Input audio file (wav, mp3, flac)"`
	BlockSize int           `default:"256" help:"Frames per processing block"`
	Sweep     string        `help:"Control to sweep through its range while playing"`
	Period    time.Duration `default:"4s" help:"Sweep period"`
	Interval  time.Duration `default:"20ms" help:"Sweep update interval"`
}

func (p *PlayCmd) Run(g *Globals) error {
	chain, err := p.build(g.logger)
	if err != nil {
		return err
	}

	var sweep params.Control
	if p.Sweep != "" {
		if sweep, err = params.ParseControl(p.Sweep); err != nil {
			return err
		}
	}

	src, err := audiofile.Open(p.Input)
	if err != nil {
		return err
	}
	defer src.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	stream := monitor.NewStream(src, chain, p.BlockSize, g.logger)
	defer stream.Close()

	if p.Sweep != "" {
		go monitor.Sweep(ctx, chain.Params(), sweep, p.Period, p.Interval)
	}

	cli.PrintInfo("Playing", p.Input)

	err = monitor.Play(ctx, stream)
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	if err != nil {
		return err
	}

	if stream.Rejected() > 0 {
		cli.PrintWarning("blocks silenced: too many channels for the chain")
	}

	cli.PrintSuccess("Done")

	return nil
}
