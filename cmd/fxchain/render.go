package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cwbudde/algo-fxchain/dsp/core"
	"github.com/cwbudde/algo-fxchain/dsp/effectchain"
	"github.com/cwbudde/algo-fxchain/internal/audiofile"
	"github.com/cwbudde/algo-fxchain/internal/cli"
	"github.com/cwbudde/algo-fxchain/internal/render"
	"github.com/cwbudde/algo-fxchain/internal/ui"
)

const progressInterval = 50 * time.Millisecond

// RenderCmd renders an input file through the chain into a WAV file.
type RenderCmd struct {
	ChainFlags `embed:""`

	Input      string `arg:"" type:"existingfile" help:"Input audio file (wav, mp3, flac)"`
	Output     string `arg:"" help:"Output WAV file"`
	BlockSize  int    `default:"512" help:"Frames per processing block"`
	BitDepth   int    `default:"16" enum:"16,24" help:"Output bit depth"`
	NoProgress bool   `help:"Disable the progress display"`
}

func (r *RenderCmd) Run(g *Globals) error {
	chain, err := r.build(g.logger)
	if err != nil {
		return err
	}

	src, err := audiofile.Open(r.Input)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := audiofile.CreateWAV(r.Output, src.SampleRate(), r.BitDepth, src.NumChannels())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := []render.Option{
		render.WithLogger(g.logger),
		render.WithProcessorOptions(core.WithBlockSize(r.BlockSize)),
	}

	var stats render.Stats

	if r.NoProgress {
		stats, err = render.Run(ctx, src, dst, chain, opts...)
	} else {
		stats, err = r.runWithProgress(ctx, cancel, src, dst, chain, opts)
	}

	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("render %s: %w", r.Input, err)
	}

	var audio time.Duration
	if stats.SampleRate > 0 {
		audio = time.Duration(stats.Frames) * time.Second / time.Duration(stats.SampleRate)
	}

	cli.PrintRenderSummary(r.Output, audio, stats.Elapsed, stats.Rejected)

	return nil
}

func (r *RenderCmd) runWithProgress(
	ctx context.Context,
	cancel context.CancelFunc,
	src audiofile.Decoder,
	dst render.Sink,
	chain *effectchain.Chain,
	opts []render.Option,
) (render.Stats, error) {
	model := ui.NewModel(r.Input)
	p := tea.NewProgram(model)
	sampleRate := float64(src.SampleRate())

	var lastSent time.Duration

	opts = append(opts, render.WithProgress(func(pr render.Progress) {
		if pr.Elapsed-lastSent < progressInterval && pr.Frames < pr.TotalFrames {
			return
		}

		lastSent = pr.Elapsed

		p.Send(ui.RenderProgress{
			Frames:      pr.Frames,
			TotalFrames: pr.TotalFrames,
			SampleRate:  sampleRate,
			Elapsed:     pr.Elapsed,
		})
	}))

	var (
		stats  render.Stats
		runErr error
		done   = make(chan struct{})
	)

	go func() {
		defer close(done)

		stats, runErr = render.Run(ctx, src, dst, chain, opts...)
		p.Send(ui.RenderComplete{
			Output:   r.Output,
			Frames:   stats.Frames,
			Blocks:   stats.Blocks,
			Rejected: stats.Rejected,
			Elapsed:  stats.Elapsed,
			Err:      runErr,
		})
	}()

	_, uiErr := p.Run()
	if uiErr != nil || model.Cancelled() {
		cancel()
	}

	<-done

	if runErr == nil && model.Cancelled() {
		runErr = context.Canceled
	}

	if errors.Is(runErr, context.Canceled) && model.Cancelled() {
		cli.PrintWarning("render cancelled")
	}

	if runErr == nil && uiErr != nil {
		runErr = fmt.Errorf("progress display: %w", uiErr)
	}

	return stats, runErr
}
