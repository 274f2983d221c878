//go:build !headless

package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Play opens the default output device and plays s until it is exhausted
// or ctx is cancelled.
func Play(ctx context.Context, s *Stream) error {
	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   s.SampleRate(),
		ChannelCount: s.Channels(),
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return fmt.Errorf("monitor: open audio device: %w", err)
	}
	<-ready

	player := otoCtx.NewPlayer(s)
	defer player.Close()

	player.Play()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			return ctx.Err()
		case <-ticker.C:
		}
	}

	return player.Err()
}
