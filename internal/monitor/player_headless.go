//go:build headless

package monitor

import (
	"context"
	"errors"
	"io"
	"time"
)

// Play drains s at the pace of its sample rate without an audio device.
// Headless builds use it for CI and for machines without sound hardware.
func Play(ctx context.Context, s *Stream) error {
	block := make([]byte, s.SampleRate()/100*s.Channels()*bytesPerSample)
	if len(block) == 0 {
		return errors.New("monitor: stream has no frames to play")
	}

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		if _, err := io.ReadFull(s, block); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil
			}

			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
