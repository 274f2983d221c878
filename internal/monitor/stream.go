// Package monitor plays an effect chain live. Stream turns a decoded
// source into interleaved float32 bytes, pulling one block at a time
// through the chain; Play hands it to the audio device.
package monitor

import (
	"encoding/binary"
	"errors"
	"io"
	"log/slog"
	"math"

	"github.com/cwbudde/algo-fxchain/dsp/effectchain"
	"github.com/cwbudde/algo-fxchain/internal/render"
)

const bytesPerSample = 4

// Stream is an io.Reader of interleaved little-endian float32 frames.
// Read is called from the audio goroutine; parameter writes to the chain
// may happen concurrently from anywhere.
type Stream struct {
	src    render.Source
	proc   *render.Processor
	logger *slog.Logger

	buf     []byte
	pending []byte
	frames  int64
	err     error
	closed  bool
}

// NewStream wires src through chain in blocks of blockSize frames.
func NewStream(src render.Source, chain *effectchain.Chain, blockSize int, logger *slog.Logger) *Stream {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	chain.Params().SetSampleRate(float64(src.SampleRate()))

	return &Stream{
		src:     src,
		proc:    render.NewProcessor(chain, src.NumChannels(), blockSize, logger),
		logger:  logger,
		buf:     make([]byte, blockSize*src.NumChannels()*bytesPerSample),
	}
}

// SampleRate returns the sample rate of the source.
func (s *Stream) SampleRate() int { return s.src.SampleRate() }

// Channels returns the interleaved channel count.
func (s *Stream) Channels() int { return s.src.NumChannels() }

// Frames returns the number of frames processed so far.
func (s *Stream) Frames() int64 { return s.frames }

// Rejected returns the number of blocks played as silence.
func (s *Stream) Rejected() int { return s.proc.Rejected() }

// Close releases the block buffers. Reads after Close return
// io.ErrClosedPipe.
func (s *Stream) Close() error {
	if s.closed {
		return nil
	}

	s.closed = true
	s.proc.Release()
	s.pending = nil
	s.err = io.ErrClosedPipe

	return nil
}

func (s *Stream) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if len(s.pending) == 0 {
			if s.err != nil {
				break
			}

			s.fill()

			continue
		}

		c := copy(p[n:], s.pending)
		s.pending = s.pending[c:]
		n += c
	}

	if n == 0 && s.err != nil {
		return 0, s.err
	}

	return n, nil
}

// fill decodes and processes the next block into pending, or records the
// terminal error.
func (s *Stream) fill() {
	frames, err := s.src.ReadFrames(s.proc.Input())
	if err != nil {
		if !errors.Is(err, io.EOF) {
			s.logger.Error("monitor: decode failed", "error", err)
		}

		s.err = err

		return
	}

	out, err := s.proc.Process(frames)
	if err != nil {
		s.logger.Error("monitor: process failed", "error", err)
		s.err = err

		return
	}

	s.frames += int64(frames)

	channels := len(out)
	if need := frames * channels * bytesPerSample; len(s.buf) < need {
		s.buf = make([]byte, need)
	}

	for i := range frames {
		for ch, samples := range out {
			off := (i*channels + ch) * bytesPerSample
			binary.LittleEndian.PutUint32(s.buf[off:], math.Float32bits(samples[i]))
		}
	}

	s.pending = s.buf[:frames*channels*bytesPerSample]
}
