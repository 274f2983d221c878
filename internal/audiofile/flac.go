package audiofile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mewkiz/flac"
)

// FLACDecoder streams FLAC files. Decoded frames rarely match the
// requested block size, so the tail of each frame is carried over.
type FLACDecoder struct {
	stream   *flac.Stream
	file     *os.File
	channels int
	scale    float32

	pending [][]int32
	offset  int
}

// OpenFLAC opens a FLAC file.
func OpenFLAC(path string) (*FLACDecoder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	stream, err := flac.New(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}

	info := stream.Info
	if info.NChannels == 0 || info.BitsPerSample == 0 {
		stream.Close()
		f.Close()

		return nil, fmt.Errorf("%w: %d channels at %d bits", ErrInvalidFile, info.NChannels, info.BitsPerSample)
	}

	return &FLACDecoder{
		stream:   stream,
		file:     f,
		channels: int(info.NChannels),
		scale:    1 / float32(int64(1)<<(info.BitsPerSample-1)),
	}, nil
}

func (d *FLACDecoder) ReadFrames(dst [][]float32) (int, error) {
	frames, err := checkLayout(dst, d.channels)
	if err != nil {
		return 0, err
	}

	n := 0
	for n < frames {
		if d.pending == nil || d.offset >= len(d.pending[0]) {
			if err := d.next(); err != nil {
				if errors.Is(err, io.EOF) && n > 0 {
					return n, nil
				}

				return n, err
			}

			continue
		}

		take := min(frames-n, len(d.pending[0])-d.offset)
		for ch, samples := range d.pending {
			out := dst[ch][n : n+take]
			for i, v := range samples[d.offset : d.offset+take] {
				out[i] = float32(v) * d.scale
			}
		}

		d.offset += take
		n += take
	}

	return n, nil
}

func (d *FLACDecoder) next() error {
	frame, err := d.stream.ParseNext()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF
		}

		return fmt.Errorf("audiofile: parse FLAC frame: %w", err)
	}

	if len(frame.Subframes) != d.channels {
		return fmt.Errorf("%w: frame has %d subframes, want %d", ErrInvalidFile, len(frame.Subframes), d.channels)
	}

	if d.pending == nil {
		d.pending = make([][]int32, d.channels)
	}

	for ch, sub := range frame.Subframes {
		d.pending[ch] = sub.Samples
	}

	d.offset = 0

	return nil
}

func (d *FLACDecoder) SampleRate() int  { return int(d.stream.Info.SampleRate) }
func (d *FLACDecoder) NumChannels() int { return d.channels }
func (d *FLACDecoder) NumFrames() int64 { return int64(d.stream.Info.NSamples) }

func (d *FLACDecoder) Close() error {
	if d.stream != nil {
		d.stream.Close()
	}

	if d.file != nil {
		return d.file.Close()
	}

	return nil
}
