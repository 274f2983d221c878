package audiofile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hajimehoshi/go-mp3"
)

// go-mp3 always produces interleaved 16-bit little-endian stereo.
const (
	mp3Channels      = 2
	mp3BytesPerFrame = 4
)

// MP3Decoder streams MP3 files as stereo frames.
type MP3Decoder struct {
	decoder *mp3.Decoder
	file    *os.File
	buf     []byte
	pcm     []int
}

// OpenMP3 opens an MP3 file.
func OpenMP3(path string) (*MP3Decoder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}

	return &MP3Decoder{decoder: decoder, file: f}, nil
}

func (d *MP3Decoder) ReadFrames(dst [][]float32) (int, error) {
	frames, err := checkLayout(dst, mp3Channels)
	if err != nil {
		return 0, err
	}

	need := frames * mp3BytesPerFrame
	if cap(d.buf) < need {
		d.buf = make([]byte, need)
	}

	d.buf = d.buf[:need]

	n, err := io.ReadFull(d.decoder, d.buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return 0, fmt.Errorf("audiofile: read MP3: %w", err)
	}

	n -= n % mp3BytesPerFrame
	if n == 0 {
		return 0, io.EOF
	}

	samples := n / 2
	if cap(d.pcm) < samples {
		d.pcm = make([]int, samples)
	}

	d.pcm = d.pcm[:samples]
	for i := range d.pcm {
		d.pcm[i] = int(int16(binary.LittleEndian.Uint16(d.buf[2*i:])))
	}

	deinterleave(dst, d.pcm, 1.0/32768)

	return n / mp3BytesPerFrame, nil
}

func (d *MP3Decoder) SampleRate() int  { return d.decoder.SampleRate() }
func (d *MP3Decoder) NumChannels() int { return mp3Channels }

func (d *MP3Decoder) NumFrames() int64 {
	if n := d.decoder.Length(); n > 0 {
		return n / mp3BytesPerFrame
	}

	return 0
}

func (d *MP3Decoder) Close() error {
	if d.file != nil {
		return d.file.Close()
	}

	return nil
}
