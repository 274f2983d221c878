package audiofile

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAVDecoder streams integer PCM WAV files.
type WAVDecoder struct {
	decoder   *wav.Decoder
	file      *os.File
	buf       *audio.IntBuffer
	scale     float32
	numChans  int
	numFrames int64
}

// OpenWAV opens a PCM WAV file.
func OpenWAV(path string) (*WAVDecoder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		f.Close()
		return nil, fmt.Errorf("%w: %s is not a WAV file", ErrInvalidFile, path)
	}

	if err := decoder.FwdToPCM(); err != nil {
		f.Close()
		return nil, fmt.Errorf("audiofile: seek to PCM data: %w", err)
	}

	bitDepth := int(decoder.BitDepth)
	numChans := int(decoder.NumChans)

	if numChans == 0 || bitDepth == 0 || bitDepth%8 != 0 {
		f.Close()
		return nil, fmt.Errorf("%w: %d channels at %d bits", ErrInvalidFile, numChans, bitDepth)
	}

	return &WAVDecoder{
		decoder: decoder,
		file:    f,
		buf: &audio.IntBuffer{
			Format: &audio.Format{NumChannels: numChans, SampleRate: int(decoder.SampleRate)},
		},
		scale:     1 / float32(audio.IntMaxSignedValue(bitDepth)),
		numChans:  numChans,
		numFrames: int64(decoder.PCMLen()) / int64(bitDepth/8*numChans),
	}, nil
}

func (d *WAVDecoder) ReadFrames(dst [][]float32) (int, error) {
	frames, err := checkLayout(dst, d.numChans)
	if err != nil {
		return 0, err
	}

	need := frames * d.numChans
	if cap(d.buf.Data) < need {
		d.buf.Data = make([]int, need)
	}

	d.buf.Data = d.buf.Data[:need]

	n, err := d.decoder.PCMBuffer(d.buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("audiofile: read PCM: %w", err)
	}

	n -= n % d.numChans
	if n == 0 {
		return 0, io.EOF
	}

	deinterleave(dst, d.buf.Data[:n], d.scale)

	return n / d.numChans, nil
}

func (d *WAVDecoder) SampleRate() int  { return d.buf.Format.SampleRate }
func (d *WAVDecoder) NumChannels() int { return d.numChans }
func (d *WAVDecoder) NumFrames() int64 { return d.numFrames }

func (d *WAVDecoder) Close() error {
	if d.file != nil {
		return d.file.Close()
	}

	return nil
}

// WAVEncoder writes integer PCM WAV files from planar float32 frames.
// Samples are clipped to [-1, 1].
type WAVEncoder struct {
	encoder *wav.Encoder
	file    *os.File
	buf     *audio.IntBuffer
	peak    float64
}

// CreateWAV creates path and writes a WAV header for the given format.
// bitDepth must be 16 or 24.
func CreateWAV(path string, sampleRate, bitDepth, numChans int) (*WAVEncoder, error) {
	if bitDepth != 16 && bitDepth != 24 {
		return nil, fmt.Errorf("audiofile: unsupported bit depth %d", bitDepth)
	}

	if numChans <= 0 || sampleRate <= 0 {
		return nil, fmt.Errorf("audiofile: invalid format %d Hz, %d channels", sampleRate, numChans)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	return &WAVEncoder{
		encoder: wav.NewEncoder(f, sampleRate, bitDepth, numChans, 1),
		file:    f,
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: numChans, SampleRate: sampleRate},
			SourceBitDepth: bitDepth,
		},
		peak: float64(audio.IntMaxSignedValue(bitDepth)),
	}, nil
}

// WriteFrames appends one planar block; every channel slice must have the
// same length.
func (e *WAVEncoder) WriteFrames(src [][]float32) error {
	frames, err := checkLayout(src, e.buf.Format.NumChannels)
	if err != nil {
		return err
	}

	channels := len(src)
	need := frames * channels

	if cap(e.buf.Data) < need {
		e.buf.Data = make([]int, need)
	}

	e.buf.Data = e.buf.Data[:need]

	for i := range frames {
		for ch, s := range src {
			v := math.Max(-1, math.Min(1, float64(s[i])))
			if math.IsNaN(v) {
				v = 0
			}

			e.buf.Data[i*channels+ch] = int(math.Round(v * e.peak))
		}
	}

	if err := e.encoder.Write(e.buf); err != nil {
		return fmt.Errorf("audiofile: write PCM: %w", err)
	}

	return nil
}

// Close finalises the header and closes the file.
func (e *WAVEncoder) Close() error {
	err := e.encoder.Close()

	if cerr := e.file.Close(); err == nil {
		err = cerr
	}

	return err
}
