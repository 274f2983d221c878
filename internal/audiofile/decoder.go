// Package audiofile reads WAV, MP3 and FLAC files as planar float32 frames
// and writes PCM WAV files.
package audiofile

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	// ErrUnsupportedFormat is returned by Open for unknown file extensions.
	ErrUnsupportedFormat = errors.New("audiofile: unsupported format")
	// ErrInvalidFile is returned when a file does not parse as its format.
	ErrInvalidFile = errors.New("audiofile: invalid file")
	// ErrChannelLayout is returned when the destination of ReadFrames does
	// not have one slice per channel of equal length.
	ErrChannelLayout = errors.New("audiofile: channel layout mismatch")
)

// Decoder streams planar float32 frames normalised to [-1, 1].
type Decoder interface {
	// ReadFrames fills dst, one slice per channel, and returns the number
	// of frames read. It returns 0, io.EOF once the stream is exhausted.
	ReadFrames(dst [][]float32) (int, error)

	// SampleRate returns the sample rate in Hz.
	SampleRate() int

	// NumChannels returns the channel count of the stream.
	NumChannels() int

	// NumFrames returns the total frame count, or 0 when unknown.
	NumFrames() int64

	// Close releases the underlying file.
	Close() error
}

// Open picks a decoder from the file extension.
func Open(path string) (Decoder, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav", ".wave":
		return OpenWAV(path)
	case ".mp3":
		return OpenMP3(path)
	case ".flac":
		return OpenFLAC(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// NewFrames allocates a planar buffer of the given shape.
func NewFrames(channels, frames int) [][]float32 {
	out := make([][]float32, channels)
	for ch := range out {
		out[ch] = make([]float32, frames)
	}

	return out
}

// checkLayout validates dst against the channel count and returns its
// frame capacity.
func checkLayout(dst [][]float32, channels int) (int, error) {
	if len(dst) != channels {
		return 0, fmt.Errorf("%w: %d slices for %d channels", ErrChannelLayout, len(dst), channels)
	}

	frames := len(dst[0])
	for ch := 1; ch < channels; ch++ {
		if len(dst[ch]) != frames {
			return 0, fmt.Errorf("%w: channel %d has %d frames, want %d",
				ErrChannelLayout, ch, len(dst[ch]), frames)
		}
	}

	return frames, nil
}

// deinterleave scales interleaved integer samples into planar dst.
func deinterleave[T int | int32](dst [][]float32, src []T, scale float32) {
	channels := len(dst)
	for i, v := range src {
		dst[i%channels][i/channels] = float32(v) * scale
	}
}
