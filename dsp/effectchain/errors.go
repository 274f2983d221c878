package effectchain

import (
	"errors"

	"github.com/cwbudde/algo-fxchain/dsp/params"
)

var (
	// ErrTooManyChannels is returned for blocks with more than two channels.
	// Nothing is written for such a block.
	ErrTooManyChannels = errors.New("effectchain: more than two channels")
	// ErrBlockMismatch is returned when channel slices disagree in length
	// or the output side is missing channels.
	ErrBlockMismatch = errors.New("effectchain: block shape mismatch")
	// ErrChannelIndex is returned for a channel other than 0 or 1.
	ErrChannelIndex = errors.New("effectchain: channel index out of range")
	// ErrUnknownEffect is returned when a preset references an unregistered
	// effect type.
	ErrUnknownEffect = errors.New("effectchain: unknown effect type")
	// ErrDuplicateEffect is returned when a type name is registered twice.
	ErrDuplicateEffect = errors.New("effectchain: duplicate effect type")
	// ErrInvalidPreset is returned for presets that fail to parse or
	// validate.
	ErrInvalidPreset = errors.New("effectchain: invalid preset")
	// ErrUnknownControl is returned when a preset names a control that does
	// not exist.
	ErrUnknownControl = params.ErrUnknownControl
)
