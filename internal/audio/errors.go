package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be a multiple of channels")
	ErrUnknownFormat  = errors.New("unknown audio format")
)
