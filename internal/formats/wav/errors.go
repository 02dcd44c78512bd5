package wav

import "errors"

var (
	ErrNotWavFile        = errors.New("not a wav file")
	ErrUnsupportedFormat = errors.New("unsupported wav sample format")
)
