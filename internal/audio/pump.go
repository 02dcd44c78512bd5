package audio

import (
	"context"
	"fmt"
	"io"
)

// Writer accepts interleaved float32 samples.
type Writer interface {
	WriteSamples(samples []float32) error
	Close() error
}

// Pump streams src into w in chunks of chunkFrames frames, bounding peak
// memory regardless of source length. It returns the number of frames
// written. Cancellation is checked between chunks; any mid-stream error
// aborts the whole pump.
func Pump(ctx context.Context, src Source, w Writer, chunkFrames int) (int64, error) {
	if chunkFrames <= 0 {
		chunkFrames = 4096
	}
	channels := src.Channels()
	buf := make([]float32, chunkFrames*channels)

	var frames int64
	for {
		if err := ctx.Err(); err != nil {
			return frames, err
		}
		n, err := src.ReadSamples(buf)
		if n > 0 {
			// Whole frames only; a trailing partial frame is dropped.
			n -= n % channels
			if writeErr := w.WriteSamples(buf[:n]); writeErr != nil {
				return frames, fmt.Errorf("write chunk: %w", writeErr)
			}
			frames += int64(n / channels)
		}
		if err == io.EOF {
			return frames, nil
		}
		if err != nil {
			return frames, fmt.Errorf("read chunk: %w", err)
		}
	}
}
