// Package waveform turns raw sample buffers into compact normalized
// amplitude summaries for display.
package waveform

// Summarize reduces an interleaved sample buffer to exactly n peak values
// in [0, 1], one per equal-width frame bucket covering the whole buffer.
//
// The result always has length n: when the buffer holds fewer frames than
// buckets, degenerate buckets repeat the nearest frame's peak so callers can
// index the slice positionally against a fixed display width. The function
// is deterministic; identical input and n produce bit-identical output.
// Empty input yields n zeros.
func Summarize(samples []float32, channels, n int) []float32 {
	if n <= 0 {
		return nil
	}
	peaks := make([]float32, n)
	if channels <= 0 {
		channels = 1
	}
	frameCount := len(samples) / channels
	if frameCount == 0 {
		return peaks
	}

	for i := 0; i < n; i++ {
		// Integer bucket bounds: frames [i*fc/n, (i+1)*fc/n).
		lo := i * frameCount / n
		hi := (i + 1) * frameCount / n
		if hi <= lo {
			// Degenerate bucket: fewer frames than buckets. Reuse the single
			// frame the bucket position maps onto.
			hi = lo + 1
		}
		if hi > frameCount {
			hi = frameCount
			if lo >= hi {
				lo = hi - 1
			}
		}

		var peak float32
		for frame := lo; frame < hi; frame++ {
			base := frame * channels
			for c := 0; c < channels; c++ {
				v := samples[base+c]
				if v < 0 {
					v = -v
				}
				if v > peak {
					peak = v
				}
			}
		}
		if peak > 1 {
			peak = 1
		}
		peaks[i] = peak
	}
	return peaks
}
