package gesture

import "fourtrack/internal/session"

// Trim is the confirmed outcome of a two-handle trim interaction: the new
// visible window to apply to the region atomically. Canceling a trim simply
// discards this value.
type Trim struct {
	Duration        float64
	FileStartOffset float64
	// StartTrim and EndTrim are the clamped per-handle amounts in seconds,
	// kept for handle redraw while the interaction is live.
	StartTrim float64
	EndTrim   float64
}

// ComputeTrim resolves the two independent trim handles into a region
// window. startPx and endPx are pixel offsets from the region's original
// start and end edges, positive inward. Each handle is clamped so the
// remaining visible width never drops below the minimum region duration;
// when both handles together would collapse the region, the start handle
// wins and the end handle gives way.
func ComputeTrim(duration, fileStartOffset, startPx, endPx, pixelsPerSecond float64) Trim {
	startTrim := startPx / pixelsPerSecond
	endTrim := endPx / pixelsPerSecond

	if startTrim < 0 {
		startTrim = 0
	}
	if endTrim < 0 {
		endTrim = 0
	}

	if max := duration - session.MinRegionDuration; startTrim > max {
		startTrim = max
	}
	if max := duration - startTrim - session.MinRegionDuration; endTrim > max {
		endTrim = max
	}

	return Trim{
		Duration:        duration - startTrim - endTrim,
		FileStartOffset: fileStartOffset + startTrim,
		StartTrim:       startTrim,
		EndTrim:         endTrim,
	}
}
