package importer

import "fourtrack/internal/session"

// minCropLength keeps the crop window from collapsing below the smallest
// region the model accepts.
const minCropLength = session.MinRegionDuration

// CropWindow is the adjustable [start, end) selection over a decoded
// source. Both bounds move independently, but the window never exceeds
// maxDuration: widening one bound past the ceiling drags the other bound
// along instead of silently exceeding it.
type CropWindow struct {
	sourceDuration float64
	maxDuration    float64
	start          float64
	end            float64
}

// NewCropWindow covers the whole source, capped to maxDuration.
func NewCropWindow(sourceDuration, maxDuration float64) *CropWindow {
	end := sourceDuration
	if end > maxDuration {
		end = maxDuration
	}
	return &CropWindow{
		sourceDuration: sourceDuration,
		maxDuration:    maxDuration,
		start:          0,
		end:            end,
	}
}

func (c *CropWindow) Start() float64 { return c.start }
func (c *CropWindow) End() float64   { return c.end }

// Duration of the current selection.
func (c *CropWindow) Duration() float64 { return c.end - c.start }

// SetStart moves the start bound. It is clamped inside the source and
// against the end bound; moving it far enough left to exceed the duration
// ceiling pulls the end bound back with it.
func (c *CropWindow) SetStart(seconds float64) {
	v := clamp(seconds, 0, c.sourceDuration-minCropLength)
	if v > c.end-minCropLength {
		v = c.end - minCropLength
	}
	c.start = v
	if c.end-c.start > c.maxDuration {
		c.end = c.start + c.maxDuration
	}
}

// SetEnd moves the end bound. It is clamped inside the source and against
// the start bound; moving it far enough right to exceed the duration
// ceiling pushes the start bound forward with it.
func (c *CropWindow) SetEnd(seconds float64) {
	v := clamp(seconds, minCropLength, c.sourceDuration)
	if v < c.start+minCropLength {
		v = c.start + minCropLength
	}
	c.end = v
	if c.end-c.start > c.maxDuration {
		c.start = c.end - c.maxDuration
	}
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
