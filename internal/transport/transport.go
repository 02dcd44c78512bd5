// Package transport maintains the playhead and implements the hold-to-scrub
// ramp: a repeating tick accelerates seek speed along a cubic ease while a
// control is held, and releasing snaps the ramp state back to zero.
package transport

import (
	"time"

	"fourtrack/internal/session"
)

const (
	// TickInterval is the scrub advance period.
	TickInterval = 50 * time.Millisecond

	// rampSeconds is the hold time needed to reach full scrub speed.
	rampSeconds = 2.0

	// Scrub speed range in timeline seconds per wall-clock second.
	minScrubSpeed = 0.5
	maxScrubSpeed = 10.0

	// seekStep is the bounded jump applied by a single tap.
	seekStep = 1.0
)

// State is the controller's coarse mode.
type State string

const (
	StateStopped   State = "stopped"
	StateSeeking   State = "seeking"
	StateScrubbing State = "scrubbing"
)

// Direction of a seek or scrub.
type Direction int

const (
	Backward Direction = -1
	Forward  Direction = 1
)

// Controller owns the playhead of one open session's timeline state. It is
// driven from the control goroutine; the editor owns the actual ticker and
// stops it explicitly.
type Controller struct {
	timeline    *session.TimelineState
	maxDuration func() float64

	state      State
	direction  Direction
	scrubStart time.Time
}

// New constructs a controller over the given timeline state. maxDuration is
// re-evaluated on every clamp, so region edits that extend the session take
// effect immediately.
func New(timeline *session.TimelineState, maxDuration func() float64) *Controller {
	return &Controller{
		timeline:    timeline,
		maxDuration: maxDuration,
		state:       StateStopped,
	}
}

func (c *Controller) State() State { return c.state }

// Playhead reports the current playhead position.
func (c *Controller) Playhead() float64 { return c.timeline.Playhead }

// SeekBy applies a single bounded jump (a tap on a transport button).
func (c *Controller) SeekBy(direction Direction) {
	c.state = StateSeeking
	c.timeline.SetPlayhead(c.timeline.Playhead+float64(direction)*seekStep, c.maxDuration())
	c.state = StateStopped
}

// SeekToStart jumps the playhead to zero (a double-tap backward).
func (c *Controller) SeekToStart() {
	c.timeline.SetPlayhead(0, c.maxDuration())
	c.state = StateStopped
}

// SeekToEnd jumps the playhead to the session end (a double-tap forward).
func (c *Controller) SeekToEnd() {
	max := c.maxDuration()
	c.timeline.SetPlayhead(max, max)
	c.state = StateStopped
}

// BeginScrub enters the continuous scrub state. now anchors the hold ramp.
func (c *Controller) BeginScrub(direction Direction, now time.Time) {
	c.state = StateScrubbing
	c.direction = direction
	c.scrubStart = now
}

// Tick advances the playhead by one scrub step. It is a no-op outside the
// scrubbing state.
func (c *Controller) Tick(now time.Time) {
	if c.state != StateScrubbing {
		return
	}
	hold := now.Sub(c.scrubStart).Seconds()
	step := ScrubSpeed(hold) * TickInterval.Seconds() * float64(c.direction)
	c.timeline.SetPlayhead(c.timeline.Playhead+step, c.maxDuration())
}

// EndScrub releases the hold, returning to stopped and zeroing ramp state.
func (c *Controller) EndScrub() {
	c.state = StateStopped
	c.scrubStart = time.Time{}
}

// ScrubSpeed maps a hold duration to timeline seconds per wall-clock
// second: the hold is normalized over the ramp, shaped by the cubic
// ease-in-out, and mapped linearly onto the speed range.
func ScrubSpeed(holdSeconds float64) float64 {
	t := holdSeconds / rampSeconds
	if t > 1 {
		t = 1
	}
	if t < 0 {
		t = 0
	}
	return minScrubSpeed + easeInOutCubic(t)*(maxScrubSpeed-minScrubSpeed)
}

// easeInOutCubic is the ramp shaping function; its exact form governs the
// perceived scrub feel.
func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	f := 2*t - 2
	return 0.5*f*f*f + 1
}
