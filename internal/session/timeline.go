package session

// MinLoopLength is the smallest separation kept between loop handles.
const MinLoopLength = 0.1

// defaultLoopLength is the window created when loop mode is first enabled.
const defaultLoopLength = 2.0

// RegionRef addresses a region by its current position in the session.
type RegionRef struct {
	Track  int
	Region int
}

// TimelineState is the transient interaction state of one open session.
// It is never persisted. Selection, trim mode, and the drag-to-delete flag
// are cleared by explicit transition rules, not by rendering side effects.
type TimelineState struct {
	Playhead float64

	LoopEnabled bool
	LoopStart   float64
	LoopEnd     float64

	Selected     *RegionRef
	TrimTarget   *RegionRef
	DragToDelete bool
}

// SetPlayhead clamps the playhead into [0, maxDuration].
func (t *TimelineState) SetPlayhead(seconds, maxDuration float64) {
	t.Playhead = clamp(seconds, 0, maxDuration)
}

// ToggleSelect applies the tap-selection rules: tapping a region selects it,
// tapping the already-selected region clears the selection. Selection is
// refused while the transport is recording.
func (t *TimelineState) ToggleSelect(ref RegionRef, recording bool) {
	if recording {
		return
	}
	if t.Selected != nil && *t.Selected == ref {
		t.Selected = nil
		return
	}
	selected := ref
	t.Selected = &selected
}

// ClearSelection drops the current selection, if any. Tapping empty track
// area routes here.
func (t *TimelineState) ClearSelection() {
	t.Selected = nil
}

// EnterTrimMode marks a region as the trim target and clears any selection,
// since trim handles and selection highlights are mutually exclusive.
func (t *TimelineState) EnterTrimMode(ref RegionRef) {
	target := ref
	t.TrimTarget = &target
	t.Selected = nil
}

// ExitTrimMode leaves trim mode with no model change.
func (t *TimelineState) ExitTrimMode() {
	t.TrimTarget = nil
}

// EnableLoop initializes loop mode to a two-second window at the playhead,
// shrinking from the end when the session boundary is closer than that.
func (t *TimelineState) EnableLoop(maxDuration float64) {
	start := clamp(t.Playhead, 0, maxDuration)
	end := start + defaultLoopLength
	if end > maxDuration {
		end = maxDuration
		if end-start < MinLoopLength {
			start = clamp(end-defaultLoopLength, 0, maxDuration)
		}
	}
	t.LoopEnabled = true
	t.LoopStart = start
	t.LoopEnd = end
}

// DisableLoop turns loop mode off, keeping the bounds for re-enable.
func (t *TimelineState) DisableLoop() {
	t.LoopEnabled = false
}

// SetLoopStart moves the loop start handle, clamped against the end handle
// with the minimum separation.
func (t *TimelineState) SetLoopStart(seconds float64) {
	t.LoopStart = clamp(seconds, 0, t.LoopEnd-MinLoopLength)
}

// SetLoopEnd moves the loop end handle, clamped against the start handle and
// the session boundary.
func (t *TimelineState) SetLoopEnd(seconds, maxDuration float64) {
	t.LoopEnd = clamp(seconds, t.LoopStart+MinLoopLength, maxDuration)
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
