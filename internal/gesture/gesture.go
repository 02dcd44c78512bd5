package gesture

import "math"

const (
	// axisDeadZonePx is the vertical movement below which a gesture stays
	// horizontal; it stops jitter flapping the classification.
	axisDeadZonePx = 30.0

	// deleteCommitPx is the total vertical distance a drag must cover before
	// a delete-zone release actually commits a delete request.
	deleteCommitPx = 50.0

	// tapSlopPx is the movement budget under which a gesture counts as a tap.
	tapSlopPx = 10.0
)

// Layout carries the static display constants the interpreter needs to map
// pixels onto the timeline.
type Layout struct {
	PixelsPerSecond float64
	RowHeight       float64
	TrackCount      int
}

// CommandKind discriminates the gesture outcomes.
type CommandKind string

const (
	// NoOp: the gesture ended without a model change.
	NoOp CommandKind = "noop"
	// Reposition: change the region's start time on its own track.
	Reposition CommandKind = "reposition"
	// Retrack: move the region to another track's list.
	Retrack CommandKind = "retrack"
	// RequestDelete asks the caller to confirm a destructive delete; the
	// interpreter never deletes directly.
	RequestDelete CommandKind = "request_delete"
)

// Command is the discrete edit a finished gesture resolves to.
type Command struct {
	Kind CommandKind
	// StartTime is the new region start for Reposition commands.
	StartTime float64
	// TargetTrack is the destination track index for Retrack commands.
	TargetTrack int
}

type axis int

const (
	axisNone axis = iota
	axisHorizontal
	axisVertical
)

// Drag interprets one continuous gesture over a region. The axis
// classification is sticky: once a live update resolves it, later deltas
// cannot flip it until the gesture ends.
type Drag struct {
	layout     Layout
	trackIndex int
	startTime  float64
	axis       axis
}

// Preview is the live feedback state for an in-flight drag.
type Preview struct {
	// CandidateStartTime is the start time a horizontal release would apply.
	CandidateStartTime float64
	// TargetTrack is the track a vertical release would land on.
	TargetTrack int
	// InDeleteZone reports an emphatic drag past the bottom row, for the
	// caller's visual delete hint.
	InDeleteZone bool
}

// NewDrag starts interpreting a gesture on the region currently at
// startTime on the given track.
func NewDrag(layout Layout, trackIndex int, startTime float64) *Drag {
	return &Drag{layout: layout, trackIndex: trackIndex, startTime: startTime}
}

// Update consumes a live delta and returns the preview state. The first
// delta that leaves the tap slop classifies the gesture axis.
func (d *Drag) Update(dx, dy float64) Preview {
	d.classify(dx, dy)
	return Preview{
		CandidateStartTime: d.candidateStart(dx),
		TargetTrack:        d.targetTrack(dy),
		InDeleteZone:       d.inDeleteZone(dy),
	}
}

// End consumes the final delta and resolves the gesture to a command.
func (d *Drag) End(dx, dy float64) Command {
	d.classify(dx, dy)
	switch d.axis {
	case axisHorizontal:
		return Command{Kind: Reposition, StartTime: d.candidateStart(dx)}
	case axisVertical:
		if d.inDeleteZone(dy) && math.Abs(dy) > deleteCommitPx {
			return Command{Kind: RequestDelete}
		}
		if target := d.targetTrack(dy); target != d.trackIndex {
			return Command{Kind: Retrack, TargetTrack: target}
		}
		return Command{Kind: NoOp}
	default:
		return Command{Kind: NoOp}
	}
}

func (d *Drag) classify(dx, dy float64) {
	if d.axis != axisNone {
		return
	}
	if math.Abs(dx) <= tapSlopPx && math.Abs(dy) <= tapSlopPx {
		return
	}
	if math.Abs(dy) > math.Abs(dx) && math.Abs(dy) > axisDeadZonePx {
		d.axis = axisVertical
		return
	}
	d.axis = axisHorizontal
}

func (d *Drag) candidateStart(dx float64) float64 {
	candidate := d.startTime + dx/d.layout.PixelsPerSecond
	if candidate < 0 {
		return 0
	}
	// No upper clamp: the session recomputes its duration from region
	// extents, so dragging right extends the timeline.
	return candidate
}

func (d *Drag) targetTrack(dy float64) int {
	target := d.trackIndex + int(math.Round(dy/d.layout.RowHeight))
	if target < 0 {
		return 0
	}
	if last := d.layout.TrackCount - 1; target > last {
		return last
	}
	return target
}

// inDeleteZone reports whether the raw vertical offset lands emphatically
// past the bottom edge: downward, onto the last row, and more than half a
// row beyond it.
func (d *Drag) inDeleteZone(dy float64) bool {
	if dy <= 0 {
		return false
	}
	last := d.layout.TrackCount - 1
	if d.targetTrack(dy) != last {
		return false
	}
	excess := dy - float64(last-d.trackIndex)*d.layout.RowHeight
	return excess > d.layout.RowHeight/2
}

// IsTap reports whether a finished gesture had negligible total movement
// and should be treated as a selection tap instead of a drag.
func IsTap(dx, dy float64) bool {
	return math.Abs(dx) <= tapSlopPx && math.Abs(dy) <= tapSlopPx
}
