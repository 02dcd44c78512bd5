package gesture_test

import (
	"testing"

	"fourtrack/internal/gesture"
)

var testLayout = gesture.Layout{
	PixelsPerSecond: 50,
	RowHeight:       80,
	TrackCount:      4,
}

func TestHorizontalDragRepositions(t *testing.T) {
	// Region at 2.0 s on track 1, dragged 75 px right (1.5 s).
	drag := gesture.NewDrag(testLayout, 1, 2.0)

	preview := drag.Update(75, 5)
	if preview.CandidateStartTime != 3.5 {
		t.Fatalf("candidate start = %v, want 3.5", preview.CandidateStartTime)
	}
	if preview.InDeleteZone {
		t.Fatal("horizontal drag reported delete zone")
	}

	cmd := drag.End(75, 5)
	if cmd.Kind != gesture.Reposition {
		t.Fatalf("command = %s, want reposition", cmd.Kind)
	}
	if cmd.StartTime != 3.5 {
		t.Fatalf("start time = %v, want 3.5", cmd.StartTime)
	}
}

func TestDragLeftClampsToZero(t *testing.T) {
	drag := gesture.NewDrag(testLayout, 0, 1.0)

	cmd := drag.End(-200, 0)
	if cmd.Kind != gesture.Reposition {
		t.Fatalf("command = %s, want reposition", cmd.Kind)
	}
	if cmd.StartTime != 0 {
		t.Fatalf("start time = %v, want 0", cmd.StartTime)
	}
}

func TestDragRightHasNoUpperClamp(t *testing.T) {
	drag := gesture.NewDrag(testLayout, 0, 25.0)

	cmd := drag.End(1000, 0)
	if cmd.StartTime != 45.0 {
		t.Fatalf("start time = %v, want 45", cmd.StartTime)
	}
}

func TestVerticalDragRetracks(t *testing.T) {
	// Track 1, dragged 150 px down: round(150/80) = 2 rows to track 3.
	drag := gesture.NewDrag(testLayout, 1, 2.0)

	preview := drag.Update(5, 150)
	if preview.TargetTrack != 3 {
		t.Fatalf("target track = %d, want 3", preview.TargetTrack)
	}

	cmd := drag.End(5, 150)
	if cmd.Kind != gesture.Retrack {
		t.Fatalf("command = %s, want retrack", cmd.Kind)
	}
	if cmd.TargetTrack != 3 {
		t.Fatalf("target track = %d, want 3", cmd.TargetTrack)
	}
}

func TestTargetTrackClampsToRows(t *testing.T) {
	drag := gesture.NewDrag(testLayout, 0, 0)
	if preview := drag.Update(0, -400); preview.TargetTrack != 0 {
		t.Fatalf("upward target = %d, want 0", preview.TargetTrack)
	}

	drag = gesture.NewDrag(testLayout, 3, 0)
	if preview := drag.Update(0, 400); preview.TargetTrack != 3 {
		t.Fatalf("downward target = %d, want 3", preview.TargetTrack)
	}
}

func TestDeleteZoneRequiresEmphaticOvershoot(t *testing.T) {
	// From track 1, the last row is 2 rows down (160 px); the delete zone
	// needs more than half a row beyond it.
	cases := []struct {
		name string
		dy   float64
		want gesture.CommandKind
	}{
		{"overshoot past half row", 250, gesture.RequestDelete},
		{"lands on last row without overshoot", 180, gesture.Retrack},
		{"upward drag never deletes", -250, gesture.Retrack},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			drag := gesture.NewDrag(testLayout, 1, 2.0)
			cmd := drag.End(0, tc.dy)
			if cmd.Kind != tc.want {
				t.Fatalf("command = %s, want %s", cmd.Kind, tc.want)
			}
		})
	}
}

func TestDeleteZoneFromLastTrack(t *testing.T) {
	// On the bottom track any downward drag past half a row is a delete
	// request once it covers the commit distance.
	drag := gesture.NewDrag(testLayout, 3, 0)
	cmd := drag.End(0, 55)
	if cmd.Kind != gesture.RequestDelete {
		t.Fatalf("command = %s, want request_delete", cmd.Kind)
	}
}

func TestAxisClassificationIsSticky(t *testing.T) {
	drag := gesture.NewDrag(testLayout, 1, 2.0)

	// Classified horizontal first; a later vertical swing cannot flip it.
	drag.Update(40, 0)
	cmd := drag.End(40, 300)
	if cmd.Kind != gesture.Reposition {
		t.Fatalf("command = %s, want reposition after horizontal lock", cmd.Kind)
	}
}

func TestVerticalNeedsDeadZone(t *testing.T) {
	// |dy| > |dx| but within the 30 px dead zone: still horizontal.
	drag := gesture.NewDrag(testLayout, 1, 2.0)
	cmd := drag.End(12, 25)
	if cmd.Kind != gesture.Reposition {
		t.Fatalf("command = %s, want reposition inside dead zone", cmd.Kind)
	}
}

func TestTapResolvesToNoOp(t *testing.T) {
	drag := gesture.NewDrag(testLayout, 1, 2.0)

	cmd := drag.End(4, -6)
	if cmd.Kind != gesture.NoOp {
		t.Fatalf("command = %s, want noop", cmd.Kind)
	}
	if !gesture.IsTap(4, -6) {
		t.Fatal("IsTap rejected tap-sized movement")
	}
	if gesture.IsTap(11, 0) {
		t.Fatal("IsTap accepted movement past the slop")
	}
}

func TestSameTrackVerticalReleaseIsNoOp(t *testing.T) {
	// Vertical classification but the rounded row delta is zero.
	drag := gesture.NewDrag(testLayout, 1, 2.0)
	cmd := drag.End(0, 35)
	if cmd.Kind != gesture.NoOp {
		t.Fatalf("command = %s, want noop", cmd.Kind)
	}
}
