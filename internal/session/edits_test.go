package session_test

import (
	"errors"
	"testing"

	"fourtrack/internal/session"
)

type transportFlags struct {
	playing   bool
	recording bool
}

func (f transportFlags) IsPlaying() bool   { return f.playing }
func (f transportFlags) IsRecording() bool { return f.recording }

func newSessionWithRegion(t *testing.T) (*session.Session, *session.Region) {
	t.Helper()
	sess := session.New("Demo", 120, 4, 4)
	region, err := session.NewRegion("take.wav", 2, 4, 1, 6)
	if err != nil {
		t.Fatalf("NewRegion failed: %v", err)
	}
	if err := sess.AppendRegion(0, region); err != nil {
		t.Fatalf("AppendRegion failed: %v", err)
	}
	return sess, region
}

func TestMoveRegion(t *testing.T) {
	sess, region := newSessionWithRegion(t)

	if err := sess.MoveRegion(0, 0, 7.5); err != nil {
		t.Fatalf("MoveRegion failed: %v", err)
	}
	if region.StartTime != 7.5 {
		t.Fatalf("start time = %v, want 7.5", region.StartTime)
	}
	if region.Duration != 4 {
		t.Fatalf("duration changed to %v", region.Duration)
	}

	if err := sess.MoveRegion(0, 0, -1); !errors.Is(err, session.ErrInvalidRegionBounds) {
		t.Fatalf("negative move error = %v, want ErrInvalidRegionBounds", err)
	}
	if region.StartTime != 7.5 {
		t.Fatalf("failed move mutated start time to %v", region.StartTime)
	}
}

func TestRetrackRegionAppendsToTargetEnd(t *testing.T) {
	sess, region := newSessionWithRegion(t)
	existing, err := session.NewRegion("other.wav", 0, 1, 0, 1)
	if err != nil {
		t.Fatalf("NewRegion failed: %v", err)
	}
	if err := sess.AppendRegion(2, existing); err != nil {
		t.Fatalf("AppendRegion failed: %v", err)
	}

	if err := sess.RetrackRegion(0, 0, 2); err != nil {
		t.Fatalf("RetrackRegion failed: %v", err)
	}
	ti, ri, ok := sess.FindRegion(region.ID)
	if !ok || ti != 2 || ri != 1 {
		t.Fatalf("region at (%d, %d, %v), want appended to track 2", ti, ri, ok)
	}
	if region.StartTime != 2 {
		t.Fatalf("retrack changed start time to %v", region.StartTime)
	}
}

func TestRetrackRegionOntoOwnTrackIsNoOp(t *testing.T) {
	sess, region := newSessionWithRegion(t)

	if err := sess.RetrackRegion(0, 0, 0); err != nil {
		t.Fatalf("same-track retrack failed: %v", err)
	}
	ti, ri, ok := sess.FindRegion(region.ID)
	if !ok || ti != 0 || ri != 0 {
		t.Fatalf("region moved to (%d, %d, %v)", ti, ri, ok)
	}
}

func TestTrimRegionValidatesBeforeApplying(t *testing.T) {
	sess, region := newSessionWithRegion(t)

	// Trim 1 s off the start: duration shrinks, offset advances.
	if err := sess.TrimRegion(0, 0, 3, 2); err != nil {
		t.Fatalf("TrimRegion failed: %v", err)
	}
	if region.Duration != 3 || region.FileStartOffset != 2 {
		t.Fatalf("trim applied (%v, %v), want (3, 2)", region.Duration, region.FileStartOffset)
	}

	// A window that reads past the source must leave both fields untouched.
	if err := sess.TrimRegion(0, 0, 5, 2); !errors.Is(err, session.ErrInvalidRegionBounds) {
		t.Fatalf("oversized trim error = %v", err)
	}
	if region.Duration != 3 || region.FileStartOffset != 2 {
		t.Fatalf("failed trim mutated region to (%v, %v)", region.Duration, region.FileStartOffset)
	}
}

func TestDuplicateRegion(t *testing.T) {
	sess, region := newSessionWithRegion(t)

	clone, err := sess.DuplicateRegion(0, 0)
	if err != nil {
		t.Fatalf("DuplicateRegion failed: %v", err)
	}
	if clone.ID == region.ID {
		t.Fatal("clone shares the original id")
	}
	if clone.StartTime != region.StartTime || clone.Duration != region.Duration {
		t.Fatalf("clone window (%v, %v) differs from original (%v, %v)",
			clone.StartTime, clone.Duration, region.StartTime, region.Duration)
	}
	track, err := sess.Track(0)
	if err != nil {
		t.Fatalf("Track(0) failed: %v", err)
	}
	if len(track.Regions) != 2 {
		t.Fatalf("track holds %d regions, want 2", len(track.Regions))
	}

	// Duplicate then delete the clone restores the original count.
	if _, err := sess.RemoveRegion(0, 1); err != nil {
		t.Fatalf("RemoveRegion failed: %v", err)
	}
	if sess.RegionCount() != 1 {
		t.Fatalf("region count = %d after deleting clone", sess.RegionCount())
	}
}

func TestReverseRegionTogglesInPlace(t *testing.T) {
	sess, region := newSessionWithRegion(t)

	if err := sess.ReverseRegion(0, 0); err != nil {
		t.Fatalf("ReverseRegion failed: %v", err)
	}
	if !region.Reversed {
		t.Fatal("region not reversed")
	}
	if err := sess.ReverseRegion(0, 0); err != nil {
		t.Fatalf("second ReverseRegion failed: %v", err)
	}
	if region.Reversed {
		t.Fatal("double reverse did not restore the original direction")
	}
}

func TestCutRegionRefusesWhileTransportActive(t *testing.T) {
	cases := []struct {
		name  string
		flags transportFlags
	}{
		{"recording", transportFlags{recording: true}},
		{"playing", transportFlags{playing: true}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sess, _ := newSessionWithRegion(t)
			if _, err := sess.CutRegion(0, 0, tc.flags); !errors.Is(err, session.ErrCutPrecondition) {
				t.Fatalf("cut error = %v, want ErrCutPrecondition", err)
			}
			if sess.RegionCount() != 1 {
				t.Fatalf("refused cut removed the region")
			}
		})
	}
}

func TestCutRegionWhileStopped(t *testing.T) {
	sess, region := newSessionWithRegion(t)

	removed, err := sess.CutRegion(0, 0, transportFlags{})
	if err != nil {
		t.Fatalf("CutRegion failed: %v", err)
	}
	if removed.ID != region.ID {
		t.Fatalf("cut removed wrong region %s", removed.ID)
	}
	if sess.RegionCount() != 0 {
		t.Fatalf("region count = %d after cut", sess.RegionCount())
	}
}
