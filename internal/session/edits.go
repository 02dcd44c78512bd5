package session

import "fmt"

// PlaybackFlags exposes the transport state owned by the playback
// collaborator. The editing core only ever reads it.
type PlaybackFlags interface {
	IsPlaying() bool
	IsRecording() bool
}

// MoveRegion repositions a region on its own track. Only the start time
// changes; track membership and duration are untouched.
func (s *Session) MoveRegion(trackIndex, regionIndex int, newStartTime float64) error {
	region, err := s.Region(trackIndex, regionIndex)
	if err != nil {
		return err
	}
	if newStartTime < 0 {
		return Wrap(ErrInvalidRegionBounds, "session", "move region",
			fmt.Sprintf("start time %.3f s is negative", newStartTime), nil)
	}
	region.StartTime = newStartTime
	return nil
}

// RetrackRegion transfers a region to the end of another track's list,
// preserving all region fields. Retracking onto the region's own track is
// a no-op.
func (s *Session) RetrackRegion(trackIndex, regionIndex, targetTrackIndex int) error {
	if targetTrackIndex == trackIndex {
		_, err := s.Region(trackIndex, regionIndex)
		return err
	}
	if _, err := s.Track(targetTrackIndex); err != nil {
		return err
	}
	if _, err := s.Region(trackIndex, regionIndex); err != nil {
		return err
	}
	region, err := s.RemoveRegion(trackIndex, regionIndex)
	if err != nil {
		return err
	}
	return s.AppendRegion(targetTrackIndex, region)
}

// TrimRegion applies a new duration and file offset atomically. Both values
// are validated against the region's source window before either is written.
func (s *Session) TrimRegion(trackIndex, regionIndex int, newDuration, newFileStartOffset float64) error {
	region, err := s.Region(trackIndex, regionIndex)
	if err != nil {
		return err
	}

	trimmed := *region
	trimmed.Duration = newDuration
	trimmed.FileStartOffset = newFileStartOffset
	if err := trimmed.validate(); err != nil {
		return err
	}

	region.Duration = newDuration
	region.FileStartOffset = newFileStartOffset
	return nil
}

// DuplicateRegion clones a region with a fresh identifier and appends the
// clone to the same track. The clone is returned but not selected.
func (s *Session) DuplicateRegion(trackIndex, regionIndex int) (*Region, error) {
	region, err := s.Region(trackIndex, regionIndex)
	if err != nil {
		return nil, err
	}
	clone := region.Clone()
	if err := s.AppendRegion(trackIndex, clone); err != nil {
		return nil, err
	}
	return clone, nil
}

// ReverseRegion toggles the playback-direction hint in place.
func (s *Session) ReverseRegion(trackIndex, regionIndex int) error {
	region, err := s.Region(trackIndex, regionIndex)
	if err != nil {
		return err
	}
	region.Reversed = !region.Reversed
	return nil
}

// CutRegion removes a region's timeline presence. It refuses while the
// transport reports active playback or recording, since the playback
// collaborator may be reading the track list; the returned error carries a
// user-facing reason.
func (s *Session) CutRegion(trackIndex, regionIndex int, flags PlaybackFlags) (*Region, error) {
	if _, err := s.Region(trackIndex, regionIndex); err != nil {
		return nil, err
	}
	if flags != nil {
		if flags.IsRecording() {
			return nil, Wrap(ErrCutPrecondition, "session", "cut region",
				"cannot cut while recording is active", nil)
		}
		if flags.IsPlaying() {
			return nil, Wrap(ErrCutPrecondition, "session", "cut region",
				"cannot cut while playback is active", nil)
		}
	}
	return s.RemoveRegion(trackIndex, regionIndex)
}
