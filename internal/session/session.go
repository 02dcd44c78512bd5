package session

import "fmt"

const (
	// TrackCount is the fixed number of parallel lanes in every session.
	TrackCount = 4

	// MinSessionDuration floors the derived session length so an empty or
	// nearly empty timeline still renders a usable width.
	MinSessionDuration = 30.0
)

// EffectSettings is the per-track effects chain. The editing core reads and
// writes it as an opaque payload; the DSP lives in the playback collaborator.
type EffectSettings struct {
	Volume     float64
	Pan        float64
	EQLow      float64
	EQMid      float64
	EQHigh     float64
	Reverb     float64
	Delay      float64
	Saturation float64
}

// DefaultEffects returns the neutral effects chain for a new track.
func DefaultEffects() EffectSettings {
	return EffectSettings{Volume: 1.0}
}

// Track is one of the four fixed lanes. Regions are kept in insertion order,
// which is not timeline order; overlapping start times are permitted.
type Track struct {
	// Number is the fixed 1-based lane number.
	Number  int
	Regions []*Region
	Effects EffectSettings
}

// DisplayMode selects how the timeline ruler is rendered.
type DisplayMode string

const (
	DisplaySeconds DisplayMode = "seconds"
	DisplayBeats   DisplayMode = "beats"
)

// Session is the top-level project: four tracks, tempo metadata, and the
// derived timeline duration. The caller persists it after each structural
// change; the model itself never touches storage.
type Session struct {
	Name        string
	BPM         float64
	BeatsPerBar int
	BeatUnit    int
	Display     DisplayMode
	Tracks      [TrackCount]*Track
}

// New constructs an empty session with the given tempo metadata.
func New(name string, bpm float64, beatsPerBar, beatUnit int) *Session {
	s := &Session{
		Name:        name,
		BPM:         bpm,
		BeatsPerBar: beatsPerBar,
		BeatUnit:    beatUnit,
		Display:     DisplaySeconds,
	}
	for i := range s.Tracks {
		s.Tracks[i] = &Track{Number: i + 1, Effects: DefaultEffects()}
	}
	return s
}

// Track returns the track at the 0-based index.
func (s *Session) Track(index int) (*Track, error) {
	if index < 0 || index >= TrackCount {
		return nil, Wrap(ErrNotFound, "session", "track",
			fmt.Sprintf("track index %d out of range", index), nil)
	}
	return s.Tracks[index], nil
}

// Region looks up a region by (trackIndex, regionIndex).
func (s *Session) Region(trackIndex, regionIndex int) (*Region, error) {
	track, err := s.Track(trackIndex)
	if err != nil {
		return nil, err
	}
	if regionIndex < 0 || regionIndex >= len(track.Regions) {
		return nil, Wrap(ErrNotFound, "session", "region",
			fmt.Sprintf("region index %d out of range on track %d", regionIndex, track.Number), nil)
	}
	return track.Regions[regionIndex], nil
}

// FindRegion resolves a region identifier to its current (track, region)
// indices. Callers use it to re-resolve before removal, since concurrent
// edits can shift indices.
func (s *Session) FindRegion(id string) (trackIndex, regionIndex int, ok bool) {
	for ti, track := range s.Tracks {
		for ri, region := range track.Regions {
			if region.ID == id {
				return ti, ri, true
			}
		}
	}
	return 0, 0, false
}

// AppendRegion adds the region to the end of a track's list.
func (s *Session) AppendRegion(trackIndex int, region *Region) error {
	track, err := s.Track(trackIndex)
	if err != nil {
		return err
	}
	if err := region.validate(); err != nil {
		return err
	}
	next := make([]*Region, 0, len(track.Regions)+1)
	next = append(next, track.Regions...)
	next = append(next, region)
	track.Regions = next
	return nil
}

// RemoveRegion removes and returns the region at (trackIndex, regionIndex).
func (s *Session) RemoveRegion(trackIndex, regionIndex int) (*Region, error) {
	track, err := s.Track(trackIndex)
	if err != nil {
		return nil, err
	}
	if regionIndex < 0 || regionIndex >= len(track.Regions) {
		return nil, Wrap(ErrNotFound, "session", "remove region",
			fmt.Sprintf("region index %d out of range on track %d", regionIndex, track.Number), nil)
	}
	removed := track.Regions[regionIndex]
	next := make([]*Region, 0, len(track.Regions)-1)
	next = append(next, track.Regions[:regionIndex]...)
	next = append(next, track.Regions[regionIndex+1:]...)
	track.Regions = next
	return removed, nil
}

// MaxDuration recomputes the session length: the maximum region end time
// across all tracks, floored to MinSessionDuration.
func (s *Session) MaxDuration() float64 {
	max := MinSessionDuration
	for _, track := range s.Tracks {
		for _, region := range track.Regions {
			if end := region.EndTime(); end > max {
				max = end
			}
		}
	}
	return max
}

// RegionCount is the total number of regions across all tracks.
func (s *Session) RegionCount() int {
	count := 0
	for _, track := range s.Tracks {
		count += len(track.Regions)
	}
	return count
}
