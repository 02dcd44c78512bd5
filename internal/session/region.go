package session

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	// MinRegionDuration is the floor preventing degenerate zero-width clips.
	MinRegionDuration = 0.1

	// boundsEpsilon absorbs float accumulation when checking that a region's
	// visible window stays inside its source material.
	boundsEpsilon = 1e-6
)

// Region is the atomic non-destructive clip: a positioned reference to a
// span of a source audio file.
type Region struct {
	// ID uniquely identifies the region across its lifetime.
	ID string
	// SourceFile names the backing audio file in the project's file store.
	// The file is owned by the store, not by the region.
	SourceFile string
	// StartTime is the region's position on the track timeline, in seconds.
	StartTime float64
	// Duration is the displayed length in seconds.
	Duration float64
	// FileStartOffset is the playback start inside the source file, in seconds.
	FileStartOffset float64
	// FileDuration is the length of source material backing this region.
	// Trimming shrinks the visible window; it never reads past this.
	FileDuration float64
	// Reversed is a playback-direction hint interpreted by the playback
	// collaborator. No sample data is touched when it toggles.
	Reversed bool
}

// NewRegion constructs a validated region with a fresh identifier.
func NewRegion(sourceFile string, startTime, duration, fileStartOffset, fileDuration float64) (*Region, error) {
	region := &Region{
		ID:              uuid.NewString(),
		SourceFile:      sourceFile,
		StartTime:       startTime,
		Duration:        duration,
		FileStartOffset: fileStartOffset,
		FileDuration:    fileDuration,
	}
	if err := region.validate(); err != nil {
		return nil, err
	}
	return region, nil
}

func (r *Region) validate() error {
	if r.SourceFile == "" {
		return Wrap(ErrInvalidRegionBounds, "region", "validate", "source file reference is required", nil)
	}
	if r.StartTime < 0 {
		return Wrap(ErrInvalidRegionBounds, "region", "validate",
			fmt.Sprintf("start time %.3f s is negative", r.StartTime), nil)
	}
	if r.FileStartOffset < 0 {
		return Wrap(ErrInvalidRegionBounds, "region", "validate",
			fmt.Sprintf("file offset %.3f s is negative", r.FileStartOffset), nil)
	}
	if r.Duration < MinRegionDuration {
		return Wrap(ErrInvalidRegionBounds, "region", "validate",
			fmt.Sprintf("duration %.3f s is below the %.1f s minimum", r.Duration, MinRegionDuration), nil)
	}
	if r.FileStartOffset+r.Duration > r.FileDuration+boundsEpsilon {
		return Wrap(ErrInvalidRegionBounds, "region", "validate",
			fmt.Sprintf("window %.3f+%.3f s reads past the %.3f s source", r.FileStartOffset, r.Duration, r.FileDuration), nil)
	}
	return nil
}

// EndTime is the region's end position on the track timeline.
func (r *Region) EndTime() float64 {
	return r.StartTime + r.Duration
}

// Clone copies every field except the identifier, which is freshly generated.
func (r *Region) Clone() *Region {
	clone := *r
	clone.ID = uuid.NewString()
	return &clone
}
