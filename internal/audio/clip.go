package audio

import (
	"fmt"
	"io"
)

// Clip is a fully decoded buffer of interleaved float32 samples. Import
// decode reads the whole source into one Clip; later pipeline stages stream
// out of it through independent ClipSource handles, so preview playback and
// format conversion never share read state.
type Clip struct {
	SampleRate int
	Channels   int
	Samples    []float32
}

// FrameCount is the number of complete frames in the clip.
func (c *Clip) FrameCount() int {
	if c.Channels <= 0 {
		return 0
	}
	return len(c.Samples) / c.Channels
}

// Duration in seconds.
func (c *Clip) Duration() float64 {
	if c.SampleRate <= 0 {
		return 0
	}
	return float64(c.FrameCount()) / float64(c.SampleRate)
}

// FrameForTime converts a time in seconds to a clamped frame index.
func (c *Clip) FrameForTime(seconds float64) int {
	frame := int(seconds * float64(c.SampleRate))
	if frame < 0 {
		return 0
	}
	if fc := c.FrameCount(); frame > fc {
		return fc
	}
	return frame
}

// ReadAll drains a source into a Clip. The source is not closed.
func ReadAll(src Source) (*Clip, error) {
	clip := &Clip{SampleRate: src.SampleRate(), Channels: src.Channels()}
	buf := make([]float32, 4096*max(1, src.Channels()))
	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			clip.Samples = append(clip.Samples, buf[:n]...)
		}
		if err == io.EOF {
			// Drop a trailing partial frame so FrameCount stays exact.
			clip.Samples = clip.Samples[:clip.FrameCount()*clip.Channels]
			return clip, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read samples: %w", err)
		}
	}
}

// ClipSource streams a frame range of a Clip as a Source. Multiple
// ClipSources over the same Clip are independent.
type ClipSource struct {
	clip     *Clip
	frame    int
	endFrame int
}

// NewClipSource streams frames [startFrame, endFrame) of the clip. Bounds
// are clamped to the clip.
func NewClipSource(clip *Clip, startFrame, endFrame int) *ClipSource {
	fc := clip.FrameCount()
	if startFrame < 0 {
		startFrame = 0
	}
	if endFrame > fc {
		endFrame = fc
	}
	if endFrame < startFrame {
		endFrame = startFrame
	}
	return &ClipSource{clip: clip, frame: startFrame, endFrame: endFrame}
}

func (s *ClipSource) SampleRate() int { return s.clip.SampleRate }
func (s *ClipSource) Channels() int   { return s.clip.Channels }
func (s *ClipSource) Close() error    { return nil }

func (s *ClipSource) ReadSamples(dst []float32) (int, error) {
	channels := s.clip.Channels
	if channels <= 0 {
		return 0, io.EOF
	}
	if len(dst)%channels != 0 {
		return 0, ErrInvalidDstSize
	}
	remaining := s.endFrame - s.frame
	if remaining <= 0 {
		return 0, io.EOF
	}
	frames := len(dst) / channels
	if frames > remaining {
		frames = remaining
	}
	lo := s.frame * channels
	copy(dst, s.clip.Samples[lo:lo+frames*channels])
	s.frame += frames
	if s.frame >= s.endFrame {
		return frames * channels, io.EOF
	}
	return frames * channels, nil
}
