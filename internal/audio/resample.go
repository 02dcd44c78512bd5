package audio

import (
	"fmt"
	"io"
)

// Resampler converts a source to a target sample rate using cubic
// interpolation over a four-frame window. Channel count is preserved. A
// one-pole low-pass runs ahead of the interpolator when downsampling to
// tame aliasing.
type Resampler struct {
	src      Source
	dstRate  int
	ratio    float64 // source frames consumed per output frame
	channels int

	// window[0..3] hold frames t-1, t0, t+1, t+2 for the interpolator.
	window    [4][]float32
	hasFrame  [4]bool
	primed    bool
	pos       float64
	eof       bool
	frameBuf  []float32
	useFilter bool
	filterK   float32
	filterOut []float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	ratio := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:       src,
		dstRate:   dstRate,
		ratio:     ratio,
		channels:  channels,
		frameBuf:  make([]float32, channels),
		useFilter: ratio > 1.0,
		filterK:   0.5,
		filterOut: make([]float32, channels),
	}
	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}
	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("close resampler source: %w", err)
	}
	return nil
}

// readFrame pulls one frame from the source into dst, applying the
// anti-alias filter when active.
func (r *Resampler) readFrame(dst []float32) (bool, error) {
	n, err := r.src.ReadSamples(r.frameBuf)
	if n > 0 {
		copy(dst, r.frameBuf[:n])
		if r.useFilter {
			for c := 0; c < r.channels; c++ {
				dst[c] = r.filterK*dst[c] + (1-r.filterK)*r.filterOut[c]
				r.filterOut[c] = dst[c]
			}
		}
	}
	if err == io.EOF {
		r.eof = true
		if n == 0 {
			return false, io.EOF
		}
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// advance shifts the window left by one frame and loads the next one.
func (r *Resampler) advance() error {
	if r.eof {
		copy(r.window[0], r.window[1])
		copy(r.window[1], r.window[2])
		copy(r.window[2], r.window[3])
		r.hasFrame[0], r.hasFrame[1], r.hasFrame[2] = r.hasFrame[1], r.hasFrame[2], r.hasFrame[3]
		r.hasFrame[3] = false
		if !r.hasFrame[1] || !r.hasFrame[2] {
			return io.EOF
		}
		return nil
	}
	copy(r.window[0], r.window[1])
	copy(r.window[1], r.window[2])
	copy(r.window[2], r.window[3])
	r.hasFrame[0], r.hasFrame[1], r.hasFrame[2] = r.hasFrame[1], r.hasFrame[2], r.hasFrame[3]
	ok, err := r.readFrame(r.window[3])
	if err == io.EOF {
		r.hasFrame[3] = false
		if !r.hasFrame[1] || !r.hasFrame[2] {
			return io.EOF
		}
		return nil
	}
	if err != nil {
		return err
	}
	r.hasFrame[3] = ok
	return nil
}

func (r *Resampler) prime() error {
	for i := 0; i < 4; i++ {
		ok, err := r.readFrame(r.window[i])
		if err == io.EOF || !ok {
			if i == 0 {
				return io.EOF
			}
			for j := i; j < 4; j++ {
				copy(r.window[j], r.window[i-1])
				r.hasFrame[j] = true
			}
			break
		}
		if err != nil {
			return err
		}
		r.hasFrame[i] = true
		if i == 0 && r.useFilter {
			copy(r.filterOut, r.window[0])
		}
	}
	r.primed = true
	return nil
}

// ReadSamples produces interleaved samples at the destination rate. The dst
// length must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	frames := len(dst) / r.channels
	for written < frames {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				if err == io.EOF && written > 0 {
					return written * r.channels, io.EOF
				}
				if err == io.EOF {
					return 0, io.EOF
				}
				return written * r.channels, err
			}
		}
		if !r.hasFrame[1] || !r.hasFrame[2] {
			if written == 0 {
				return 0, io.EOF
			}
			return written * r.channels, io.EOF
		}

		t := float32(r.pos)
		for c := 0; c < r.channels; c++ {
			y0 := r.window[1][c]
			if r.hasFrame[0] {
				y0 = r.window[0][c]
			}
			y3 := r.window[2][c]
			if r.hasFrame[3] {
				y3 = r.window[3][c]
			}
			dst[written*r.channels+c] = cubicInterpolate(y0, r.window[1][c], r.window[2][c], y3, t)
		}
		written++
		r.pos += r.ratio
	}
	return written * r.channels, nil
}
