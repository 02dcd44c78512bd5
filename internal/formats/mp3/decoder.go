// Package mp3 decodes MPEG layer 3 streams via hajimehoshi/go-mp3.
package mp3

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"fourtrack/internal/audio"
)

type source struct {
	dec        *gomp3.Decoder
	sampleRate int
	buf        []byte
}

func (s *source) SampleRate() int { return s.sampleRate }

// go-mp3 always emits stereo interleaved int16 PCM.
func (s *source) Channels() int { return 2 }
func (s *source) Close() error  { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	needed := len(dst) * 2
	if cap(s.buf) < needed {
		s.buf = make([]byte, needed)
	}
	s.buf = s.buf[:needed]

	n, err := s.dec.Read(s.buf)
	if n == 0 {
		if err != nil {
			return 0, err
		}
		return 0, nil
	}

	samples := n / 2
	for i := 0; i < samples; i++ {
		v := int16(uint16(s.buf[2*i]) | uint16(s.buf[2*i+1])<<8)
		dst[i] = float32(v) / 32768
	}
	return samples, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("open mp3 stream: %w", err)
	}
	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, 8192),
	}, nil
}
