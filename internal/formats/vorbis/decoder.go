// Package vorbis decodes Ogg Vorbis streams via jfreymuth/oggvorbis.
package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"fourtrack/internal/audio"
)

type source struct {
	dec      *oggvorbis.Reader
	channels int
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	// oggvorbis reads interleaved float32 directly; it returns sample
	// counts, matching the Source contract.
	n, err := s.dec.Read(dst)
	if n == 0 && err == nil {
		return 0, nil
	}
	return n, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("open vorbis stream: %w", err)
	}
	return &source{dec: dec, channels: dec.Channels()}, nil
}
