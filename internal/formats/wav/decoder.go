// Package wav decodes RIFF/WAVE files into audio sources and writes the
// canonical float32 output format.
package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	gowav "github.com/go-audio/wav"

	"fourtrack/internal/audio"
)

const (
	formatPCM       = 1
	formatIEEEFloat = 3
)

type source struct {
	pcm        io.Reader
	sampleRate int
	channels   int
	bitDepth   int
	float      bool
	buf        []byte
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	bytesPerSample := s.bitDepth / 8
	needed := len(dst) * bytesPerSample
	if cap(s.buf) < needed {
		s.buf = make([]byte, needed)
	}
	s.buf = s.buf[:needed]

	n, err := io.ReadFull(s.pcm, s.buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return 0, fmt.Errorf("read pcm chunk: %w", err)
	}
	samples := n / bytesPerSample
	if samples == 0 {
		return 0, io.EOF
	}

	for i := 0; i < samples; i++ {
		raw := s.buf[i*bytesPerSample : (i+1)*bytesPerSample]
		dst[i] = s.decodeSample(raw)
	}
	return samples, nil
}

func (s *source) decodeSample(raw []byte) float32 {
	if s.float {
		return math.Float32frombits(binary.LittleEndian.Uint32(raw))
	}
	switch s.bitDepth {
	case 8:
		// 8-bit WAV is unsigned.
		return (float32(raw[0]) - 128) / 128
	case 16:
		return float32(int16(binary.LittleEndian.Uint16(raw))) / 32768
	case 24:
		v := int32(raw[0]) | int32(raw[1])<<8 | int32(raw[2])<<16
		if v&0x800000 != 0 {
			v |= ^int32(0xffffff)
		}
		return float32(v) / 8388608
	default: // 32
		return float32(int32(binary.LittleEndian.Uint32(raw))) / 2147483648
	}
}

// Decoder reads WAV files: integer PCM at 8/16/24/32 bits plus 32-bit IEEE
// float. Container parsing goes through go-audio/wav; sample conversion is
// done here so float files decode losslessly.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("buffer wav data: %w", err)
		}
		rs = newMemReader(data)
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("locate pcm chunk: %w", err)
	}

	format := int(dec.WavAudioFormat)
	bitDepth := int(dec.BitDepth)
	switch {
	case format == formatPCM && (bitDepth == 8 || bitDepth == 16 || bitDepth == 24 || bitDepth == 32):
	case format == formatIEEEFloat && bitDepth == 32:
	default:
		return nil, fmt.Errorf("%w: format %d at %d bits", ErrUnsupportedFormat, format, bitDepth)
	}

	return &source{
		pcm:        dec.PCMChunk,
		sampleRate: int(dec.SampleRate),
		channels:   int(dec.NumChans),
		bitDepth:   bitDepth,
		float:      format == formatIEEEFloat,
		buf:        make([]byte, 8192),
	}, nil
}

// memReader adapts a byte slice to io.ReadSeeker for go-audio.
type memReader struct {
	data   []byte
	offset int64
}

func newMemReader(data []byte) *memReader { return &memReader{data: data} }

func (m *memReader) Read(p []byte) (int, error) {
	if m.offset >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[m.offset:])
	m.offset += int64(n)
	return n, nil
}

func (m *memReader) Seek(offset int64, whence int) (int64, error) {
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = m.offset + offset
	case io.SeekEnd:
		next = int64(len(m.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence %d", whence)
	}
	if next < 0 {
		return 0, fmt.Errorf("negative seek offset")
	}
	m.offset = next
	return next, nil
}
