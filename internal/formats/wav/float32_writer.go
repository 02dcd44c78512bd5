package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Float32Writer streams interleaved float32 samples into a RIFF/WAVE file
// with the IEEE-float format tag. The header is written up front with
// placeholder sizes and patched on Close, so samples can be appended in
// bounded chunks without knowing the total length ahead of time.
//
// go-audio's encoder buffers integer frames, so the canonical float output
// is written by hand here; the decoder side still reads it back through
// go-audio/wav container parsing.
type Float32Writer struct {
	w          io.WriteSeeker
	sampleRate int
	channels   int
	dataBytes  uint32
	buf        []byte
	closed     bool
}

// NewFloat32Writer writes the WAV header and returns a writer ready for
// sample chunks.
func NewFloat32Writer(w io.WriteSeeker, sampleRate, channels int) (*Float32Writer, error) {
	fw := &Float32Writer{
		w:          w,
		sampleRate: sampleRate,
		channels:   channels,
		buf:        make([]byte, 0, 4096*4),
	}
	if err := fw.writeHeader(); err != nil {
		return nil, err
	}
	return fw, nil
}

func (fw *Float32Writer) writeHeader() error {
	blockAlign := fw.channels * 4
	byteRate := fw.sampleRate * blockAlign

	header := make([]byte, 0, 44)
	header = append(header, "RIFF"...)
	header = binary.LittleEndian.AppendUint32(header, 0) // patched on Close
	header = append(header, "WAVE"...)
	header = append(header, "fmt "...)
	header = binary.LittleEndian.AppendUint32(header, 16)
	header = binary.LittleEndian.AppendUint16(header, formatIEEEFloat)
	header = binary.LittleEndian.AppendUint16(header, uint16(fw.channels))
	header = binary.LittleEndian.AppendUint32(header, uint32(fw.sampleRate))
	header = binary.LittleEndian.AppendUint32(header, uint32(byteRate))
	header = binary.LittleEndian.AppendUint16(header, uint16(blockAlign))
	header = binary.LittleEndian.AppendUint16(header, 32)
	header = append(header, "data"...)
	header = binary.LittleEndian.AppendUint32(header, 0) // patched on Close

	if _, err := fw.w.Write(header); err != nil {
		return fmt.Errorf("write wav header: %w", err)
	}
	return nil
}

// WriteSamples appends interleaved float32 samples to the data chunk.
func (fw *Float32Writer) WriteSamples(samples []float32) error {
	if fw.closed {
		return fmt.Errorf("write to closed wav writer")
	}
	fw.buf = fw.buf[:0]
	for _, sample := range samples {
		fw.buf = binary.LittleEndian.AppendUint32(fw.buf, math.Float32bits(sample))
	}
	if _, err := fw.w.Write(fw.buf); err != nil {
		return fmt.Errorf("write samples: %w", err)
	}
	fw.dataBytes += uint32(len(samples) * 4)
	return nil
}

// FramesWritten reports the number of complete frames written so far.
func (fw *Float32Writer) FramesWritten() int64 {
	return int64(fw.dataBytes) / int64(fw.channels*4)
}

// Close patches the RIFF and data chunk sizes. It does not close the
// underlying file.
func (fw *Float32Writer) Close() error {
	if fw.closed {
		return nil
	}
	fw.closed = true

	sizes := make([]byte, 4)
	binary.LittleEndian.PutUint32(sizes, 36+fw.dataBytes)
	if _, err := fw.w.Seek(4, io.SeekStart); err != nil {
		return fmt.Errorf("seek riff size: %w", err)
	}
	if _, err := fw.w.Write(sizes); err != nil {
		return fmt.Errorf("patch riff size: %w", err)
	}

	binary.LittleEndian.PutUint32(sizes, fw.dataBytes)
	if _, err := fw.w.Seek(40, io.SeekStart); err != nil {
		return fmt.Errorf("seek data size: %w", err)
	}
	if _, err := fw.w.Write(sizes); err != nil {
		return fmt.Errorf("patch data size: %w", err)
	}
	return nil
}
