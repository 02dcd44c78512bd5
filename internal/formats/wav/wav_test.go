package wav_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fourtrack/internal/audio"
	"fourtrack/internal/formats/wav"
	"fourtrack/internal/testsupport"
)

func TestFloat32WriterDecoderRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create file: %v", err)
	}

	writer, err := wav.NewFloat32Writer(f, 48000, 1)
	if err != nil {
		t.Fatalf("NewFloat32Writer failed: %v", err)
	}
	want := make([]float32, 4800)
	for i := range want {
		want[i] = float32(math.Sin(2 * math.Pi * 440 * float64(i) / 48000))
	}
	if err := writer.WriteSamples(want[:2400]); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	if err := writer.WriteSamples(want[2400:]); err != nil {
		t.Fatalf("second write failed: %v", err)
	}
	if writer.FramesWritten() != 4800 {
		t.Fatalf("FramesWritten = %d, want 4800", writer.FramesWritten())
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("writer close failed: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("file close failed: %v", err)
	}

	in, err := os.Open(path)
	if err != nil {
		t.Fatalf("open written file: %v", err)
	}
	defer in.Close()

	src, err := wav.Decoder{}.Decode(in)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if src.SampleRate() != 48000 || src.Channels() != 1 {
		t.Fatalf("decoded format %d Hz %d ch, want 48000 Hz mono", src.SampleRate(), src.Channels())
	}

	clip, err := audio.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if clip.FrameCount() != 4800 {
		t.Fatalf("decoded %d frames, want 4800", clip.FrameCount())
	}
	for i := range want {
		if clip.Samples[i] != want[i] {
			t.Fatalf("sample %d = %v, want bit-identical %v", i, clip.Samples[i], want[i])
		}
	}
}

func TestDecodePCM16Fixture(t *testing.T) {
	path := testsupport.WriteSineWAV(t, filepath.Join(t.TempDir(), "tone.wav"), 44100, 2, 0.5, 440)

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer f.Close()

	src, err := wav.Decoder{}.Decode(f)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if src.SampleRate() != 44100 || src.Channels() != 2 {
		t.Fatalf("decoded format %d Hz %d ch, want 44100 Hz stereo", src.SampleRate(), src.Channels())
	}

	clip, err := audio.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if clip.FrameCount() != 22050 {
		t.Fatalf("decoded %d frames, want 22050", clip.FrameCount())
	}

	var peak float32
	for _, v := range clip.Samples {
		if v > peak {
			peak = v
		}
		if v < -1 || v > 1 {
			t.Fatalf("sample %v outside [-1, 1]", v)
		}
	}
	if peak < 0.45 || peak > 0.55 {
		t.Fatalf("peak = %v, want near the 0.5 amplitude", peak)
	}
}

func TestDecodeRejectsNonWav(t *testing.T) {
	if _, err := (wav.Decoder{}).Decode(strings.NewReader("definitely not a wav")); !errors.Is(err, wav.ErrNotWavFile) {
		t.Fatalf("error = %v, want ErrNotWavFile", err)
	}
}

func TestFramesWrittenBeforeAnyWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create file: %v", err)
	}
	defer f.Close()

	writer, err := wav.NewFloat32Writer(f, 48000, 2)
	if err != nil {
		t.Fatalf("NewFloat32Writer failed: %v", err)
	}
	if writer.FramesWritten() != 0 {
		t.Fatalf("FramesWritten = %d before any write", writer.FramesWritten())
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
}
