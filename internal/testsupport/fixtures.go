package testsupport

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
)

// WriteSineWAV writes a 16-bit PCM WAV containing a sine tone at the given
// frequency with 0.5 amplitude, and returns the path.
func WriteSineWAV(t testing.TB, path string, sampleRate, channels int, seconds, freq float64) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	enc := gowav.NewEncoder(f, sampleRate, 16, channels, 1)
	frames := int(seconds * float64(sampleRate))
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           make([]int, frames*channels),
		SourceBitDepth: 16,
	}
	for frame := 0; frame < frames; frame++ {
		v := 0.5 * math.Sin(2*math.Pi*freq*float64(frame)/float64(sampleRate))
		sample := int(v * 32767)
		for ch := 0; ch < channels; ch++ {
			buf.Data[frame*channels+ch] = sample
		}
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("finalize %s: %v", path, err)
	}
	return path
}

// WriteSilentWAV writes a 16-bit PCM WAV of silence.
func WriteSilentWAV(t testing.TB, path string, sampleRate, channels int, seconds float64) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	enc := gowav.NewEncoder(f, sampleRate, 16, channels, 1)
	frames := int(seconds * float64(sampleRate))
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           make([]int, frames*channels),
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("finalize %s: %v", path, err)
	}
	return path
}
