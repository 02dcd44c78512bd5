package importer_test

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fourtrack/internal/audio"
	"fourtrack/internal/formats"
	"fourtrack/internal/formats/wav"
	"fourtrack/internal/importer"
	"fourtrack/internal/session"
	"fourtrack/internal/testsupport"
)

func newTestImporter(t *testing.T) (*importer.Importer, *testsupportStore) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	imp := importer.New(formats.NewRegistry(), st)
	return imp, &testsupportStore{audioDir: st.AudioDir()}
}

// testsupportStore only carries the audio dir for assertions; the real
// store drives the importer.
type testsupportStore struct {
	audioDir string
}

func TestImportCroppedStereoSource(t *testing.T) {
	imp, info := newTestImporter(t)
	source := testsupport.WriteSineWAV(t, filepath.Join(t.TempDir(), "take one.wav"), 44100, 2, 10, 440)

	job := imp.NewJob(source)
	ctx := context.Background()
	if err := job.Prepare(ctx); err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	if job.Status() != importer.StatusAwaitingCrop {
		t.Fatalf("status = %s, want awaiting_crop", job.Status())
	}
	if d := job.SourceDuration(); math.Abs(d-10) > 0.01 {
		t.Fatalf("source duration = %v, want 10", d)
	}
	if len(job.Preview()) != importer.DefaultPreviewPoints {
		t.Fatalf("preview has %d points, want %d", len(job.Preview()), importer.DefaultPreviewPoints)
	}

	job.Crop().SetStart(2)
	job.Crop().SetEnd(5)

	result, err := job.Execute(ctx, importer.Request{TrackIndex: 0, StartTime: 1.5})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if job.Status() != importer.StatusCompleted {
		t.Fatalf("status = %s, want completed", job.Status())
	}

	region := result.Region
	if region.StartTime != 1.5 {
		t.Fatalf("region start = %v, want 1.5", region.StartTime)
	}
	if math.Abs(region.Duration-3.0) > 0.01 {
		t.Fatalf("region duration = %v, want 3.0", region.Duration)
	}
	if region.FileStartOffset != 0 {
		t.Fatalf("region offset = %v, want 0", region.FileStartOffset)
	}
	if region.FileDuration != region.Duration {
		t.Fatalf("file duration %v != region duration %v", region.FileDuration, region.Duration)
	}
	// Compare against the crop duration at the target rate, with slack for
	// resampler edge frames.
	if delta := math.Abs(float64(result.FramesWritten) - 144000); delta > 200 {
		t.Fatalf("frames written = %d, want about 144000", result.FramesWritten)
	}

	// The output lives in the store's audio dir in the canonical format.
	if filepath.Dir(result.OutputPath) != info.audioDir {
		t.Fatalf("output %s not under audio dir %s", result.OutputPath, info.audioDir)
	}
	f, err := os.Open(result.OutputPath)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	out, err := wav.Decoder{}.Decode(f)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if out.SampleRate() != importer.TargetSampleRate || out.Channels() != importer.TargetChannels {
		t.Fatalf("output format %d Hz %d ch, want %d Hz mono",
			out.SampleRate(), out.Channels(), importer.TargetSampleRate)
	}
	clip, err := audio.ReadAll(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if int64(clip.FrameCount()) != result.FramesWritten {
		t.Fatalf("output holds %d frames, result reports %d", clip.FrameCount(), result.FramesWritten)
	}
}

func TestImportMonoAtTargetRatePassesThrough(t *testing.T) {
	imp, _ := newTestImporter(t)
	source := testsupport.WriteSineWAV(t, filepath.Join(t.TempDir(), "tone.wav"), 48000, 1, 2, 220)

	job := imp.NewJob(source)
	ctx := context.Background()
	if err := job.Prepare(ctx); err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	result, err := job.Execute(ctx, importer.Request{TrackIndex: 2, StartTime: 0})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.FramesWritten != 96000 {
		t.Fatalf("frames written = %d, want exactly 96000", result.FramesWritten)
	}
	if result.Region.Duration != 2.0 {
		t.Fatalf("region duration = %v, want 2.0", result.Region.Duration)
	}
}

func TestImportUnsupportedFormat(t *testing.T) {
	imp, _ := newTestImporter(t)
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("not audio"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	job := imp.NewJob(path)
	err := job.Prepare(context.Background())
	if !errors.Is(err, session.ErrImportDecodeFailed) {
		t.Fatalf("error = %v, want ErrImportDecodeFailed", err)
	}
	if !errors.Is(err, audio.ErrUnknownFormat) {
		t.Fatalf("error %v does not carry ErrUnknownFormat", err)
	}
	if job.Status() != importer.StatusFailed {
		t.Fatalf("status = %s, want failed", job.Status())
	}
}

func TestImportMissingFile(t *testing.T) {
	imp, _ := newTestImporter(t)

	job := imp.NewJob(filepath.Join(t.TempDir(), "missing.wav"))
	err := job.Prepare(context.Background())
	if !errors.Is(err, session.ErrImportDecodeFailed) {
		t.Fatalf("error = %v, want ErrImportDecodeFailed", err)
	}
}

func TestImportCorruptSource(t *testing.T) {
	imp, _ := newTestImporter(t)
	path := filepath.Join(t.TempDir(), "broken.wav")
	if err := os.WriteFile(path, []byte(strings.Repeat("x", 128)), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	job := imp.NewJob(path)
	err := job.Prepare(context.Background())
	if !errors.Is(err, session.ErrImportDecodeFailed) {
		t.Fatalf("error = %v, want ErrImportDecodeFailed", err)
	}
	if session.FailureKind(err) != session.KindImportDecodeFailed {
		t.Fatalf("kind = %s, want import_decode_failed", session.FailureKind(err))
	}
}

func TestImportRefusesOverlongSelection(t *testing.T) {
	imp, info := newTestImporter(t)
	// A low sample rate keeps the over-limit fixture small.
	source := testsupport.WriteSilentWAV(t, filepath.Join(t.TempDir(), "long.wav"),
		8000, 1, importer.MaxImportSeconds+1)

	job := imp.NewJob(source)
	ctx := context.Background()
	if err := job.Prepare(ctx); err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	// The crop window auto-caps; disabling it exposes the full source.
	job.SetCropEnabled(false)

	_, err := job.Execute(ctx, importer.Request{TrackIndex: 0, StartTime: 0})
	if !errors.Is(err, session.ErrDurationExceedsLimit) {
		t.Fatalf("error = %v, want ErrDurationExceedsLimit", err)
	}
	if job.Status() != importer.StatusFailed {
		t.Fatalf("status = %s, want failed", job.Status())
	}

	// Validation precedes I/O: no partial output file may exist.
	entries, err := os.ReadDir(info.audioDir)
	if err != nil {
		t.Fatalf("read audio dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("audio dir holds %d files after refused import", len(entries))
	}
}

func TestImportCropWindowCapsLongSource(t *testing.T) {
	imp, _ := newTestImporter(t)
	source := testsupport.WriteSilentWAV(t, filepath.Join(t.TempDir(), "long.wav"),
		8000, 1, importer.MaxImportSeconds+1)

	job := imp.NewJob(source)
	if err := job.Prepare(context.Background()); err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	if got := job.Crop().Duration(); got != importer.MaxImportSeconds {
		t.Fatalf("auto-capped crop duration = %v, want %v", got, importer.MaxImportSeconds)
	}
}

func TestPreviewSourceIsBoundedAndIndependent(t *testing.T) {
	imp, _ := newTestImporter(t)
	source := testsupport.WriteSineWAV(t, filepath.Join(t.TempDir(), "tone.wav"), 48000, 1, 4, 330)

	job := imp.NewJob(source)
	if err := job.Prepare(context.Background()); err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	job.Crop().SetStart(1)
	job.Crop().SetEnd(3)

	first, err := audio.ReadAll(job.PreviewSource())
	if err != nil {
		t.Fatalf("drain first preview: %v", err)
	}
	if first.FrameCount() != 96000 {
		t.Fatalf("preview holds %d frames, want 96000", first.FrameCount())
	}

	// A second handle starts fresh at the crop start.
	second, err := audio.ReadAll(job.PreviewSource())
	if err != nil {
		t.Fatalf("drain second preview: %v", err)
	}
	if second.FrameCount() != first.FrameCount() {
		t.Fatalf("second preview holds %d frames, first held %d",
			second.FrameCount(), first.FrameCount())
	}
}
