package importer

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"fourtrack/internal/audio"
	"fourtrack/internal/formats"
	"fourtrack/internal/formats/wav"
	"fourtrack/internal/logging"
	"fourtrack/internal/session"
	"fourtrack/internal/waveform"
)

// Canonical import format and contract constants.
const (
	TargetSampleRate = 48000
	TargetChannels   = 1

	// MaxImportSeconds is the hard ceiling on imported material length.
	MaxImportSeconds = 360.0

	DefaultChunkFrames   = 4096
	DefaultPreviewPoints = 500
)

// FileStore resolves the project's audio storage. Implemented by the
// session store; the importer never invents paths of its own.
type FileStore interface {
	// AudioDir is the directory holding canonical audio files.
	AudioDir() string
	// NewAudioFilePath returns a unique, not-yet-existing output path.
	NewAudioFilePath() string
}

// Importer constructs import jobs against a decoder registry and file store.
type Importer struct {
	registry      *audio.Registry
	store         FileStore
	logger        *slog.Logger
	chunkFrames   int
	previewPoints int
}

// Option configures optional Importer behavior.
type Option func(*Importer)

// WithLogger attaches a logger; nil keeps the no-op default.
func WithLogger(logger *slog.Logger) Option {
	return func(imp *Importer) {
		imp.logger = logging.NewComponentLogger(logger, "importer")
	}
}

// WithChunkFrames overrides the conversion chunk size.
func WithChunkFrames(frames int) Option {
	return func(imp *Importer) {
		if frames > 0 {
			imp.chunkFrames = frames
		}
	}
}

// WithPreviewPoints overrides the preview waveform point count.
func WithPreviewPoints(points int) Option {
	return func(imp *Importer) {
		if points > 0 {
			imp.previewPoints = points
		}
	}
}

// New constructs an importer.
func New(registry *audio.Registry, store FileStore, opts ...Option) *Importer {
	imp := &Importer{
		registry:      registry,
		store:         store,
		logger:        logging.NewNop(),
		chunkFrames:   DefaultChunkFrames,
		previewPoints: DefaultPreviewPoints,
	}
	for _, opt := range opts {
		opt(imp)
	}
	return imp
}

// Job is one import in flight. It is not safe for concurrent use; the
// editor serializes access.
type Job struct {
	imp        *Importer
	sourcePath string
	status     Status
	clip       *audio.Clip
	preview    []float32
	crop       *CropWindow
	cropOn     bool
}

// Request tells Execute where the resulting region lands.
type Request struct {
	TrackIndex int
	StartTime  float64
}

// Result is a successful import: the constructed region and the canonical
// file backing it. The caller appends the region and persists the session.
type Result struct {
	Region        *session.Region
	OutputPath    string
	FramesWritten int64
}

// NewJob starts an import of the given source file.
func (imp *Importer) NewJob(sourcePath string) *Job {
	return &Job{imp: imp, sourcePath: sourcePath, status: StatusPending, cropOn: true}
}

func (j *Job) Status() Status         { return j.status }
func (j *Job) SourcePath() string     { return j.sourcePath }
func (j *Job) Preview() []float32     { return j.preview }
func (j *Job) Crop() *CropWindow      { return j.crop }
func (j *Job) SetCropEnabled(on bool) { j.cropOn = on }

// SourceDuration is valid after Prepare.
func (j *Job) SourceDuration() float64 {
	if j.clip == nil {
		return 0
	}
	return j.clip.Duration()
}

func (j *Job) transition(next Status) {
	if CanTransition(j.status, next) {
		j.status = next
	}
}

func (j *Job) fail(marker error, op, message string, err error) error {
	j.transition(StatusFailed)
	return session.Wrap(marker, "import", op, message, err)
}

// Prepare decodes the entire source into memory and generates the preview
// waveform. On success the job awaits crop selection.
func (j *Job) Prepare(ctx context.Context) error {
	j.transition(StatusDecoding)

	key := formats.Key(j.sourcePath)
	decoder, ok := j.imp.registry.Get(key)
	if !ok {
		return j.fail(session.ErrImportDecodeFailed, "decode",
			fmt.Sprintf("unsupported format %q", key), audio.ErrUnknownFormat)
	}

	file, err := os.Open(j.sourcePath)
	if err != nil {
		return j.fail(session.ErrImportDecodeFailed, "decode", "open source file", err)
	}
	defer file.Close()

	src, err := decoder.Decode(file)
	if err != nil {
		return j.fail(session.ErrImportDecodeFailed, "decode", "read source file", err)
	}
	defer src.Close()

	if err := ctx.Err(); err != nil {
		return j.fail(session.ErrImportDecodeFailed, "decode", "canceled", err)
	}

	clip, err := audio.ReadAll(src)
	if err != nil {
		return j.fail(session.ErrImportDecodeFailed, "decode", "read samples", err)
	}
	if clip.FrameCount() == 0 {
		return j.fail(session.ErrImportDecodeFailed, "decode", "source contains no audio frames", nil)
	}

	j.clip = clip
	j.preview = waveform.Summarize(clip.Samples, clip.Channels, j.imp.previewPoints)
	j.crop = NewCropWindow(clip.Duration(), MaxImportSeconds)
	j.transition(StatusAwaitingCrop)

	j.imp.logger.Info("decoded import source",
		logging.String("source", j.sourcePath),
		logging.Int("sample_rate", clip.SampleRate),
		logging.Int("channels", clip.Channels),
		logging.Float64("duration_seconds", clip.Duration()),
	)
	return nil
}

// PreviewSource returns a bounded playback source over the decoded buffer
// that stops exactly at the crop end. Each call returns an independent
// handle, so auditioning never disturbs the conversion stream.
func (j *Job) PreviewSource() audio.Source {
	start, end := j.selectedRange()
	return audio.NewClipSource(j.clip, j.clip.FrameForTime(start), j.clip.FrameForTime(end))
}

func (j *Job) selectedRange() (start, end float64) {
	if j.cropOn && j.crop != nil {
		return j.crop.Start(), j.crop.End()
	}
	return 0, j.clip.Duration()
}

// Execute converts the selected range to the canonical format, writes the
// output file, and constructs the region. The caller attaches the region
// and persists; Execute itself persists nothing.
func (j *Job) Execute(ctx context.Context, req Request) (*Result, error) {
	if j.clip == nil {
		return nil, j.fail(session.ErrImportExportFailed, "convert", "job not prepared", nil)
	}

	start, end := j.selectedRange()
	if end-start > MaxImportSeconds+1e-9 {
		// Validation failure before any I/O; the crop window normally makes
		// this unreachable, but a disabled crop on a long source lands here.
		return nil, j.fail(session.ErrDurationExceedsLimit, "convert",
			fmt.Sprintf("selected %.1f s exceeds the %.0f s import limit", end-start, MaxImportSeconds), nil)
	}

	j.transition(StatusConverting)

	var src audio.Source = audio.NewClipSource(j.clip, j.clip.FrameForTime(start), j.clip.FrameForTime(end))
	if j.clip.SampleRate != TargetSampleRate {
		src = audio.NewResampler(src, TargetSampleRate)
	}
	if j.clip.Channels != TargetChannels {
		src = audio.NewMonoMixer(src)
	}

	outputPath := j.imp.store.NewAudioFilePath()
	file, err := os.Create(outputPath)
	if err != nil {
		return nil, j.fail(session.ErrImportExportFailed, "convert", "create output file", err)
	}

	writer, err := wav.NewFloat32Writer(file, TargetSampleRate, TargetChannels)
	if err != nil {
		j.discard(file, outputPath)
		return nil, j.fail(session.ErrImportExportFailed, "convert", "write output header", err)
	}

	frames, err := audio.Pump(ctx, src, writer, j.imp.chunkFrames)
	if err != nil {
		j.discard(file, outputPath)
		return nil, j.fail(session.ErrImportExportFailed, "convert", "stream conversion", err)
	}
	if err := writer.Close(); err != nil {
		j.discard(file, outputPath)
		return nil, j.fail(session.ErrImportExportFailed, "convert", "finalize output", err)
	}
	if err := file.Close(); err != nil {
		j.discard(nil, outputPath)
		return nil, j.fail(session.ErrImportExportFailed, "convert", "close output", err)
	}

	// The exported file is the cropped content, so the region window starts
	// at offset zero and spans the whole file.
	duration := float64(frames) / TargetSampleRate
	region, err := session.NewRegion(outputPath, req.StartTime, duration, 0, duration)
	if err != nil {
		j.discard(nil, outputPath)
		return nil, j.fail(session.ErrImportExportFailed, "convert", "construct region", err)
	}

	j.transition(StatusCompleted)
	j.imp.logger.Info("import completed",
		logging.String("source", j.sourcePath),
		logging.String("output", outputPath),
		logging.Int64("frames", frames),
		logging.Float64("duration_seconds", duration),
	)
	return &Result{Region: region, OutputPath: outputPath, FramesWritten: frames}, nil
}

// discard removes a partial output file after a mid-stream failure.
func (j *Job) discard(file *os.File, path string) {
	if file != nil {
		_ = file.Close()
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		j.imp.logger.Warn("remove partial import output",
			logging.String("path", path), logging.Error(err))
	}
}
