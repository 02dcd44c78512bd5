// Package editor is the control-goroutine owner of one open session. It
// serializes every model mutation, persists after each structural change,
// runs import and waveform work on worker goroutines, and marshals their
// results back before they touch the model.
package editor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"fourtrack/internal/audio"
	"fourtrack/internal/config"
	"fourtrack/internal/formats"
	"fourtrack/internal/gesture"
	"fourtrack/internal/importer"
	"fourtrack/internal/logging"
	"fourtrack/internal/session"
	"fourtrack/internal/store"
	"fourtrack/internal/transport"
)

// DefaultLayout matches the reference timeline rendering: 50 px per second
// and 80 px track rows.
var DefaultLayout = gesture.Layout{
	PixelsPerSecond: 50,
	RowHeight:       80,
	TrackCount:      session.TrackCount,
}

// stoppedFlags is the transport state used when no playback collaborator
// is wired in.
type stoppedFlags struct{}

func (stoppedFlags) IsPlaying() bool   { return false }
func (stoppedFlags) IsRecording() bool { return false }

// Editor coordinates edits on one session.
type Editor struct {
	mu sync.Mutex

	store     *store.Store
	sessionID int64
	sess      *session.Session
	timeline  *session.TimelineState
	transport *transport.Controller
	importer  *importer.Importer
	registry  *audio.Registry
	logger    *slog.Logger
	layout    gesture.Layout
	flags     session.PlaybackFlags

	wavePoints int
	waveGen    map[string]uint64
	onWaveform func(regionID string, peaks []float32)

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// Option configures optional Editor behavior.
type Option func(*Editor)

// WithLogger attaches a logger; nil keeps the no-op default.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) { e.logger = logging.NewComponentLogger(logger, "editor") }
}

// WithLayout overrides the gesture layout constants.
func WithLayout(layout gesture.Layout) Option {
	return func(e *Editor) { e.layout = layout }
}

// WithPlaybackFlags wires in the playback collaborator's transport flags.
func WithPlaybackFlags(flags session.PlaybackFlags) Option {
	return func(e *Editor) {
		if flags != nil {
			e.flags = flags
		}
	}
}

// WithWaveformPoints sets the per-region waveform resolution.
func WithWaveformPoints(points int) Option {
	return func(e *Editor) {
		if points > 0 {
			e.wavePoints = points
		}
	}
}

// WithOnWaveform registers the async delivery callback for regenerated
// region waveforms. It is invoked from a worker goroutine.
func WithOnWaveform(fn func(regionID string, peaks []float32)) Option {
	return func(e *Editor) { e.onWaveform = fn }
}

// New constructs an editor over a loaded session.
func New(cfg *config.Config, st *store.Store, sessionID int64, sess *session.Session, opts ...Option) *Editor {
	ctx, cancel := context.WithCancel(context.Background())
	e := &Editor{
		store:      st,
		sessionID:  sessionID,
		sess:       sess,
		timeline:   &session.TimelineState{},
		registry:   formats.NewRegistry(),
		logger:     logging.NewNop(),
		layout:     DefaultLayout,
		flags:      stoppedFlags{},
		wavePoints: importer.DefaultPreviewPoints,
		waveGen:    make(map[string]uint64),
		ctx:        ctx,
		cancel:     cancel,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.transport = transport.New(e.timeline, e.MaxDuration)

	importOpts := []importer.Option{importer.WithLogger(e.logger)}
	if cfg != nil {
		importOpts = append(importOpts,
			importer.WithChunkFrames(cfg.Import.ChunkFrames),
			importer.WithPreviewPoints(cfg.Import.PreviewPoints),
		)
	}
	e.importer = importer.New(e.registry, st, importOpts...)
	return e
}

// Close stops worker goroutines and waits for them.
func (e *Editor) Close() {
	e.cancel()
	e.wg.Wait()
}

// Session returns the owned session. Callers on the control goroutine may
// read it; all mutations go through editor methods.
func (e *Editor) Session() *session.Session { return e.sess }

// Timeline returns the transient interaction state.
func (e *Editor) Timeline() *session.TimelineState { return e.timeline }

// Transport returns the scrub/seek controller.
func (e *Editor) Transport() *transport.Controller { return e.transport }

// Layout returns the gesture layout constants in effect.
func (e *Editor) Layout() gesture.Layout { return e.layout }

// MaxDuration recomputes the session duration from region extents.
func (e *Editor) MaxDuration() float64 { return e.sess.MaxDuration() }

// BeginDrag starts gesture interpretation for the region at ref, or
// refuses while the transport is playing or recording (tap-to-select stays
// available; see Tap).
func (e *Editor) BeginDrag(ref session.RegionRef) (*gesture.Drag, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.flags.IsPlaying() || e.flags.IsRecording() {
		return nil, session.Wrap(session.ErrCutPrecondition, "editor", "drag",
			"dragging is disabled while the transport is active", nil)
	}
	region, err := e.sess.Region(ref.Track, ref.Region)
	if err != nil {
		return nil, err
	}
	return gesture.NewDrag(e.layout, ref.Track, region.StartTime), nil
}

// Tap applies the tap-selection rules for a gesture with negligible
// movement.
func (e *Editor) Tap(ref session.RegionRef) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.timeline.ToggleSelect(ref, e.flags.IsRecording())
}

// ApplyGesture applies a finished drag command to the model. It returns
// true when the gesture requests a delete, which the caller must confirm
// via Delete; the interpreter never deletes directly.
func (e *Editor) ApplyGesture(ctx context.Context, ref session.RegionRef, cmd gesture.Command) (deleteRequested bool, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch cmd.Kind {
	case gesture.Reposition:
		if err := e.sess.MoveRegion(ref.Track, ref.Region, cmd.StartTime); err != nil {
			return false, err
		}
		return false, e.persist(ctx)
	case gesture.Retrack:
		if err := e.sess.RetrackRegion(ref.Track, ref.Region, cmd.TargetTrack); err != nil {
			return false, err
		}
		// The region's index changed; stale refs must not survive.
		e.clearSelectionAt(ref)
		return false, e.persist(ctx)
	case gesture.RequestDelete:
		e.timeline.DragToDelete = false
		return true, nil
	default:
		return false, nil
	}
}

// Move repositions a region along its track and persists.
func (e *Editor) Move(ctx context.Context, ref session.RegionRef, startTime float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.sess.MoveRegion(ref.Track, ref.Region, startTime); err != nil {
		return err
	}
	return e.persist(ctx)
}

// Retrack moves a region to the end of another track and persists.
func (e *Editor) Retrack(ctx context.Context, ref session.RegionRef, targetTrack int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.sess.RetrackRegion(ref.Track, ref.Region, targetTrack); err != nil {
		return err
	}
	e.clearSelectionAt(ref)
	return e.persist(ctx)
}

// Delete removes a region after the caller obtained destructive-action
// confirmation.
func (e *Editor) Delete(ctx context.Context, ref session.RegionRef) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.sess.RemoveRegion(ref.Track, ref.Region); err != nil {
		return err
	}
	e.clearSelectionAt(ref)
	return e.persist(ctx)
}

// Trim applies a confirmed trim atomically and regenerates the region's
// waveform.
func (e *Editor) Trim(ctx context.Context, ref session.RegionRef, trim gesture.Trim) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.sess.TrimRegion(ref.Track, ref.Region, trim.Duration, trim.FileStartOffset); err != nil {
		return err
	}
	if err := e.persist(ctx); err != nil {
		return err
	}
	if region, err := e.sess.Region(ref.Track, ref.Region); err == nil {
		e.scheduleWaveform(region)
	}
	return nil
}

// Duplicate clones a region onto its own track. The clone is not selected.
func (e *Editor) Duplicate(ctx context.Context, ref session.RegionRef) (*session.Region, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	clone, err := e.sess.DuplicateRegion(ref.Track, ref.Region)
	if err != nil {
		return nil, err
	}
	if err := e.persist(ctx); err != nil {
		return nil, err
	}
	e.scheduleWaveform(clone)
	return clone, nil
}

// Reverse toggles a region's playback-direction hint.
func (e *Editor) Reverse(ctx context.Context, ref session.RegionRef) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.sess.ReverseRegion(ref.Track, ref.Region); err != nil {
		return err
	}
	return e.persist(ctx)
}

// Cut removes a region unless the transport precondition refuses it.
func (e *Editor) Cut(ctx context.Context, ref session.RegionRef) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.sess.CutRegion(ref.Track, ref.Region, e.flags); err != nil {
		return err
	}
	e.clearSelectionAt(ref)
	return e.persist(ctx)
}

// clearSelectionAt drops selection state that points at a removed region.
func (e *Editor) clearSelectionAt(ref session.RegionRef) {
	if e.timeline.Selected != nil && *e.timeline.Selected == ref {
		e.timeline.Selected = nil
	}
	if e.timeline.TrimTarget != nil && *e.timeline.TrimTarget == ref {
		e.timeline.TrimTarget = nil
	}
}

func (e *Editor) persist(ctx context.Context) error {
	if err := e.store.SaveSession(ctx, e.sessionID, e.sess); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}
