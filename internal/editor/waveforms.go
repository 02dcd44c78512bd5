package editor

import (
	"context"
	"fmt"
	"os"

	"fourtrack/internal/audio"
	"fourtrack/internal/formats"
	"fourtrack/internal/logging"
	"fourtrack/internal/session"
	"fourtrack/internal/waveform"
)

// scheduleWaveform queues background regeneration of a region's waveform.
// Each request bumps the region's generation counter; a worker whose
// generation is stale by delivery time drops its result, so rapid edits
// resolve to the last request. Caller holds e.mu.
func (e *Editor) scheduleWaveform(region *session.Region) {
	if e.onWaveform == nil {
		return
	}
	e.waveGen[region.ID]++
	gen := e.waveGen[region.ID]
	snapshot := *region

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		peaks, err := e.computePeaks(e.ctx, &snapshot)
		if err != nil {
			e.logger.Warn("waveform regeneration failed",
				logging.String("region_id", snapshot.ID),
				logging.Error(err))
			return
		}
		e.mu.Lock()
		current := e.waveGen[snapshot.ID] == gen
		e.mu.Unlock()
		if current {
			e.onWaveform(snapshot.ID, peaks)
		}
	}()
}

// Waveform computes a region's waveform synchronously at the given
// resolution. points <= 0 uses the configured default.
func (e *Editor) Waveform(ctx context.Context, ref session.RegionRef, points int) ([]float32, error) {
	e.mu.Lock()
	region, err := e.sess.Region(ref.Track, ref.Region)
	var snapshot session.Region
	if err == nil {
		snapshot = *region
	}
	e.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if points <= 0 {
		points = e.wavePoints
	}
	return e.peaksForRegion(ctx, &snapshot, points)
}

func (e *Editor) computePeaks(ctx context.Context, region *session.Region) ([]float32, error) {
	return e.peaksForRegion(ctx, region, e.wavePoints)
}

// peaksForRegion decodes the region's source file and summarizes the frame
// range the region covers.
func (e *Editor) peaksForRegion(ctx context.Context, region *session.Region, points int) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dec, ok := e.registry.Get(formats.Key(region.SourceFile))
	if !ok {
		return nil, fmt.Errorf("decode %s: %w", region.SourceFile, audio.ErrUnknownFormat)
	}
	file, err := os.Open(region.SourceFile)
	if err != nil {
		return nil, fmt.Errorf("open region source: %w", err)
	}
	defer file.Close()

	src, err := dec.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode region source: %w", err)
	}
	defer src.Close()

	clip, err := audio.ReadAll(src)
	if err != nil {
		return nil, err
	}
	lo := clip.FrameForTime(region.FileStartOffset)
	hi := clip.FrameForTime(region.FileStartOffset + region.Duration)
	window := clip.Samples[lo*clip.Channels : hi*clip.Channels]
	return waveform.Summarize(window, clip.Channels, points), nil
}
