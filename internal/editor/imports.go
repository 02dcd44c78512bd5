package editor

import (
	"context"
	"os"

	"fourtrack/internal/importer"
	"fourtrack/internal/session"
)

// ImportRequest describes a one-shot import: decode, optional crop, convert,
// and placement of the resulting region.
type ImportRequest struct {
	SourcePath string
	TrackIndex int
	StartTime  float64

	// CropStart/CropEnd, when non-nil, adjust the crop window bounds in
	// source seconds after decode.
	CropStart *float64
	CropEnd   *float64
	// CropDisabled imports the full source, subject to the duration limit.
	CropDisabled bool
}

type importOutcome struct {
	result *importer.Result
	err    error
}

// ImportFile runs the full import pipeline. Decode and conversion run on a
// worker goroutine; the region is attached to the session and persisted only
// after the worker reports success.
func (e *Editor) ImportFile(ctx context.Context, req ImportRequest) (*session.Region, error) {
	job := e.importer.NewJob(req.SourcePath)
	done := make(chan importOutcome, 1)

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		done <- runImport(ctx, job, req)
	}()

	outcome := <-done
	if outcome.err != nil {
		return nil, outcome.err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	region := outcome.result.Region
	if err := e.sess.AppendRegion(req.TrackIndex, region); err != nil {
		os.Remove(outcome.result.OutputPath)
		return nil, err
	}
	if err := e.persist(ctx); err != nil {
		return nil, err
	}
	e.scheduleWaveform(region)
	return region, nil
}

func runImport(ctx context.Context, job *importer.Job, req ImportRequest) importOutcome {
	if err := job.Prepare(ctx); err != nil {
		return importOutcome{err: err}
	}
	if req.CropDisabled {
		job.SetCropEnabled(false)
	}
	if crop := job.Crop(); crop != nil {
		if req.CropStart != nil {
			crop.SetStart(*req.CropStart)
		}
		if req.CropEnd != nil {
			crop.SetEnd(*req.CropEnd)
		}
	}
	result, err := job.Execute(ctx, importer.Request{
		TrackIndex: req.TrackIndex,
		StartTime:  req.StartTime,
	})
	return importOutcome{result: result, err: err}
}
