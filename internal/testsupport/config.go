// Package testsupport provides helpers shared by package tests: temp-dir
// seeded configs, store construction with cleanup, and audio fixtures.
package testsupport

import (
	"path/filepath"
	"testing"

	"fourtrack/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LibraryDir = filepath.Join(base, "library")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithPreviewPoints overrides the import preview resolution.
func WithPreviewPoints(points int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Import.PreviewPoints = points
	}
}

// WithChunkFrames overrides the streaming conversion chunk size.
func WithChunkFrames(frames int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Import.ChunkFrames = frames
	}
}
