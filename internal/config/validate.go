package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateSession(); err != nil {
		return err
	}
	if err := c.validateImport(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	if c.Paths.LibraryDir == "" {
		return errors.New("paths.library_dir must be set")
	}
	return nil
}

func (c *Config) validateSession() error {
	if c.Session.DefaultBPM < 20 || c.Session.DefaultBPM > 300 {
		return fmt.Errorf("session.default_bpm must be between 20 and 300, got %g", c.Session.DefaultBPM)
	}
	if c.Session.BeatsPerBar < 1 || c.Session.BeatsPerBar > 32 {
		return fmt.Errorf("session.beats_per_bar must be between 1 and 32, got %d", c.Session.BeatsPerBar)
	}
	switch c.Session.BeatUnit {
	case 1, 2, 4, 8, 16:
	default:
		return fmt.Errorf("session.beat_unit must be one of 1, 2, 4, 8, 16, got %d", c.Session.BeatUnit)
	}
	return nil
}

func (c *Config) validateImport() error {
	if c.Import.ChunkFrames < 64 {
		return fmt.Errorf("import.chunk_frames must be at least 64, got %d", c.Import.ChunkFrames)
	}
	if c.Import.PreviewPoints < 1 {
		return fmt.Errorf("import.preview_points must be positive, got %d", c.Import.PreviewPoints)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
