package config

import (
	"os"
	"path/filepath"
)

// Default returns the built-in configuration values.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:    defaultDataDir(),
			LibraryDir: filepath.Join(defaultDataDir(), "library"),
			LogDir:     filepath.Join(defaultDataDir(), "logs"),
		},
		Session: Session{
			DefaultBPM:  120,
			BeatsPerBar: 4,
			BeatUnit:    4,
		},
		Import: Import{
			ChunkFrames:   4096,
			PreviewPoints: 500,
		},
		Logging: Logging{
			Format: "console",
			Level:  "info",
		},
	}
}

func defaultDataDir() string {
	if base, ok := os.LookupEnv("XDG_DATA_HOME"); ok && base != "" {
		return filepath.Join(base, "fourtrack")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.local/share/fourtrack"
	}
	return filepath.Join(home, ".local", "share", "fourtrack")
}
