// Package formats wires the supported audio container decoders into an
// audio.Registry keyed by file extension, and provides the canonical
// float32 WAV writer used by the import pipeline.
package formats

import (
	"path/filepath"
	"strings"

	"fourtrack/internal/audio"
	"fourtrack/internal/formats/aiff"
	"fourtrack/internal/formats/mp3"
	"fourtrack/internal/formats/vorbis"
	"fourtrack/internal/formats/wav"
)

// NewRegistry returns a registry with every supported decoder registered.
func NewRegistry() *audio.Registry {
	registry := audio.NewRegistry()
	registry.Register("wav", wav.Decoder{})
	registry.Register("wave", wav.Decoder{})
	registry.Register("aiff", aiff.Decoder{})
	registry.Register("aif", aiff.Decoder{})
	registry.Register("mp3", mp3.Decoder{})
	registry.Register("ogg", vorbis.Decoder{})
	registry.Register("oga", vorbis.Decoder{})
	return registry
}

// Key normalizes a file path to its registry format key.
func Key(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}
