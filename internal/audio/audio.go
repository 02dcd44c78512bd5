package audio

import (
	"io"
	"sort"
	"sync"
)

// Source is a readable stream of interleaved float32 PCM.
type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved samples in [-1, 1] and returns
	// the number of float32 values written. n == 0 with io.EOF ends the
	// stream.
	ReadSamples(dst []float32) (n int, err error)
	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry maps format keys (lowercase file extensions without the dot,
// e.g. "wav", "mp3") to decoders.
type Registry struct {
	mu     sync.Mutex
	codecs map[string]Decoder
}

func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Decoder)}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codecs[format] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.codecs[format]
	return d, ok
}

// Formats lists the registered format keys, sorted.
func (r *Registry) Formats() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	formats := make([]string, 0, len(r.codecs))
	for format := range r.codecs {
		formats = append(formats, format)
	}
	sort.Strings(formats)
	return formats
}
