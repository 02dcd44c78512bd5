// Package audio defines the streaming sample pipeline: the Source and
// Decoder interfaces, the format registry, and the resample / mono-mix /
// chunked-pump stages the import pipeline composes.
//
// All samples are interleaved float32 in [-1, 1]. ReadSamples counts
// individual float32 values, not frames.
package audio
