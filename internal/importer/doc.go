// Package importer turns an arbitrary external audio file into one new
// region in the project's canonical format.
//
// An import is a two-phase job. Prepare decodes the whole source into
// memory and generates the waveform preview; the caller may then adjust the
// crop window and audition it. Execute stream-converts the selected range
// to mono 48 kHz float WAV in bounded chunks, writes it through the file
// store, and constructs the region. Any mid-stream failure removes the
// partial output file; nothing half-written is ever attached to the model.
package importer
