// Command fourtrack manages four-track recording sessions from the shell:
// creating sessions, importing audio into regions, editing regions on the
// timeline, and rendering waveforms.
package main
