// Package session holds the region/track/session data model of a fourtrack
// project and the edit operations that mutate it.
//
// A Session owns exactly four Tracks; each Track owns an ordered list of
// Regions. A Region is a non-destructive clip: it references a span of a
// source audio file through a file offset and duration window and never
// touches sample data. Every mutation either fully updates the one region
// or track touched or fails with no observable side effect; track region
// lists are replaced atomically, never edited in place.
package session
