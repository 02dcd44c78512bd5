// Package store persists sessions, tracks, and regions in a SQLite
// database under the project data directory, and implements the file store
// the import pipeline writes canonical audio through.
//
// Opening the store acquires an exclusive project lock; a second opener
// fails fast instead of corrupting the database. A track's region rows are
// always replaced inside a single transaction, mirroring the model's
// atomic-replace rule for region lists.
package store
