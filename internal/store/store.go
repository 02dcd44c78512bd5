package store

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"fourtrack/internal/config"
)

// ErrProjectLocked indicates another fourtrack process holds the project.
var ErrProjectLocked = errors.New("project is locked by another process")

// Store manages project persistence backed by SQLite.
type Store struct {
	db       *sql.DB
	dbPath   string
	audioDir string
	lock     *flock.Flock
}

// Open connects to the project database, acquiring the single-writer
// project lock and applying schema migrations. The configured directories
// are created and checked for writability first.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	for _, dir := range []string{cfg.Paths.DataDir, cfg.Paths.LibraryDir} {
		if err := checkWritable(dir); err != nil {
			return nil, err
		}
	}

	lock := flock.New(filepath.Join(cfg.Paths.DataDir, "fourtrack.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire project lock: %w", err)
	}
	if !locked {
		return nil, ErrProjectLocked
	}

	dbPath := filepath.Join(cfg.Paths.DataDir, "project.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, dbPath: dbPath, audioDir: cfg.Paths.LibraryDir, lock: lock}
	if err := store.initSchema(); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Close releases the database and the project lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var firstErr error
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			firstErr = err
		}
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Path returns the database file location.
func (s *Store) Path() string { return s.dbPath }

// AudioDir implements importer.FileStore.
func (s *Store) AudioDir() string { return s.audioDir }

// NewAudioFilePath implements importer.FileStore: a unique canonical WAV
// path under the library directory.
func (s *Store) NewAudioFilePath() string {
	return filepath.Join(s.audioDir, uuid.NewString()+".wav")
}
