package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fourtrack/internal/session"
)

// ErrSessionNotFound indicates the requested session id does not exist.
var ErrSessionNotFound = errors.New("session not found")

// timeFormat is RFC 3339 with fixed-width nanoseconds, so the TEXT columns
// sort chronologically.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// SessionInfo is a listing row.
type SessionInfo struct {
	ID          int64
	Name        string
	BPM         float64
	RegionCount int
	UpdatedAt   time.Time
}

// CreateSession inserts a new empty session with its four track rows and
// returns its id alongside the in-memory model.
func (s *Store) CreateSession(ctx context.Context, name string, bpm float64, beatsPerBar, beatUnit int) (int64, *session.Session, error) {
	sess := session.New(name, bpm, beatsPerBar, beatUnit)
	now := time.Now().UTC().Format(timeFormat)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (name, bpm, beats_per_bar, beat_unit, display_mode, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		name, bpm, beatsPerBar, beatUnit, string(sess.Display), now, now,
	)
	if err != nil {
		return 0, nil, fmt.Errorf("insert session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, nil, fmt.Errorf("last insert id: %w", err)
	}

	for _, track := range sess.Tracks {
		if err := insertTrack(ctx, tx, id, track); err != nil {
			return 0, nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, nil, fmt.Errorf("commit session: %w", err)
	}
	return id, sess, nil
}

// LoadSession reads a session and its tracks and regions into the model.
func (s *Store) LoadSession(ctx context.Context, id int64) (*session.Session, error) {
	var (
		name                  string
		bpm                   float64
		beatsPerBar, beatUnit int
		displayMode           string
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT name, bpm, beats_per_bar, beat_unit, display_mode FROM sessions WHERE id = ?", id,
	).Scan(&name, &bpm, &beatsPerBar, &beatUnit, &displayMode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrSessionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("select session: %w", err)
	}

	sess := session.New(name, bpm, beatsPerBar, beatUnit)
	sess.Display = session.DisplayMode(displayMode)

	if err := s.loadTracks(ctx, id, sess); err != nil {
		return nil, err
	}
	if err := s.loadRegions(ctx, id, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Store) loadTracks(ctx context.Context, id int64, sess *session.Session) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT track_number, volume, pan, eq_low, eq_mid, eq_high, reverb, delay, saturation
         FROM tracks WHERE session_id = ? ORDER BY track_number`, id)
	if err != nil {
		return fmt.Errorf("select tracks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var number int
		var fx session.EffectSettings
		if err := rows.Scan(&number, &fx.Volume, &fx.Pan, &fx.EQLow, &fx.EQMid, &fx.EQHigh,
			&fx.Reverb, &fx.Delay, &fx.Saturation); err != nil {
			return fmt.Errorf("scan track: %w", err)
		}
		if number >= 1 && number <= session.TrackCount {
			sess.Tracks[number-1].Effects = fx
		}
	}
	return rows.Err()
}

func (s *Store) loadRegions(ctx context.Context, id int64, sess *session.Session) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, track_number, source_file, start_time, duration, file_start_offset, file_duration, reversed
         FROM regions WHERE session_id = ? ORDER BY track_number, position`, id)
	if err != nil {
		return fmt.Errorf("select regions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			region   session.Region
			number   int
			reversed int
		)
		if err := rows.Scan(&region.ID, &number, &region.SourceFile, &region.StartTime,
			&region.Duration, &region.FileStartOffset, &region.FileDuration, &reversed); err != nil {
			return fmt.Errorf("scan region: %w", err)
		}
		region.Reversed = reversed != 0
		if number >= 1 && number <= session.TrackCount {
			track := sess.Tracks[number-1]
			r := region
			track.Regions = append(track.Regions, &r)
		}
	}
	return rows.Err()
}

// SaveSession writes the session back: metadata and effects are updated and
// every track's region rows are replaced, all inside one transaction.
func (s *Store) SaveSession(ctx context.Context, id int64, sess *session.Session) error {
	now := time.Now().UTC().Format(timeFormat)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`UPDATE sessions SET name = ?, bpm = ?, beats_per_bar = ?, beat_unit = ?, display_mode = ?, updated_at = ?
         WHERE id = ?`,
		sess.Name, sess.BPM, sess.BeatsPerBar, sess.BeatUnit, string(sess.Display), now, id,
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", ErrSessionNotFound, id)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM tracks WHERE session_id = ?", id); err != nil {
		return fmt.Errorf("clear tracks: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM regions WHERE session_id = ?", id); err != nil {
		return fmt.Errorf("clear regions: %w", err)
	}

	for _, track := range sess.Tracks {
		if err := insertTrack(ctx, tx, id, track); err != nil {
			return err
		}
		for position, region := range track.Regions {
			reversed := 0
			if region.Reversed {
				reversed = 1
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO regions (id, session_id, track_number, position, source_file,
                     start_time, duration, file_start_offset, file_duration, reversed)
                 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				region.ID, id, track.Number, position, region.SourceFile,
				region.StartTime, region.Duration, region.FileStartOffset, region.FileDuration, reversed,
			); err != nil {
				return fmt.Errorf("insert region %s: %w", region.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit session: %w", err)
	}
	return nil
}

func insertTrack(ctx context.Context, tx *sql.Tx, sessionID int64, track *session.Track) error {
	fx := track.Effects
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO tracks (session_id, track_number, volume, pan, eq_low, eq_mid, eq_high, reverb, delay, saturation)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sessionID, track.Number, fx.Volume, fx.Pan, fx.EQLow, fx.EQMid, fx.EQHigh,
		fx.Reverb, fx.Delay, fx.Saturation,
	); err != nil {
		return fmt.Errorf("insert track %d: %w", track.Number, err)
	}
	return nil
}

// ListSessions returns all sessions, newest first.
func (s *Store) ListSessions(ctx context.Context) ([]SessionInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT s.id, s.name, s.bpm, s.updated_at,
                (SELECT COUNT(1) FROM regions r WHERE r.session_id = s.id)
         FROM sessions s ORDER BY s.updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("select sessions: %w", err)
	}
	defer rows.Close()

	var infos []SessionInfo
	for rows.Next() {
		var info SessionInfo
		var updated string
		if err := rows.Scan(&info.ID, &info.Name, &info.BPM, &updated, &info.RegionCount); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if ts, parseErr := time.Parse(time.RFC3339Nano, updated); parseErr == nil {
			info.UpdatedAt = ts
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// DeleteSession removes a session and, via cascade, its tracks and regions.
func (s *Store) DeleteSession(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", ErrSessionNotFound, id)
	}
	return nil
}
