package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"cadence/internal/catalog"
	"cadence/internal/config"
	"cadence/internal/tagmerge"
)

// ErrTrackNotFound indicates a lookup for a track id absent from the library.
var ErrTrackNotFound = errors.New("track not found")

// ErrLocked indicates another process holds the library lock.
var ErrLocked = errors.New("library database is locked by another process")

// Store manages library persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// TagWrite is one journal entry recording a field written during tag
// application, with its provenance.
type TagWrite struct {
	TrackID     string
	CandidateID string
	Field       string
	Value       string
	Origin      tagmerge.Origin
	AppliedAt   time.Time
}

// Open initializes or connects to the library database. The database is
// protected by a sibling lock file; a second opener fails with ErrLocked.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.DatabasePath()
	lock := flock.New(dbPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire library lock: %w", err)
	}
	if !locked {
		return nil, ErrLocked
	}

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

	store := &Store{db: db, path: dbPath, lock: lock}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Close releases the database connection and the library lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var firstErr error
	if s.db != nil {
		firstErr = s.db.Close()
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Upsert inserts or updates a track row. An empty id is derived from the
// path. The stored track is returned with its id populated.
func (s *Store) Upsert(ctx context.Context, track catalog.LocalTrack) (catalog.LocalTrack, error) {
	if strings.TrimSpace(track.Path) == "" {
		return catalog.LocalTrack{}, errors.New("track path required")
	}
	if track.ID == "" {
		track.ID = catalog.TrackID(track.Path)
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)

	_, err := s.db.ExecContext(ctx, `
        INSERT INTO tracks (
            id, path, title, artist, album, genre, year, duration, bpm,
            key_signature, label, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            path = excluded.path,
            title = excluded.title,
            artist = excluded.artist,
            album = excluded.album,
            genre = excluded.genre,
            year = excluded.year,
            duration = excluded.duration,
            bpm = excluded.bpm,
            key_signature = excluded.key_signature,
            label = excluded.label,
            updated_at = excluded.updated_at`,
		track.ID, track.Path, track.Title, track.Artist, track.Album,
		track.Genre, track.Year, track.Duration, track.BPM,
		track.Key, track.Label, now, now,
	)
	if err != nil {
		return catalog.LocalTrack{}, fmt.Errorf("upsert track: %w", err)
	}
	return track, nil
}

// Get fetches one track by id.
func (s *Store) Get(ctx context.Context, id string) (catalog.LocalTrack, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT id, path, title, artist, album, genre, year, duration, bpm,
               key_signature, label
        FROM tracks WHERE id = ?`, id)
	return scanTrack(row)
}

// GetByPath fetches one track by its file path, via the derived id.
func (s *Store) GetByPath(ctx context.Context, path string) (catalog.LocalTrack, error) {
	return s.Get(ctx, catalog.TrackID(path))
}

// List returns every track ordered by artist then title.
func (s *Store) List(ctx context.Context) ([]catalog.LocalTrack, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, path, title, artist, album, genre, year, duration, bpm,
               key_signature, label
        FROM tracks
        ORDER BY artist COLLATE NOCASE, title COLLATE NOCASE, id`)
	if err != nil {
		return nil, fmt.Errorf("list tracks: %w", err)
	}
	defer rows.Close()

	var tracks []catalog.LocalTrack
	for rows.Next() {
		track, err := scanTrack(rows)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, track)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tracks: %w", err)
	}
	return tracks, nil
}

// Delete removes a track and its journal entries.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM tracks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete track: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete track: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrTrackNotFound, id)
	}
	return nil
}

// ApplyTags writes a merged tag set to the track row and journals every field
// with its provenance, atomically. candidateID names the selected remote
// candidate the merge came from.
func (s *Store) ApplyTags(ctx context.Context, trackID, candidateID string, merged tagmerge.MergedTagSet) error {
	if _, err := s.Get(ctx, trackID); err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin apply tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
        UPDATE tracks SET
            title = ?, artist = ?, album = ?, genre = ?, year = ?, bpm = ?,
            key_signature = ?, label = ?, updated_at = ?
        WHERE id = ?`,
		merged.Title, merged.Artist, merged.Album, merged.Genre, merged.Year,
		merged.BPM, merged.Key, merged.Label, now, trackID,
	)
	if err != nil {
		return fmt.Errorf("apply tags: %w", err)
	}

	for _, entry := range journalEntries(merged) {
		_, err := tx.ExecContext(ctx, `
            INSERT INTO tag_writes (track_id, candidate_id, field, value, origin, applied_at)
            VALUES (?, ?, ?, ?, ?, ?)`,
			trackID, candidateID, entry.Field, entry.Value, string(entry.Origin), now,
		)
		if err != nil {
			return fmt.Errorf("journal tag write: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit apply: %w", err)
	}
	return nil
}

// TagHistory returns the journal for one track, newest first.
func (s *Store) TagHistory(ctx context.Context, trackID string) ([]TagWrite, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT track_id, candidate_id, field, value, origin, applied_at
        FROM tag_writes
        WHERE track_id = ?
        ORDER BY id DESC`, trackID)
	if err != nil {
		return nil, fmt.Errorf("tag history: %w", err)
	}
	defer rows.Close()

	var writes []TagWrite
	for rows.Next() {
		var write TagWrite
		var origin, appliedAt string
		if err := rows.Scan(&write.TrackID, &write.CandidateID, &write.Field, &write.Value, &origin, &appliedAt); err != nil {
			return nil, fmt.Errorf("scan tag write: %w", err)
		}
		write.Origin = tagmerge.Origin(origin)
		if at, err := time.Parse(time.RFC3339Nano, appliedAt); err == nil {
			write.AppliedAt = at
		}
		writes = append(writes, write)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tag writes: %w", err)
	}
	return writes, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanTrack(row scannable) (catalog.LocalTrack, error) {
	var track catalog.LocalTrack
	err := row.Scan(
		&track.ID, &track.Path, &track.Title, &track.Artist, &track.Album,
		&track.Genre, &track.Year, &track.Duration, &track.BPM,
		&track.Key, &track.Label,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.LocalTrack{}, ErrTrackNotFound
	}
	if err != nil {
		return catalog.LocalTrack{}, fmt.Errorf("scan track: %w", err)
	}
	return track, nil
}

type journalEntry struct {
	Field  string
	Value  string
	Origin tagmerge.Origin
}

// journalEntries flattens a merged tag set into journal rows, in a stable
// field order.
func journalEntries(merged tagmerge.MergedTagSet) []journalEntry {
	values := map[string]string{
		tagmerge.FieldTitle:         merged.Title,
		tagmerge.FieldArtist:        merged.Artist,
		tagmerge.FieldAlbum:         merged.Album,
		tagmerge.FieldGenre:         merged.Genre,
		tagmerge.FieldYear:          strconv.Itoa(merged.Year),
		tagmerge.FieldBPM:           strconv.Itoa(merged.BPM),
		tagmerge.FieldKey:           merged.Key,
		tagmerge.FieldLabel:         merged.Label,
		tagmerge.FieldCatalogNumber: merged.CatalogNumber,
		tagmerge.FieldISRC:          merged.ISRC,
		tagmerge.FieldArtworkURL:    merged.ArtworkURL,
	}

	fields := make([]string, 0, len(merged.Origins))
	for field := range merged.Origins {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	entries := make([]journalEntry, 0, len(fields))
	for _, field := range fields {
		entries = append(entries, journalEntry{
			Field:  field,
			Value:  values[field],
			Origin: merged.Origins[field],
		})
	}
	return entries
}
