// Package catalog stores track snapshots in a SQLite database.
//
// Rows are keyed by file path; cover art bytes are never stored, only the
// probed dimensions and MIME type.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/simonhull/trackmeta"
)

// ErrNotFound is returned by Get for a path with no row.
var ErrNotFound = errors.New("track not in catalog")

type Catalog struct {
	db *sql.DB
}

// Open opens (creating if needed) the catalog at dbPath.
func Open(dbPath string) (*Catalog, error) {
	// Ensure parent directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create catalog directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}
	// Scans write from one goroutine; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	c := &Catalog{db: db}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.WithField("module", "catalog").Debugf("Catalog initialized at %s", dbPath)
	return c, nil
}

func (c *Catalog) Close() error {
	return c.db.Close()
}

func (c *Catalog) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS tracks (
			file_path TEXT PRIMARY KEY,
			file_type INTEGER NOT NULL DEFAULT 0,
			title TEXT NOT NULL DEFAULT '',
			artist TEXT NOT NULL DEFAULT '',
			album TEXT NOT NULL DEFAULT '',
			album_artists TEXT NOT NULL DEFAULT '',
			year INTEGER NOT NULL DEFAULT 0,
			track_number INTEGER NOT NULL DEFAULT 0,
			disc_number INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			bitrate INTEGER NOT NULL DEFAULT 0,
			sample_rate INTEGER NOT NULL DEFAULT 0,
			musicbrainz_track_id TEXT NOT NULL DEFAULT '',
			has_front_cover INTEGER NOT NULL DEFAULT 0,
			front_cover_width INTEGER NOT NULL DEFAULT 0,
			front_cover_height INTEGER NOT NULL DEFAULT 0,
			cover_mime TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL DEFAULT '',
			updated TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tracks_album ON tracks(album_artists, album)`,
		`CREATE INDEX IF NOT EXISTS idx_tracks_source ON tracks(source)`,
	}

	for _, m := range migrations {
		if _, err := c.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	return nil
}

const columns = `file_path, file_type, title, artist, album, album_artists,
	year, track_number, disc_number, duration_ms, bitrate, sample_rate,
	musicbrainz_track_id, has_front_cover, front_cover_width, front_cover_height,
	cover_mime, source, updated`

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Upsert inserts or replaces the row for t.FilePath.
func (c *Catalog) Upsert(ctx context.Context, t *trackmeta.ReadOnlyTrack) error {
	return upsert(ctx, c.db, t)
}

// UpsertAll writes tracks in one transaction.
func (c *Catalog) UpsertAll(ctx context.Context, tracks []*trackmeta.ReadOnlyTrack) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	for _, t := range tracks {
		if err := upsert(ctx, tx, t); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func upsert(ctx context.Context, ex execer, t *trackmeta.ReadOnlyTrack) error {
	_, err := ex.ExecContext(ctx,
		`INSERT INTO tracks (`+columns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(file_path) DO UPDATE SET
			file_type = excluded.file_type,
			title = excluded.title,
			artist = excluded.artist,
			album = excluded.album,
			album_artists = excluded.album_artists,
			year = excluded.year,
			track_number = excluded.track_number,
			disc_number = excluded.disc_number,
			duration_ms = excluded.duration_ms,
			bitrate = excluded.bitrate,
			sample_rate = excluded.sample_rate,
			musicbrainz_track_id = excluded.musicbrainz_track_id,
			has_front_cover = excluded.has_front_cover,
			front_cover_width = excluded.front_cover_width,
			front_cover_height = excluded.front_cover_height,
			cover_mime = excluded.cover_mime,
			source = excluded.source,
			updated = excluded.updated`,
		t.FilePath, t.FileType.Code(), t.Title, t.Artist, t.Album, t.AlbumArtists,
		t.Year, t.TrackNumber, t.DiscNumber, t.Duration.Milliseconds(), t.Bitrate, t.SampleRate,
		t.MusicBrainzTrackID, t.HasFrontCover, t.FrontCoverWidth, t.FrontCoverHeight,
		t.CoverMIMEType, t.Source, t.Updated,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert %s: %w", t.FilePath, err)
	}
	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTrack(s scanner) (*trackmeta.ReadOnlyTrack, error) {
	var (
		t          trackmeta.ReadOnlyTrack
		code       int32
		durationMS int64
	)
	err := s.Scan(&t.FilePath, &code, &t.Title, &t.Artist, &t.Album, &t.AlbumArtists,
		&t.Year, &t.TrackNumber, &t.DiscNumber, &durationMS, &t.Bitrate, &t.SampleRate,
		&t.MusicBrainzTrackID, &t.HasFrontCover, &t.FrontCoverWidth, &t.FrontCoverHeight,
		&t.CoverMIMEType, &t.Source, &t.Updated)
	if err != nil {
		return nil, err
	}
	t.FileType = trackmeta.TrackFileTypeFromCode(code)
	t.Duration = time.Duration(durationMS) * time.Millisecond
	return &t, nil
}

// Get returns the stored snapshot for path. AlbumArt is always empty.
func (c *Catalog) Get(ctx context.Context, path string) (*trackmeta.ReadOnlyTrack, error) {
	row := c.db.QueryRowContext(ctx, `SELECT `+columns+` FROM tracks WHERE file_path = ?`, path)
	t, err := scanTrack(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", path, err)
	}
	return t, nil
}

// List returns every stored snapshot ordered by album artists, album,
// disc and track number. A non-empty source restricts the result to that
// source label.
func (c *Catalog) List(ctx context.Context, source string) ([]*trackmeta.ReadOnlyTrack, error) {
	query := `SELECT ` + columns + ` FROM tracks`
	var args []any
	if source != "" {
		query += ` WHERE source = ?`
		args = append(args, source)
	}
	query += ` ORDER BY album_artists, album, disc_number, track_number, file_path`

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks: %w", err)
	}
	defer rows.Close()

	var tracks []*trackmeta.ReadOnlyTrack
	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan track row: %w", err)
		}
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}

// Delete removes the row for path and reports whether one existed.
func (c *Catalog) Delete(ctx context.Context, path string) (bool, error) {
	res, err := c.db.ExecContext(ctx, `DELETE FROM tracks WHERE file_path = ?`, path)
	if err != nil {
		return false, fmt.Errorf("failed to delete %s: %w", path, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return n > 0, nil
}

// Count returns the number of stored snapshots.
func (c *Catalog) Count(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tracks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count tracks: %w", err)
	}
	return n, nil
}
