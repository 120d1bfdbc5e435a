package trackmeta

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/simonhull/trackmeta/internal/native"
	"github.com/simonhull/trackmeta/internal/trackdata"
)

// ReadWriteTrack is a snapshot plus the native handle it was taken from.
//
// Setters write through to the handle immediately, but the embedded
// ReadOnlyTrack is not updated; call Reread for a fresh snapshot. The
// handle is released by Close, after which every method returns ErrClosed.
//
// A ReadWriteTrack is not safe for concurrent use.
type ReadWriteTrack struct {
	ReadOnlyTrack

	td      *trackdata.TrackData
	lib     native.Library
	source  string
	opts    *openOptions
	pending map[string]string // Field name -> value set since the last save
}

// OpenReadWrite opens a track for editing.
//
// It performs the same checks as Open and returns the same errors, but
// keeps the native handle open. The caller must call Close.
//
// Example:
//
//	track, err := trackmeta.OpenReadWrite("song.flac", "library")
//	if err != nil {
//		return err
//	}
//	defer track.Close()
//
//	if err := track.SetTitle("New Title"); err != nil {
//		return err
//	}
//	return track.Save(trackmeta.WithValidation())
func OpenReadWrite(path, source string, opts ...Option) (*ReadWriteTrack, error) {
	o := applyOptions(opts)

	td, lib, err := openTrackData(path, o)
	if err != nil {
		return nil, err
	}

	snap, err := buildReadOnlyTrack(path, td, source, o)
	if err != nil {
		td.Close() //nolint:errcheck // Close of a guard never fails
		return nil, err
	}

	return &ReadWriteTrack{
		ReadOnlyTrack: *snap,
		td:            td,
		lib:           lib,
		source:        source,
		opts:          o,
		pending:       make(map[string]string),
	}, nil
}

// SetTitle writes the title to the native handle.
//
// It returns *EmbeddedNulError or *TextEncodingError without touching the
// handle when the value cannot be encoded.
func (t *ReadWriteTrack) SetTitle(title string) error {
	return t.set("title", title, t.td.SetTitle)
}

// SetArtist writes the artist to the native handle.
func (t *ReadWriteTrack) SetArtist(artist string) error {
	return t.set("artist", artist, t.td.SetArtist)
}

// SetAlbum writes the album to the native handle.
func (t *ReadWriteTrack) SetAlbum(album string) error {
	return t.set("album", album, t.td.SetAlbum)
}

// SetAlbumArtists writes the album artists to the native handle.
// Multiple artists are joined with ";".
func (t *ReadWriteTrack) SetAlbumArtists(artists string) error {
	return t.set("album artists", artists, t.td.SetAlbumArtists)
}

func (t *ReadWriteTrack) set(field, value string, setter func(string) error) error {
	if t.td == nil {
		return ErrClosed
	}
	if err := setter(value); err != nil {
		return err
	}
	t.pending[field] = value
	return nil
}

// Save writes pending changes to disk.
//
// The track stays open after Save and can be edited and saved again.
//
// Returns *UnsupportedWriteError when the engine cannot write, *SaveError
// when the engine reports a failed write and *ValidationError when
// WithValidation finds a field that did not reach the disk.
func (t *ReadWriteTrack) Save(opts ...SaveOption) error {
	if t.td == nil {
		return ErrClosed
	}

	saveOpts := defaultSaveOptions()
	for _, opt := range opts {
		opt(saveOpts)
	}

	if ro, ok := t.lib.(native.ReadOnly); ok && ro.ReadOnly() {
		return &UnsupportedWriteError{
			FileType: t.FileType,
			Reason:   "tag engine is read-only",
		}
	}

	// Capture original mod time if preserving
	var origModTime time.Time
	if saveOpts.preserveModTime {
		stat, err := os.Stat(t.FilePath)
		if err != nil {
			return fmt.Errorf("stat file: %w", err)
		}
		origModTime = stat.ModTime()
	}

	// Create backup if requested
	if saveOpts.backupSuffix != "" {
		if err := copyFile(t.FilePath, t.FilePath+saveOpts.backupSuffix); err != nil {
			return fmt.Errorf("create backup: %w", err)
		}
	}

	if err := t.td.Save(); err != nil {
		return err
	}

	// Restore mod time if requested
	if saveOpts.preserveModTime {
		if err := os.Chtimes(t.FilePath, origModTime, origModTime); err != nil {
			return fmt.Errorf("restore mod time: %w", err)
		}
	}

	if saveOpts.validate {
		if err := t.validate(); err != nil {
			return err
		}
	}

	t.pending = make(map[string]string)
	return nil
}

// validate releases the current handle, opens the file again and compares
// what was written with what is read back. The fresh handle becomes the
// track's handle, so there is still exactly one per open file. If the file
// is gone the track is left closed and no handle is created.
func (t *ReadWriteTrack) validate() error {
	t.td.Close() //nolint:errcheck // Close of a guard never fails
	t.td = nil

	if _, err := os.Stat(t.FilePath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &FileNotFoundError{Path: t.FilePath, Err: err}
		}
		return fmt.Errorf("stat file: %w", err)
	}

	td, err := trackdata.Open(t.lib, t.FilePath, trackdata.WithLogger(t.opts.logger))
	if err != nil {
		return fmt.Errorf("reopen for validation: %w", err)
	}
	t.td = td

	read := map[string]func() string{
		"title":         td.Title,
		"artist":        td.Artist,
		"album":         td.Album,
		"album artists": td.AlbumArtists,
	}
	for _, field := range []string{"title", "artist", "album", "album artists"} {
		want, ok := t.pending[field]
		if !ok {
			continue
		}
		got := strings.TrimSpace(read[field]())
		want = strings.TrimSpace(want)
		if got != want {
			return &ValidationError{Field: field, Got: got, Want: want}
		}
	}
	return nil
}

// Reread returns a fresh snapshot of the native handle, including any
// values set since the track was opened.
func (t *ReadWriteTrack) Reread() (*ReadOnlyTrack, error) {
	if t.td == nil {
		return nil, ErrClosed
	}
	return buildReadOnlyTrack(t.FilePath, t.td, t.source, t.opts)
}

// Close releases the native handle. Unsaved changes are discarded.
// Calling Close more than once is safe.
func (t *ReadWriteTrack) Close() error {
	if t.td == nil {
		return nil
	}
	err := t.td.Close()
	t.td = nil
	return err
}

// copyFile copies src to dst, overwriting dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
