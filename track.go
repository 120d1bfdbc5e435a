package trackmeta

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/trackmeta/internal/cover"
	"github.com/simonhull/trackmeta/internal/native"
	"github.com/simonhull/trackmeta/internal/trackdata"
)

// DefaultSource is the source label stored when none is given.
const DefaultSource = "None"

// ReadOnlyTrack is a detached snapshot of a track's metadata.
//
// All fields are copied out of the engine while the track is opened; the
// snapshot holds no reference to native memory and never changes after
// construction.
type ReadOnlyTrack struct {
	// Path the track was opened with
	FilePath string

	// Container and codec as classified by the engine
	FileType TrackFileType

	// Text fields, with surrounding whitespace trimmed
	Title        string
	Artist       string
	Album        string
	AlbumArtists string // Multiple artists joined with ";"

	Year        int
	TrackNumber int
	DiscNumber  int

	// Audio properties
	Duration   time.Duration
	Bitrate    int // kbps
	SampleRate int // Hz

	// MusicBrainz recording id ("" if absent)
	MusicBrainzTrackID string

	// Cover art. Width and height are 0 when the header cannot be probed;
	// AlbumArt is empty when there is no art or it exceeded the size limit.
	HasFrontCover    bool
	FrontCoverWidth  int
	FrontCoverHeight int
	AlbumArt         []byte
	CoverMIMEType    string

	// Free-text label describing where the track came from
	Source string

	// Local date the snapshot was taken, as YYYY-MM-DD
	Updated string

	// Warnings encountered while building the snapshot (non-fatal issues)
	Warnings []Warning
}

// String returns a one-line description of the track.
//
// Example output: "Artist - Title (Album) [FLAC 16-bit, 3:25]"
func (t *ReadOnlyTrack) String() string {
	d := t.Duration.Round(time.Second)
	return fmt.Sprintf("%s - %s (%s) [%s, %d:%02d]",
		t.Artist, t.Title, t.Album, t.FileType, int(d.Minutes()), int(d.Seconds())%60)
}

// Open opens a track and returns a snapshot of its metadata.
//
// The native handle is released before Open returns. source is stored in
// the snapshot as a free-text label; an empty source becomes "None".
//
// Open returns *FileNotFoundError without touching the engine when path
// does not exist, *PathEncodingError when path cannot be passed to the
// engine, and *UnsupportedFormatError when the engine does not recognize
// the file.
//
// Example:
//
//	track, err := trackmeta.Open("song.flac", "library")
//	if err != nil {
//		return err
//	}
//	fmt.Printf("%s - %s\n", track.Artist, track.Title)
func Open(path, source string, opts ...Option) (*ReadOnlyTrack, error) {
	o := applyOptions(opts)

	td, _, err := openTrackData(path, o)
	if err != nil {
		return nil, err
	}
	defer td.Close() //nolint:errcheck // Close of a guard never fails

	return buildReadOnlyTrack(path, td, source, o)
}

// OpenContext opens a track with context support for cancellation.
//
// Engine calls cannot be interrupted, so the context is only checked
// before starting.
func OpenContext(ctx context.Context, path, source string, opts ...Option) (*ReadOnlyTrack, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Open(path, source, opts...)
}

// OpenMany opens multiple tracks concurrently.
//
// Tracks are opened in parallel using up to runtime.NumCPU() goroutines,
// or the limit set with WithConcurrency. Each goroutine uses its own
// native handle. Results are returned in the same order as the input
// paths.
//
// If any track fails to open, the first error is returned.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//
//	tracks, err := trackmeta.OpenMany(ctx, "library", paths)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, t := range tracks {
//		fmt.Printf("%s: %s - %s\n", t.FileType, t.Artist, t.Title)
//	}
func OpenMany(ctx context.Context, source string, paths []string, opts ...Option) ([]*ReadOnlyTrack, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	o := applyOptions(opts)
	limit := o.concurrency
	if limit < 1 {
		limit = runtime.NumCPU()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit) // Limit concurrent operations

	results := make([]*ReadOnlyTrack, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			// Check for cancellation
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			track, err := Open(path, source, opts...)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			results[i] = track
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// openTrackData checks path and opens a guard for it with the configured
// engine, which is returned alongside.
func openTrackData(path string, o *openOptions) (*trackdata.TrackData, native.Library, error) {
	if err := trackdata.ValidatePath(path); err != nil {
		return nil, nil, err
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, &FileNotFoundError{Path: path, Err: err}
		}
		return nil, nil, fmt.Errorf("stat file: %w", err)
	}

	lib, err := o.resolveLibrary()
	if err != nil {
		return nil, nil, fmt.Errorf("open track: %w", err)
	}

	td, err := trackdata.Open(lib, path, trackdata.WithLogger(o.logger))
	if err != nil {
		return nil, nil, err
	}
	return td, lib, nil
}

// buildReadOnlyTrack queries every field of td exactly once.
//
// The file type is checked first: an unknown type fails without building
// a partial snapshot.
func buildReadOnlyTrack(path string, td *trackdata.TrackData, source string, o *openOptions) (*ReadOnlyTrack, error) {
	fileType := td.FileType()
	if fileType == TrackFileTypeUnknown {
		return nil, &UnsupportedFormatError{
			Path:   path,
			Reason: "not recognized by the tag engine",
		}
	}

	if source == "" {
		source = DefaultSource
	}

	t := &ReadOnlyTrack{
		FilePath: path,
		FileType: fileType,
		Source:   source,
	}

	if td.HasFrontCover() {
		t.HasFrontCover = true
		t.readCover(td.CoverBytes(), o)
	}

	t.Title = strings.TrimSpace(td.Title())
	t.Artist = strings.TrimSpace(td.Artist())
	t.Album = strings.TrimSpace(td.Album())
	t.AlbumArtists = strings.TrimSpace(td.AlbumArtists())
	t.Year = int(td.Year())
	t.TrackNumber = int(td.TrackNumber())
	t.DiscNumber = int(td.DiscNumber())
	t.Duration = time.Duration(td.Duration()) * time.Millisecond
	t.Bitrate = int(td.Bitrate())
	t.SampleRate = int(td.SampleRate())
	t.MusicBrainzTrackID, _ = td.MusicBrainzTrackID()

	t.Updated = o.clock().Format(time.DateOnly)

	// Apply option: ignore warnings
	if o.ignoreWarnings {
		t.Warnings = nil
	}

	// Check strict parsing mode
	if o.strictParsing && len(t.Warnings) > 0 {
		return nil, &StrictParsingError{Path: path, Warning: t.Warnings[0]}
	}

	return t, nil
}

// readCover probes the copied cover bytes. A header that cannot be probed
// leaves the dimensions at zero and is reported as a warning.
func (t *ReadOnlyTrack) readCover(data []byte, o *openOptions) {
	if len(data) == 0 {
		t.Warnings = append(t.Warnings, Warning{
			Stage:   "artwork",
			Message: "cover art reported but no data returned",
		})
		return
	}

	info, err := cover.Probe(data)
	t.CoverMIMEType = info.MIMEType
	if err != nil {
		t.Warnings = append(t.Warnings, Warning{
			Stage:   "artwork",
			Message: fmt.Sprintf("cover art not decodable: %v", err),
		})
	} else {
		t.FrontCoverWidth = info.Width
		t.FrontCoverHeight = info.Height
	}

	if o.maxArtworkSize > 0 && len(data) > o.maxArtworkSize {
		t.Warnings = append(t.Warnings, Warning{
			Stage:   "artwork",
			Message: fmt.Sprintf("cover art of %d bytes exceeds limit of %d bytes, data dropped", len(data), o.maxArtworkSize),
		})
		return
	}
	t.AlbumArt = data
}
