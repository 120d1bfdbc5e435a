// Package trackdata owns native track_data handles.
//
// A TrackData wraps exactly one native handle and turns every raw accessor
// into an owned Go value. Every buffer the engine hands back is copied and
// released inside the accessor that received it, and the handle itself is
// released exactly once by Close. There is no finalizer: callers release
// deterministically with defer or by handing ownership to a type whose
// Close does it.
//
// A TrackData is not safe for concurrent use. Distinct TrackData values
// may be used from different goroutines.
package trackdata

import (
	"io"
	"strings"
	"unicode/utf8"
	"unsafe"

	log "github.com/sirupsen/logrus"

	"github.com/simonhull/trackmeta/internal/native"
	"github.com/simonhull/trackmeta/internal/types"
)

// TrackData is the resource guard for one native handle.
type TrackData struct {
	lib    native.Library
	handle native.Handle
	path   string
	logger *log.Entry
}

// Option configures a TrackData.
type Option func(*TrackData)

// WithLogger traces handle acquisition and release at debug level.
func WithLogger(entry *log.Entry) Option {
	return func(td *TrackData) {
		if entry != nil {
			td.logger = entry.WithField("module", "trackdata")
		}
	}
}

var silent = func() *log.Entry {
	l := log.New()
	l.SetOutput(io.Discard)
	return log.NewEntry(l)
}()

// Open validates path, encodes it for the engine and creates a handle.
//
// Open returns *types.PathEncodingError when the path is not valid UTF-8
// or contains a NUL byte. Whether the file exists is not checked here.
func Open(lib native.Library, path string, opts ...Option) (*TrackData, error) {
	if err := ValidatePath(path); err != nil {
		return nil, err
	}

	td := &TrackData{lib: lib, path: path, logger: silent}
	for _, opt := range opts {
		opt(td)
	}

	td.handle = lib.CreateTrackData(cString(path))
	if td.handle.IsZero() {
		panic("trackdata: engine returned a nil handle for " + path)
	}
	td.logger.WithFields(log.Fields{
		"path":   path,
		"handle": td.handle.Pointer(),
	}).Debug("acquired track data")
	return td, nil
}

// ValidatePath reports whether path can cross the native boundary.
func ValidatePath(path string) error {
	if !utf8.ValidString(path) {
		return &types.PathEncodingError{Path: path, Reason: "not valid UTF-8"}
	}
	if strings.IndexByte(path, 0) >= 0 {
		return &types.PathEncodingError{Path: path, Reason: "contains NUL byte"}
	}
	return nil
}

// Path returns the path the handle was opened with.
func (td *TrackData) Path() string {
	return td.path
}

// Closed reports whether Close has been called.
func (td *TrackData) Closed() bool {
	return td.handle.IsZero()
}

// Close releases the native handle. Calling Close again is a no-op.
func (td *TrackData) Close() error {
	if td.handle.IsZero() {
		return nil
	}
	h := td.handle
	td.handle = native.Handle{}
	td.lib.DeleteTrackData(h)
	td.logger.WithFields(log.Fields{
		"path":   td.path,
		"handle": h.Pointer(),
	}).Debug("released track data")
	return nil
}

// live returns the handle, panicking if it has been released. Using a
// released guard is a programming error; public types check first and
// return types.ErrClosed.
func (td *TrackData) live() native.Handle {
	if td.handle.IsZero() {
		panic("trackdata: use of closed track data for " + td.path)
	}
	return td.handle
}

// cString returns a NUL-terminated copy of s. The buffer is owned by Go
// and only borrowed by the engine for the duration of one call.
func cString(s string) *byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return &b[0]
}

// text reads a string getter. NULL and empty results are absent. Invalid
// UTF-8 is replaced with U+FFFD. The native buffer is released on every
// path.
func (td *TrackData) text(get func(native.Handle) unsafe.Pointer) (string, bool) {
	p := get(td.live())
	if p == nil {
		return "", false
	}
	defer td.lib.FreeAllocatedData(p)

	s := native.GoString((*byte)(p))
	if s == "" {
		return "", false
	}
	return strings.ToValidUTF8(s, string(utf8.RuneError)), true
}

func (td *TrackData) setText(field, value string, set func(native.Handle, *byte)) error {
	h := td.live()
	if i := strings.IndexByte(value, 0); i >= 0 {
		return &types.EmbeddedNulError{Field: field, Offset: i}
	}
	if !utf8.ValidString(value) {
		return &types.TextEncodingError{Field: field, Offset: invalidOffset(value)}
	}
	set(h, cString(value))
	return nil
}

func invalidOffset(s string) int {
	for i, r := range s {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size == 1 {
				return i
			}
		}
	}
	return -1
}

// Title returns the title, or "" when absent.
func (td *TrackData) Title() string {
	s, _ := td.text(td.lib.Title)
	return s
}

// Artist returns the artist, or "" when absent.
func (td *TrackData) Artist() string {
	s, _ := td.text(td.lib.Artist)
	return s
}

// Album returns the album, or "" when absent.
func (td *TrackData) Album() string {
	s, _ := td.text(td.lib.Album)
	return s
}

// AlbumArtists returns the album artists joined with ";", or "" when absent.
func (td *TrackData) AlbumArtists() string {
	s, _ := td.text(td.lib.AlbumArtists)
	return s
}

// MusicBrainzTrackID returns the MusicBrainz track id and whether the
// file carries one.
func (td *TrackData) MusicBrainzTrackID() (string, bool) {
	return td.text(td.lib.MusicBrainzTrackID)
}

// SetTitle sets the title on the handle. Values containing NUL are
// rejected before any native call.
func (td *TrackData) SetTitle(v string) error {
	return td.setText("title", v, td.lib.SetTitle)
}

// SetArtist sets the artist on the handle.
func (td *TrackData) SetArtist(v string) error {
	return td.setText("artist", v, td.lib.SetArtist)
}

// SetAlbum sets the album on the handle.
func (td *TrackData) SetAlbum(v string) error {
	return td.setText("album", v, td.lib.SetAlbum)
}

// SetAlbumArtists sets the album artists on the handle. Multiple artists
// are joined with ";".
func (td *TrackData) SetAlbumArtists(v string) error {
	return td.setText("album artists", v, td.lib.SetAlbumArtists)
}

func (td *TrackData) Year() uint32 {
	return td.lib.Year(td.live())
}

func (td *TrackData) TrackNumber() uint32 {
	return td.lib.TrackNumber(td.live())
}

func (td *TrackData) DiscNumber() uint32 {
	return td.lib.DiscNumber(td.live())
}

// Duration returns the duration in milliseconds.
func (td *TrackData) Duration() int64 {
	return td.lib.Duration(td.live())
}

// Bitrate returns the bitrate in kbps.
func (td *TrackData) Bitrate() int32 {
	return td.lib.Bitrate(td.live())
}

// SampleRate returns the sample rate in Hz.
func (td *TrackData) SampleRate() int32 {
	return td.lib.SampleRate(td.live())
}

// FileType decodes the engine's file type code. It never fails: unknown
// codes map to types.TrackFileTypeUnknown.
func (td *TrackData) FileType() types.TrackFileType {
	return types.TrackFileTypeFromCode(td.lib.FileType(td.live()))
}

// HasFrontCover reports whether the engine found cover art.
func (td *TrackData) HasFrontCover() bool {
	return td.lib.HasAlbumArt(td.live())
}

// CoverBytes copies the cover art into Go memory and releases the native
// buffer, even if the copy fails. It returns nil when there is no art.
func (td *TrackData) CoverBytes() []byte {
	ab := td.lib.AlbumArtBytes(td.live())
	if ab.Data == nil {
		return nil
	}
	defer td.lib.FreeAllocatedData(ab.Data)

	if ab.Size == 0 {
		return nil
	}
	out := make([]byte, ab.Size)
	copy(out, unsafe.Slice((*byte)(ab.Data), ab.Size))
	return out
}

// Save flushes pending changes. It returns *types.SaveError only when the
// engine reports a failure; engines that cannot tell return nil.
func (td *TrackData) Save() error {
	status := td.lib.Save(td.live())
	td.logger.WithFields(log.Fields{
		"path":   td.path,
		"status": status,
	}).Debug("saved track data")
	if status == native.SaveFailed {
		return &types.SaveError{Path: td.path, Reason: "engine reported failure"}
	}
	return nil
}
