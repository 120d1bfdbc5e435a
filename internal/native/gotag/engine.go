// Package gotag is a pure-Go tag engine behind the native.Library ABI.
//
// Tags are read with github.com/dhowden/tag and audio properties come from
// the stream headers. Setters update the handle and Save writes the edited
// fields with go.senan.xyz/taglib, a WebAssembly build of TagLib. Buffers
// handed out by the engine live on a tracked Go heap and must be released
// through FreeAllocatedData like native memory.
package gotag

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unsafe"

	"github.com/dhowden/tag"
	"go.senan.xyz/taglib"

	"github.com/simonhull/trackmeta/internal/binary"
	"github.com/simonhull/trackmeta/internal/native"
	"github.com/simonhull/trackmeta/internal/registry"
)

// Name is the registry name of this engine.
const Name = "gotag"

var (
	errNoFrame = errors.New("no MPEG audio frame found")
	errNoPage  = errors.New("no Ogg page found")
	errNoAtom  = errors.New("no media header atom found")
	errNoChunk = errors.New("no COMM chunk found")
	errOldAPE  = errors.New("APE versions before 3.98 are not supported")
)

func init() {
	registry.Register(Name, New())
}

// track is the engine-side object behind a handle.
type track struct {
	path  string
	props properties

	title        string
	artist       string
	album        string
	albumArtists string
	mbid         string

	year    uint32
	trackNo uint32
	discNo  uint32

	cover []byte

	// TagLib property key -> value, for fields set since the last save
	edits map[string][]string
}

// Property keys written on save.
const (
	keyTitle       = "TITLE"
	keyArtist      = "ARTIST"
	keyAlbum       = "ALBUM"
	keyAlbumArtist = "ALBUMARTIST"
)

func (t *track) set(key, value string) {
	if t.edits == nil {
		t.edits = make(map[string][]string)
	}
	t.edits[key] = []string{value}
}

// Library implements native.Library. It is safe for concurrent use across
// distinct handles.
type Library struct {
	heap   native.Heap
	tracks native.Objects[track]
}

var _ native.Library = (*Library)(nil)

// New returns a new engine.
func New() *Library {
	return &Library{}
}

// LiveBuffers returns the number of buffers handed out and not yet freed.
func (l *Library) LiveBuffers() int {
	return l.heap.Live()
}

// LiveHandles returns the number of handles not yet deleted.
func (l *Library) LiveHandles() int {
	return l.tracks.Live()
}

// load reads everything the engine knows about path. Like the native
// engine, a file that cannot be read or recognized still yields an object,
// with an unknown file type.
func load(path string) *track {
	t := &track{path: path, discNo: 1}

	f, err := os.Open(path)
	if err != nil {
		return t
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return t
	}

	sr := binary.NewSafeReader(f, info.Size(), path)
	c := detect(sr)
	if c == containerUnknown {
		return t
	}
	t.props = probe(sr, c)

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return t
	}
	m, err := tag.ReadFrom(f)
	if err != nil {
		// Untagged files are still valid tracks
		return t
	}

	t.title = m.Title()
	t.artist = m.Artist()
	t.album = m.Album()
	t.albumArtists = m.AlbumArtist()
	if y := m.Year(); y > 0 {
		t.year = uint32(y)
	}
	if n, _ := m.Track(); n > 0 {
		t.trackNo = uint32(n)
	}
	if n, _ := m.Disc(); n > 0 {
		t.discNo = uint32(n)
	}
	if pic := m.Picture(); pic != nil && len(pic.Data) > 0 {
		t.cover = pic.Data
	}
	t.mbid = musicBrainzTrackID(m.Raw())
	return t
}

func musicBrainzTrackID(raw map[string]interface{}) string {
	for k, v := range raw {
		switch v := v.(type) {
		case *tag.UFID:
			if v.Provider == "http://musicbrainz.org" {
				return string(v.Identifier)
			}
		case string:
			if strings.EqualFold(k, "musicbrainz_trackid") || strings.EqualFold(k, "MusicBrainz Track Id") {
				return v
			}
		}
	}
	return ""
}

func (l *Library) CreateTrackData(path *byte) native.Handle {
	return l.tracks.Put(load(native.GoString(path)))
}

func (l *Library) DeleteTrackData(h native.Handle) {
	l.tracks.Delete(h)
}

func (l *Library) FreeAllocatedData(p unsafe.Pointer) {
	l.heap.Free(p)
}

// Save writes the edited fields and leaves every other tag in place. A
// handle with no edits saves without touching the file.
func (l *Library) Save(h native.Handle) native.SaveStatus {
	t := l.tracks.Get(h)
	if len(t.edits) == 0 {
		return native.SaveOK
	}

	path, err := filepath.Abs(t.path)
	if err != nil {
		return native.SaveFailed
	}
	if err := taglib.WriteTags(path, t.edits, 0); err != nil {
		return native.SaveFailed
	}
	t.edits = nil
	return native.SaveOK
}

func (l *Library) Title(h native.Handle) unsafe.Pointer {
	return l.heap.CString(l.tracks.Get(h).title)
}

func (l *Library) SetTitle(h native.Handle, s *byte) {
	t := l.tracks.Get(h)
	t.title = native.GoString(s)
	t.set(keyTitle, t.title)
}

func (l *Library) Artist(h native.Handle) unsafe.Pointer {
	return l.heap.CString(l.tracks.Get(h).artist)
}

func (l *Library) SetArtist(h native.Handle, s *byte) {
	t := l.tracks.Get(h)
	t.artist = native.GoString(s)
	t.set(keyArtist, t.artist)
}

func (l *Library) AlbumArtists(h native.Handle) unsafe.Pointer {
	return l.heap.CString(l.tracks.Get(h).albumArtists)
}

func (l *Library) SetAlbumArtists(h native.Handle, s *byte) {
	t := l.tracks.Get(h)
	t.albumArtists = native.GoString(s)
	t.set(keyAlbumArtist, t.albumArtists)
}

func (l *Library) Album(h native.Handle) unsafe.Pointer {
	return l.heap.CString(l.tracks.Get(h).album)
}

func (l *Library) SetAlbum(h native.Handle, s *byte) {
	t := l.tracks.Get(h)
	t.album = native.GoString(s)
	t.set(keyAlbum, t.album)
}

func (l *Library) MusicBrainzTrackID(h native.Handle) unsafe.Pointer {
	return l.heap.CString(l.tracks.Get(h).mbid)
}

func (l *Library) Year(h native.Handle) uint32 {
	return l.tracks.Get(h).year
}

func (l *Library) TrackNumber(h native.Handle) uint32 {
	return l.tracks.Get(h).trackNo
}

func (l *Library) DiscNumber(h native.Handle) uint32 {
	return l.tracks.Get(h).discNo
}

func (l *Library) Duration(h native.Handle) int64 {
	return l.tracks.Get(h).props.durationMS
}

func (l *Library) Bitrate(h native.Handle) int32 {
	return l.tracks.Get(h).props.bitrate
}

func (l *Library) SampleRate(h native.Handle) int32 {
	return l.tracks.Get(h).props.sampleRate
}

func (l *Library) AlbumArtBytes(h native.Handle) native.ArtBytes {
	return l.heap.Bytes(l.tracks.Get(h).cover)
}

func (l *Library) HasAlbumArt(h native.Handle) bool {
	return len(l.tracks.Get(h).cover) > 0
}

func (l *Library) FileType(h native.Handle) int32 {
	return l.tracks.Get(h).props.fileType.Code()
}
