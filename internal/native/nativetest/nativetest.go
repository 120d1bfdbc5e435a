// Package nativetest provides an in-memory native.Library for tests.
//
// The library tracks every handle and buffer it hands out, so tests can
// assert that nothing leaks and that nothing is released twice: a double
// free or a call on a deleted handle panics.
package nativetest

import (
	"sync"
	"unsafe"

	"github.com/simonhull/trackmeta/internal/native"
)

// Track is the stored state of one fake file.
type Track struct {
	FileType           int32
	Title              string
	Artist             string
	Album              string
	AlbumArtists       string
	MusicBrainzTrackID string
	Year               uint32
	TrackNumber        uint32
	DiscNumber         uint32
	Duration           int64 // milliseconds
	Bitrate            int32
	SampleRate         int32

	// Cover is returned by AlbumArtBytes. HasAlbumArt reports true when
	// Cover is non-empty or DeclareCover is set.
	Cover        []byte
	DeclareCover bool

	// NullStrings makes empty string fields come back as NULL instead of
	// an empty C string.
	NullStrings bool
}

type handleState struct {
	path  string
	track Track
}

// Library is a fake tag engine backed by a map of path to Track.
type Library struct {
	heap    native.Heap
	handles native.Objects[handleState]

	mu    sync.Mutex
	files map[string]Track
	calls map[string]int

	// SaveResult is what Save reports. Unless it is SaveFailed, Save
	// persists the handle's pending edits.
	SaveResult native.SaveStatus
}

var _ native.Library = (*Library)(nil)

// NewLibrary returns an empty fake engine.
func NewLibrary() *Library {
	return &Library{
		files: make(map[string]Track),
		calls: make(map[string]int),
	}
}

// AddFile registers the stored state for path.
func (l *Library) AddFile(path string, t Track) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.files[path] = t
}

// File returns the stored (saved) state for path.
func (l *Library) File(path string) (Track, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	t, ok := l.files[path]
	return t, ok
}

// LiveBuffers returns the number of transient buffers not yet freed.
func (l *Library) LiveBuffers() int {
	return l.heap.Live()
}

// LiveHandles returns the number of handles not yet deleted.
func (l *Library) LiveHandles() int {
	return l.handles.Live()
}

// Creates returns how many handles were ever created.
func (l *Library) Creates() int {
	created, _ := l.handles.Stats()
	return int(created)
}

// Calls returns how many times the named entry point was invoked.
func (l *Library) Calls(name string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls[name]
}

func (l *Library) record(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls[name]++
}

func (l *Library) state(name string, h native.Handle) *handleState {
	l.record(name)
	return l.handles.Get(h)
}

func (l *Library) str(s string, nullable bool) unsafe.Pointer {
	if s == "" && nullable {
		return nil
	}
	return l.heap.CString(s)
}

func (l *Library) CreateTrackData(path *byte) native.Handle {
	l.record("CreateTrackData")
	p := native.GoString(path)

	l.mu.Lock()
	t := l.files[p]
	l.mu.Unlock()

	return l.handles.Put(&handleState{path: p, track: t})
}

func (l *Library) DeleteTrackData(h native.Handle) {
	l.record("DeleteTrackData")
	l.handles.Delete(h)
}

func (l *Library) FreeAllocatedData(p unsafe.Pointer) {
	l.record("FreeAllocatedData")
	l.heap.Free(p)
}

func (l *Library) Save(h native.Handle) native.SaveStatus {
	st := l.state("Save", h)
	if l.SaveResult == native.SaveFailed {
		return native.SaveFailed
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.files[st.path] = st.track
	return l.SaveResult
}

func (l *Library) Title(h native.Handle) unsafe.Pointer {
	st := l.state("Title", h)
	return l.str(st.track.Title, st.track.NullStrings)
}

func (l *Library) SetTitle(h native.Handle, s *byte) {
	l.state("SetTitle", h).track.Title = native.GoString(s)
}

func (l *Library) Artist(h native.Handle) unsafe.Pointer {
	st := l.state("Artist", h)
	return l.str(st.track.Artist, st.track.NullStrings)
}

func (l *Library) SetArtist(h native.Handle, s *byte) {
	l.state("SetArtist", h).track.Artist = native.GoString(s)
}

func (l *Library) AlbumArtists(h native.Handle) unsafe.Pointer {
	st := l.state("AlbumArtists", h)
	return l.str(st.track.AlbumArtists, st.track.NullStrings)
}

func (l *Library) SetAlbumArtists(h native.Handle, s *byte) {
	l.state("SetAlbumArtists", h).track.AlbumArtists = native.GoString(s)
}

func (l *Library) Album(h native.Handle) unsafe.Pointer {
	st := l.state("Album", h)
	return l.str(st.track.Album, st.track.NullStrings)
}

func (l *Library) SetAlbum(h native.Handle, s *byte) {
	l.state("SetAlbum", h).track.Album = native.GoString(s)
}

func (l *Library) MusicBrainzTrackID(h native.Handle) unsafe.Pointer {
	st := l.state("MusicBrainzTrackID", h)
	return l.str(st.track.MusicBrainzTrackID, st.track.NullStrings)
}

func (l *Library) Year(h native.Handle) uint32 {
	return l.state("Year", h).track.Year
}

func (l *Library) TrackNumber(h native.Handle) uint32 {
	return l.state("TrackNumber", h).track.TrackNumber
}

func (l *Library) DiscNumber(h native.Handle) uint32 {
	return l.state("DiscNumber", h).track.DiscNumber
}

func (l *Library) Duration(h native.Handle) int64 {
	return l.state("Duration", h).track.Duration
}

func (l *Library) Bitrate(h native.Handle) int32 {
	return l.state("Bitrate", h).track.Bitrate
}

func (l *Library) SampleRate(h native.Handle) int32 {
	return l.state("SampleRate", h).track.SampleRate
}

func (l *Library) AlbumArtBytes(h native.Handle) native.ArtBytes {
	return l.heap.Bytes(l.state("AlbumArtBytes", h).track.Cover)
}

func (l *Library) HasAlbumArt(h native.Handle) bool {
	t := l.state("HasAlbumArt", h).track
	return len(t.Cover) > 0 || t.DeclareCover
}

func (l *Library) FileType(h native.Handle) int32 {
	return l.state("FileType", h).track.FileType
}
