// Package native declares the raw track_data ABI of the tag engine.
//
// Nothing in this package is safe. Pointers returned by a Library are
// valid only until they are passed to FreeAllocatedData, and a Handle is
// valid only until DeleteTrackData. Reading either after release is
// undefined behavior. Package trackdata is the only intended caller.
package native

import "unsafe"

// Handle identifies a native track_data object. The zero Handle is invalid.
type Handle struct {
	ptr unsafe.Pointer
}

// NewHandle wraps a native object pointer.
func NewHandle(p unsafe.Pointer) Handle {
	return Handle{ptr: p}
}

// Pointer returns the native object pointer.
func (h Handle) Pointer() unsafe.Pointer {
	return h.ptr
}

// IsZero reports whether h identifies no object.
func (h Handle) IsZero() bool {
	return h.ptr == nil
}

// ArtBytes describes a native-owned byte buffer. Data is not
// NUL-terminated and may contain zero bytes; Size is authoritative.
type ArtBytes struct {
	Data unsafe.Pointer
	Size uint32
}

// SaveStatus is what an engine can tell about a save.
type SaveStatus int

const (
	// SaveUnknown means the engine gives no signal (the C ABI returns void).
	SaveUnknown SaveStatus = iota
	// SaveOK means the engine confirmed the write.
	SaveOK
	// SaveFailed means the engine reported the write did not happen.
	SaveFailed
)

func (s SaveStatus) String() string {
	switch s {
	case SaveOK:
		return "ok"
	case SaveFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Library is the track_data C ABI, one method per entry point.
//
// Strings are NUL-terminated byte sequences. Every pointer returned from a
// string getter or AlbumArtBytes is owned by the caller and must be
// released with FreeAllocatedData exactly once. Strings passed in are
// borrowed for the duration of the call only.
type Library interface {
	CreateTrackData(path *byte) Handle
	DeleteTrackData(h Handle)
	FreeAllocatedData(p unsafe.Pointer)
	Save(h Handle) SaveStatus

	Title(h Handle) unsafe.Pointer
	SetTitle(h Handle, s *byte)
	Artist(h Handle) unsafe.Pointer
	SetArtist(h Handle, s *byte)
	AlbumArtists(h Handle) unsafe.Pointer
	SetAlbumArtists(h Handle, s *byte)
	Album(h Handle) unsafe.Pointer
	SetAlbum(h Handle, s *byte)
	MusicBrainzTrackID(h Handle) unsafe.Pointer

	Year(h Handle) uint32
	TrackNumber(h Handle) uint32
	DiscNumber(h Handle) uint32
	Duration(h Handle) int64
	Bitrate(h Handle) int32
	SampleRate(h Handle) int32

	AlbumArtBytes(h Handle) ArtBytes
	HasAlbumArt(h Handle) bool
	FileType(h Handle) int32
}

// ReadOnly is implemented by engines that can tell up front that they
// never write files.
type ReadOnly interface {
	ReadOnly() bool
}
