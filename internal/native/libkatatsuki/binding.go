//go:build katatsuki && cgo

package libkatatsuki

/*
#cgo pkg-config: katatsuki
#include <stdbool.h>
#include <stdlib.h>

typedef struct track_data track_data;

struct art_bytes {
	unsigned char *data;
	unsigned int size;
};

track_data *create_track_data(const char *track_path);
void delete_track_data(track_data *track_data);
void free_allocated_data(void *data);
void save(track_data *track_data);

const char *get_title(track_data *track_data);
void set_title(track_data *track_data, const char *title);
const char *get_artist(track_data *track_data);
void set_artist(track_data *track_data, const char *artist);
// track_data.h spells this get_album_artist; the library exports the plural.
const char *get_album_artists(track_data *track_data);
void set_album_artists(track_data *track_data, const char *album_artists);
const char *get_album(track_data *track_data);
void set_album(track_data *track_data, const char *album);
const char *get_musicbrainz_track_id(track_data *track_data);

unsigned int get_year(track_data *track_data);
unsigned int get_track_number(track_data *track_data);
unsigned int get_disc_number(track_data *track_data);
long long get_duration(track_data *track_data);
int get_bitrate(track_data *track_data);
int get_sample_rate(track_data *track_data);

struct art_bytes get_album_art_bytes(track_data *track_data);
int get_file_type(track_data *track_data);
bool has_album_art(track_data *track_data);
*/
import "C"

import (
	"unsafe"

	"github.com/simonhull/trackmeta/internal/native"
	"github.com/simonhull/trackmeta/internal/registry"
)

// Name is the registry name of this engine.
const Name = "katatsuki"

func init() {
	registry.Register(Name, Library{})
}

// Library calls straight into libkatatsuki. It holds no state.
type Library struct{}

var _ native.Library = Library{}

func td(h native.Handle) *C.track_data {
	return (*C.track_data)(h.Pointer())
}

func cstr(p *byte) *C.char {
	return (*C.char)(unsafe.Pointer(p))
}

func (Library) CreateTrackData(path *byte) native.Handle {
	return native.NewHandle(unsafe.Pointer(C.create_track_data(cstr(path))))
}

func (Library) DeleteTrackData(h native.Handle) {
	C.delete_track_data(td(h))
}

func (Library) FreeAllocatedData(p unsafe.Pointer) {
	C.free_allocated_data(p)
}

// Save flushes the handle to disk. The C entry point returns nothing, so
// the outcome is always native.SaveUnknown.
func (Library) Save(h native.Handle) native.SaveStatus {
	C.save(td(h))
	return native.SaveUnknown
}

func (Library) Title(h native.Handle) unsafe.Pointer {
	return unsafe.Pointer(C.get_title(td(h)))
}

func (Library) SetTitle(h native.Handle, s *byte) {
	C.set_title(td(h), cstr(s))
}

func (Library) Artist(h native.Handle) unsafe.Pointer {
	return unsafe.Pointer(C.get_artist(td(h)))
}

func (Library) SetArtist(h native.Handle, s *byte) {
	C.set_artist(td(h), cstr(s))
}

func (Library) AlbumArtists(h native.Handle) unsafe.Pointer {
	return unsafe.Pointer(C.get_album_artists(td(h)))
}

func (Library) SetAlbumArtists(h native.Handle, s *byte) {
	C.set_album_artists(td(h), cstr(s))
}

func (Library) Album(h native.Handle) unsafe.Pointer {
	return unsafe.Pointer(C.get_album(td(h)))
}

func (Library) SetAlbum(h native.Handle, s *byte) {
	C.set_album(td(h), cstr(s))
}

func (Library) MusicBrainzTrackID(h native.Handle) unsafe.Pointer {
	return unsafe.Pointer(C.get_musicbrainz_track_id(td(h)))
}

func (Library) Year(h native.Handle) uint32 {
	return uint32(C.get_year(td(h)))
}

func (Library) TrackNumber(h native.Handle) uint32 {
	return uint32(C.get_track_number(td(h)))
}

func (Library) DiscNumber(h native.Handle) uint32 {
	return uint32(C.get_disc_number(td(h)))
}

func (Library) Duration(h native.Handle) int64 {
	return int64(C.get_duration(td(h)))
}

func (Library) Bitrate(h native.Handle) int32 {
	return int32(C.get_bitrate(td(h)))
}

func (Library) SampleRate(h native.Handle) int32 {
	return int32(C.get_sample_rate(td(h)))
}

func (Library) AlbumArtBytes(h native.Handle) native.ArtBytes {
	ab := C.get_album_art_bytes(td(h))
	return native.ArtBytes{Data: unsafe.Pointer(ab.data), Size: uint32(ab.size)}
}

func (Library) HasAlbumArt(h native.Handle) bool {
	return bool(C.has_album_art(td(h)))
}

func (Library) FileType(h native.Handle) int32 {
	return int32(C.get_file_type(td(h)))
}
