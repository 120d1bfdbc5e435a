package trackmeta

import (
	"github.com/simonhull/trackmeta/internal/types"
)

// Artwork is an alias to types.Artwork.
// Re-exporting from internal/types to maintain public API.
type Artwork = types.Artwork

// FrontCover returns the cover art kept in the snapshot.
//
// It reports false when the track has no cover art or when its bytes were
// dropped by WithMaxArtworkSize.
//
// Example:
//
//	if art, ok := track.FrontCover(); ok {
//		fmt.Println(art) // Front cover (1200x1200 JPEG, 245KB)
//		os.WriteFile("cover.jpg", art.Data, 0o644)
//	}
func (t *ReadOnlyTrack) FrontCover() (Artwork, bool) {
	if len(t.AlbumArt) == 0 {
		return Artwork{}, false
	}
	return Artwork{
		MIMEType: t.CoverMIMEType,
		Data:     t.AlbumArt,
		Width:    t.FrontCoverWidth,
		Height:   t.FrontCoverHeight,
	}, true
}
