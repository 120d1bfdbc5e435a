package trackmeta

import (
	"github.com/simonhull/trackmeta/internal/types"
)

// TrackFileType is an alias to types.TrackFileType.
// Re-exporting from internal/types to maintain public API.
type TrackFileType = types.TrackFileType

// Re-export all track file type constants
const (
	TrackFileTypeUnknown        = types.TrackFileTypeUnknown
	TrackFileTypeFLAC           = types.TrackFileTypeFLAC
	TrackFileTypeFLAC4          = types.TrackFileTypeFLAC4
	TrackFileTypeFLAC8          = types.TrackFileTypeFLAC8
	TrackFileTypeFLAC16         = types.TrackFileTypeFLAC16
	TrackFileTypeFLAC24         = types.TrackFileTypeFLAC24
	TrackFileTypeFLAC32         = types.TrackFileTypeFLAC32
	TrackFileTypeMP3CBR         = types.TrackFileTypeMP3CBR
	TrackFileTypeMP3VBR         = types.TrackFileTypeMP3VBR
	TrackFileTypeAAC            = types.TrackFileTypeAAC
	TrackFileTypeALAC           = types.TrackFileTypeALAC
	TrackFileTypeALAC16         = types.TrackFileTypeALAC16
	TrackFileTypeALAC24         = types.TrackFileTypeALAC24
	TrackFileTypeALAC32         = types.TrackFileTypeALAC32
	TrackFileTypeAIFF           = types.TrackFileTypeAIFF
	TrackFileTypeAIFF4          = types.TrackFileTypeAIFF4
	TrackFileTypeAIFF8          = types.TrackFileTypeAIFF8
	TrackFileTypeAIFF16         = types.TrackFileTypeAIFF16
	TrackFileTypeAIFF24         = types.TrackFileTypeAIFF24
	TrackFileTypeAIFF32         = types.TrackFileTypeAIFF32
	TrackFileTypeMonkeysAudio   = types.TrackFileTypeMonkeysAudio
	TrackFileTypeMonkeysAudio8  = types.TrackFileTypeMonkeysAudio8
	TrackFileTypeMonkeysAudio16 = types.TrackFileTypeMonkeysAudio16
	TrackFileTypeMonkeysAudio24 = types.TrackFileTypeMonkeysAudio24
	TrackFileTypeVorbis         = types.TrackFileTypeVorbis
	TrackFileTypeOpus           = types.TrackFileTypeOpus
)

// TrackFileTypeFromCode decodes a native file type code. Unrecognized
// codes map to TrackFileTypeUnknown.
func TrackFileTypeFromCode(code int32) TrackFileType {
	return types.TrackFileTypeFromCode(code)
}
