package types

// TrackFileType classifies the container and codec of a track as reported
// by the native engine.
//
// Values match the codes returned by get_file_type in the native ABI.
// Codes outside the known set decode to TrackFileTypeUnknown.
type TrackFileType int32

const (
	// TrackFileTypeUnknown marks a file the engine does not support.
	TrackFileTypeUnknown TrackFileType = iota // Unknown

	TrackFileTypeFLAC   // FLAC
	TrackFileTypeFLAC4  // FLAC 4-bit
	TrackFileTypeFLAC8  // FLAC 8-bit
	TrackFileTypeFLAC16 // FLAC 16-bit
	TrackFileTypeFLAC24 // FLAC 24-bit
	TrackFileTypeFLAC32 // FLAC 32-bit

	TrackFileTypeMP3CBR // MP3 CBR
	TrackFileTypeMP3VBR // MP3 VBR

	TrackFileTypeAAC // AAC

	TrackFileTypeALAC   // ALAC
	TrackFileTypeALAC16 // ALAC 16-bit
	TrackFileTypeALAC24 // ALAC 24-bit
	TrackFileTypeALAC32 // ALAC 32-bit

	TrackFileTypeAIFF   // AIFF
	TrackFileTypeAIFF4  // AIFF 4-bit
	TrackFileTypeAIFF8  // AIFF 8-bit
	TrackFileTypeAIFF16 // AIFF 16-bit
	TrackFileTypeAIFF24 // AIFF 24-bit
	TrackFileTypeAIFF32 // AIFF 32-bit

	TrackFileTypeMonkeysAudio   // Monkey's Audio
	TrackFileTypeMonkeysAudio8  // Monkey's Audio 8-bit
	TrackFileTypeMonkeysAudio16 // Monkey's Audio 16-bit
	TrackFileTypeMonkeysAudio24 // Monkey's Audio 24-bit

	TrackFileTypeVorbis // Ogg Vorbis
	TrackFileTypeOpus   // Opus

	trackFileTypeEnd
)

var trackFileTypeNames = [...]string{
	TrackFileTypeUnknown:        "Unknown",
	TrackFileTypeFLAC:           "FLAC",
	TrackFileTypeFLAC4:          "FLAC 4-bit",
	TrackFileTypeFLAC8:          "FLAC 8-bit",
	TrackFileTypeFLAC16:         "FLAC 16-bit",
	TrackFileTypeFLAC24:         "FLAC 24-bit",
	TrackFileTypeFLAC32:         "FLAC 32-bit",
	TrackFileTypeMP3CBR:         "MP3 CBR",
	TrackFileTypeMP3VBR:         "MP3 VBR",
	TrackFileTypeAAC:            "AAC",
	TrackFileTypeALAC:           "ALAC",
	TrackFileTypeALAC16:         "ALAC 16-bit",
	TrackFileTypeALAC24:         "ALAC 24-bit",
	TrackFileTypeALAC32:         "ALAC 32-bit",
	TrackFileTypeAIFF:           "AIFF",
	TrackFileTypeAIFF4:          "AIFF 4-bit",
	TrackFileTypeAIFF8:          "AIFF 8-bit",
	TrackFileTypeAIFF16:         "AIFF 16-bit",
	TrackFileTypeAIFF24:         "AIFF 24-bit",
	TrackFileTypeAIFF32:         "AIFF 32-bit",
	TrackFileTypeMonkeysAudio:   "Monkey's Audio",
	TrackFileTypeMonkeysAudio8:  "Monkey's Audio 8-bit",
	TrackFileTypeMonkeysAudio16: "Monkey's Audio 16-bit",
	TrackFileTypeMonkeysAudio24: "Monkey's Audio 24-bit",
	TrackFileTypeVorbis:         "Ogg Vorbis",
	TrackFileTypeOpus:           "Opus",
}

// TrackFileTypeFromCode decodes a native file type code.
//
// Unrecognized codes map to TrackFileTypeUnknown rather than failing:
// an unsupported format is an expected outcome, not an error.
func TrackFileTypeFromCode(code int32) TrackFileType {
	if code <= int32(TrackFileTypeUnknown) || code >= int32(trackFileTypeEnd) {
		return TrackFileTypeUnknown
	}
	return TrackFileType(code)
}

// Code returns the native integer code for t.
func (t TrackFileType) Code() int32 {
	return int32(t)
}

func (t TrackFileType) String() string {
	if t < 0 || t >= trackFileTypeEnd {
		return trackFileTypeNames[TrackFileTypeUnknown]
	}
	return trackFileTypeNames[t]
}

// Family collapses bit-depth variants to their base type.
//
// For example TrackFileTypeFLAC24 and TrackFileTypeFLAC16 both return
// TrackFileTypeFLAC. MP3 CBR and VBR stay distinct.
func (t TrackFileType) Family() TrackFileType {
	switch {
	case t >= TrackFileTypeFLAC && t <= TrackFileTypeFLAC32:
		return TrackFileTypeFLAC
	case t >= TrackFileTypeALAC && t <= TrackFileTypeALAC32:
		return TrackFileTypeALAC
	case t >= TrackFileTypeAIFF && t <= TrackFileTypeAIFF32:
		return TrackFileTypeAIFF
	case t >= TrackFileTypeMonkeysAudio && t <= TrackFileTypeMonkeysAudio24:
		return TrackFileTypeMonkeysAudio
	case t < 0 || t >= trackFileTypeEnd:
		return TrackFileTypeUnknown
	default:
		return t
	}
}

// BitDepth returns the bit depth encoded in the type, or 0 when the type
// carries none (lossy codecs and the generic lossless variants).
func (t TrackFileType) BitDepth() int {
	switch t {
	case TrackFileTypeFLAC4, TrackFileTypeAIFF4:
		return 4
	case TrackFileTypeFLAC8, TrackFileTypeAIFF8, TrackFileTypeMonkeysAudio8:
		return 8
	case TrackFileTypeFLAC16, TrackFileTypeALAC16, TrackFileTypeAIFF16, TrackFileTypeMonkeysAudio16:
		return 16
	case TrackFileTypeFLAC24, TrackFileTypeALAC24, TrackFileTypeAIFF24, TrackFileTypeMonkeysAudio24:
		return 24
	case TrackFileTypeFLAC32, TrackFileTypeALAC32, TrackFileTypeAIFF32:
		return 32
	default:
		return 0
	}
}

// IsLossless reports whether the type is a lossless codec.
func (t TrackFileType) IsLossless() bool {
	switch t.Family() {
	case TrackFileTypeFLAC, TrackFileTypeALAC, TrackFileTypeAIFF, TrackFileTypeMonkeysAudio:
		return true
	default:
		return false
	}
}

// Extensions returns common file extensions for this type.
func (t TrackFileType) Extensions() []string {
	switch t.Family() {
	case TrackFileTypeFLAC:
		return []string{".flac"}
	case TrackFileTypeMP3CBR, TrackFileTypeMP3VBR:
		return []string{".mp3"}
	case TrackFileTypeAAC, TrackFileTypeALAC:
		return []string{".m4a", ".mp4"}
	case TrackFileTypeAIFF:
		return []string{".aiff", ".aif"}
	case TrackFileTypeMonkeysAudio:
		return []string{".ape"}
	case TrackFileTypeVorbis:
		return []string{".ogg", ".oga"}
	case TrackFileTypeOpus:
		return []string{".opus"}
	default:
		return nil
	}
}

// FLACForBitDepth picks the FLAC variant for a STREAMINFO bit depth.
func FLACForBitDepth(bits int) TrackFileType {
	switch bits {
	case 4:
		return TrackFileTypeFLAC4
	case 8:
		return TrackFileTypeFLAC8
	case 16:
		return TrackFileTypeFLAC16
	case 24:
		return TrackFileTypeFLAC24
	case 32:
		return TrackFileTypeFLAC32
	default:
		return TrackFileTypeFLAC
	}
}

// ALACForBitDepth picks the ALAC variant for a sample size.
func ALACForBitDepth(bits int) TrackFileType {
	switch bits {
	case 16:
		return TrackFileTypeALAC16
	case 24:
		return TrackFileTypeALAC24
	case 32:
		return TrackFileTypeALAC32
	default:
		return TrackFileTypeALAC
	}
}

// AIFFForBitDepth picks the AIFF variant for a COMM chunk sample size.
func AIFFForBitDepth(bits int) TrackFileType {
	switch bits {
	case 4:
		return TrackFileTypeAIFF4
	case 8:
		return TrackFileTypeAIFF8
	case 16:
		return TrackFileTypeAIFF16
	case 24:
		return TrackFileTypeAIFF24
	case 32:
		return TrackFileTypeAIFF32
	default:
		return TrackFileTypeAIFF
	}
}

// MonkeysAudioForBitDepth picks the Monkey's Audio variant for a header
// sample size.
func MonkeysAudioForBitDepth(bits int) TrackFileType {
	switch bits {
	case 8:
		return TrackFileTypeMonkeysAudio8
	case 16:
		return TrackFileTypeMonkeysAudio16
	case 24:
		return TrackFileTypeMonkeysAudio24
	default:
		return TrackFileTypeMonkeysAudio
	}
}
