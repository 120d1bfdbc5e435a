package trackmeta

import (
	"github.com/simonhull/trackmeta/internal/types"
)

// ErrClosed is returned by ReadWriteTrack methods after Close.
var ErrClosed = types.ErrClosed

// FileNotFoundError is an alias to types.FileNotFoundError.
// Re-exporting from internal/types to maintain public API.
type FileNotFoundError = types.FileNotFoundError

// PathEncodingError is an alias to types.PathEncodingError.
// Re-exporting from internal/types to maintain public API.
type PathEncodingError = types.PathEncodingError

// UnsupportedFormatError is an alias to types.UnsupportedFormatError.
// Re-exporting from internal/types to maintain public API.
type UnsupportedFormatError = types.UnsupportedFormatError

// EmbeddedNulError is an alias to types.EmbeddedNulError.
// Re-exporting from internal/types to maintain public API.
type EmbeddedNulError = types.EmbeddedNulError

// TextEncodingError is an alias to types.TextEncodingError.
// Re-exporting from internal/types to maintain public API.
type TextEncodingError = types.TextEncodingError

// SaveError is an alias to types.SaveError.
// Re-exporting from internal/types to maintain public API.
type SaveError = types.SaveError

// UnsupportedWriteError is an alias to types.UnsupportedWriteError.
// Re-exporting from internal/types to maintain public API.
type UnsupportedWriteError = types.UnsupportedWriteError

// ValidationError is an alias to types.ValidationError.
// Re-exporting from internal/types to maintain public API.
type ValidationError = types.ValidationError

// StrictParsingError is an alias to types.StrictParsingError.
// Returned by WithStrictParsing when a snapshot has warnings.
type StrictParsingError = types.StrictParsingError

// Warning is an alias to types.Warning.
// Re-exporting from internal/types to maintain public API.
type Warning = types.Warning
