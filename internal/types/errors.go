package types

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrClosed is returned by ReadWriteTrack methods after Close.
var ErrClosed = errors.New("track is closed")

// FileNotFoundError is returned when the path does not exist.
//
// The check happens before any native call, so no handle is ever
// allocated for a missing file.
type FileNotFoundError struct {
	Path string
	Err  error
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("%s: file not found", e.Path)
}

// Unwrap returns the underlying stat error (fs.ErrNotExist when unset).
func (e *FileNotFoundError) Unwrap() error {
	if e.Err == nil {
		return fs.ErrNotExist
	}
	return e.Err
}

// PathEncodingError is returned when a path cannot cross the native
// boundary as a NUL-terminated UTF-8 string.
type PathEncodingError struct {
	Path   string
	Reason string
}

func (e *PathEncodingError) Error() string {
	return fmt.Sprintf("%q: invalid path encoding: %s", e.Path, e.Reason)
}

// UnsupportedFormatError is returned when the engine classifies the file
// as an unknown track type.
type UnsupportedFormatError struct {
	Path   string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: unsupported format: %s", e.Path, e.Reason)
}

// EmbeddedNulError is returned when a value to be written contains a NUL
// byte and therefore cannot be encoded as a C string.
type EmbeddedNulError struct {
	Field  string
	Offset int
}

func (e *EmbeddedNulError) Error() string {
	return fmt.Sprintf("%s: value contains NUL byte at offset %d", e.Field, e.Offset)
}

// TextEncodingError is returned when a value to be written is not valid
// UTF-8.
type TextEncodingError struct {
	Field  string
	Offset int
}

func (e *TextEncodingError) Error() string {
	return fmt.Sprintf("%s: value is not valid UTF-8 at offset %d", e.Field, e.Offset)
}

// SaveError is returned when the engine reports that a save did not
// reach the disk.
type SaveError struct {
	Path   string
	Reason string
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("%s: save failed: %s", e.Path, e.Reason)
}

// UnsupportedWriteError indicates the active engine cannot write this file.
type UnsupportedWriteError struct {
	Reason   string
	FileType TrackFileType
}

func (e *UnsupportedWriteError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("write not supported for %s: %s", e.FileType, e.Reason)
	}
	return fmt.Sprintf("write not supported for %s", e.FileType)
}

// ValidationError reports a field that did not survive a save round trip.
type ValidationError struct {
	Field string
	Got   string
	Want  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s mismatch: got %q, want %q", e.Field, e.Got, e.Want)
}

// StrictParsingError is returned by strict mode for the first warning
// raised while building a snapshot.
type StrictParsingError struct {
	Path    string
	Warning Warning
}

func (e *StrictParsingError) Error() string {
	return fmt.Sprintf("%s: strict parsing failed: %s", e.Path, e.Warning)
}

// Warning represents a non-fatal issue encountered while building a snapshot.
//
// Warnings indicate problems that don't prevent metadata extraction, such
// as cover art whose header cannot be decoded or that exceeds the configured
// size limit. They are collected in ReadOnlyTrack.Warnings.
type Warning struct {
	// Stage where the warning occurred
	Stage string // "artwork", "metadata"

	// Warning message
	Message string

	// Byte offset where the issue occurred (0 if not applicable)
	Offset int64
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("%s (at offset %d): %s", w.Stage, w.Offset, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}
