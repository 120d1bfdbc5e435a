package trackmeta

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains []string
	}{
		{
			name:     "file not found",
			err:      &FileNotFoundError{Path: "song.flac"},
			contains: []string{"song.flac", "file not found"},
		},
		{
			name:     "path encoding",
			err:      &PathEncodingError{Path: "a\x00b", Reason: "contains NUL byte"},
			contains: []string{"invalid path encoding", "contains NUL byte"},
		},
		{
			name:     "unsupported format",
			err:      &UnsupportedFormatError{Path: "notes.txt", Reason: "not recognized by the tag engine"},
			contains: []string{"notes.txt", "unsupported format", "not recognized"},
		},
		{
			name:     "embedded NUL",
			err:      &EmbeddedNulError{Field: "title", Offset: 4},
			contains: []string{"title", "NUL byte", "offset 4"},
		},
		{
			name:     "text encoding",
			err:      &TextEncodingError{Field: "artist", Offset: 3},
			contains: []string{"artist", "not valid UTF-8", "offset 3"},
		},
		{
			name:     "save",
			err:      &SaveError{Path: "song.mp3", Reason: "engine reported failure"},
			contains: []string{"song.mp3", "save failed", "engine reported failure"},
		},
		{
			name:     "unsupported write",
			err:      &UnsupportedWriteError{FileType: TrackFileTypeOpus, Reason: "tag engine is read-only"},
			contains: []string{"write not supported for Opus", "read-only"},
		},
		{
			name:     "validation",
			err:      &ValidationError{Field: "title", Got: "Old", Want: "New"},
			contains: []string{"title mismatch", `"Old"`, `"New"`},
		},
		{
			name:     "strict parsing",
			err:      &StrictParsingError{Path: "song.flac", Warning: Warning{Stage: "artwork", Message: "cover art not decodable"}},
			contains: []string{"song.flac", "strict parsing failed", "artwork: cover art not decodable"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, substr := range tt.contains {
				if !strings.Contains(msg, substr) {
					t.Errorf("error message %q should contain %q", msg, substr)
				}
			}
		})
	}
}

func TestFileNotFoundError_Unwrap(t *testing.T) {
	if !errors.Is(&FileNotFoundError{Path: "x"}, fs.ErrNotExist) {
		t.Error("FileNotFoundError without Err should match fs.ErrNotExist")
	}
}

func TestWarning_String(t *testing.T) {
	w := Warning{Stage: "artwork", Message: "cover art not decodable"}
	if got := w.String(); got != "artwork: cover art not decodable" {
		t.Errorf("String() = %q", got)
	}

	w.Offset = 42
	if got := w.String(); !strings.Contains(got, "at offset 42") {
		t.Errorf("String() = %q, want offset", got)
	}
}
