// Package trackmeta reads and edits audio track metadata through a native
// tag engine.
//
// Every native allocation is owned by exactly one Go value. Buffers the
// engine returns are copied and released inside the call that received
// them, and handles are released exactly once, either before Open returns
// or by ReadWriteTrack.Close.
//
// # Quick Start
//
// Reading metadata from an audio file:
//
//	track, err := trackmeta.Open("song.flac", "library")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Printf("%s - %s\n", track.Artist, track.Title)
//	fmt.Printf("Duration: %s\n", track.Duration)
//
// The returned ReadOnlyTrack is a plain value: it holds no native memory
// and needs no Close.
//
// # Editing
//
//	track, err := trackmeta.OpenReadWrite("song.flac", "library")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer track.Close()
//
//	if err := track.SetTitle("New Title"); err != nil {
//		log.Fatal(err)
//	}
//	if err := track.Save(trackmeta.WithValidation()); err != nil {
//		log.Fatal(err)
//	}
//
// Values written to the engine must be valid UTF-8 without NUL bytes;
// anything else is rejected before the engine is called. Text read back is
// decoded leniently, with invalid sequences replaced by U+FFFD.
//
// # Engines
//
// Two engines are available:
//
//   - katatsuki: the native library, via cgo. Built with -tags katatsuki.
//   - gotag: pure Go. Reads with dhowden/tag and writes through a
//     WebAssembly build of TagLib. Always available.
//
// The native engine is preferred when compiled in. Use WithEngine to pick
// one explicitly, or WithLibrary to supply any native.Library.
//
// # Supported Formats
//
//   - FLAC, with bit depth
//   - MP3, CBR and VBR
//   - M4A, AAC and ALAC with bit depth
//   - AIFF, with bit depth
//   - Monkey's Audio, with bit depth
//   - Ogg Vorbis and Opus
//
// # Error Handling
//
// trackmeta distinguishes between fatal errors and warnings:
//
//   - Fatal errors prevent opening (file not found, unsupported format)
//   - Warnings indicate non-fatal issues (cover art that cannot be probed)
//
// Always check track.Warnings for issues encountered while opening:
//
//	for _, w := range track.Warnings {
//		log.Printf("Warning: %s", w)
//	}
//
// Typed errors are checked with errors.As:
//
//	var notFound *trackmeta.FileNotFoundError
//	if errors.As(err, &notFound) {
//		// ...
//	}
package trackmeta
