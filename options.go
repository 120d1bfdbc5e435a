package trackmeta

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/simonhull/trackmeta/internal/native"
	"github.com/simonhull/trackmeta/internal/registry"
)

// Option configures behavior when opening tracks.
//
// Options use the functional options pattern for clean, extensible APIs.
//
// Example:
//
//	track, err := trackmeta.Open("song.flac", "library",
//	    trackmeta.WithStrictParsing(),
//	    trackmeta.WithMaxArtworkSize(5<<20),
//	)
type Option func(*openOptions)

// openOptions holds configuration for opening tracks.
type openOptions struct {
	library        native.Library   // Explicit engine (overrides engine)
	engine         string           // Registry name of the engine ("" = default)
	logger         *log.Entry       // Debug tracing (nil = silent)
	clock          func() time.Time // Source of the Updated stamp
	strictParsing  bool             // Fail on any warning
	ignoreWarnings bool             // Suppress all warnings
	maxArtworkSize int              // Maximum artwork size in bytes (0 = no limit)
	concurrency    int              // OpenMany worker limit (0 = NumCPU)
}

// defaultOptions returns the default configuration.
func defaultOptions() *openOptions {
	return &openOptions{
		clock: time.Now,
	}
}

func applyOptions(opts []Option) *openOptions {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// resolveLibrary returns the engine selected by the options, falling back
// to the registry default.
func (o *openOptions) resolveLibrary() (native.Library, error) {
	if o.library != nil {
		return o.library, nil
	}
	if o.engine != "" {
		return registry.Get(o.engine)
	}
	lib, _, err := registry.Default()
	return lib, err
}

// WithEngine selects a registered tag engine by name.
//
// The pure-Go engine is always available as "gotag". The native engine is
// registered as "katatsuki" when built with the katatsuki tag. By default
// the native engine is preferred.
func WithEngine(name string) Option {
	return func(o *openOptions) {
		o.engine = name
	}
}

// WithLibrary uses lib directly instead of a registered engine.
//
// This is mainly useful for tests, which can pass a fake from
// internal/native/nativetest.
func WithLibrary(lib native.Library) Option {
	return func(o *openOptions) {
		o.library = lib
	}
}

// WithLogger traces native handle acquisition and release at debug level.
//
// By default trackmeta logs nothing.
func WithLogger(entry *log.Entry) Option {
	return func(o *openOptions) {
		o.logger = entry
	}
}

// WithClock overrides the clock used for the Updated stamp.
func WithClock(now func() time.Time) Option {
	return func(o *openOptions) {
		if now != nil {
			o.clock = now
		}
	}
}

// WithStrictParsing treats any warning as a fatal error.
//
// By default, trackmeta keeps going when cover art cannot be probed or is
// dropped for size, returning warnings alongside the snapshot.
//
// With strict parsing enabled, any warning becomes a fatal error.
//
// Example:
//
//	track, err := trackmeta.Open("song.flac", "", trackmeta.WithStrictParsing())
//	// err != nil if ANY issue is encountered
func WithStrictParsing() Option {
	return func(o *openOptions) {
		o.strictParsing = true
	}
}

// WithIgnoreWarnings suppresses all warnings.
//
// By default, warnings about non-fatal issues are collected in
// ReadOnlyTrack.Warnings. This option discards them.
func WithIgnoreWarnings() Option {
	return func(o *openOptions) {
		o.ignoreWarnings = true
	}
}

// WithMaxArtworkSize limits the size of cover art kept in a snapshot.
//
// Cover art larger than the limit is still probed for its dimensions, but
// its bytes are dropped and a warning is recorded. This prevents memory
// issues with very large embedded images.
//
// Set to 0 for no limit (default).
//
// Example:
//
//	track, err := trackmeta.Open("song.flac", "",
//	    trackmeta.WithMaxArtworkSize(10*1024*1024), // 10MB limit
//	)
func WithMaxArtworkSize(bytes int) Option {
	return func(o *openOptions) {
		o.maxArtworkSize = bytes
	}
}

// WithConcurrency limits how many tracks OpenMany opens at once.
//
// Values below 1 mean runtime.NumCPU().
func WithConcurrency(n int) Option {
	return func(o *openOptions) {
		o.concurrency = n
	}
}
