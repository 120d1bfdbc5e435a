package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/simonhull/trackmeta"
	"github.com/simonhull/trackmeta/internal/catalog"
)

// scanFamilies lists one type per family; Extensions covers the rest.
var scanFamilies = []trackmeta.TrackFileType{
	trackmeta.TrackFileTypeFLAC,
	trackmeta.TrackFileTypeMP3CBR,
	trackmeta.TrackFileTypeAAC,
	trackmeta.TrackFileTypeAIFF,
	trackmeta.TrackFileTypeMonkeysAudio,
	trackmeta.TrackFileTypeVorbis,
	trackmeta.TrackFileTypeOpus,
}

func audioExtensions() map[string]bool {
	exts := make(map[string]bool)
	for _, ft := range scanFamilies {
		for _, ext := range ft.Extensions() {
			exts[ext] = true
		}
	}
	return exts
}

// collectAudioFiles walks root and returns files with a known audio
// extension, in lexical order.
func collectAudioFiles(root string) ([]string, error) {
	exts := audioExtensions()

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if exts[strings.ToLower(filepath.Ext(path))] {
			paths = append(paths, path)
		}
		return nil
	})
	return paths, err
}

// scanResult summarizes one scan.
type scanResult struct {
	Found   int
	Stored  int
	Skipped int
}

// scanInto opens every path and stores the snapshots. Files the engine
// does not support are skipped; any other error stops the scan.
func scanInto(ctx context.Context, cat *catalog.Catalog, paths []string, source string, logger *log.Entry, opts ...trackmeta.Option) (scanResult, error) {
	res := scanResult{Found: len(paths)}

	tracks, err := trackmeta.OpenMany(ctx, source, paths, opts...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return res, ctxErr
		}
		// Retry one at a time so a single unsupported file does not
		// hide the rest.
		tracks, res.Skipped, err = openEach(ctx, paths, source, logger, opts...)
		if err != nil {
			return res, err
		}
	}

	if err := cat.UpsertAll(ctx, tracks); err != nil {
		return res, err
	}
	res.Stored = len(tracks)
	return res, nil
}

func openEach(ctx context.Context, paths []string, source string, logger *log.Entry, opts ...trackmeta.Option) ([]*trackmeta.ReadOnlyTrack, int, error) {
	var (
		tracks  []*trackmeta.ReadOnlyTrack
		skipped int
	)
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, skipped, err
		}

		t, err := trackmeta.Open(path, source, opts...)
		var unsupported *trackmeta.UnsupportedFormatError
		switch {
		case errors.As(err, &unsupported):
			logger.WithField("path", path).Debug("skipping unsupported file")
			skipped++
			continue
		case err != nil:
			return nil, skipped, err
		}
		tracks = append(tracks, t)
	}
	return tracks, skipped, nil
}

func newScanCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "scan <dir>",
		Short: "Walk a directory and store snapshots in the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := collectAudioFiles(args[0])
			if err != nil {
				return fmt.Errorf("walk %s: %w", args[0], err)
			}

			cat, err := catalog.Open(a.cfg.Catalog.DBPath)
			if err != nil {
				return err
			}
			defer cat.Close()

			res, err := scanInto(cmd.Context(), cat, paths, a.cfg.Scan.Source, a.logger, a.openOptions()...)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "found %d, stored %d, skipped %d\n", res.Found, res.Stored, res.Skipped)
			return nil
		},
	}
}
