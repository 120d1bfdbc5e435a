package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/simonhull/trackmeta"
)

func newShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <file>...",
		Short: "Print track metadata",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for i, path := range args {
				track, err := trackmeta.Open(path, a.cfg.Scan.Source, a.openOptions()...)
				if err != nil {
					return err
				}
				if i > 0 {
					fmt.Fprintln(out)
				}
				printTrack(out, track)
			}
			return nil
		},
	}
}

func printTrack(w io.Writer, t *trackmeta.ReadOnlyTrack) {
	row := func(label string, value any) {
		fmt.Fprintf(w, "%-14s %v\n", label+":", value)
	}

	row("File", t.FilePath)
	row("Type", t.FileType)
	row("Title", t.Title)
	row("Artist", t.Artist)
	row("Album", t.Album)
	if t.AlbumArtists != "" {
		row("Album Artists", strings.ReplaceAll(t.AlbumArtists, ";", ", "))
	}
	if t.Year > 0 {
		row("Year", t.Year)
	}
	row("Track", fmt.Sprintf("%d (disc %d)", t.TrackNumber, t.DiscNumber))
	row("Duration", t.Duration.Round(time.Second))
	row("Bitrate", fmt.Sprintf("%d kbps", t.Bitrate))
	row("Sample Rate", fmt.Sprintf("%d Hz", t.SampleRate))
	if t.MusicBrainzTrackID != "" {
		row("MusicBrainz", t.MusicBrainzTrackID)
	}
	if art, ok := t.FrontCover(); ok {
		row("Cover", art)
	} else if t.HasFrontCover {
		row("Cover", "present (not loaded)")
	}
	row("Source", t.Source)
	row("Updated", t.Updated)
	for _, warn := range t.Warnings {
		row("Warning", warn)
	}
}
