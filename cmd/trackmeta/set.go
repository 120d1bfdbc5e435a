package main

import (
	"github.com/spf13/cobra"

	"github.com/simonhull/trackmeta"
)

func newSetCommand(a *app) *cobra.Command {
	var (
		title, artist, album, albumArtists string
		backup                             string
		verify, keepModTime                bool
	)

	cmd := &cobra.Command{
		Use:   "set <file>",
		Short: "Write tag fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			track, err := trackmeta.OpenReadWrite(args[0], a.cfg.Scan.Source, a.openOptions()...)
			if err != nil {
				return err
			}
			defer track.Close()

			setters := []struct {
				flag  string
				value string
				set   func(string) error
			}{
				{"title", title, track.SetTitle},
				{"artist", artist, track.SetArtist},
				{"album", album, track.SetAlbum},
				{"album-artists", albumArtists, track.SetAlbumArtists},
			}
			changed := 0
			for _, s := range setters {
				if !cmd.Flags().Changed(s.flag) {
					continue
				}
				if err := s.set(s.value); err != nil {
					return err
				}
				changed++
			}
			if changed == 0 {
				a.logger.Warn("no fields given, nothing to save")
				return nil
			}

			var saveOpts []trackmeta.SaveOption
			if backup != "" {
				saveOpts = append(saveOpts, trackmeta.WithBackup(backup))
			}
			if verify {
				saveOpts = append(saveOpts, trackmeta.WithValidation())
			}
			if keepModTime {
				saveOpts = append(saveOpts, trackmeta.WithPreserveModTime())
			}
			if err := track.Save(saveOpts...); err != nil {
				return err
			}

			a.logger.WithField("path", args[0]).Infof("saved %d field(s)", changed)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&title, "title", "", "track title")
	flags.StringVar(&artist, "artist", "", "track artist")
	flags.StringVar(&album, "album", "", "album name")
	flags.StringVar(&albumArtists, "album-artists", "", `album artists, joined with ";"`)
	flags.StringVar(&backup, "backup", "", "copy the file to <file><suffix> before saving")
	flags.BoolVar(&verify, "verify", false, "re-read the file after saving and compare")
	flags.BoolVar(&keepModTime, "preserve-mtime", false, "keep the file modification time")
	return cmd
}
