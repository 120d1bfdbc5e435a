package main

import (
	"fmt"

	"github.com/disiqueira/gotree/v3"
	"github.com/spf13/cobra"

	"github.com/simonhull/trackmeta"
	"github.com/simonhull/trackmeta/internal/catalog"
)

// renderTree groups tracks by album artists, then album. Tracks must
// already be ordered, as catalog.List returns them.
func renderTree(rootLabel string, tracks []*trackmeta.ReadOnlyTrack) string {
	root := gotree.New(rootLabel)
	artists := make(map[string]gotree.Tree)
	albums := make(map[[2]string]gotree.Tree)

	for _, t := range tracks {
		artist := t.AlbumArtists
		if artist == "" {
			artist = t.Artist
		}
		if artist == "" {
			artist = "Unknown Artist"
		}
		artistNode := artists[artist]
		if artistNode == nil {
			artistNode = root.Add(artist)
			artists[artist] = artistNode
		}

		album := t.Album
		if album == "" {
			album = "Unknown Album"
		}
		key := [2]string{artist, album}
		albumNode := albums[key]
		if albumNode == nil {
			label := album
			if t.Year > 0 {
				label = fmt.Sprintf("%s (%d)", album, t.Year)
			}
			albumNode = artistNode.Add(label)
			albums[key] = albumNode
		}

		albumNode.Add(fmt.Sprintf("%d-%02d %s [%s]", t.DiscNumber, t.TrackNumber, t.Title, t.FileType))
	}

	return root.Print()
}

func newTreeCommand(a *app) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show the catalog grouped by album artist and album",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Open(a.cfg.Catalog.DBPath)
			if err != nil {
				return err
			}
			defer cat.Close()

			source := a.cfg.Scan.Source
			if all {
				source = ""
			}
			tracks, err := cat.List(cmd.Context(), source)
			if err != nil {
				return err
			}

			label := a.cfg.Catalog.DBPath
			if source != "" {
				label += " [" + source + "]"
			}
			fmt.Fprint(cmd.OutOrStdout(), renderTree(label, tracks))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include every source")
	return cmd
}
