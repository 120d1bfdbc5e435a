package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/cobra"

	"github.com/simonhull/trackmeta"
)

func newCoverCommand(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "cover <file>",
		Short: "Extract the front cover image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// The size limit would drop the bytes we are asked to extract.
			opts := append(a.openOptions(), trackmeta.WithMaxArtworkSize(0))

			track, err := trackmeta.Open(args[0], a.cfg.Scan.Source, opts...)
			if err != nil {
				return err
			}
			art, ok := track.FrontCover()
			if !ok {
				return errors.New("no cover art")
			}

			if output == "" {
				output = coverFileName(args[0], art.MIMEType)
			}
			if err := os.WriteFile(output, art.Data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", art, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <file>.cover.<ext>)")
	return cmd
}

// coverFileName derives an output name from the track path and the
// sniffed MIME type.
func coverFileName(trackPath, mime string) string {
	ext := ".bin"
	if m := mimetype.Lookup(mime); m != nil && m.Extension() != "" {
		ext = m.Extension()
	}
	base := strings.TrimSuffix(trackPath, filepath.Ext(trackPath))
	return base + ".cover" + ext
}
