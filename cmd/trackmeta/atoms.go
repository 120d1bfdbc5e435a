package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/disiqueira/gotree/v3"
	"github.com/spf13/cobra"
)

// atomContainers are the MP4 atoms whose payload is a list of child atoms.
var atomContainers = map[string]bool{
	"moov": true,
	"trak": true,
	"mdia": true,
	"minf": true,
	"stbl": true,
	"udta": true,
	"meta": true,
	"ilst": true,
	"edts": true,
}

// addAtoms appends the atoms found in r between offset and end to parent.
func addAtoms(parent gotree.Tree, r io.ReaderAt, offset, end int64) {
	header := make([]byte, 8)
	for offset+8 <= end {
		if _, err := r.ReadAt(header, offset); err != nil {
			return
		}

		size := binary.BigEndian.Uint32(header[0:4])
		atomType := string(header[4:8])

		// Handle extended size
		atomSize := uint64(size)
		headerSize := int64(8)
		if size == 1 {
			extSize := make([]byte, 8)
			if _, err := r.ReadAt(extSize, offset+8); err != nil {
				return
			}
			atomSize = binary.BigEndian.Uint64(extSize)
			headerSize = 16
		}
		if size == 0 {
			// Atom runs to the end of its parent
			atomSize = uint64(end - offset)
		}
		if atomSize < uint64(headerSize) || offset+int64(atomSize) > end {
			parent.Add(fmt.Sprintf("%s (bad size %d at %d)", atomType, atomSize, offset))
			return
		}

		node := parent.Add(fmt.Sprintf("%s (size: %d, offset: %d)", atomType, atomSize, offset))

		// Recurse into container atoms
		if atomContainers[atomType] {
			dataOffset := offset + headerSize

			// meta atom has 4 extra bytes
			if atomType == "meta" {
				dataOffset += 4
			}
			addAtoms(node, r, dataOffset, offset+int64(atomSize))
		}

		offset += int64(atomSize)
	}
}

func newAtomsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "atoms <file.m4a>",
		Short: "Print the MP4 atom layout of a file",
		Args:  cobra.ExactArgs(1),
		// Reads the container directly; no engine or configuration needed.
		PersistentPreRun: func(*cobra.Command, []string) {},
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			stat, err := f.Stat()
			if err != nil {
				return err
			}

			tree := gotree.New(args[0])
			addAtoms(tree, f, 0, stat.Size())
			fmt.Fprint(cmd.OutOrStdout(), tree.Print())
			return nil
		},
	}
}
