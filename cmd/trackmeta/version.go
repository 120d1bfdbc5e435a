package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simonhull/trackmeta"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and engine information",
		Args:  cobra.NoArgs,
		// Skip the root setup; version needs no configuration.
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			info := trackmeta.ReadBuildInfo()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "trackmeta %s\n", info.Version)
			fmt.Fprintf(out, "  commit:  %s\n", info.GitCommit)
			fmt.Fprintf(out, "  built:   %s\n", info.BuildTime)
			fmt.Fprintf(out, "  go:      %s\n", info.GoVersion)
			fmt.Fprintf(out, "  engines: %s (default %s)\n", strings.Join(info.Engines, ", "), info.DefaultEngine)
		},
	}
}
