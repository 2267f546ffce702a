package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/km-arc/go-formrules/framework/app"
)

var (
	// Build information (set via ldflags during build)
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "formrules\n")
			fmt.Fprintf(out, "Version:    %s\n", app.Version)
			fmt.Fprintf(out, "Git commit: %s\n", GitCommit)
			fmt.Fprintf(out, "Build date: %s\n", BuildDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
		},
	}
}
