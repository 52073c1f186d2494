package main

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = ""
)

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), getVersionString())
		},
	}
}

func getVersionString() string {
	details := []string{"go: unknown"}
	rev := commit

	if info, ok := debug.ReadBuildInfo(); ok {
		details[0] = "go: " + info.GoVersion
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" && rev == "" {
				rev = setting.Value
			}
		}
	}
	if rev != "" {
		details = append(details, "commit: "+rev)
	}
	return fmt.Sprintf("%s (%s)", version, strings.Join(details, ", "))
}
