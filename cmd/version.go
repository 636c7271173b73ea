package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is stamped with -ldflags "-X .../cmd.version=v1.2.3".
var version = "(devel)"

// buildVersion prefers the stamped version, then the module version
// recorded by go install.
func buildVersion() string {
	if version != "(devel)" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return version
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the EduTutor version",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "edututor", buildVersion())

		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			fmt.Fprintf(out, "go:        %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			if info, ok := debug.ReadBuildInfo(); ok {
				for _, s := range info.Settings {
					if s.Key == "vcs.revision" {
						fmt.Fprintf(out, "revision:  %s\n", s.Value)
					}
				}
			}
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolP("verbose", "v", false, "also print Go and VCS build details")
}
