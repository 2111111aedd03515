// ABOUTME: Version command reporting the build stamp
// ABOUTME: Values are injected at link time through SetVersion
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var buildVersion, buildCommit, buildDate = "dev", "none", "unknown"

// SetVersion records the build stamp (called from main with ldflags values).
func SetVersion(version, commit, date string) {
	buildVersion, buildCommit, buildDate = version, commit, date
}

// NewVersionCmd creates the version command
func NewVersionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the version, commit hash, and build date of this binary.`,
		Run: func(cmd *cobra.Command, args []string) {
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), buildVersion)
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "studyengine %s (commit %s, built %s)\n",
				buildVersion, buildCommit, buildDate)
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "print only the version number")
	return cmd
}
