package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/CoreMedia/joala-sub001/pkg/condition"
	"github.com/CoreMedia/joala-sub001/pkg/timeout"
)

// newVersionCmd creates the Cobra command for displaying the application version.
func newVersionCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of joala",
		Long:  `Print the version of joala. With --verbose it also prints the Go runtime and the built-in timing defaults.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "joala version %s\n", rootCmd.Version)
			if verbose {
				fmt.Fprintf(out, "go: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
				fmt.Fprintf(out, "default timeout: %s\n", timeout.DefaultTimeout)
				fmt.Fprintf(out, "default poll interval: %s\n", condition.DefaultPollInterval)
			}
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Also print runtime and timing defaults")
	return cmd
}
