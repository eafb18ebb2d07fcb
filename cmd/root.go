package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/CoreMedia/joala-sub001/internal/runner"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates that every target became ready.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (invalid arguments, unreadable plan, broken target).
	ExitCodeError = 1
	// ExitCodeFailed indicates that at least one target did not become ready in time.
	ExitCodeFailed = 2
	// ExitCodeSkipped indicates that only assumed targets did not become ready.
	ExitCodeSkipped = 3
)

// rootCmd represents the base command for the joala application.
var rootCmd = &cobra.Command{
	Use:   "joala",
	Short: "Wait for services, files and cluster objects to become ready",
	Long: `joala polls HTTP endpoints, TCP ports, files and Kubernetes objects until
they reach the expected state or a timeout expires. It is meant for test
setups and deployment scripts that must not continue before their
dependencies are up.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "joala version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
// This provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}

	var failed *runner.FailedError
	if errors.As(err, &failed) {
		return ExitCodeFailed
	}

	var skipped *runner.SkippedError
	if errors.As(err, &skipped) {
		return ExitCodeSkipped
	}

	return ExitCodeError
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newWaitCmd())
}
