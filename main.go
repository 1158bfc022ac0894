package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Dilrevx/fix-compile/cmd"
	"github.com/Dilrevx/fix-compile/pkg/fixer"
)

var (
	version = "v0.1.0" // Overwritten at build time
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		// Terminal session states get distinct exit codes so callers can
		// tell retries-exhausted from a user or analysis abort.
		var sessionErr *fixer.SessionError
		if errors.As(err, &sessionErr) {
			os.Exit(sessionErr.ExitCode())
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fix-compile",
		Short: "Auto-fix Docker build and runtime errors with AI",
		Long: `fix-compile runs a docker build or run, captures the failure log, asks an
AI reasoning service for a Dockerfile fix, applies it, and retries - up
to a bounded number of attempts.`,
		SilenceUsage: true,
	}

	// Disable automatic 'completion' command added by cobra
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Add subcommands
	rootCmd.AddCommand(
		cmd.NewDockerCmd(),
		cmd.NewExecCmd(),
		cmd.NewFixerCmd(),
		cmd.NewConfigCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("fix-compile version %s\n", version)
		},
	}
}
