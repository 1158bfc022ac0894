package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dilrevx/fix-compile/pkg/config"
	"github.com/Dilrevx/fix-compile/pkg/executor"
	"github.com/Dilrevx/fix-compile/pkg/logcache"
)

var (
	execCwd string
	execDev bool
)

func NewExecCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec -- COMMAND [ARGS...]",
		Short: "Execute an arbitrary command and cache its log",
		Example: `  # Run a command, streaming its output while caching it
  fix-compile exec -- ls -la /app

  # Cache a failing build log for later analysis with 'fixer'
  fix-compile exec -- make build`,
		Args: cobra.MinimumNArgs(1),
		RunE: runExec,
	}

	cmd.Flags().StringVar(&execCwd, "cwd", "", "Working directory for the command")
	cmd.Flags().BoolVar(&execDev, "dev", false, "Load .env from the working directory")

	return cmd
}

func runExec(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(execDev)
	if err != nil {
		return err
	}

	cache := logcache.New(cfg.LogDir)
	exec := executor.New(cache)

	result, err := exec.Run(cmd.Context(), args, execCwd)
	if err != nil {
		return err
	}

	fmt.Printf("Log saved to %s\n", result.LogPath)
	if result.Success() {
		printSuccess("Command executed successfully")
	} else {
		printWarning(fmt.Sprintf("Command exited with code %d", result.ExitCode))
	}
	return nil
}
