package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dilrevx/fix-compile/pkg/analyzer"
	"github.com/Dilrevx/fix-compile/pkg/config"
	"github.com/Dilrevx/fix-compile/pkg/executor"
	"github.com/Dilrevx/fix-compile/pkg/fixer"
	"github.com/Dilrevx/fix-compile/pkg/logcache"
	"github.com/Dilrevx/fix-compile/pkg/model"
	"github.com/Dilrevx/fix-compile/pkg/patch"
)

var (
	dockerTag      string
	dockerfilePath string
	dockerContext  string
	retryCeiling   int
	autoApply      bool
	noFix          bool
	noExec         bool
	noCache        bool
	devMode        bool
	verbose        bool
	providerName   string
	modelName      string
)

func NewDockerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docker",
		Short: "Docker build/run with auto-fix",
		Long: `Run docker build or docker run, and when the command fails, analyze the
failure with AI, apply the suggested Dockerfile fix, and retry - bounded
by the retry ceiling.`,
	}

	cmd.PersistentFlags().StringVarP(&dockerTag, "tag", "t", "fix-compile:latest", "Image tag")
	cmd.PersistentFlags().StringVarP(&dockerfilePath, "file", "f", "Dockerfile", "Path to Dockerfile")
	cmd.PersistentFlags().StringVarP(&dockerContext, "context", "c", ".", "Docker build context path")
	cmd.PersistentFlags().IntVar(&retryCeiling, "retry", fixer.DefaultRetryCeiling, "Maximum fix attempts")
	cmd.PersistentFlags().BoolVarP(&autoApply, "yes", "y", false, "Apply fixes without confirmation")
	cmd.PersistentFlags().BoolVar(&noFix, "no-fix", false, "Disable AI analysis")
	cmd.PersistentFlags().BoolVar(&noExec, "no-exec", false, "Skip execution and analyze the latest cached log")
	cmd.PersistentFlags().BoolVar(&devMode, "dev", false, "Load .env from the working directory")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().StringVar(&providerName, "provider", "", "LLM provider (claude, openai)")
	cmd.PersistentFlags().StringVar(&modelName, "model", "", "LLM model override")

	buildCmd := &cobra.Command{
		Use:   "build [-- EXTRA_DOCKER_ARGS...]",
		Short: "Build a Docker image with auto-fix",
		Example: `  # Build with auto-fix, asking before each applied fix
  fix-compile docker build -t myapp:v1 -f docker/Dockerfile

  # Apply fixes without confirmation
  fix-compile docker build -t myapp:v1 -y

  # Analyze the last captured build log without rebuilding first
  fix-compile docker build --no-exec`,
		RunE: runDockerBuild,
	}
	buildCmd.Flags().BoolVar(&noCache, "no-cache", false, "Build without cache")

	runCmd := &cobra.Command{
		Use:   "run [-- EXTRA_DOCKER_ARGS...]",
		Short: "Run a Docker container with auto-fix",
		Long: `Run the tagged image. A run failure that gets a fix applied triggers a
rebuild of the image before the run is retried, drawing from the same
retry budget.`,
		RunE: runDockerRun,
	}

	cmd.AddCommand(buildCmd, runCmd)
	return cmd
}

func runDockerBuild(cmd *cobra.Command, args []string) error {
	buildCommand := buildCommandLine(args)
	return runSession(cmd, model.OpBuild, buildCommand, nil)
}

func runDockerRun(cmd *cobra.Command, args []string) error {
	runCommand := append([]string{"docker", "run", "--rm"}, args...)
	runCommand = append(runCommand, dockerTag)
	return runSession(cmd, model.OpRun, buildCommandLine(nil), runCommand)
}

func buildCommandLine(extra []string) []string {
	command := []string{"docker", "build", "-t", dockerTag, "-f", dockerfilePath}
	if noCache {
		command = append(command, "--no-cache")
	}
	command = append(command, extra...)
	return append(command, dockerContext)
}

func runSession(cmd *cobra.Command, kind model.OperationKind, buildCommand, runCommand []string) error {
	cfg, err := config.Load(devMode)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("retry") && cfg.RetryCeiling > 0 {
		retryCeiling = cfg.RetryCeiling
	}
	if providerName == "" {
		providerName = cfg.Provider
	}
	if modelName == "" {
		modelName = cfg.Model
	}

	printHeader(kind, dockerfilePath)
	if verbose {
		fmt.Printf("Build command: %v\n", buildCommand)
		if runCommand != nil {
			fmt.Printf("Run command: %v\n", runCommand)
		}
		fmt.Printf("Log directory: %s\n", cfg.LogDir)
	}

	cache := logcache.New(cfg.LogDir)
	exec := executor.New(cache)
	// BuildKit's interleaved progress output is hard for the reasoning
	// service to read; the legacy builder logs are plain.
	exec.Env = []string{"DOCKER_BUILDKIT=0"}

	var suggester fixer.Suggester
	if !noFix {
		brain, err := analyzer.NewFromEnv(providerName, modelName, cfg.Timeout())
		if err != nil {
			return err
		}
		suggester = spinnerSuggester{inner: brain}
	}

	session := fixer.NewSession(exec, suggester, patch.New(autoApply), cache, fixer.Options{
		TargetFile:   dockerfilePath,
		WorkDir:      dockerContext,
		BuildCommand: buildCommand,
		RunCommand:   runCommand,
		Kind:         kind,
		RetryCeiling: retryCeiling,
		FixerEnabled: !noFix,
		NoExec:       noExec,
	})

	report, err := session.Run(cmd.Context())
	if err != nil {
		return err
	}

	if report.State == fixer.StateSucceeded {
		printSuccess(fmt.Sprintf("docker %s succeeded after %d attempt(s)", kind, len(report.Attempts)))
		return nil
	}

	printError(report.Reason)
	return &fixer.SessionError{State: report.State, Reason: report.Reason}
}
