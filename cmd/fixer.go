package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Dilrevx/fix-compile/pkg/analyzer"
	"github.com/Dilrevx/fix-compile/pkg/config"
	"github.com/Dilrevx/fix-compile/pkg/formatter"
	"github.com/Dilrevx/fix-compile/pkg/logcache"
	"github.com/Dilrevx/fix-compile/pkg/model"
)

var (
	fixerFile      string
	fixerOperation string
	fixerOutput    string
	fixerCached    bool
	fixerDev       bool
	fixerProvider  string
	fixerModel     string
)

func NewFixerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fixer [LOG_FILE]",
		Short: "Analyze a failure log and suggest a fix (read-only)",
		Long: `Analyze a captured failure log against a Dockerfile and print the
suggested fix. This command never executes anything and never modifies
files. The log comes from the given file, or from the latest cached log
when --no-exec is set.

The cached log is used verbatim; it is the caller's responsibility that
it belongs to the targeted Dockerfile and operation.`,
		Example: `  # Analyze a saved build log
  fix-compile fixer build-error.log -f Dockerfile

  # Analyze the most recent cached log
  fix-compile fixer --no-exec

  # Machine-readable output
  fix-compile fixer build-error.log -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runFixer,
	}

	cmd.Flags().StringVarP(&fixerFile, "file", "f", "Dockerfile", "Path to Dockerfile")
	cmd.Flags().StringVar(&fixerOperation, "operation", "build", "Operation kind (build, run)")
	cmd.Flags().StringVarP(&fixerOutput, "output", "o", "human", "Output format (human, json, yaml)")
	cmd.Flags().BoolVar(&fixerCached, "no-exec", false, "Analyze the latest cached log")
	cmd.Flags().BoolVar(&fixerDev, "dev", false, "Load .env from the working directory")
	cmd.Flags().StringVar(&fixerProvider, "provider", "", "LLM provider (claude, openai)")
	cmd.Flags().StringVar(&fixerModel, "model", "", "LLM model override")

	return cmd
}

func runFixer(cmd *cobra.Command, args []string) error {
	kind := model.OperationKind(fixerOperation)
	if kind != model.OpBuild && kind != model.OpRun {
		return fmt.Errorf("invalid operation %q (expected build or run)", fixerOperation)
	}

	cfg, err := config.Load(fixerDev)
	if err != nil {
		return err
	}

	var failureText string
	switch {
	case fixerCached:
		path, content, err := logcache.New(cfg.LogDir).ReadLatest()
		if err != nil {
			return fmt.Errorf("no cached log to analyze: %w", err)
		}
		fmt.Printf("Using cached log: %s\n", path)
		failureText = content
	case len(args) == 1:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read log file: %w", err)
		}
		failureText = string(data)
	default:
		return fmt.Errorf("provide a log file or use --no-exec")
	}

	dockerfile, err := os.ReadFile(fixerFile)
	if err != nil {
		return fmt.Errorf("read Dockerfile: %w", err)
	}

	if fixerProvider == "" {
		fixerProvider = cfg.Provider
	}
	if fixerModel == "" {
		fixerModel = cfg.Model
	}
	brain, err := analyzer.NewFromEnv(fixerProvider, fixerModel, cfg.Timeout())
	if err != nil {
		return err
	}

	suggestion, err := spinnerSuggester{inner: brain}.Suggest(cmd.Context(), failureText, string(dockerfile), kind, 0)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	return formatter.DisplaySuggestion(suggestion, fixerOutput)
}
