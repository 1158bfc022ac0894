package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"

	"github.com/Dilrevx/fix-compile/pkg/fixer"
	"github.com/Dilrevx/fix-compile/pkg/model"
)

func printSuccess(msg string) {
	green := color.New(color.FgGreen)
	green.Printf("✓ %s\n", msg)
}

func printError(msg string) {
	red := color.New(color.FgRed)
	red.Printf("✗ %s\n", msg)
}

func printWarning(msg string) {
	yellow := color.New(color.FgYellow)
	yellow.Printf("! %s\n", msg)
}

func printHeader(kind model.OperationKind, target string) {
	cyan := color.New(color.FgCyan, color.Bold)
	fmt.Println()
	cyan.Println("🔧 Docker Auto-Fix")
	fmt.Printf("📝 Operation: docker %s\n", kind)
	fmt.Printf("📄 Dockerfile: %s\n", target)
	fmt.Println()
}

// spinnerSuggester shows progress while the reasoning-service round trip
// is in flight.
type spinnerSuggester struct {
	inner fixer.Suggester
}

func (s spinnerSuggester) Suggest(ctx context.Context, failureText, fileContents string, kind model.OperationKind, previousAttempts int) (*model.FixSuggestion, error) {
	sp := spinner.New(spinner.CharSets[11], 100*time.Millisecond)
	sp.Suffix = " Analyzing failure with AI..."
	sp.Start()
	defer sp.Stop()
	return s.inner.Suggest(ctx, failureText, fileContents, kind, previousAttempts)
}
