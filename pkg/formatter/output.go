package formatter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/Dilrevx/fix-compile/pkg/model"
)

// DisplaySuggestion formats and displays a fix suggestion
func DisplaySuggestion(suggestion *model.FixSuggestion, format string) error {
	switch format {
	case "json":
		return displayJSON(suggestion)
	case "yaml":
		return displayYAML(suggestion)
	case "human":
		fallthrough
	default:
		displayHuman(suggestion)
	}
	return nil
}

func displayJSON(suggestion *model.FixSuggestion) error {
	output, err := json.MarshalIndent(suggestion, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(output))
	return nil
}

func displayYAML(suggestion *model.FixSuggestion) error {
	output, err := yaml.Marshal(suggestion)
	if err != nil {
		return err
	}
	fmt.Println(string(output))
	return nil
}

func displayHuman(suggestion *model.FixSuggestion) {
	red := color.New(color.FgRed, color.Bold)
	green := color.New(color.FgGreen, color.Bold)
	cyan := color.New(color.FgCyan, color.Bold)

	fmt.Println()

	red.Println("💡 ROOT CAUSE:")
	fmt.Printf("   %s\n\n", suggestion.Reason)

	cyan.Printf("🏷  CATEGORY: %s\n\n", suggestion.Category)

	confidenceColor(suggestion.Confidence).Printf("📊 CONFIDENCE: %.0f%%\n\n", suggestion.Confidence*100)

	green.Println("🚀 CHANGES:")
	fmt.Printf("   %s\n\n", suggestion.ChangesSummary)

	if suggestion.NewContent != "" {
		cyan.Println("📄 NEW DOCKERFILE:")
		for _, line := range strings.Split(strings.TrimRight(suggestion.NewContent, "\n"), "\n") {
			fmt.Printf("   %s\n", line)
		}
		fmt.Println()
	}

	fmt.Println(strings.Repeat("─", 80))
	fmt.Printf("💡 %s\n", color.HiBlackString("Run with -o json or -o yaml for machine-readable output"))
}

func confidenceColor(confidence float64) *color.Color {
	switch {
	case confidence >= 0.8:
		return color.New(color.FgGreen, color.Bold)
	case confidence >= 0.5:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}
