// Package patch applies fix suggestions to the target build-descriptor
// file, optionally gated behind an interactive confirmation.
package patch

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/Dilrevx/fix-compile/pkg/model"
)

// Applier overwrites the target file with a suggestion's replacement
// content. The write is a full-file overwrite; a best-effort backup of
// the prior content is left alongside.
type Applier struct {
	// AutoApply skips the interactive prompt.
	AutoApply bool
	// In is the confirmation input stream. Defaults to os.Stdin.
	In io.Reader
	// Out receives prompts and status lines. Defaults to os.Stdout.
	Out io.Writer
}

// New returns an Applier in the given confirmation mode wired to the
// process's stdin/stdout.
func New(autoApply bool) *Applier {
	return &Applier{AutoApply: autoApply, In: os.Stdin, Out: os.Stdout}
}

// Apply writes suggestion.NewContent to path. An empty replacement is a
// no-op returning false. In ask mode a non-affirmative answer returns
// false without touching the file.
func (a *Applier) Apply(path string, suggestion *model.FixSuggestion) (bool, error) {
	out := a.Out
	if out == nil {
		out = os.Stdout
	}

	if suggestion.NewContent == "" {
		fmt.Fprintln(out, color.YellowString("Suggestion has no replacement content, nothing to apply"))
		return false, nil
	}

	a.present(out, suggestion)

	if !a.AutoApply {
		ok, err := a.confirm(out)
		if err != nil {
			return false, err
		}
		if !ok {
			fmt.Fprintln(out, color.YellowString("Fix rejected"))
			return false, nil
		}
	}

	if err := a.backup(path, out); err != nil {
		// A failed backup must not block the fix.
		fmt.Fprintf(out, "%s\n", color.YellowString("Warning: could not create backup: %v", err))
	}

	if err := os.WriteFile(path, []byte(suggestion.NewContent), 0644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}

	fmt.Fprintf(out, "%s\n", color.GreenString("✓ Applied fix to %s", path))
	return true, nil
}

func (a *Applier) present(out io.Writer, s *model.FixSuggestion) {
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Fprintln(out, "\nProposed fix:")
	fmt.Fprintf(out, "  Category:   %s\n", s.Category)
	fmt.Fprintf(out, "  Reason:     %s\n", s.Reason)
	fmt.Fprintf(out, "  Changes:    %s\n", s.ChangesSummary)
	fmt.Fprintf(out, "  Confidence: %.0f%%\n", s.Confidence*100)
}

func (a *Applier) confirm(out io.Writer) (bool, error) {
	in := a.In
	if in == nil {
		in = os.Stdin
	}

	fmt.Fprint(out, "Apply this fix? [y/N]: ")
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false, fmt.Errorf("read confirmation: %w", err)
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func (a *Applier) backup(path string, out io.Writer) error {
	original, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	backupPath := path + ".backup"
	if err := os.WriteFile(backupPath, original, 0644); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s\n", color.HiBlackString("Backup created: %s", backupPath))
	return nil
}
