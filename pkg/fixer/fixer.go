// Package fixer drives the auto-fix loop: run the external command, and
// on failure ask the reasoning service for a fix, apply it, and retry,
// bounded by a shared attempt budget.
package fixer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/Dilrevx/fix-compile/pkg/model"
)

// State is the orchestrator's position in the fix loop. Succeeded,
// Exhausted and Aborted are terminal.
type State string

const (
	StateRunning              State = "running"
	StateAwaitingConfirmation State = "awaiting_confirmation"
	StateSucceeded            State = "succeeded"
	StateExhausted            State = "exhausted"
	StateAborted              State = "aborted"
)

// ExitCode maps a terminal state to the process exit code reported to
// the caller. Fatal errors (spawn failures, empty cache) exit 1 through
// the normal error path.
func (s State) ExitCode() int {
	switch s {
	case StateSucceeded:
		return 0
	case StateExhausted:
		return 2
	case StateAborted:
		return 3
	}
	return 1
}

// DefaultRetryCeiling is the number of fix attempts a session may spend.
const DefaultRetryCeiling = 3

// Runner executes one external command and reports its outcome.
type Runner interface {
	Run(ctx context.Context, command []string, dir string) (*model.ExecutionResult, error)
}

// Suggester turns a failure log plus the current target file contents
// into a structured fix proposal.
type Suggester interface {
	Suggest(ctx context.Context, failureText, fileContents string, kind model.OperationKind, previousAttempts int) (*model.FixSuggestion, error)
}

// Applier writes a suggestion to the target file, possibly after asking
// the user. It reports whether the file was actually overwritten.
type Applier interface {
	Apply(path string, suggestion *model.FixSuggestion) (bool, error)
}

// LogSource supplies the most recent cached log for no-exec sessions.
type LogSource interface {
	ReadLatest() (path, content string, err error)
}

// Options configures one session. BuildCommand must always be set; a run
// session additionally needs RunCommand.
type Options struct {
	TargetFile   string
	WorkDir      string
	BuildCommand []string
	RunCommand   []string
	Kind         model.OperationKind
	RetryCeiling int
	FixerEnabled bool
	// NoExec skips the first execution and feeds the latest cached log
	// into the analysis instead.
	NoExec bool
}

// Report is the audit trail of a finished session.
type Report struct {
	State    State
	Reason   string
	Attempts []model.Attempt
}

// Session owns one fix loop. Attempts run strictly sequentially; the
// session holds no state shared with other sessions.
type Session struct {
	runner    Runner
	suggester Suggester
	applier   Applier
	logs      LogSource
	opts      Options

	// Out receives progress lines. Defaults to os.Stdout.
	Out io.Writer

	state     State
	remaining int
	attempts  []model.Attempt
	reason    string
}

// NewSession wires a session from its collaborators. logs may be nil
// when opts.NoExec is false.
func NewSession(runner Runner, suggester Suggester, applier Applier, logs LogSource, opts Options) *Session {
	if opts.RetryCeiling < 0 {
		opts.RetryCeiling = 0
	}
	return &Session{
		runner:    runner,
		suggester: suggester,
		applier:   applier,
		logs:      logs,
		opts:      opts,
		Out:       os.Stdout,
	}
}

// Run drives the loop to a terminal state. A non-nil error is fatal
// (the command could not be spawned, the target file is unreadable, or
// no-exec mode found an empty cache); everything else is reported as a
// terminal state in the Report.
func (s *Session) Run(ctx context.Context) (*Report, error) {
	s.state = StateRunning
	s.remaining = s.opts.RetryCeiling
	s.attempts = nil
	s.reason = ""

	state, err := s.machine(ctx, s.opts.Kind, s.opts.NoExec)
	if err != nil {
		return nil, err
	}
	s.state = state
	return &Report{State: state, Reason: s.reason, Attempts: s.attempts}, nil
}

// machine is one pass of the state machine for the given operation kind.
// A run failure that gets fixed recurses into a build pass first, sharing
// the same remaining budget.
func (s *Session) machine(ctx context.Context, kind model.OperationKind, useCached bool) (State, error) {
	for {
		attempt := model.Attempt{Index: len(s.attempts) + 1}
		var failureText string

		if useCached {
			useCached = false
			path, content, err := s.logs.ReadLatest()
			if err != nil {
				return "", fmt.Errorf("no-exec mode: %w", err)
			}
			s.infof("Using cached log: %s", path)
			failureText = content
			attempt.Result = &model.ExecutionResult{
				Command:  "(cached)",
				ExitCode: 1,
				Output:   content,
				LogPath:  path,
			}
		} else {
			s.infof("Attempt %d (docker %s)", attempt.Index, kind)
			result, err := s.runner.Run(ctx, s.commandFor(kind), s.opts.WorkDir)
			if err != nil {
				return "", err
			}
			attempt.Result = result
			if result.Success() {
				s.attempts = append(s.attempts, attempt)
				return StateSucceeded, nil
			}
			s.warnf("Command failed (exit code %d)", result.ExitCode)
			failureText = result.Output
		}

		if !s.opts.FixerEnabled {
			s.attempts = append(s.attempts, attempt)
			s.reason = "command failed and auto-fix is disabled"
			return StateExhausted, nil
		}

		s.remaining--
		if s.remaining < 0 {
			s.attempts = append(s.attempts, attempt)
			s.reason = fmt.Sprintf("failed after %d fix attempts", s.opts.RetryCeiling)
			return StateExhausted, nil
		}

		contents, err := os.ReadFile(s.opts.TargetFile)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", s.opts.TargetFile, err)
		}

		suggestion, err := s.suggester.Suggest(ctx, failureText, string(contents), kind, len(s.attempts))
		if err != nil {
			// A broken analysis channel cannot self-heal; retrying
			// blindly would burn the budget for nothing.
			s.attempts = append(s.attempts, attempt)
			s.reason = err.Error()
			return StateAborted, nil
		}
		attempt.Suggestion = suggestion

		s.state = StateAwaitingConfirmation
		applied, err := s.applier.Apply(s.opts.TargetFile, suggestion)
		if err != nil {
			return "", err
		}
		attempt.Applied = applied
		s.attempts = append(s.attempts, attempt)
		s.state = StateRunning

		if !applied {
			s.reason = "fix was not applied"
			return StateAborted, nil
		}

		if kind == model.OpRun {
			// The image must be rebuilt before the run is retried.
			s.infof("Rebuilding image before retrying run")
			state, err := s.machine(ctx, model.OpBuild, false)
			if err != nil || state != StateSucceeded {
				return state, err
			}
		}
	}
}

func (s *Session) commandFor(kind model.OperationKind) []string {
	if kind == model.OpRun {
		return s.opts.RunCommand
	}
	return s.opts.BuildCommand
}

func (s *Session) infof(format string, args ...interface{}) {
	fmt.Fprintf(s.out(), "%s\n", color.CyanString(format, args...))
}

func (s *Session) warnf(format string, args ...interface{}) {
	fmt.Fprintf(s.out(), "%s\n", color.YellowString(format, args...))
}

func (s *Session) out() io.Writer {
	if s.Out == nil {
		return os.Stdout
	}
	return s.Out
}

// SessionError carries a non-success terminal state up to main so the
// process can exit with a distinct code per outcome.
type SessionError struct {
	State  State
	Reason string
}

func (e *SessionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("session %s: %s", e.State, e.Reason)
	}
	return fmt.Sprintf("session %s", e.State)
}

// ExitCode returns the process exit code for the terminal state.
func (e *SessionError) ExitCode() int {
	return e.State.ExitCode()
}
