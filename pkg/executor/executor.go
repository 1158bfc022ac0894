// Package executor runs external commands, streaming their combined
// output to the console while capturing the same bytes for the log cache.
// It knows nothing about fixing.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/Dilrevx/fix-compile/pkg/logcache"
	"github.com/Dilrevx/fix-compile/pkg/model"
)

// SpawnError means the command could not be started at all (missing
// executable, bad working directory). It is fatal for the whole session,
// distinct from a command that ran and exited non-zero.
type SpawnError struct {
	Command string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("cannot start %q: %v", e.Command, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// Executor spawns commands with stdout and stderr merged into a single
// stream. One writer feeds both the console and the capture buffer, so
// neither sink can observe bytes the other missed.
type Executor struct {
	// Console receives the live output. Defaults to os.Stdout.
	Console io.Writer
	// Cache, when set, stores each command's captured output and the
	// resulting path is recorded on the ExecutionResult.
	Cache *logcache.Cache
	// Env entries are appended to the inherited environment.
	Env []string
}

// New returns an Executor streaming to os.Stdout and caching into cache.
// cache may be nil to disable log persistence.
func New(cache *logcache.Cache) *Executor {
	return &Executor{Console: os.Stdout, Cache: cache}
}

// Run executes command in dir and returns its result. The exit code is
// returned verbatim; any non-zero code is a plain failure, not an error.
func (e *Executor) Run(ctx context.Context, command []string, dir string) (*model.ExecutionResult, error) {
	if len(command) == 0 {
		return nil, &SpawnError{Err: errors.New("empty command")}
	}

	console := e.Console
	if console == nil {
		console = os.Stdout
	}

	var buf bytes.Buffer
	sink := io.MultiWriter(console, &buf)

	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	cmd.Dir = dir
	cmd.Stdout = sink
	cmd.Stderr = sink
	cmd.Env = append(os.Environ(), e.Env...)

	cmdStr := strings.Join(command, " ")
	if err := cmd.Start(); err != nil {
		return nil, &SpawnError{Command: cmdStr, Err: err}
	}

	exitCode := 0
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			// Wait failed for a reason other than the process exiting
			// non-zero (e.g. I/O on the pipes).
			return nil, &SpawnError{Command: cmdStr, Err: err}
		}
		exitCode = exitErr.ExitCode()
	}

	result := &model.ExecutionResult{
		Command:  cmdStr,
		ExitCode: exitCode,
		Output:   buf.String(),
	}

	if e.Cache != nil {
		path, err := e.Cache.Store(result.Output)
		if err != nil {
			return nil, fmt.Errorf("cache command output: %w", err)
		}
		result.LogPath = path
	}

	return result, nil
}
