package executor

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dilrevx/fix-compile/pkg/logcache"
)

func TestRunCapturesCombinedOutput(t *testing.T) {
	var console bytes.Buffer
	exec := &Executor{Console: &console}

	result, err := exec.Run(context.Background(), []string{"sh", "-c", "echo out; echo err 1>&2"}, "")
	require.NoError(t, err)

	assert.Equal(t, 0, result.ExitCode)
	assert.True(t, result.Success())
	assert.Contains(t, result.Output, "out")
	assert.Contains(t, result.Output, "err")
	// The console saw exactly the bytes that were captured.
	assert.Equal(t, result.Output, console.String())
}

func TestRunReturnsExitCodeVerbatim(t *testing.T) {
	exec := &Executor{Console: &bytes.Buffer{}}

	result, err := exec.Run(context.Background(), []string{"sh", "-c", "exit 7"}, "")
	require.NoError(t, err, "a non-zero exit is a result, not an error")

	assert.Equal(t, 7, result.ExitCode)
	assert.False(t, result.Success())
}

func TestRunMissingExecutableIsSpawnError(t *testing.T) {
	exec := &Executor{Console: &bytes.Buffer{}}

	_, err := exec.Run(context.Background(), []string{"definitely-not-a-real-binary-xyz"}, "")
	require.Error(t, err)

	var spawnErr *SpawnError
	assert.ErrorAs(t, err, &spawnErr)
}

func TestRunEmptyCommandIsSpawnError(t *testing.T) {
	exec := &Executor{Console: &bytes.Buffer{}}

	_, err := exec.Run(context.Background(), nil, "")
	var spawnErr *SpawnError
	assert.ErrorAs(t, err, &spawnErr)
}

func TestRunStoresLogInCache(t *testing.T) {
	cache := logcache.New(t.TempDir())
	exec := &Executor{Console: &bytes.Buffer{}, Cache: cache}

	result, err := exec.Run(context.Background(), []string{"sh", "-c", "echo hello; exit 1"}, "")
	require.NoError(t, err)
	require.NotEmpty(t, result.LogPath)

	path, content, err := cache.ReadLatest()
	require.NoError(t, err)
	assert.Equal(t, result.LogPath, path)
	assert.Equal(t, result.Output, content)
}

func TestRunRespectsWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer
	exec := &Executor{Console: &console}

	result, err := exec.Run(context.Background(), []string{"pwd"}, dir)
	require.NoError(t, err)
	assert.Contains(t, result.Output, dir)
}

func TestRunAppendsExtraEnv(t *testing.T) {
	exec := &Executor{Console: &bytes.Buffer{}, Env: []string{"FIX_COMPILE_PROBE=42"}}

	result, err := exec.Run(context.Background(), []string{"sh", "-c", "echo $FIX_COMPILE_PROBE"}, "")
	require.NoError(t, err)
	assert.Contains(t, result.Output, "42")
}

func TestSpawnErrorUnwraps(t *testing.T) {
	inner := errors.New("nope")
	err := &SpawnError{Command: "docker build", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "docker build")
}
