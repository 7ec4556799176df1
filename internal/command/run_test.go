package command

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) string {
	t.Helper()
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	return sh
}

func TestRun_CapturesStdout(t *testing.T) {
	sh := requireShell(t)

	out, err := Run(context.Background(), sh, "-c", `printf 'A=1\nB=2\n'`)
	require.NoError(t, err)
	assert.Equal(t, "A=1\nB=2\n", out)
}

func TestRun_NonZeroExitIncludesStderr(t *testing.T) {
	sh := requireShell(t)

	_, err := Run(context.Background(), sh, "-c", "echo boom >&2; exit 3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.ExitCode())
}

func TestRun_MissingBinary(t *testing.T) {
	_, err := Run(context.Background(), "/nonexistent/envkit-command")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/nonexistent/envkit-command")
}

func TestRun_CancelledContext(t *testing.T) {
	sh := requireShell(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, sh, "-c", "true")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_DefaultEnvPath(t *testing.T) {
	if _, err := os.Stat(DefaultEnvPath); err != nil {
		t.Skipf("%s not available", DefaultEnvPath)
	}
	t.Setenv("ENVKIT_COMMAND_TEST", "present")

	out, err := Run(context.Background(), DefaultEnvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "ENVKIT_COMMAND_TEST=present\n")
}

func TestRun_LogsToContextLogger(t *testing.T) {
	sh := requireShell(t)
	previous := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(previous)
	})

	var buf bytes.Buffer
	log := zerolog.New(&buf)

	_, err := Run(log.WithContext(context.Background()), sh, "-c", "true")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"command":"`+sh+`"`)
	assert.Contains(t, buf.String(), "Command finished")
}
