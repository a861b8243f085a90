package runner

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCapturesStdout(t *testing.T) {
	r := New()

	out, err := r.Run("sh", "-c", "echo hello; echo ignored >&2")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)
}

func TestRunNonZeroExit(t *testing.T) {
	r := New()

	_, err := r.Run("sh", "-c", "echo boom >&2; exit 3")
	require.Error(t, err)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, "sh", exitErr.Command)
	assert.Equal(t, 3, exitErr.ExitCode)
	assert.Equal(t, "boom\n", exitErr.Stderr)
	assert.Contains(t, exitErr.Error(), "boom")
	assert.Contains(t, exitErr.Error(), "status 3")
}

func TestRunMissingCommand(t *testing.T) {
	r := New()

	_, err := r.Run("definitely-not-a-real-command-xyz")
	require.Error(t, err)

	var exitErr *ExitError
	assert.False(t, errors.As(err, &exitErr), "start failures are not exit errors")
}

func TestRunInput(t *testing.T) {
	r := New()

	out, err := r.RunInput([]byte("piped\n"), "cat")
	require.NoError(t, err)
	assert.Equal(t, "piped\n", out)
}

func TestEchoPrintsInvocation(t *testing.T) {
	var buf bytes.Buffer
	r := New().WithEcho()
	r.Out = &buf

	_, err := r.Run("sh", "-c", "true")
	require.NoError(t, err)
	assert.Equal(t, "+ sh -c true\n", buf.String())
}

func TestWithEchoDoesNotMutateOriginal(t *testing.T) {
	r := New()
	echoed := r.WithEcho()

	assert.False(t, r.Echo)
	assert.True(t, echoed.Echo)
}

func TestChildEnvPrependsSnapBin(t *testing.T) {
	env := childEnv([]string{"HOME=/root", "PATH=/usr/bin:/bin"})

	require.Len(t, env, 2)
	assert.Equal(t, "HOME=/root", env[0])
	assert.True(t, strings.HasPrefix(env[1], "PATH=/snap/bin"))
	assert.Contains(t, env[1], "/usr/bin:/bin")
}

func TestChildEnvWithoutPath(t *testing.T) {
	env := childEnv([]string{"HOME=/root"})

	assert.Contains(t, env, "PATH=/snap/bin")
}
