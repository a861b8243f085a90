// Package runner executes the external tools the bring-up drives
// (microk8s wrappers, juju) and maps their failures to typed errors.
package runner

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// snapBin is where the MicroK8s snap exposes its wrapped subcommands.
// It is prepended to the child PATH so wrappers resolve each other.
const snapBin = "/snap/bin"

// Runner executes an external command and returns its stdout.
type Runner interface {
	// Run executes the command and returns captured stdout. A non-zero
	// exit is returned as *ExitError carrying the captured stderr.
	Run(name string, args ...string) (string, error)

	// RunInput is Run with the given bytes fed to the child's stdin.
	RunInput(stdin []byte, name string, args ...string) (string, error)
}

// ExitError reports a wrapped tool exiting non-zero.
type ExitError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("command %q exited with status %d", e.Command, e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

// ExecRunner runs commands on the host with a controlled environment.
type ExecRunner struct {
	// Echo prints each invocation before executing it.
	Echo bool

	// Out receives echoed invocations. Defaults to os.Stdout.
	Out io.Writer
}

// New returns an ExecRunner with echo disabled.
func New() *ExecRunner {
	return &ExecRunner{Out: os.Stdout}
}

// WithEcho returns a copy of the runner that echoes every invocation.
func (r *ExecRunner) WithEcho() *ExecRunner {
	cp := *r
	cp.Echo = true
	return &cp
}

// Run implements Runner.
func (r *ExecRunner) Run(name string, args ...string) (string, error) {
	return r.RunInput(nil, name, args...)
}

// RunInput implements Runner.
func (r *ExecRunner) RunInput(stdin []byte, name string, args ...string) (string, error) {
	if r.Echo {
		out := r.Out
		if out == nil {
			out = os.Stdout
		}
		fmt.Fprintf(out, "+ %s\n", strings.Join(append([]string{name}, args...), " "))
	}

	cmd := exec.Command(name, args...)
	cmd.Env = childEnv(os.Environ())
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return stdout.String(), &ExitError{
				Command:  name,
				ExitCode: exitErr.ExitCode(),
				Stderr:   stderr.String(),
			}
		}
		return stdout.String(), fmt.Errorf("failed to run %q: %w", name, err)
	}
	return stdout.String(), nil
}

// childEnv prepends snapBin to PATH in the given environment.
func childEnv(env []string) []string {
	out := make([]string, 0, len(env)+1)
	found := false
	for _, kv := range env {
		if strings.HasPrefix(kv, "PATH=") {
			out = append(out, "PATH="+snapBin+string(os.PathListSeparator)+strings.TrimPrefix(kv, "PATH="))
			found = true
			continue
		}
		out = append(out, kv)
	}
	if !found {
		out = append(out, "PATH="+snapBin)
	}
	return out
}
