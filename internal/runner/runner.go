// Package runner launches the external toolchain processes the pipeline
// coordinates. Output capture is a blocking call: both streams are buffered
// to completion before Run returns, so callers never deal with partial or
// streamed output.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/seapack/seapack/internal/ctxlog"
)

// Result holds the completed output of a successful tool invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner launches an external process and resolves success or failure by its
// exit code. Implementations must be safe to call sequentially from the
// pipeline; the interface exists so tests can substitute a fake.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (*Result, error)
}

// ProcessError reports a process that started but exited non-zero. Both
// captured streams are preserved so stage errors stay diagnosable regardless
// of which stream the tool wrote to.
type ProcessError struct {
	Name     string
	Args     []string
	ExitCode int
	Stdout   string
	Stderr   string
}

func (e *ProcessError) Error() string {
	msg := fmt.Sprintf("%s exited with code %d", e.Name, e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	if s := strings.TrimSpace(e.Stdout); s != "" {
		msg += " (stdout: " + s + ")"
	}
	return msg
}

// SpawnError reports a process that could not be started at all, such as a
// missing executable or denied permissions.
type SpawnError struct {
	Name string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to start %s: %v", e.Name, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// ExecRunner is the real Runner backed by os/exec. Dir, when set, becomes
// the working directory of every launched process.
type ExecRunner struct {
	Dir string
}

// Run launches name with args and blocks until the process exits and both
// output streams are fully drained.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Launching external tool.", "cmd", name, "args", args, "dir", r.Dir)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			perr := &ProcessError{
				Name:     name,
				Args:     args,
				ExitCode: exitErr.ExitCode(),
				Stdout:   stdout.String(),
				Stderr:   stderr.String(),
			}
			logger.Debug("External tool failed.", "cmd", name, "exit_code", perr.ExitCode)
			return nil, perr
		}
		return nil, &SpawnError{Name: name, Err: err}
	}

	logger.Debug("External tool finished.", "cmd", name, "stdout_bytes", stdout.Len(), "stderr_bytes", stderr.Len())
	return &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: 0,
	}, nil
}
