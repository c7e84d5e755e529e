// Package toolchain invokes the external tools a job depends on: the
// source fetch tool and the native compiler.
//
// Both tools are judged solely by process exit status. Stderr is captured
// and surfaced in failure messages so job outcomes carry the tool's own
// diagnostics. No timeout is applied; a hung tool blocks its worker until
// the run context is cancelled.
package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes one external tool invocation to completion.
// Implemented by ExecRunner; tests inject fakes.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExitError is returned when a tool exits non-zero. It carries the exit
// code and the captured stderr.
type ExitError struct {
	// Tool is the invoked binary name.
	Tool string
	// Code is the process exit code.
	Code int
	// Stderr is the captured diagnostic output.
	Stderr string
}

// Error renders the tool name, exit code, and trimmed stderr.
func (e *ExitError) Error() string {
	diag := strings.TrimSpace(e.Stderr)
	if diag == "" {
		return fmt.Sprintf("%s exited with code %d", e.Tool, e.Code)
	}
	return fmt.Sprintf("%s exited with code %d: %s", e.Tool, e.Code, diag)
}

// ExecRunner runs tools as real subprocesses.
type ExecRunner struct{}

// Run executes name with args, capturing stderr. A non-zero exit maps to
// *ExitError; failure to start the process is returned as-is.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{
			Tool:   name,
			Code:   exitErr.ExitCode(),
			Stderr: stderr.String(),
		}
	}
	return fmt.Errorf("failed to run %s: %w", name, err)
}
