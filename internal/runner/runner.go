// Package runner abstracts external tool invocation behind a narrow
// interface so callers can be exercised in tests without the real binaries.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
)

// Runner invokes external command-line tools.
type Runner interface {
	// Run executes name with args and blocks until it exits, returning the
	// combined stdout/stderr. The output is returned even when the tool
	// exits non-zero so callers can log it.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)

	// LookPath reports where name resolves on the execution path.
	LookPath(name string) (string, error)
}

// Exec is the os/exec-backed Runner.
type Exec struct {
	log *slog.Logger
}

// NewExec creates an Exec runner.
func NewExec(log *slog.Logger) *Exec {
	return &Exec{log: log}
}

// Run executes the tool and waits for it to exit.
func (e *Exec) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	e.log.Debug("running tool", "tool", name, "args", args)

	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return out, fmt.Errorf("%s exited with status %d: %w", name, exitErr.ExitCode(), err)
		}
		return out, fmt.Errorf("run %s: %w", name, err)
	}
	return out, nil
}

// LookPath resolves name against PATH.
func (e *Exec) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
