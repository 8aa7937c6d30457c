// Package execx runs external command-line tools for the CLI-backed adapters.
package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Command describes one subprocess invocation. Args are passed verbatim, never through a shell.
type Command struct {
	Name  string
	Args  []string
	Env   []string // appended to the current environment
	Stdin string
	Dir   string
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Result captures the outcome of a finished command.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// ExitError reports a command that ran but exited non-zero.
type ExitError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *ExitError) Error() string {
	stderr := strings.TrimSpace(e.Stderr)
	if stderr == "" {
		return fmt.Sprintf("%s exited with status %d", e.Command, e.ExitCode)
	}
	return fmt.Sprintf("%s exited with status %d: %s", e.Command, e.ExitCode, stderr)
}

// Runner executes commands.
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Result, error)
}

// LocalRunner executes commands on the local machine.
type LocalRunner struct{}

// NewLocalRunner creates a runner that executes commands locally.
func NewLocalRunner() *LocalRunner {
	return &LocalRunner{}
}

// Run executes cmd and waits for it. A non-zero exit returns the result and an *ExitError.
func (l *LocalRunner) Run(ctx context.Context, cmd Command) (*Result, error) {
	result := &Result{}
	start := time.Now()
	defer func() {
		result.Duration = time.Since(start)
	}()

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	if cmd.Stdin != "" {
		c.Stdin = strings.NewReader(cmd.Stdin)
	}
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, &ExitError{Command: cmd.Name, ExitCode: result.ExitCode, Stderr: result.Stderr}
		}
		result.ExitCode = -1
		return result, fmt.Errorf("failed to run %s: %w", cmd.Name, err)
	}
	return result, nil
}

// LookPath resolves a binary name to an executable path.
func LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("executable %q not found: %w", name, err)
	}
	return path, nil
}
