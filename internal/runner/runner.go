/*
Package runner executes external processes (git, bump tools) for modrel.
*/
package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// Runner runs external commands in an explicit working directory.
type Runner interface {
	// Output runs the command and returns its captured stdout.
	Output(ctx context.Context, dir, name string, args ...string) (string, error)

	// Run runs the command with stdout and stderr attached to the terminal.
	Run(ctx context.Context, dir, name string, args ...string) error
}

// Error is returned when a command cannot be started or exits non-zero.
type Error struct {
	// Cmd is the command line that failed
	Cmd string

	// Dir is the working directory of the command
	Dir string

	// Stderr is the captured standard error, if any
	Stderr string

	// Err is the underlying error from os/exec
	Err error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Cmd, e.Err)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Exec is the Runner backed by os/exec.
type Exec struct {
	Stdout io.Writer
	Stderr io.Writer
	Env    []string
}

// New creates an Exec runner writing streamed output to the process stdio.
func New() *Exec {
	return &Exec{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Output runs a command and returns its stdout
func (e *Exec) Output(ctx context.Context, dir, name string, args ...string) (string, error) {
	c := e.command(ctx, dir, name, args...)
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	log.Debug("Running", "cmd", CommandLine(name, args...), "dir", dir)
	if err := c.Run(); err != nil {
		return "", &Error{Cmd: CommandLine(name, args...), Dir: dir, Stderr: stderr.String(), Err: err}
	}

	return stdout.String(), nil
}

// Run runs a command streaming its output
func (e *Exec) Run(ctx context.Context, dir, name string, args ...string) error {
	c := e.command(ctx, dir, name, args...)
	c.Stdout = e.Stdout
	c.Stderr = e.Stderr

	log.Info("Running", "cmd", CommandLine(name, args...), "dir", dir)
	if err := c.Run(); err != nil {
		return &Error{Cmd: CommandLine(name, args...), Dir: dir, Err: err}
	}

	return nil
}

func (e *Exec) command(ctx context.Context, dir, name string, args ...string) *exec.Cmd {
	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	c.Env = os.Environ()
	c.Env = append(c.Env, e.Env...)
	return c
}

// CommandLine joins a command and its arguments for display.
func CommandLine(name string, args ...string) string {
	return strings.Join(append([]string{name}, args...), " ")
}
