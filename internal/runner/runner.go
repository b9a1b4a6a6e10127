// Package runner invokes external verification tools under a hard
// wall-clock limit.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"pdf-validator/internal/domain"

	"golang.org/x/sys/unix"
)

const (
	DefaultKillGrace = 5 * time.Second
	DefaultNiceness  = 19
)

// Command describes one external invocation.
type Command struct {
	Path string
	Args []string

	// CombineOutput sends stderr into Output, interleaved with stdout.
	CombineOutput bool
}

// String renders the command for logs.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Path
	}
	return c.Path + " " + strings.Join(c.Args, " ")
}

// Result is what a bounded invocation produced. A non-zero exit status is
// not an error; Err is only set when the process could not be started.
type Result struct {
	Output   []byte
	Stderr   []byte
	ExitCode int
	TimedOut bool
	// Cancelled is set when the caller's context ended before the process
	// did. It is exclusive with TimedOut.
	Cancelled bool
	Duration  time.Duration
	Err       error
}

// Started reports whether the process was actually launched.
func (r *Result) Started() bool {
	return r.Err == nil
}

// Lines splits Output into lines, dropping the trailing empty line.
func (r *Result) Lines() []string {
	text := strings.ReplaceAll(string(r.Output), "\r\n", "\n")
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// Options configures a Runner.
type Options struct {
	// KillGrace is how long a process may take to exit after SIGTERM
	// before it is sent SIGKILL.
	KillGrace time.Duration
	// Niceness is applied to the process group right after start.
	Niceness int
	Logger   domain.Logger
}

// Runner executes commands in their own process group at a lowered
// scheduling priority.
type Runner struct {
	killGrace time.Duration
	niceness  int
	logger    domain.Logger
}

// New creates a Runner. Zero KillGrace falls back to DefaultKillGrace.
func New(opts Options) *Runner {
	grace := opts.KillGrace
	if grace <= 0 {
		grace = DefaultKillGrace
	}
	return &Runner{
		killGrace: grace,
		niceness:  opts.Niceness,
		logger:    opts.Logger,
	}
}

// Run starts cmd and waits at most allowance for it to exit. The process is
// started even with a zero allowance; it is then terminated immediately.
// Cancelling ctx terminates the process the same way.
func (r *Runner) Run(ctx context.Context, cmd Command, allowance time.Duration) *Result {
	if allowance < 0 {
		allowance = 0
	}

	c := exec.Command(cmd.Path, cmd.Args...)
	// Own process group so the whole tree can be signalled.
	c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	c.WaitDelay = r.killGrace

	var output, stderr bytes.Buffer
	c.Stdout = &output
	if cmd.CombineOutput {
		c.Stderr = &output
	} else {
		c.Stderr = &stderr
	}

	started := time.Now()
	if err := c.Start(); err != nil {
		r.warn("External check failed to start", "command", cmd.String(), "error", err)
		return &Result{
			ExitCode: -1,
			Err:      fmt.Errorf("failed to start command: %w", err),
		}
	}

	pid := c.Process.Pid
	if r.niceness != 0 {
		if err := unix.Setpriority(unix.PRIO_PGRP, pid, r.niceness); err != nil {
			r.debug("Could not lower process priority", "command", cmd.String(), "error", err)
		}
	}

	done := make(chan error, 1)
	go func() {
		done <- c.Wait()
	}()

	timer := time.NewTimer(allowance)
	defer timer.Stop()

	var waitErr error
	timedOut, cancelled := false, false
	select {
	case waitErr = <-done:
	case <-timer.C:
		timedOut = true
		waitErr = r.terminate(pid, done)
	case <-ctx.Done():
		cancelled = true
		waitErr = r.terminate(pid, done)
	}

	result := &Result{
		Output:    output.Bytes(),
		Stderr:    stderr.Bytes(),
		ExitCode:  -1,
		TimedOut:  timedOut,
		Cancelled: cancelled,
		Duration:  time.Since(started),
	}
	if c.ProcessState != nil {
		result.ExitCode = c.ProcessState.ExitCode()
	}

	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) {
		r.debug("External check wait returned", "command", cmd.String(), "error", waitErr)
	}

	r.debug("External check finished",
		"command", cmd.String(),
		"exit_code", result.ExitCode,
		"timed_out", result.TimedOut,
		"cancelled", result.Cancelled,
		"allowance", allowance,
		"duration", result.Duration,
	)
	return result
}

// terminate sends SIGTERM to the process group, then SIGKILL once the grace
// period runs out, and returns the result of Wait.
func (r *Runner) terminate(pid int, done <-chan error) error {
	_ = unix.Kill(-pid, unix.SIGTERM)

	grace := time.NewTimer(r.killGrace)
	defer grace.Stop()

	select {
	case err := <-done:
		return err
	case <-grace.C:
		_ = unix.Kill(-pid, unix.SIGKILL)
		return <-done
	}
}

func (r *Runner) debug(msg string, fields ...interface{}) {
	if r.logger != nil {
		r.logger.Debug(msg, fields...)
	}
}

func (r *Runner) warn(msg string, fields ...interface{}) {
	if r.logger != nil {
		r.logger.Warn(msg, fields...)
	}
}
