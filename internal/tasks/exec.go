package tasks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strings"
	"syscall"
)

// ErrTaskFailed marks a task that ran and reported failure, as opposed to a
// task that could not run at all.
var ErrTaskFailed = errors.New("task failed")

// Exec runs a shell command with strict environment isolation.
//
// Only variables declared in Env are visible to the command; host variables
// are never passed through. If PATH is not declared, the command sees no
// PATH. This is an allowlist: the environment starts empty.
type Exec struct {
	name string

	// Command is the shell command string, interpreted by "sh -c".
	Command string

	// Dir is the working directory. Empty means the process working
	// directory.
	Dir string

	// Env is the allowlist of environment variables.
	Env map[string]string

	// Captured after Do.
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// NewExec creates an Exec task with the given name.
func NewExec(name string) *Exec { return &Exec{name: name} }

// Name returns the task name.
func (t *Exec) Name() string { return t.name }

// CapturedStdout returns the stdout recorded by the last Do.
func (t *Exec) CapturedStdout() []byte { return t.Stdout }

// Describe returns a one-line summary of the task.
func (t *Exec) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "exec: %s", t.Command)
	if t.Dir != "" {
		fmt.Fprintf(&b, " (in %s)", t.Dir)
	}
	if len(t.Env) > 0 {
		keys := make([]string, 0, len(t.Env))
		for k := range t.Env {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Fprintf(&b, " env=[%s]", strings.Join(keys, " "))
	}
	return b.String()
}

// Do runs the command, capturing stdout, stderr, and the exit code on the
// task. A non-zero exit code is reported as an error wrapping ErrTaskFailed.
// Context cancellation kills the whole process group.
func (t *Exec) Do(ctx context.Context) error {
	if t.Command == "" {
		return fmt.Errorf("exec task %q: command is required", t.name)
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", t.Command)
	cmd.Dir = t.Dir
	cmd.Env = isolatedEnv(t.Env)

	// Own process group so cancellation can take down children too.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("exec task %q: start: %w", t.name, err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	var err error
	select {
	case <-ctx.Done():
		if cmd.Process != nil {
			_ = syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
		}
		<-done
		return fmt.Errorf("exec task %q: cancelled: %w", t.name, ctx.Err())
	case err = <-done:
	}

	t.Stdout = stdout.Bytes()
	t.Stderr = stderr.Bytes()
	t.ExitCode = 0
	if err != nil {
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			return fmt.Errorf("exec task %q: %w", t.name, err)
		}
		t.ExitCode = exitErr.ExitCode()
		return fmt.Errorf("exec task %q exited with code %d: %w", t.name, t.ExitCode, ErrTaskFailed)
	}
	return nil
}

// isolatedEnv builds the command environment from the allowlist only. The
// result is never nil so the command runs with an empty environment rather
// than inheriting the host's.
func isolatedEnv(env map[string]string) []string {
	out := make([]string, 0, len(env))
	for key, value := range env {
		out = append(out, fmt.Sprintf("%s=%s", key, value))
	}
	sort.Strings(out)
	return out
}
