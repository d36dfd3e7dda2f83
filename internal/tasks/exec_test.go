package tasks

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestExec_CapturesOutputAndExitCode(t *testing.T) {
	task := NewExec("hello")
	task.Command = "echo out; echo err 1>&2"

	if err := task.Do(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.TrimSpace(string(task.Stdout)); got != "out" {
		t.Fatalf("stdout = %q", got)
	}
	if got := strings.TrimSpace(string(task.Stderr)); got != "err" {
		t.Fatalf("stderr = %q", got)
	}
	if task.ExitCode != 0 {
		t.Fatalf("exit code = %d", task.ExitCode)
	}
}

func TestExec_NonZeroExitIsTaskFailure(t *testing.T) {
	task := NewExec("fail")
	task.Command = "exit 7"

	err := task.Do(context.Background())
	if !errors.Is(err, ErrTaskFailed) {
		t.Fatalf("expected ErrTaskFailed, got %v", err)
	}
	if task.ExitCode != 7 {
		t.Fatalf("exit code = %d, want 7", task.ExitCode)
	}
}

func TestExec_EnvironmentIsAllowlistOnly(t *testing.T) {
	t.Setenv("TASKFORGE_LEAK_PROBE", "leaked")

	task := NewExec("env")
	task.Command = "echo declared=$DECLARED leak=$TASKFORGE_LEAK_PROBE"
	task.Env = map[string]string{"DECLARED": "yes"}

	if err := task.Do(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := strings.TrimSpace(string(task.Stdout))
	if got != "declared=yes leak=" {
		t.Fatalf("environment not isolated: %q", got)
	}
}

func TestExec_EmptyCommandRejected(t *testing.T) {
	task := NewExec("empty")
	if err := task.Do(context.Background()); err == nil {
		t.Fatalf("expected error for empty command")
	}
}

func TestExec_CancellationKillsCommand(t *testing.T) {
	task := NewExec("sleepy")
	task.Command = "sleep 30"

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := task.Do(ctx)
	if err == nil {
		t.Fatalf("expected cancellation error")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("cancellation took %v", elapsed)
	}
}

func TestExec_Describe(t *testing.T) {
	task := NewExec("build")
	task.Command = "make all"
	task.Dir = "/tmp/work"
	task.Env = map[string]string{"B": "2", "A": "1"}

	got := task.Describe()
	if got != "exec: make all (in /tmp/work) env=[A B]" {
		t.Fatalf("describe = %q", got)
	}
}
