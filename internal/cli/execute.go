package cli

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"taskforge/internal/pipeline"
	"taskforge/internal/registry"
)

// Result carries the semantic exit code of an invocation.
type Result struct {
	ExitCode int
}

// runnable is the execution surface a task needs for the run command. It is
// declared here, at the point of use, so task kinds stay plain structs.
type runnable interface {
	Do(ctx context.Context) error
}

type describable interface {
	Describe() string
}

// Execute loads the pipeline and performs the invocation's command.
//
// Task output and command results go to out; diagnostics go to the logger.
func Execute(ctx context.Context, inv Invocation, out io.Writer, logger *zap.Logger) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	c, err := pipeline.LoadFile(inv.Pipeline, registry.WithLogger(logger))
	if err != nil {
		return Result{ExitCode: ExitPipelineError}, err
	}
	logger.Debug("pipeline loaded",
		zap.String("pipeline", inv.Pipeline),
		zap.Int("tasks", c.Len()))

	switch inv.Command {
	case CommandList:
		return executeList(c, out)
	case CommandDescribe:
		return executeDescribe(c, inv.TaskName, out)
	case CommandRun:
		return executeRun(ctx, c, inv.TaskName, out, logger)
	case CommandCheck:
		return executeCheck(c, out)
	default:
		return Result{ExitCode: ExitInternalError}, fmt.Errorf("unhandled command %q", inv.Command)
	}
}

func executeList(c *registry.Container, out io.Writer) (Result, error) {
	for _, name := range c.Names() {
		fmt.Fprintln(out, name)
	}
	return Result{ExitCode: ExitSuccess}, nil
}

func executeDescribe(c *registry.Container, name string, out io.Writer) (Result, error) {
	task, err := c.Realize(name)
	if err != nil {
		return Result{ExitCode: ExitPipelineError}, err
	}
	if d, ok := task.(describable); ok {
		fmt.Fprintf(out, "%s: %s\n", task.Name(), d.Describe())
	} else {
		fmt.Fprintf(out, "%s: %T\n", task.Name(), task)
	}
	return Result{ExitCode: ExitSuccess}, nil
}

func executeRun(ctx context.Context, c *registry.Container, name string, out io.Writer, logger *zap.Logger) (Result, error) {
	task, err := c.Realize(name)
	if err != nil {
		return Result{ExitCode: ExitPipelineError}, err
	}
	r, ok := task.(runnable)
	if !ok {
		return Result{ExitCode: ExitPipelineError}, fmt.Errorf("task %q (%T) is not runnable", name, task)
	}

	logger.Info("running task", zap.String("task", name))
	if err := r.Do(ctx); err != nil {
		logger.Error("task failed", zap.String("task", name), zap.Error(err))
		writeCapturedOutput(task, out)
		return Result{ExitCode: ExitTaskFailure}, err
	}
	logger.Info("task succeeded", zap.String("task", name))
	writeCapturedOutput(task, out)
	return Result{ExitCode: ExitSuccess}, nil
}

func executeCheck(c *registry.Container, out io.Writer) (Result, error) {
	for _, name := range c.Names() {
		if _, err := c.Realize(name); err != nil {
			return Result{ExitCode: ExitPipelineError}, fmt.Errorf("check %q: %w", name, err)
		}
	}
	fmt.Fprintf(out, "ok: %d task(s)\n", c.Len())
	return Result{ExitCode: ExitSuccess}, nil
}

// writeCapturedOutput forwards any stdout a task captured, so run behaves
// like invoking the underlying command directly.
func writeCapturedOutput(task registry.Task, out io.Writer) {
	type captured interface {
		CapturedStdout() []byte
	}
	if c, ok := task.(captured); ok {
		out.Write(c.CapturedStdout())
	}
}
