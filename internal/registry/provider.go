package registry

import (
	"fmt"

	"go.uber.org/zap"
)

// Provider is a lazily-resolved handle to a single task.
//
// A provider starts pending: the factory has not run and configuration
// actions accumulate in a queue. The first Get invokes the factory and then
// runs the queued actions in order, each exactly once. After realization the
// provider always answers with the same task (or the same realization error),
// and further Configure calls apply immediately.
type Provider struct {
	container *Container
	name      string
	create    func() Task

	pending  []func(Task)
	realized bool
	task     Task
	err      error
}

// Name returns the task name the provider resolves to.
func (p *Provider) Name() string { return p.name }

// IsRealized reports whether the factory has already run.
func (p *Provider) IsRealized() bool { return p.realized }

// Configure applies fn to the task. Pending providers queue the action for
// realization time; realized providers apply it immediately. A provider whose
// realization failed drops the action.
func (p *Provider) Configure(fn func(Task)) {
	if fn == nil {
		return
	}
	if p.realized {
		if p.err == nil {
			fn(p.task)
			p.logger().Debug("task configured",
				zap.String("container", p.container.name),
				zap.String("task", p.name))
		}
		return
	}
	p.pending = append(p.pending, fn)
	p.logger().Debug("task configuration queued",
		zap.String("container", p.container.name),
		zap.String("task", p.name))
}

// Get realizes the task on first call and returns it. Realization is
// attempted once; its outcome, success or failure, is sticky.
func (p *Provider) Get() (Task, error) {
	if p.realized {
		return p.task, p.err
	}
	p.realized = true

	task := p.create()
	switch {
	case task == nil:
		p.err = fmt.Errorf("container %q: factory for task %q returned nil", p.container.name, p.name)
	case task.Name() != p.name:
		p.err = fmt.Errorf("container %q: factory for task %q produced a task named %q",
			p.container.name, p.name, task.Name())
	}
	if p.err != nil {
		p.pending = nil
		return nil, p.err
	}

	p.task = task
	actions := p.pending
	p.pending = nil
	for _, fn := range actions {
		fn(task)
	}
	p.logger().Debug("task realized",
		zap.String("container", p.container.name),
		zap.String("task", p.name),
		zap.Int("actions", len(actions)))
	return p.task, nil
}

func (p *Provider) logger() *zap.Logger { return p.container.logger }
