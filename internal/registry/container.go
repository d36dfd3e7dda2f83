package registry

import (
	"fmt"

	"go.uber.org/zap"
)

// Task is the minimal contract every registered task satisfies.
//
// Concrete task kinds live outside this package; the container never inspects
// anything beyond the name.
type Task interface {
	Name() string
}

// Container is a name-keyed registry of lazily-realized task providers.
//
// Registration records a factory; the factory does not run, and no
// configuration action runs, until the provider is first realized. The
// container is populated and queried within a single configuration pass and
// is not safe for concurrent mutation.
type Container struct {
	name   string
	byName map[string]*Provider
	order  []string
	logger *zap.Logger
}

// Option configures a Container at construction time.
type Option func(*Container)

// WithLogger attaches a logger for registration and realization events.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Container) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewContainer creates an empty container. The name appears in error messages
// and log fields; it defaults to "tasks".
func NewContainer(name string, opts ...Option) *Container {
	if name == "" {
		name = "tasks"
	}
	c := &Container{
		name:   name,
		byName: make(map[string]*Provider),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ContainerName returns the diagnostic name of the container.
func (c *Container) ContainerName() string { return c.name }

// Register records a pending task under name. The factory is not invoked.
//
// A name that is already taken is rejected with a DuplicateTaskError; the
// existing provider is left untouched.
func (c *Container) Register(name string, create func() Task) (*Provider, error) {
	if name == "" {
		return nil, fmt.Errorf("container %q: task name is required", c.name)
	}
	if create == nil {
		return nil, fmt.Errorf("container %q: task factory is required for %q", c.name, name)
	}
	if _, exists := c.byName[name]; exists {
		return nil, &DuplicateTaskError{Container: c.name, Name: name}
	}
	p := &Provider{container: c, name: name, create: create}
	c.byName[name] = p
	c.order = append(c.order, name)
	c.logger.Debug("task registered",
		zap.String("container", c.name),
		zap.String("task", name))
	return p, nil
}

// RegisterWith registers name and queues one configuration action on the new
// provider. The action runs at realization, not now.
func (c *Container) RegisterWith(name string, create func() Task, configure func(Task)) (*Provider, error) {
	p, err := c.Register(name, create)
	if err != nil {
		return nil, err
	}
	if configure != nil {
		p.Configure(configure)
	}
	return p, nil
}

// Named resolves the provider for an existing task. The existence check is
// eager; realization is still deferred.
func (c *Container) Named(name string) (*Provider, error) {
	p, ok := c.byName[name]
	if !ok {
		return nil, &UnknownTaskError{Container: c.name, Name: name}
	}
	return p, nil
}

// NamedWith resolves an existing task and queues a configuration action on it.
func (c *Container) NamedWith(name string, configure func(Task)) (*Provider, error) {
	p, err := c.Named(name)
	if err != nil {
		return nil, err
	}
	if configure != nil {
		p.Configure(configure)
	}
	return p, nil
}

// Realize resolves name and forces realization in one step.
func (c *Container) Realize(name string) (Task, error) {
	p, err := c.Named(name)
	if err != nil {
		return nil, err
	}
	return p.Get()
}

// Names returns the registered task names in registration order.
func (c *Container) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Has reports whether name is registered.
func (c *Container) Has(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// Len returns the number of registered tasks.
func (c *Container) Len() int { return len(c.byName) }
