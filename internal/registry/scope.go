package registry

// Scope is a block-scope view of a container for name-keyed access.
//
// It owns no state beyond the container reference and exists so that a
// stretch of configuration code can talk about tasks purely by name:
//
//	s := c.Scope()
//	s.Configure("build", func(t Task) { ... })
//	p, err := s.Task("package")
//
// Every operation forwards to the wrapped container.
type Scope struct {
	c *Container
}

// Scope returns a scoped view of the container.
func (c *Container) Scope() *Scope { return &Scope{c: c} }

// Container returns the wrapped container.
func (s *Scope) Container() *Container { return s.c }

// Task resolves the existing task of the given name, failing if absent.
func (s *Scope) Task(name string) (*Provider, error) {
	return s.c.Named(name)
}

// Configure resolves the existing task of the given name and applies fn
// lazily through its provider.
func (s *Scope) Configure(name string, fn func(Task)) error {
	_, err := s.c.NamedWith(name, fn)
	return err
}

// Register forwards a registration to the wrapped container.
func (s *Scope) Register(name string, create func() Task) (*Provider, error) {
	return s.c.Register(name, create)
}

// RegisterWith forwards a registration with a configuration action.
func (s *Scope) RegisterWith(name string, create func() Task, configure func(Task)) (*Provider, error) {
	return s.c.RegisterWith(name, create, configure)
}

// Names forwards to the wrapped container.
func (s *Scope) Names() []string { return s.c.Names() }

// Has forwards to the wrapped container.
func (s *Scope) Has(name string) bool { return s.c.Has(name) }

// TaskOf resolves the existing task of the given name with a declared type.
// Existence fails now; a type mismatch fails once the task is realized.
func TaskOf[T Task](s *Scope, name string) (*TypedProvider[T], error) {
	return Named[T](s.c, name)
}

// ConfigureOf resolves the existing task of the given name with a declared
// type and applies fn lazily through the typed handle.
func ConfigureOf[T Task](s *Scope, name string, fn func(T)) error {
	_, err := NamedWith[T](s.c, name, fn)
	return err
}
