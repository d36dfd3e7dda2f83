package registry

import (
	"fmt"
	"reflect"
)

// TypedProvider wraps a Provider with a declared task type T.
//
// The type is checked when the task is realized through the typed handle,
// not at lookup: a handle with the wrong type is created successfully and
// fails only once the task exists and its runtime type is known.
type TypedProvider[T Task] struct {
	p *Provider
}

// Name returns the task name the provider resolves to.
func (tp *TypedProvider[T]) Name() string { return tp.p.Name() }

// Untyped returns the underlying provider.
func (tp *TypedProvider[T]) Untyped() *Provider { return tp.p }

// Get realizes the task and verifies its runtime type is T.
func (tp *TypedProvider[T]) Get() (T, error) {
	var zero T
	task, err := tp.p.Get()
	if err != nil {
		return zero, err
	}
	typed, ok := task.(T)
	if !ok {
		return zero, &TypeMismatchError{
			Container: tp.p.container.name,
			Name:      tp.p.name,
			Expected:  typeOf[T](),
			Actual:    reflect.TypeOf(task),
		}
	}
	return typed, nil
}

// Configure queues (or applies) fn through the underlying provider. If the
// realized task turns out not to be a T the action is skipped; the mismatch
// itself is reported by Get, where the expected type is known.
func (tp *TypedProvider[T]) Configure(fn func(T)) {
	if fn == nil {
		return
	}
	tp.p.Configure(func(task Task) {
		if typed, ok := task.(T); ok {
			fn(typed)
		}
	})
}

// Named resolves an existing task as a typed handle. Existence is checked
// now; the type check is deferred to realization.
func Named[T Task](c *Container, name string) (*TypedProvider[T], error) {
	p, err := c.Named(name)
	if err != nil {
		return nil, err
	}
	return &TypedProvider[T]{p: p}, nil
}

// NamedWith resolves an existing task as a typed handle and queues a
// configuration action on it.
func NamedWith[T Task](c *Container, name string, configure func(T)) (*TypedProvider[T], error) {
	tp, err := Named[T](c, name)
	if err != nil {
		return nil, err
	}
	tp.Configure(configure)
	return tp, nil
}

// Register records a pending task of type T under name.
func Register[T Task](c *Container, name string, create func() T) (*TypedProvider[T], error) {
	if create == nil {
		return nil, fmt.Errorf("container %q: task factory is required for %q", c.name, name)
	}
	p, err := c.Register(name, func() Task { return create() })
	if err != nil {
		return nil, err
	}
	return &TypedProvider[T]{p: p}, nil
}

// RegisterWith records a pending task of type T and queues a configuration
// action to run at realization.
func RegisterWith[T Task](c *Container, name string, create func() T, configure func(T)) (*TypedProvider[T], error) {
	tp, err := Register[T](c, name, create)
	if err != nil {
		return nil, err
	}
	tp.Configure(configure)
	return tp, nil
}

// typeOf names T without needing a realized value, so mismatch diagnostics
// can state the expected type even when the zero value is a nil pointer.
func typeOf[T Task]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
