package registry

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrUnknownTask   = errors.New("unknown task")
	ErrDuplicateTask = errors.New("duplicate task")
	ErrTypeMismatch  = errors.New("task type mismatch")
)

// UnknownTaskError reports a lookup of a name the container does not hold.
type UnknownTaskError struct {
	Container string
	Name      string
}

func (e *UnknownTaskError) Error() string {
	return fmt.Sprintf("no task named %q in container %q", e.Name, e.Container)
}

func (e *UnknownTaskError) Unwrap() error { return ErrUnknownTask }

// DuplicateTaskError reports a registration under a name already taken.
type DuplicateTaskError struct {
	Container string
	Name      string
}

func (e *DuplicateTaskError) Error() string {
	return fmt.Sprintf("task %q is already registered in container %q", e.Name, e.Container)
}

func (e *DuplicateTaskError) Unwrap() error { return ErrDuplicateTask }

// TypeMismatchError reports a realized task whose runtime type does not match
// the type a typed handle was declared with. It is a safety check only; no
// conversion is attempted.
type TypeMismatchError struct {
	Container string
	Name      string
	Expected  reflect.Type
	Actual    reflect.Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("task %q in container %q has type %s, expected %s",
		e.Name, e.Container, e.Actual, e.Expected)
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }
