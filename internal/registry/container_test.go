package registry

import (
	"errors"
	"reflect"
	"testing"
)

// probeTask is a minimal task with an observable configuration surface.
type probeTask struct {
	name  string
	Value string
}

func (t *probeTask) Name() string { return t.name }

// otherTask exists so type checks have a second runtime type to disagree on.
type otherTask struct {
	name string
}

func (t *otherTask) Name() string { return t.name }

func probeFactory(name string) func() Task {
	return func() Task { return &probeTask{name: name} }
}

func TestRegister_DoesNotInvokeFactory(t *testing.T) {
	c := NewContainer("tasks")
	created := 0
	_, err := c.Register("build", func() Task {
		created++
		return &probeTask{name: "build"}
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created != 0 {
		t.Fatalf("factory ran eagerly: %d invocations", created)
	}
}

func TestRegister_DuplicateRejectedByContainer(t *testing.T) {
	c := NewContainer("tasks")
	if _, err := c.Register("build", probeFactory("build")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := c.Register("build", probeFactory("build"))
	if !errors.Is(err, ErrDuplicateTask) {
		t.Fatalf("expected ErrDuplicateTask, got %v", err)
	}
	var dup *DuplicateTaskError
	if !errors.As(err, &dup) {
		t.Fatalf("expected *DuplicateTaskError, got %T", err)
	}
	if dup.Container != "tasks" || dup.Name != "build" {
		t.Fatalf("unexpected diagnostics: %#v", dup)
	}
	if c.Len() != 1 {
		t.Fatalf("duplicate registration changed container size: %d", c.Len())
	}
}

func TestRegister_EmptyNameRejected(t *testing.T) {
	c := NewContainer("tasks")
	if _, err := c.Register("", probeFactory("")); err == nil {
		t.Fatalf("expected error for empty name")
	}
	if _, err := c.Register("build", nil); err == nil {
		t.Fatalf("expected error for nil factory")
	}
}

func TestNamed_ReturnsProviderWithMatchingName(t *testing.T) {
	c := NewContainer("tasks")
	for _, name := range []string{"clean", "build", "package"} {
		if _, err := c.Register(name, probeFactory(name)); err != nil {
			t.Fatalf("register %q: %v", name, err)
		}
	}
	for _, name := range []string{"clean", "build", "package"} {
		p, err := c.Named(name)
		if err != nil {
			t.Fatalf("named %q: %v", name, err)
		}
		if p.Name() != name {
			t.Fatalf("provider name %q, want %q", p.Name(), name)
		}
		if p.IsRealized() {
			t.Fatalf("lookup realized task %q", name)
		}
	}
}

func TestNamed_UnknownTask(t *testing.T) {
	c := NewContainer("pipeline")
	_, err := c.Named("missing")
	if !errors.Is(err, ErrUnknownTask) {
		t.Fatalf("expected ErrUnknownTask, got %v", err)
	}
	var unknown *UnknownTaskError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected *UnknownTaskError, got %T", err)
	}
	if unknown.Container != "pipeline" || unknown.Name != "missing" {
		t.Fatalf("unexpected diagnostics: %#v", unknown)
	}
}

func TestNames_RegistrationOrder(t *testing.T) {
	c := NewContainer("tasks")
	want := []string{"zeta", "alpha", "mid"}
	for _, name := range want {
		if _, err := c.Register(name, probeFactory(name)); err != nil {
			t.Fatalf("register %q: %v", name, err)
		}
	}
	if got := c.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("names = %v, want %v", got, want)
	}
	if !c.Has("alpha") || c.Has("omega") {
		t.Fatalf("Has gave wrong answers")
	}
}

func TestRealize_ResolvesAndForces(t *testing.T) {
	c := NewContainer("tasks")
	if _, err := c.Register("build", probeFactory("build")); err != nil {
		t.Fatalf("register: %v", err)
	}
	task, err := c.Realize("build")
	if err != nil {
		t.Fatalf("realize: %v", err)
	}
	if task.Name() != "build" {
		t.Fatalf("realized task name %q", task.Name())
	}
	if _, err := c.Realize("missing"); !errors.Is(err, ErrUnknownTask) {
		t.Fatalf("expected ErrUnknownTask, got %v", err)
	}
}
