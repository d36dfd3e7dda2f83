package tasks

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Copy copies a single file From -> To, creating destination directories as
// needed and preserving the source file mode.
type Copy struct {
	name string

	From string
	To   string
}

// NewCopy creates a Copy task with the given name.
func NewCopy(name string) *Copy { return &Copy{name: name} }

// Name returns the task name.
func (t *Copy) Name() string { return t.name }

// Describe returns a one-line summary of the task.
func (t *Copy) Describe() string {
	return fmt.Sprintf("copy: %s -> %s", t.From, t.To)
}

// Do performs the copy. The context is checked once up front; the copy itself
// is a short local file operation.
func (t *Copy) Do(ctx context.Context) error {
	if t.From == "" || t.To == "" {
		return fmt.Errorf("copy task %q: from and to are required", t.name)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("copy task %q: cancelled: %w", t.name, err)
	}

	src, err := os.Open(t.From)
	if err != nil {
		return fmt.Errorf("copy task %q: %w", t.name, err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return fmt.Errorf("copy task %q: %w", t.name, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("copy task %q: %q is not a regular file", t.name, t.From)
	}

	if err := os.MkdirAll(filepath.Dir(t.To), 0o755); err != nil {
		return fmt.Errorf("copy task %q: %w", t.name, err)
	}

	dst, err := os.OpenFile(t.To, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("copy task %q: %w", t.name, err)
	}
	// OpenFile only applies the mode to a file it creates; an existing
	// destination keeps its old bits without this.
	if err := dst.Chmod(info.Mode().Perm()); err != nil {
		dst.Close()
		return fmt.Errorf("copy task %q: %w", t.name, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("copy task %q: %w", t.name, err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("copy task %q: %w", t.name, err)
	}
	return nil
}
