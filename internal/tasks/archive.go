package tasks

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// Archive bundles a list of regular files into a tar.gz at Dest.
//
// Entries are written in sorted source order so the archive layout does not
// depend on declaration order.
type Archive struct {
	name string

	Sources []string
	Dest    string
}

// NewArchive creates an Archive task with the given name.
func NewArchive(name string) *Archive { return &Archive{name: name} }

// Name returns the task name.
func (t *Archive) Name() string { return t.name }

// Describe returns a one-line summary of the task.
func (t *Archive) Describe() string {
	return fmt.Sprintf("archive: %d file(s) -> %s", len(t.Sources), t.Dest)
}

// Do writes the archive. Each entry is stored under its base name.
func (t *Archive) Do(ctx context.Context) error {
	if len(t.Sources) == 0 {
		return fmt.Errorf("archive task %q: sources are required", t.name)
	}
	if t.Dest == "" {
		return fmt.Errorf("archive task %q: dest is required", t.name)
	}

	sources := make([]string, len(t.Sources))
	copy(sources, t.Sources)
	sort.Strings(sources)

	if err := os.MkdirAll(filepath.Dir(t.Dest), 0o755); err != nil {
		return fmt.Errorf("archive task %q: %w", t.name, err)
	}
	out, err := os.Create(t.Dest)
	if err != nil {
		return fmt.Errorf("archive task %q: %w", t.name, err)
	}

	if err := t.write(ctx, out, sources); err != nil {
		// Do not leave a truncated archive behind.
		out.Close()
		os.Remove(t.Dest)
		return err
	}
	return out.Close()
}

func (t *Archive) write(ctx context.Context, out io.Writer, sources []string) error {
	gz := gzip.NewWriter(out)
	tw := tar.NewWriter(gz)

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("archive task %q: cancelled: %w", t.name, err)
		}
		if err := t.writeEntry(tw, src); err != nil {
			return err
		}
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("archive task %q: %w", t.name, err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("archive task %q: %w", t.name, err)
	}
	return nil
}

func (t *Archive) writeEntry(tw *tar.Writer, src string) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("archive task %q: %w", t.name, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("archive task %q: %w", t.name, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("archive task %q: %q is not a regular file", t.name, src)
	}

	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return fmt.Errorf("archive task %q: %w", t.name, err)
	}
	hdr.Name = filepath.Base(src)
	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("archive task %q: %w", t.name, err)
	}
	if _, err := io.Copy(tw, f); err != nil {
		return fmt.Errorf("archive task %q: %w", t.name, err)
	}
	return nil
}
