// Package pipeline loads task definitions from a YAML pipeline file and
// registers them, still unrealized, into a task container.
package pipeline

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"taskforge/internal/registry"
	"taskforge/internal/tasks"
)

// Task kinds accepted in a pipeline file.
const (
	KindExec    = "exec"
	KindCopy    = "copy"
	KindArchive = "archive"
)

type pipelineFile struct {
	Tasks []taskEntry `yaml:"tasks"`
}

// taskEntry is the flat on-disk shape of one task. Name and Type are common;
// the remaining fields belong to specific kinds and are applied through a
// configuration action at realization time.
type taskEntry struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`

	// exec
	Command string            `yaml:"command,omitempty"`
	Dir     string            `yaml:"dir,omitempty"`
	Env     map[string]string `yaml:"env,omitempty"`

	// copy
	From string `yaml:"from,omitempty"`
	To   string `yaml:"to,omitempty"`

	// archive
	Sources []string `yaml:"sources,omitempty"`
	Dest    string   `yaml:"dest,omitempty"`
}

// LoadFile reads the pipeline at path into a fresh container named "tasks".
//
// Loading only registers: no task is created and no declared field is applied
// until a provider is realized.
func LoadFile(path string, opts ...registry.Option) (*registry.Container, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pipeline: %w", err)
	}
	return Load(b, opts...)
}

// Load parses pipeline YAML and registers every entry.
//
// The parse is strict: unknown fields are rejected rather than ignored, so a
// misspelled field cannot silently drop configuration.
func Load(data []byte, opts ...registry.Option) (*registry.Container, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var pf pipelineFile
	if err := dec.Decode(&pf); err != nil {
		return nil, fmt.Errorf("parse pipeline yaml: %w", err)
	}
	if len(pf.Tasks) == 0 {
		return nil, fmt.Errorf("parse pipeline yaml: no tasks")
	}

	c := registry.NewContainer("tasks", opts...)
	for _, entry := range pf.Tasks {
		if entry.Name == "" {
			return nil, fmt.Errorf("pipeline task with type %q: name is required", entry.Type)
		}
		if err := register(c, entry); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func register(c *registry.Container, entry taskEntry) error {
	var err error
	switch entry.Type {
	case KindExec:
		_, err = registry.RegisterWith(c, entry.Name,
			func() *tasks.Exec { return tasks.NewExec(entry.Name) },
			func(t *tasks.Exec) {
				t.Command = entry.Command
				t.Dir = entry.Dir
				t.Env = entry.Env
			})
	case KindCopy:
		_, err = registry.RegisterWith(c, entry.Name,
			func() *tasks.Copy { return tasks.NewCopy(entry.Name) },
			func(t *tasks.Copy) {
				t.From = entry.From
				t.To = entry.To
			})
	case KindArchive:
		_, err = registry.RegisterWith(c, entry.Name,
			func() *tasks.Archive { return tasks.NewArchive(entry.Name) },
			func(t *tasks.Archive) {
				t.Sources = entry.Sources
				t.Dest = entry.Dest
			})
	case "":
		return fmt.Errorf("pipeline task %q: type is required", entry.Name)
	default:
		return fmt.Errorf("pipeline task %q: unknown type %q (supported: %s, %s, %s)",
			entry.Name, entry.Type, KindExec, KindCopy, KindArchive)
	}
	if err != nil {
		return fmt.Errorf("pipeline task %q: %w", entry.Name, err)
	}
	return nil
}
