package cli

import (
	"errors"
	"reflect"
	"testing"

	"taskforge/internal/config"
)

func defaults() *config.Config {
	return &config.Config{LogLevel: "info", LogFormat: "console", Pipeline: "pipeline.yaml"}
}

func TestParseInvocation_DefaultsAndOverrides(t *testing.T) {
	inv, err := ParseInvocation([]string{"list"}, defaults())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Invocation{
		Command:   CommandList,
		Pipeline:  "pipeline.yaml",
		LogLevel:  "info",
		LogFormat: "console",
	}
	if !reflect.DeepEqual(inv, want) {
		t.Fatalf("invocation = %#v, want %#v", inv, want)
	}

	inv, err = ParseInvocation([]string{"--pipeline", "ci.yaml", "--log-level", "debug", "run", "build"}, defaults())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.Pipeline != "ci.yaml" || inv.LogLevel != "debug" {
		t.Fatalf("flag overrides missing: %#v", inv)
	}
	if inv.Command != CommandRun || inv.TaskName != "build" {
		t.Fatalf("command parse wrong: %#v", inv)
	}
}

func TestParseInvocation_Invalid(t *testing.T) {
	cases := map[string][]string{
		"no command":          {},
		"unknown command":     {"frobnicate"},
		"run without task":    {"run"},
		"describe extra args": {"describe", "a", "b"},
		"list with task":      {"list", "build"},
		"unknown flag":        {"--nope", "list"},
		"empty pipeline":      {"--pipeline", " ", "list"},
	}
	for name, args := range cases {
		_, err := ParseInvocation(args, defaults())
		var invErr *InvocationError
		if !errors.As(err, &invErr) {
			t.Fatalf("%s: expected InvocationError, got %v", name, err)
		}
		if invErr.ExitCode != ExitInvalidInvocation {
			t.Fatalf("%s: exit code %d", name, invErr.ExitCode)
		}
		if got := ExitCode(err); got != ExitInvalidInvocation {
			t.Fatalf("%s: ExitCode(err) = %d", name, got)
		}
	}
}

func TestExitCode_Plain(t *testing.T) {
	if got := ExitCode(nil); got != ExitSuccess {
		t.Fatalf("nil error exit = %d", got)
	}
	if got := ExitCode(errors.New("boom")); got != ExitInternalError {
		t.Fatalf("plain error exit = %d", got)
	}
}
