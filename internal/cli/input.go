package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"taskforge/internal/config"
)

const (
	ExitSuccess           = 0
	ExitTaskFailure       = 1
	ExitInvalidInvocation = 2
	ExitPipelineError     = 3
	ExitInternalError     = 4
)

// Command is the requested CLI operation.
type Command string

const (
	CommandList     Command = "list"
	CommandDescribe Command = "describe"
	CommandRun      Command = "run"
	CommandCheck    Command = "check"
)

// Invocation is the fully canonicalized description of one CLI call.
//
// Flag defaults come from tool configuration; explicit flags win. Parsing
// itself never consults the environment.
type Invocation struct {
	Command  Command
	TaskName string

	Pipeline  string
	LogLevel  string
	LogFormat string
}

type InvocationError struct {
	ExitCode int
	Message  string
}

func (e *InvocationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func invalidInvocationf(format string, args ...any) error {
	return &InvocationError{ExitCode: ExitInvalidInvocation, Message: fmt.Sprintf(format, args...)}
}

const usage = "usage: taskforge [--pipeline file] [--log-level level] [--log-format format] <list|describe|run|check> [task]"

// ParseInvocation parses CLI arguments into a canonical Invocation, using
// defaults for any flag not given explicitly.
func ParseInvocation(args []string, defaults *config.Config) (Invocation, error) {
	fs := flag.NewFlagSet("taskforge", flag.ContinueOnError)
	fs.SetOutput(io.Discard) // parsing errors are returned, not printed

	var pipelinePath string
	var logLevel string
	var logFormat string

	fs.StringVar(&pipelinePath, "pipeline", defaults.Pipeline, "Pipeline file.")
	fs.StringVar(&logLevel, "log-level", defaults.LogLevel, "Log level: debug|info|warn|error")
	fs.StringVar(&logFormat, "log-format", defaults.LogFormat, "Log format: json|console")

	if err := fs.Parse(args); err != nil {
		return Invocation{}, invalidInvocationf("%v", err)
	}

	rest := fs.Args()
	if len(rest) == 0 {
		return Invocation{}, invalidInvocationf("%s", usage)
	}

	inv := Invocation{
		Pipeline:  pipelinePath,
		LogLevel:  logLevel,
		LogFormat: logFormat,
	}

	switch Command(rest[0]) {
	case CommandList, CommandCheck:
		if len(rest) != 1 {
			return Invocation{}, invalidInvocationf("%s takes no arguments: %q", rest[0], strings.Join(rest[1:], " "))
		}
		inv.Command = Command(rest[0])
	case CommandDescribe, CommandRun:
		if len(rest) != 2 {
			return Invocation{}, invalidInvocationf("%s requires exactly one task name", rest[0])
		}
		inv.Command = Command(rest[0])
		inv.TaskName = rest[1]
	default:
		return Invocation{}, invalidInvocationf("unknown command %q\n%s", rest[0], usage)
	}

	if strings.TrimSpace(inv.Pipeline) == "" {
		return Invocation{}, invalidInvocationf("--pipeline must not be empty")
	}

	return inv, nil
}

// EffectiveConfig folds the invocation's flag values back into a Config so
// they can be validated with the same rules as environment settings.
func (inv Invocation) EffectiveConfig() *config.Config {
	return &config.Config{
		LogLevel:  inv.LogLevel,
		LogFormat: inv.LogFormat,
		Pipeline:  inv.Pipeline,
	}
}
