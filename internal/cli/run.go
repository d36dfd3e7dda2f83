package cli

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskforge/internal/config"
	"taskforge/internal/logging"
)

// Run is the high-level CLI entrypoint suitable for black-box tests. It
// accepts the argument slice (excluding argv[0]), wires configuration and
// logging, and returns the semantic exit code plus any error.
func Run(ctx context.Context, args []string, out io.Writer) (Result, error) {
	cfg, err := config.Load()
	if err != nil {
		return Result{ExitCode: ExitPipelineError}, err
	}

	inv, err := ParseInvocation(args, cfg)
	if err != nil {
		return Result{ExitCode: ExitCode(err)}, err
	}

	// Flag values go through the same validation as environment settings.
	effective := inv.EffectiveConfig()
	if err := effective.Validate(); err != nil {
		return Result{ExitCode: ExitInvalidInvocation}, err
	}

	logger, err := logging.New(effective)
	if err != nil {
		return Result{ExitCode: ExitInternalError}, err
	}
	defer logger.Sync()
	logger = logger.With(zap.String("run_id", uuid.NewString()))

	return Execute(ctx, inv, out, logger)
}

// ExitCode maps an error to its semantic exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var invErr *InvocationError
	if errors.As(err, &invErr) {
		return invErr.ExitCode
	}
	return ExitInternalError
}
