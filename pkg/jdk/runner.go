package jdk

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/ideaprov/ideaprov/pkg/logging"
	"github.com/rs/zerolog"
)

// CommandTimeout bounds every JDK tool invocation
const CommandTimeout = 30 * time.Second

// Output is what a finished command produced
type Output struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner executes a command and captures its output. A non-zero exit is
// reported through Output.ExitCode, not as an error; err is reserved for
// commands that could not be started.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Output, error)
}

// CommandRunner runs real processes
type CommandRunner struct {
	logger zerolog.Logger
}

// NewCommandRunner creates a runner backed by os/exec
func NewCommandRunner() *CommandRunner {
	return &CommandRunner{logger: logging.GetLogger("jdk.runner")}
}

func (r *CommandRunner) Run(ctx context.Context, name string, args ...string) (Output, error) {
	logging.LogCommand(r.logger, name, args)

	ctx, cancel := context.WithTimeout(ctx, CommandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := Output{Stdout: stdout.String(), Stderr: stderr.String()}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		out.ExitCode = exitErr.ExitCode()
	default:
		return out, err
	}

	r.logger.Debug().
		Str("command", name).
		Int("exitCode", out.ExitCode).
		Str("stderr", out.Stderr).
		Msg("Command finished")
	return out, nil
}
