package platform

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/glorpus-work/senget/internal/logger"
	"github.com/glorpus-work/senget/pkg/errors"
)

// Runner starts external programs.
type Runner interface {
	// Run starts name and waits for it to exit.
	Run(ctx context.Context, name string, args ...string) error
	// Start starts name without waiting.
	Start(name string, args ...string) error
}

// ExecRunner runs programs with os/exec, attached to the current console.
type ExecRunner struct{}

// NewRunner creates a runner.
func NewRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run starts name and waits for it to finish. There is no timeout beyond ctx.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	logger.Debug("executing", logger.Fields{"command": name, "args": strings.Join(args, " ")})
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", name, errors.Normalize(err))
	}
	return nil
}

// Start launches name detached from the wait.
func (r *ExecRunner) Start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	logger.Debug("starting", logger.Fields{"command": name, "args": strings.Join(args, " ")})
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%s: %w", name, errors.Normalize(err))
	}
	return cmd.Process.Release()
}
