package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/get2knowio/climax/internal/config"
	"github.com/get2knowio/climax/internal/logger"
	"github.com/get2knowio/climax/internal/policy"
)

// DefaultTimeout bounds executions whose action declares no timeout.
const DefaultTimeout = 30 * time.Second

// Result captures one finished (or failed) execution.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner executes resolved actions as subprocesses. It satisfies the
// gateway's Executor interface.
type Runner struct {
	Executor *policy.ExecutorConfig
}

// New creates a runner. A nil executor config means local execution.
func New(executor *policy.ExecutorConfig) *Runner {
	return &Runner{Executor: executor}
}

// Execute builds the command for an action from coerced arguments, runs
// it, and renders the result as response text. Failures are reported in
// the text; Execute never panics and each invocation is independent.
func (r *Runner) Execute(ctx context.Context, action *config.ResolvedAction, args map[string]any) string {
	inv := BuildCommand(action, args)

	if r.Executor != nil && r.Executor.Type == policy.ExecutorDocker {
		inv.Argv = append(BuildDockerPrefix(r.Executor), inv.Argv...)
		inv.Dir = "" // the -w flag sets the directory inside the container
	}

	timeout := DefaultTimeout
	if action.Timeout > 0 {
		timeout = time.Duration(action.Timeout) * time.Second
	}

	id := uuid.NewString()
	logger.Debugf("invocation %s: %s", id, strings.Join(inv.Argv, " "))

	result := r.run(ctx, inv, timeout)
	logger.Debugf("invocation %s: exit code %d", id, result.ExitCode)

	return FormatResponse(result)
}

func (r *Runner) run(ctx context.Context, inv Invocation, timeout time.Duration) Result {
	if len(inv.Argv) == 0 {
		return Result{ExitCode: -1, Stderr: "Command not found"}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, inv.Argv[0], inv.Argv[1:]...)
	cmd.Dir = inv.Dir
	cmd.Env = os.Environ()
	for k, v := range inv.Env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}
	if inv.Stdin != "" {
		cmd.Stdin = strings.NewReader(inv.Stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		return Result{
			ExitCode: -1,
			Stderr:   fmt.Sprintf("Command timed out after %ds", int(timeout.Seconds())),
		}
	}

	result := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.As(err, &exitErr):
			result.ExitCode = exitErr.ExitCode()
		case errors.Is(err, exec.ErrNotFound):
			return Result{ExitCode: -1, Stderr: "Command not found: " + inv.Argv[0]}
		default:
			return Result{ExitCode: -1, Stderr: err.Error()}
		}
	}
	return result
}

// FormatResponse renders an execution result as response text: trimmed
// stdout, then stderr under a "[stderr]" header, then a non-zero exit
// code, joined by blank lines. An entirely empty result reads
// "(no output)".
func FormatResponse(result Result) string {
	var parts []string
	if out := strings.TrimSpace(result.Stdout); out != "" {
		parts = append(parts, out)
	}
	if errOut := strings.TrimSpace(result.Stderr); errOut != "" {
		parts = append(parts, "[stderr]\n"+errOut)
	}
	if result.ExitCode != 0 {
		parts = append(parts, fmt.Sprintf("[exit code: %d]", result.ExitCode))
	}
	if len(parts) == 0 {
		return "(no output)"
	}
	return strings.Join(parts, "\n\n")
}
