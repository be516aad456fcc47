package verify

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// noteTailLines caps how much of a failing command's output is kept in
// the result note.
const noteTailLines = 20

// ExecStep runs one external command from the repo root. The command's
// binary is availability-gated: a missing binary is a skip, not a
// failure, matching the catalogue's treatment of external tools.
type ExecStep struct {
	id   string
	argv []string
}

// NewExecStep builds a step from a config entry. argv must be non-empty;
// config validation guarantees that.
func NewExecStep(id string, argv []string) *ExecStep {
	return &ExecStep{id: id, argv: argv}
}

// ID returns the step identifier.
func (s *ExecStep) ID() string { return s.id }

// Run executes the command and classifies its exit status.
func (s *ExecStep) Run(ctx context.Context, deps *Deps) StepResult {
	if _, err := exec.LookPath(s.argv[0]); err != nil {
		return StepResult{
			Step:   s.id,
			Status: StatusSkip,
			Note:   fmt.Sprintf("%s not found in PATH", s.argv[0]),
		}
	}

	start := time.Now()
	cmd := exec.CommandContext(ctx, s.argv[0], s.argv[1:]...)
	cmd.Dir = deps.RepoRoot

	out, err := cmd.CombinedOutput()
	elapsed := time.Since(start)

	if err != nil {
		exitCode := 1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return StepResult{
			Step:     s.id,
			Status:   StatusFail,
			ExitCode: exitCode,
			Note:     tail(string(out)),
			Duration: elapsed,
		}
	}

	return StepResult{
		Step:     s.id,
		Status:   StatusPass,
		Duration: elapsed,
	}
}

// tail keeps the last noteTailLines lines of command output.
func tail(out string) string {
	out = strings.TrimSpace(out)
	lines := strings.Split(out, "\n")
	if len(lines) > noteTailLines {
		lines = lines[len(lines)-noteTailLines:]
		return "...(truncated)...\n" + strings.Join(lines, "\n")
	}
	return out
}
