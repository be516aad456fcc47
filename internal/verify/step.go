// Package verify implements the verification runner: a sequence of named
// steps executed one at a time, each producing a pass/fail/skip result.
//
// Steps are either the built-in commit-subject check or external commands
// declared in .hooksmith.yaml. Execution is sequential and never aborts
// early; failures accumulate and the run as a whole fails if any step
// failed. Run records persist under .hooksmith/ and feed the metrics
// loader.
package verify

import (
	"context"
	"time"

	"github.com/gorewood/hooksmith/internal/commitmsg"
)

// Status is the outcome of a single step execution.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
	StatusSkip Status = "skip"
)

// StepResult is the recorded outcome of one step.
type StepResult struct {
	Step     string        `json:"step"`
	Status   Status        `json:"status"`
	ExitCode int           `json:"exit_code"`
	Note     string        `json:"note,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

// Deps carries the dependencies injected into steps.
type Deps struct {
	RepoRoot string
	Rules    commitmsg.Rules
}

// Step is one unit of verification work.
type Step interface {
	// ID returns the unique identifier (e.g. "test:go" or "commits").
	ID() string

	// Run executes the step.
	Run(ctx context.Context, deps *Deps) StepResult
}
