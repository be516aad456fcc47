package verify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gorewood/hooksmith/internal/git"
)

// commitCheckCap bounds how far back the commits step looks when no
// upstream ref is configured.
const commitCheckCap = 200

// CommitsStep validates the subjects of commits that have not been
// pushed yet. With an upstream configured it checks upstream..HEAD;
// without one (a branch never pushed) it checks all reachable commits,
// capped.
type CommitsStep struct{}

// ID returns the step identifier.
func (s *CommitsStep) ID() string { return "commits" }

// Run validates commit subjects against the configured rules.
func (s *CommitsStep) Run(ctx context.Context, deps *Deps) StepResult {
	start := time.Now()

	commits, note, err := pendingCommits()
	if err != nil {
		return StepResult{
			Step:     s.ID(),
			Status:   StatusFail,
			ExitCode: 1,
			Note:     err.Error(),
			Duration: time.Since(start),
		}
	}

	var rejected []string
	for _, c := range commits {
		if res := deps.Rules.Validate(c.Subject); !res.Accepted {
			rejected = append(rejected, fmt.Sprintf("%s %s: %s", c.Short, c.Subject, res.Reason))
		}
	}

	if len(rejected) > 0 {
		return StepResult{
			Step:     s.ID(),
			Status:   StatusFail,
			ExitCode: 1,
			Note: fmt.Sprintf("%d commit(s) with invalid subjects:\n%s",
				len(rejected), strings.Join(rejected, "\n")),
			Duration: time.Since(start),
		}
	}

	if note == "" {
		note = fmt.Sprintf("%d commit(s) checked", len(commits))
	}
	return StepResult{
		Step:     s.ID(),
		Status:   StatusPass,
		Note:     note,
		Duration: time.Since(start),
	}
}

// pendingCommits returns the commits the step should validate and an
// optional note describing the range used.
func pendingCommits() ([]git.Commit, string, error) {
	if !git.HasCommits() {
		return nil, "no commits yet", nil
	}

	if upstream := git.UpstreamRef(); upstream != "" {
		commits, err := git.Log(upstream, "HEAD")
		if err != nil {
			return nil, "", err
		}
		return commits, fmt.Sprintf("%d commit(s) since %s", len(commits), upstream), nil
	}

	commits, err := git.LogAll(commitCheckCap)
	if err != nil {
		return nil, "", err
	}
	return commits, "", nil
}
