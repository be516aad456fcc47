package verify

import (
	"context"
	"fmt"
)

// Runner executes verification steps in order.
type Runner struct {
	steps []Step
	store *StateStore
	deps  *Deps
}

// NewRunner creates a runner over the given steps. The store may be nil,
// in which case runs are not persisted (used by hook phases that only
// need the outcome).
func NewRunner(steps []Step, store *StateStore, deps *Deps) *Runner {
	return &Runner{steps: steps, store: store, deps: deps}
}

// RunAll executes every step in order. Execution continues past
// failures; the returned run carries all results. err is non-nil only
// for persistence problems, never for step failures.
func (r *Runner) RunAll(ctx context.Context) (*Run, error) {
	return r.execute(ctx, r.steps)
}

// RunIDs executes only the named steps, in the order given.
func (r *Runner) RunIDs(ctx context.Context, ids []string) (*Run, error) {
	steps := make([]Step, 0, len(ids))
	for _, id := range ids {
		step := r.find(id)
		if step == nil {
			return nil, fmt.Errorf("unknown verify step %q", id)
		}
		steps = append(steps, step)
	}
	return r.execute(ctx, steps)
}

// Resume re-runs only the steps that failed in the last persisted run.
// With no previous run, or no failures in it, Resume runs nothing and
// returns a passing empty run.
func (r *Runner) Resume(ctx context.Context) (*Run, error) {
	if r.store == nil {
		return nil, fmt.Errorf("resume requires a state store")
	}

	last, err := r.store.LoadLastRun()
	if err != nil {
		return nil, err
	}
	if last == nil || len(last.Failed()) == 0 {
		return r.newRun(), nil
	}

	return r.RunIDs(ctx, last.Failed())
}

func (r *Runner) find(id string) Step {
	for _, s := range r.steps {
		if s.ID() == id {
			return s
		}
	}
	return nil
}

func (r *Runner) newRun() *Run {
	if r.store != nil {
		return r.store.NewRun()
	}
	return &Run{Status: "pass"}
}

// execute runs a sequence of steps, accumulating results, and persists
// the run when a store is configured.
func (r *Runner) execute(ctx context.Context, steps []Step) (*Run, error) {
	run := r.newRun()

	for _, step := range steps {
		result := step.Run(ctx, r.deps)
		run.Results = append(run.Results, result)
		if result.Status == StatusFail {
			run.Status = "fail"
		}
	}

	if r.store != nil {
		if err := r.store.Save(run); err != nil {
			return run, err
		}
	}
	return run, nil
}
