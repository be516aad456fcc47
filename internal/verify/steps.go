package verify

import "github.com/gorewood/hooksmith/internal/config"

// StepsFromConfig builds the full step list for a repo: the built-in
// commits step followed by one exec step per configured command, in
// declaration order.
func StepsFromConfig(cfg config.Config) []Step {
	steps := []Step{&CommitsStep{}}
	for _, sc := range cfg.Verify.Steps {
		steps = append(steps, NewExecStep(sc.ID, sc.Run))
	}
	return steps
}
