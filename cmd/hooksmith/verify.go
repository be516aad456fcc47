// Package main provides the entry point for the hooksmith CLI.
package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/gorewood/hooksmith/internal/config"
	"github.com/gorewood/hooksmith/internal/git"
	"github.com/gorewood/hooksmith/internal/output"
	"github.com/gorewood/hooksmith/internal/verify"
)

// timeRounding is the display granularity for step durations.
const timeRounding = time.Millisecond

// verifyFlags holds the command-line flags for the verify command.
type verifyFlags struct {
	resume bool
	watch  bool
}

// newVerifyCmd creates the verify command.
func newVerifyCmd() *cobra.Command {
	flags := &verifyFlags{}

	cmd := &cobra.Command{
		Use:   "verify [step...]",
		Short: "Run verification steps",
		Long: `Run the verification suite: the built-in commit-subject check plus
the external-command steps declared in .hooksmith.yaml.

Steps run sequentially and never abort early; the run fails if any step
fails. Steps whose binary is not installed are skipped. Run records
persist under .hooksmith/ and feed 'hooksmith metrics'.

Examples:
  hooksmith verify                    # Run all steps
  hooksmith verify commits test:go    # Run only the named steps
  hooksmith verify --resume           # Re-run only last run's failures
  hooksmith verify --watch            # Re-run on file changes`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.resume, "resume", false, "Re-run only the steps that failed last time")
	cmd.Flags().BoolVar(&flags.watch, "watch", false, "Re-run when watched files change")

	return cmd
}

// runVerify executes the verify command.
func runVerify(cmd *cobra.Command, args []string, flags *verifyFlags) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())

	if flags.resume && len(args) > 0 {
		err := output.NewUserError("--resume cannot be combined with named steps")
		printer.Error(err)
		return err
	}

	root, err := git.RepoRoot()
	if err != nil {
		printer.Error(err)
		return err
	}
	cfg, err := config.Load(root)
	if err != nil {
		printer.Error(err)
		return err
	}

	runner := verify.NewRunner(
		verify.StepsFromConfig(cfg),
		verify.NewStateStore(filepath.Join(root, config.StateDirName)),
		&verify.Deps{RepoRoot: root, Rules: loadRules()},
	)

	if flags.watch {
		return runVerifyWatch(cmd, printer, runner, root, cfg, args)
	}

	return executeVerify(cmd, printer, runner, args, flags.resume)
}

// executeVerify runs one verification pass and reports it.
func executeVerify(cmd *cobra.Command, printer *output.Printer, runner *verify.Runner, args []string, resume bool) error {
	var run *verify.Run
	var err error
	switch {
	case resume:
		run, err = runner.Resume(cmd.Context())
	case len(args) > 0:
		run, err = runner.RunIDs(cmd.Context(), args)
	default:
		run, err = runner.RunAll(cmd.Context())
	}
	if err != nil {
		// Unknown step names and bad resume requests are user errors;
		// anything already classified keeps its code.
		var exitErr *output.ExitError
		if !errors.As(err, &exitErr) {
			err = output.NewUserError(err.Error())
		}
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		if err := printer.WriteJSON(run); err != nil {
			return err
		}
	} else {
		printVerifyHuman(printer, run)
	}

	if failed := run.Failed(); len(failed) > 0 {
		return output.NewUserError(fmt.Sprintf("verification failed: %v", failed))
	}
	return nil
}

// printVerifyHuman renders a run for humans.
func printVerifyHuman(printer *output.Printer, run *verify.Run) {
	printer.Section("Verification")

	for _, res := range run.Results {
		icon := "ok"
		switch res.Status {
		case verify.StatusFail:
			icon = "XX"
		case verify.StatusSkip:
			icon = "--"
		}
		printer.Print("  %s  %-16s %s\n", icon, res.Step, res.Duration.Round(timeRounding))
		if res.Note != "" && res.Status != verify.StatusPass {
			printer.Print("      %s\n", res.Note)
		}
	}

	printer.Println()
	if len(run.Failed()) == 0 {
		printer.Print("Run %s passed (%d step(s))\n", run.ID, len(run.Results))
	} else {
		printer.Print("Run %s failed: %v\n", run.ID, run.Failed())
	}
}

// runVerifyWatch re-runs the suite on file changes until interrupted.
func runVerifyWatch(cmd *cobra.Command, printer *output.Printer, runner *verify.Runner, root string, cfg config.Config, args []string) error {
	if printer.IsJSON() {
		err := output.NewUserError("--watch is interactive and does not support --json")
		printer.Error(err)
		return err
	}

	globs := cfg.Watch
	printer.Print("Watching %v for changes (Ctrl-C to stop)\n", globs)

	// First pass immediately; failures do not end the watch.
	_ = executeVerify(cmd, printer, runner, args, false)

	return verify.Watch(cmd.Context(), root, globs, func() {
		printer.Println()
		printer.Print("Change detected, re-running\n")
		_ = executeVerify(cmd, printer, runner, args, false)
	})
}
