// Package main provides the entry point for the hooksmith CLI.
package main

import (
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gorewood/hooksmith/internal/config"
	"github.com/gorewood/hooksmith/internal/git"
	"github.com/gorewood/hooksmith/internal/output"
	"github.com/gorewood/hooksmith/internal/verify"
)

// newHookCmd creates the hidden hook parent command for internal hook execution.
func newHookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "hook",
		Short:  "Internal hook runner",
		Long:   `Internal command for running hook logic. Called by git hooks.`,
		Hidden: true,
	}

	cmd.AddCommand(newHookRunCmd())
	return cmd
}

// newHookRunCmd creates the hook run subcommand.
func newHookRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <hook-name> [hook-args...]",
		Short: "Execute hook logic",
		Long:  `Execute the logic for the specified hook. Called by installed git hooks.`,
		Args:  cobra.MinimumNArgs(1),
		RunE:  runHookRun,
	}
}

// runHookRun dispatches to the per-hook logic. A nonzero return blocks
// the git operation; unknown hooks silently succeed so a stale shim
// never wedges a repo.
func runHookRun(cmd *cobra.Command, args []string) error {
	hookName := args[0]

	switch hookName {
	case "commit-msg":
		return runCommitMsgHook(cmd, args[1:])
	case "pre-commit":
		return runPreCommitHook(cmd)
	case "pre-push":
		return runPrePushHook(cmd)
	default:
		return nil
	}
}

// runCommitMsgHook validates the subject line of the message file git
// hands to the commit-msg hook.
func runCommitMsgHook(cmd *cobra.Command, args []string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), false, output.IsTTY(cmd.OutOrStdout())).
		WithStderr(cmd.ErrOrStderr())

	if len(args) == 0 {
		return output.NewUserError("commit-msg hook called without a message file")
	}

	subject, err := readSubjectLine(args[0])
	if err != nil {
		printer.Error(err)
		return err
	}

	rules := loadRules()
	result := rules.Validate(subject)
	if result.Accepted {
		return nil
	}

	rejectErr := output.NewUserError(fmt.Sprintf("commit rejected: %s", result.Reason))
	printer.Error(rejectErr)
	printer.Warn("expected format: type(scope): description")
	return rejectErr
}

// runPreCommitHook formats staged files, re-stages them, and runs the
// configured pre-commit verification steps.
func runPreCommitHook(cmd *cobra.Command) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), false, output.IsTTY(cmd.OutOrStdout())).
		WithStderr(cmd.ErrOrStderr())

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

	if err := formatStagedFiles(cmd, printer, cfg.Format); err != nil {
		printer.Error(err)
		return err
	}

	if len(cfg.Verify.PreCommit) == 0 {
		return nil
	}
	return runHookPhase(cmd, printer, root, cfg, cfg.Verify.PreCommit)
}

// runPrePushHook runs the configured pre-push verification steps.
func runPrePushHook(cmd *cobra.Command) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), false, output.IsTTY(cmd.OutOrStdout())).
		WithStderr(cmd.ErrOrStderr())

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

	ids := cfg.Verify.PrePush
	if len(ids) == 0 {
		ids = allStepIDs(cfg)
	}
	return runHookPhase(cmd, printer, root, cfg, ids)
}

// runHookPhase executes the named verify steps and maps any failure to a
// user error so the hook blocks the git operation.
func runHookPhase(cmd *cobra.Command, printer *output.Printer, root string, cfg config.Config, ids []string) error {
	steps := verify.StepsFromConfig(cfg)
	// Hook phases do not persist run records; only explicit verify
	// invocations feed --resume and metrics.
	runner := verify.NewRunner(steps, nil, &verify.Deps{RepoRoot: root, Rules: loadRules()})

	run, err := runner.RunIDs(cmd.Context(), ids)
	if err != nil {
		printer.Error(err)
		return err
	}

	for _, res := range run.Results {
		if res.Status != verify.StatusFail {
			continue
		}
		printer.Warn("step %s failed", res.Step)
		if res.Note != "" {
			printer.Print("%s\n", res.Note)
		}
	}

	if failed := run.Failed(); len(failed) > 0 {
		blockErr := output.NewUserError(fmt.Sprintf("verification failed: %v", failed))
		printer.Error(blockErr)
		return blockErr
	}
	return nil
}

// allStepIDs returns every step ID a config declares, builtin included.
func allStepIDs(cfg config.Config) []string {
	ids := []string{"commits"}
	for _, sc := range cfg.Verify.Steps {
		ids = append(ids, sc.ID)
	}
	return ids
}

// formatStagedFiles runs the configured formatter over staged files and
// re-stages whatever it touched. A missing formatter binary only warns;
// the commit itself is never blocked by absent tooling.
func formatStagedFiles(cmd *cobra.Command, printer *output.Printer, fc config.FormatConfig) error {
	if fc.Command == "" {
		return nil
	}

	staged, err := git.StagedFiles()
	if err != nil {
		return err
	}
	if len(staged) == 0 {
		return nil
	}

	if _, err := exec.LookPath(fc.Command); err != nil {
		printer.Warn("formatter %q not found in PATH, skipping format pass", fc.Command)
		return nil
	}

	root, err := git.RepoRoot()
	if err != nil {
		return err
	}

	args := append(append([]string(nil), fc.Args...), staged...)
	format := exec.CommandContext(cmd.Context(), fc.Command, args...)
	format.Dir = root
	if out, err := format.CombinedOutput(); err != nil {
		return output.NewSystemErrorWithCause(
			fmt.Sprintf("formatter failed: %s", string(out)), err)
	}

	// Re-stage in case the formatter rewrote files.
	abs := make([]string, len(staged))
	for i, p := range staged {
		abs[i] = filepath.Join(root, p)
	}
	return git.Stage(abs...)
}
