// Package main provides the entry point for the hooksmith CLI.
package main

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/hooksmith/internal/config"
	"github.com/gorewood/hooksmith/internal/git"
	"github.com/gorewood/hooksmith/internal/output"
	"github.com/gorewood/hooksmith/internal/setup"
)

// initFlags holds the command-line flags for the init command.
type initFlags struct {
	noHooks bool
	chain   bool
	dryRun  bool
}

// initStepResult tracks the result of a single initialization step.
type initStepResult struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "skipped", "failed", "dry_run"
	Message string `json:"message,omitempty"`
}

// initState holds the current state of hooksmith setup.
type initState struct {
	stateDirExists bool
	configExists   bool
	hooksInstalled bool
}

// initStyleSet holds lipgloss styles for init output.
type initStyleSet struct {
	heading lipgloss.Style
	pass    lipgloss.Style
	skip    lipgloss.Style
	fail    lipgloss.Style
	dim     lipgloss.Style
	accent  lipgloss.Style
}

// initStyles returns a TTY-aware style set.
func initStyles(isTTY bool) initStyleSet {
	if !isTTY {
		return initStyleSet{}
	}
	return initStyleSet{
		heading: lipgloss.NewStyle().Bold(true),
		pass:    lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "10", Dark: "10"}),
		skip:    lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "8", Dark: "7"}),
		fail:    lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "9", Dark: "9"}),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "8", Dark: "7"}),
		accent:  lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "12", Dark: "12"}),
	}
}

// newInitCmd creates the init command.
func newInitCmd() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize hooksmith in the current repository",
		Long: `Initialize hooksmith in the current repository.

This command sets up everything needed to use hooksmith:
  - Creates the .hooksmith/ directory for verify run records
  - Writes a starter .hooksmith.yaml if none exists
  - Installs the git hooks (commit-msg, pre-commit, pre-push)

The command is idempotent - safe to run multiple times.

Examples:
  hooksmith init              # Full setup
  hooksmith init --no-hooks   # Skip hook installation
  hooksmith init --chain      # Install hooks, preserving existing ones
  hooksmith init --dry-run    # Show what would be done`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.noHooks, "no-hooks", false, "Skip git hook installation")
	cmd.Flags().BoolVar(&flags.chain, "chain", false, "Preserve existing hooks when installing")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Show what would be done without doing it")

	return cmd
}

// runInit executes the init command.
func runInit(cmd *cobra.Command, flags *initFlags) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))
	styles := initStyles(printer.IsTTY())

	if !git.IsRepo() {
		err := output.NewSystemError("not in a git repository")
		printer.Error(err)
		return err
	}

	root, err := git.RepoRoot()
	if err != nil {
		printer.Error(err)
		return err
	}

	repoName := filepath.Base(root)
	state := gatherInitState(root)

	if flags.dryRun {
		return handleInitDryRun(printer, styles, repoName, state, flags)
	}

	return performInit(printer, styles, root, repoName, state, flags)
}

// gatherInitState checks the current hooksmith setup state.
func gatherInitState(root string) *initState {
	state := &initState{}

	info, err := os.Stat(filepath.Join(root, config.StateDirName))
	state.stateDirExists = err == nil && info.IsDir()

	_, err = os.Stat(filepath.Join(root, config.FileName))
	state.configExists = err == nil

	if hooksDir, err := setup.HooksDir(); err == nil {
		installed := true
		for _, name := range setup.HookNames {
			if !setup.CheckHookStatus(setup.HookPath(hooksDir, name)).Installed {
				installed = false
				break
			}
		}
		state.hooksInstalled = installed
	}

	return state
}

// isAlreadyInitialized checks if hooksmith is fully set up.
func isAlreadyInitialized(state *initState, flags *initFlags) bool {
	return state.stateDirExists &&
		state.configExists &&
		(flags.noHooks || state.hooksInstalled)
}

// handleInitDryRun outputs what would be done without making changes.
func handleInitDryRun(printer *output.Printer, styles initStyleSet, repoName string, state *initState, flags *initFlags) error {
	steps := buildDryRunSteps(state, flags)

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"status":    "dry_run",
			"repo_name": repoName,
			"steps":     steps,
		})
	}

	printer.Println()
	printer.Print("%s %s\n", styles.heading.Render("Dry run for"), styles.dim.Render(repoName))
	printer.Println()
	for _, step := range steps {
		printer.Print("  %s  %s\n", styles.accent.Render(step.Name), step.Message)
	}
	return nil
}

// buildDryRunSteps describes each init step without executing it.
func buildDryRunSteps(state *initState, flags *initFlags) []initStepResult {
	steps := []initStepResult{}

	msg := "would create " + config.StateDirName + "/"
	if state.stateDirExists {
		msg = config.StateDirName + "/ already exists"
	}
	steps = append(steps, initStepResult{Name: "state_dir", Status: "dry_run", Message: msg})

	msg = "would write starter " + config.FileName
	if state.configExists {
		msg = config.FileName + " already exists"
	}
	steps = append(steps, initStepResult{Name: "config", Status: "dry_run", Message: msg})

	switch {
	case flags.noHooks:
		msg = "skipped (--no-hooks)"
	case state.hooksInstalled:
		msg = "hooks already installed"
	default:
		msg = "would install commit-msg, pre-commit, pre-push"
	}
	steps = append(steps, initStepResult{Name: "hooks", Status: "dry_run", Message: msg})

	return steps
}

// performInit runs the actual initialization steps.
func performInit(printer *output.Printer, styles initStyleSet, root, repoName string, state *initState, flags *initFlags) error {
	if isAlreadyInitialized(state, flags) {
		return outputAlreadyInitialized(printer, styles, repoName)
	}

	if !printer.IsJSON() {
		printer.Println()
		printer.Print("%s %s...\n", styles.heading.Render("Initializing hooksmith in"), styles.dim.Render(repoName))
		printer.Println()
	}

	steps := executeInitSteps(printer, styles, root, state, flags)
	return outputInitResult(printer, styles, repoName, steps)
}

// executeInitSteps runs each setup step, reporting as it goes.
func executeInitSteps(printer *output.Printer, styles initStyleSet, root string, state *initState, flags *initFlags) []initStepResult {
	steps := []initStepResult{}
	steps = append(steps, stepStateDir(root, state))
	steps = append(steps, stepStarterConfig(root, state))
	steps = append(steps, stepInstallHooks(state, flags))

	if !printer.IsJSON() {
		for _, step := range steps {
			icon := styles.pass.Render("ok")
			switch step.Status {
			case "skipped":
				icon = styles.skip.Render("--")
			case "failed":
				icon = styles.fail.Render("XX")
			}
			printer.Print("  %s  %s %s\n", icon, step.Name, styles.dim.Render(step.Message))
		}
	}

	return steps
}

// stepStateDir creates the .hooksmith/ state directory.
func stepStateDir(root string, state *initState) initStepResult {
	if state.stateDirExists {
		return initStepResult{Name: "state_dir", Status: "skipped", Message: "already exists"}
	}
	if err := os.MkdirAll(filepath.Join(root, config.StateDirName, "runs"), 0o750); err != nil {
		return initStepResult{Name: "state_dir", Status: "failed", Message: err.Error()}
	}
	return initStepResult{Name: "state_dir", Status: "ok", Message: "created " + config.StateDirName + "/"}
}

// stepStarterConfig writes the starter config when none exists.
func stepStarterConfig(root string, state *initState) initStepResult {
	if state.configExists {
		return initStepResult{Name: "config", Status: "skipped", Message: "already exists"}
	}
	path := filepath.Join(root, config.FileName)
	if err := os.WriteFile(path, []byte(config.StarterYAML), 0o600); err != nil {
		return initStepResult{Name: "config", Status: "failed", Message: err.Error()}
	}
	return initStepResult{Name: "config", Status: "ok", Message: "wrote " + config.FileName}
}

// stepInstallHooks installs the git hooks unless skipped.
func stepInstallHooks(state *initState, flags *initFlags) initStepResult {
	if flags.noHooks {
		return initStepResult{Name: "hooks", Status: "skipped", Message: "--no-hooks"}
	}
	if state.hooksInstalled {
		return initStepResult{Name: "hooks", Status: "skipped", Message: "already installed"}
	}

	hooksDir, err := setup.HooksDir()
	if err != nil {
		return initStepResult{Name: "hooks", Status: "failed", Message: err.Error()}
	}

	for _, name := range setup.HookNames {
		hookPath := setup.HookPath(hooksDir, name)
		existing := setup.HookExists(hookPath)
		if existing && setup.CheckHookStatus(hookPath).Installed {
			continue
		}
		if existing && !flags.chain {
			return initStepResult{
				Name:    "hooks",
				Status:  "failed",
				Message: "hook " + name + " exists; rerun with --chain or use 'hooksmith hooks install --force'",
			}
		}
		if existing {
			if err := setup.BackupExistingHook(hookPath); err != nil {
				return initStepResult{Name: "hooks", Status: "failed", Message: err.Error()}
			}
		}
		content := setup.GenerateHookScript(name, existing)
		// #nosec G306 -- hook needs execute permission
		if err := os.WriteFile(hookPath, []byte(content), 0o755); err != nil {
			return initStepResult{Name: "hooks", Status: "failed", Message: err.Error()}
		}
	}

	return initStepResult{Name: "hooks", Status: "ok", Message: "installed commit-msg, pre-commit, pre-push"}
}

// outputAlreadyInitialized handles the already-initialized case.
func outputAlreadyInitialized(printer *output.Printer, styles initStyleSet, repoName string) error {
	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"status":              "ok",
			"already_initialized": true,
			"repo_name":           repoName,
		})
	}
	printer.Println()
	printer.Print("%s %s\n", styles.pass.Render("Hooksmith is already initialized in"), repoName)
	printer.Println()
	printer.Print("Run '%s' to check health.\n", styles.accent.Render("hooksmith doctor"))
	return nil
}

// outputInitResult outputs the final initialization result.
func outputInitResult(printer *output.Printer, styles initStyleSet, repoName string, steps []initStepResult) error {
	failed := false
	for _, s := range steps {
		if s.Status == "failed" {
			failed = true
		}
	}

	if printer.IsJSON() {
		status := "ok"
		if failed {
			status = "failed"
		}
		if err := printer.Success(map[string]any{
			"status":              status,
			"repo_name":           repoName,
			"already_initialized": false,
			"steps":               steps,
		}); err != nil {
			return err
		}
		if failed {
			return output.NewSystemError("initialization incomplete")
		}
		return nil
	}

	if failed {
		err := output.NewSystemError("initialization incomplete")
		printer.Error(err)
		return err
	}

	printer.Println()
	printer.Print("Next: commit something, or run '%s' to check health.\n",
		styles.accent.Render("hooksmith doctor"))
	return nil
}
