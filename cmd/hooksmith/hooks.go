package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/hooksmith/internal/git"
	"github.com/gorewood/hooksmith/internal/output"
	"github.com/gorewood/hooksmith/internal/setup"
)

// hookStatus represents the status of a single hook.
type hookStatus = setup.HookStatus

// hooksListResult holds the data for hooks list output, keyed by hook name.
type hooksListResult map[string]hookStatus

// newHooksCmd creates the hooks parent command with subcommands.
func newHooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "Manage git hooks for hooksmith",
		Long: `Manage the git hooks that wire hooksmith into your workflow.

Hooksmith installs three hooks:
  commit-msg  Rejects subjects that break the conventional commit grammar
  pre-commit  Formats staged files and runs pre-commit verification steps
  pre-push    Runs the verification suite before allowing a push

Subcommands:
  install    Install hooksmith git hooks
  uninstall  Remove hooksmith git hooks
  list       Show status of hooks

Examples:
  hooksmith hooks list              # Show hook status
  hooksmith hooks install           # Install all hooks
  hooksmith hooks install --chain   # Install and preserve existing hooks
  hooksmith hooks uninstall         # Remove hooks, restore backups`,
	}

	cmd.AddCommand(newHooksListCmd())
	cmd.AddCommand(newHooksInstallCmd())
	cmd.AddCommand(newHooksUninstallCmd())
	return cmd
}

// newHooksListCmd creates the hooks list subcommand.
func newHooksListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show status of git hooks",
		Long:  `Show the installation status of each hooksmith hook.`,
		RunE:  runHooksList,
	}
}

// runHooksList executes the hooks list command.
func runHooksList(cmd *cobra.Command, _ []string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	if !git.IsRepo() {
		err := output.NewSystemError("not in a git repository")
		printer.Error(err)
		return err
	}

	result, err := gatherHooksStatus()
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		data := map[string]any{}
		for name, status := range result {
			data[name] = map[string]any{
				"installed": status.Installed,
				"chained":   status.Chained,
			}
		}
		return printer.Success(data)
	}

	printHumanHooksList(printer, result)
	return nil
}

// gatherHooksStatus collects hook status information for every managed hook.
func gatherHooksStatus() (hooksListResult, error) {
	hooksDir, err := setup.HooksDir()
	if err != nil {
		return nil, err
	}

	result := hooksListResult{}
	for _, name := range setup.HookNames {
		result[name] = setup.CheckHookStatus(setup.HookPath(hooksDir, name))
	}
	return result, nil
}

// printHumanHooksList outputs hooks status in human-readable format.
func printHumanHooksList(printer *output.Printer, result hooksListResult) {
	printer.Section("Git Hooks")

	for _, name := range setup.HookNames {
		status := result[name]
		statusStr := "not installed"
		if status.Installed {
			statusStr = "installed"
			if status.Chained {
				statusStr += " (chained)"
			}
		}
		printer.KeyValue(name, statusStr)
	}
}
