// Package main provides the entry point for the hooksmith CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gorewood/hooksmith/internal/git"
	"github.com/gorewood/hooksmith/internal/output"
	"github.com/gorewood/hooksmith/internal/setup"
)

// newHooksInstallCmd creates the hooks install subcommand.
func newHooksInstallCmd() *cobra.Command {
	var chain bool
	var force bool
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install hooksmith git hooks",
		Long: `Install the hooksmith git hooks to .git/hooks/.

Installs commit-msg, pre-commit, and pre-push shims that dispatch to
'hooksmith hook run'. A rejected commit message or a failed verification
blocks the git operation.

Use --chain to preserve existing hooks (backed up and run after).
Use --force to overwrite existing hooks without backup.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHooksInstall(cmd, chain, force, dryRun)
		},
	}

	cmd.Flags().BoolVar(&chain, "chain", false, "Preserve existing hooks, run them after")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing hooks without backup")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without doing it")

	return cmd
}

// runHooksInstall executes the hooks install command.
func runHooksInstall(cmd *cobra.Command, chain, force, dryRun bool) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	if !git.IsRepo() {
		err := output.NewSystemError("not in a git repository")
		printer.Error(err)
		return err
	}

	hooksDir, err := setup.HooksDir()
	if err != nil {
		printer.Error(err)
		return err
	}

	if dryRun {
		return handleInstallDryRun(printer, hooksDir, chain, force)
	}

	return performInstall(printer, hooksDir, chain, force)
}

// performInstall installs every managed hook. Conflicts are detected up
// front so a partial install never leaves a mixed hook set behind.
func performInstall(printer *output.Printer, hooksDir string, chain, force bool) error {
	for _, name := range setup.HookNames {
		hookPath := setup.HookPath(hooksDir, name)
		if setup.HookExists(hookPath) && !force && !chain {
			err := output.NewConflictError(
				"hook " + name + " already exists; use --chain to preserve or --force to overwrite")
			printer.Error(err)
			return err
		}
	}

	chained := []string{}
	for _, name := range setup.HookNames {
		hookPath := setup.HookPath(hooksDir, name)
		existing := setup.HookExists(hookPath)

		if existing && chain && !force {
			if err := setup.BackupExistingHook(hookPath); err != nil {
				printer.Error(err)
				return err
			}
			chained = append(chained, name)
		}

		content := setup.GenerateHookScript(name, existing && chain && !force)
		// #nosec G306 -- hook needs execute permission
		if err := os.WriteFile(hookPath, []byte(content), 0o755); err != nil {
			sysErr := output.NewSystemErrorWithCause("failed to write hook "+name, err)
			printer.Error(sysErr)
			return sysErr
		}
	}

	return outputInstallSuccess(printer, chained)
}

// outputInstallSuccess outputs the success message for install.
func outputInstallSuccess(printer *output.Printer, chained []string) error {
	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"status":  "ok",
			"hooks":   setup.HookNames,
			"chained": chained,
		})
	}

	msg := "Installed hooks: commit-msg, pre-commit, pre-push"
	if len(chained) > 0 {
		msg += " (existing hooks backed up and chained)"
	}
	return printer.Success(map[string]any{"message": msg})
}

// handleInstallDryRun handles dry-run output for install.
func handleInstallDryRun(printer *output.Printer, hooksDir string, chain, force bool) error {
	if printer.IsJSON() {
		hooks := map[string]any{}
		for _, name := range setup.HookNames {
			existing := setup.HookExists(setup.HookPath(hooksDir, name))
			hooks[name] = map[string]any{
				"exists":          existing,
				"would_chain":     chain && existing,
				"would_overwrite": force && existing,
			}
		}
		return printer.Success(map[string]any{
			"status": "dry_run",
			"hooks":  hooks,
		})
	}

	printer.Section("Dry Run")
	for _, name := range setup.HookNames {
		existing := setup.HookExists(setup.HookPath(hooksDir, name))
		printer.KeyValue(name, setup.DescribeInstallAction(existing, chain, force))
	}

	return nil
}

// newHooksUninstallCmd creates the hooks uninstall subcommand.
func newHooksUninstallCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove hooksmith git hooks",
		Long:  `Remove the hooksmith git hooks and restore any backups.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHooksUninstall(cmd, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without doing it")

	return cmd
}

// runHooksUninstall executes the hooks uninstall command.
func runHooksUninstall(cmd *cobra.Command, dryRun bool) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	if !git.IsRepo() {
		err := output.NewSystemError("not in a git repository")
		printer.Error(err)
		return err
	}

	hooksDir, err := setup.HooksDir()
	if err != nil {
		printer.Error(err)
		return err
	}

	if dryRun {
		return handleUninstallDryRun(printer, hooksDir)
	}

	return performUninstall(printer, hooksDir)
}

// performUninstall removes every installed hooksmith hook and restores
// backups. Hooks hooksmith does not own are left alone.
func performUninstall(printer *output.Printer, hooksDir string) error {
	removed := []string{}
	restored := []string{}

	for _, name := range setup.HookNames {
		hookPath := setup.HookPath(hooksDir, name)
		if !setup.CheckHookStatus(hookPath).Installed {
			continue
		}

		if err := os.Remove(hookPath); err != nil {
			sysErr := output.NewSystemErrorWithCause("failed to remove hook "+name, err)
			printer.Error(sysErr)
			return sysErr
		}
		removed = append(removed, name)

		backupPath := hookPath + ".backup"
		if setup.HookExists(backupPath) {
			if err := os.Rename(backupPath, hookPath); err != nil {
				sysErr := output.NewSystemErrorWithCause("failed to restore backup for "+name, err)
				printer.Error(sysErr)
				return sysErr
			}
			restored = append(restored, name)
		}
	}

	return outputUninstallSuccess(printer, removed, restored)
}

// outputUninstallSuccess outputs the success message for uninstall.
func outputUninstallSuccess(printer *output.Printer, removed, restored []string) error {
	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"status":   "ok",
			"removed":  removed,
			"restored": restored,
		})
	}

	if len(removed) == 0 {
		return printer.Success(map[string]any{"message": "No hooksmith hooks installed"})
	}

	msg := "Removed hooks"
	if len(restored) > 0 {
		msg += " and restored originals"
	}
	return printer.Success(map[string]any{"message": msg})
}

// handleUninstallDryRun handles dry-run output for uninstall.
func handleUninstallDryRun(printer *output.Printer, hooksDir string) error {
	if printer.IsJSON() {
		hooks := map[string]any{}
		for _, name := range setup.HookNames {
			hookPath := setup.HookPath(hooksDir, name)
			installed := setup.CheckHookStatus(hookPath).Installed
			hasBackup := setup.HookExists(hookPath + ".backup")
			hooks[name] = map[string]any{
				"installed":     installed,
				"has_backup":    hasBackup,
				"would_restore": installed && hasBackup,
			}
		}
		return printer.Success(map[string]any{
			"status": "dry_run",
			"hooks":  hooks,
		})
	}

	printer.Section("Dry Run")
	for _, name := range setup.HookNames {
		hookPath := setup.HookPath(hooksDir, name)
		installed := setup.CheckHookStatus(hookPath).Installed
		hasBackup := setup.HookExists(hookPath + ".backup")
		printer.KeyValue(name, setup.DescribeUninstallAction(installed, hasBackup))
	}

	return nil
}
