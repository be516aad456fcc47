package setup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorewood/hooksmith/internal/git"
	"github.com/gorewood/hooksmith/internal/output"
)

// HookNames are the git hooks hooksmith manages, in pipeline order.
var HookNames = []string{"commit-msg", "pre-commit", "pre-push"}

// hookMarker identifies a hooksmith-managed hook script.
const hookMarker = "hooksmith hook run"

// HookStatus represents the status of a single git hook.
type HookStatus struct {
	Installed bool `json:"installed"`
	Chained   bool `json:"chained"`
}

// HooksDir returns the path to the .git/hooks directory.
func HooksDir() (string, error) {
	root, err := git.RepoRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, ".git", "hooks"), nil
}

// HookPath returns the path of a named hook inside the hooks directory.
func HookPath(hooksDir, name string) string {
	return filepath.Join(hooksDir, name)
}

// HookExists checks if a hook file exists at the given path.
func HookExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsKnownHook reports whether name is a hook hooksmith manages.
func IsKnownHook(name string) bool {
	for _, n := range HookNames {
		if n == name {
			return true
		}
	}
	return false
}

// CheckHookStatus checks if a hook is installed and whether it chains to a backup.
func CheckHookStatus(hookPath string) HookStatus {
	status := HookStatus{}

	content, err := os.ReadFile(hookPath)
	if err != nil {
		return status // Not installed
	}

	contentStr := string(content)
	if strings.Contains(contentStr, hookMarker) {
		status.Installed = true
		status.Chained = strings.Contains(contentStr, ".backup")
	}

	return status
}

// hookPurpose describes each hook in the generated script header.
var hookPurpose = map[string]string{
	"commit-msg": "Validates the commit subject against the conventional commit grammar",
	"pre-commit": "Formats staged files and runs pre-commit verification steps",
	"pre-push":   "Runs the verification suite before allowing a push",
}

// GenerateHookScript generates the shell shim for the named hook.
// If withChain is true, the shim chains to the backed-up original hook
// after the hooksmith logic succeeds.
//
// The shim propagates hooksmith's exit status: a rejected message or a
// failed verification blocks the git operation. A missing hooksmith
// binary does not.
func GenerateHookScript(name string, withChain bool) string {
	script := fmt.Sprintf(`#!/bin/sh
# hooksmith %[1]s hook
# %[2]s

if command -v hooksmith >/dev/null 2>&1; then
  hooksmith hook run %[1]s "$@" || exit $?
fi
`, name, hookPurpose[name])

	if withChain {
		script += fmt.Sprintf(`
# Chain to original hook if it exists
if [ -x ".git/hooks/%[1]s.backup" ]; then
  exec .git/hooks/%[1]s.backup "$@"
fi
`, name)
	}

	return script
}

// BackupExistingHook moves an existing hook to a .backup location.
func BackupExistingHook(hookPath string) error {
	backupPath := hookPath + ".backup"
	if err := os.Rename(hookPath, backupPath); err != nil {
		return output.NewSystemErrorWithCause("failed to backup existing hook", err)
	}
	return nil
}

// DescribeInstallAction returns a human-readable description of what the
// install operation would do given the current state.
func DescribeInstallAction(existingHook, chain, force bool) string {
	if !existingHook {
		return "would install"
	}
	switch {
	case force:
		return "would overwrite existing hook"
	case chain:
		return "would backup and chain existing hook"
	default:
		return "would fail (hook exists, use --chain or --force)"
	}
}

// DescribeUninstallAction returns a human-readable description of what the
// uninstall operation would do given the current state.
func DescribeUninstallAction(installed, hasBackup bool) string {
	switch {
	case !installed:
		return "no hooksmith hook installed"
	case hasBackup:
		return "would remove and restore backup"
	default:
		return "would remove"
	}
}
