// Package main provides the entry point for the hooksmith CLI.
package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/gorewood/hooksmith/internal/config"
	"github.com/gorewood/hooksmith/internal/convert"
	"github.com/gorewood/hooksmith/internal/git"
	"github.com/gorewood/hooksmith/internal/setup"
)

// runCoreChecks performs core infrastructure checks.
func runCoreChecks() []checkResult {
	checks := make([]checkResult, 0, 4)
	checks = append(checks, checkGitBinary())
	checks = append(checks, checkBinaryInPath())
	checks = append(checks, checkConfigValid())
	checks = append(checks, checkStateDir())
	return checks
}

// checkGitBinary checks that git itself is callable.
func checkGitBinary() checkResult {
	if _, err := exec.LookPath("git"); err != nil {
		return checkResult{
			Name:    "Git Binary",
			Status:  checkFail,
			Message: "git not found in PATH",
			Hint:    "Install git",
		}
	}
	return checkResult{
		Name:    "Git Binary",
		Status:  checkPass,
		Message: "git found in PATH",
	}
}

// checkBinaryInPath checks if the hooksmith binary is resolvable. The
// generated hook shims look it up by name, so a binary outside PATH
// means silently inert hooks.
func checkBinaryInPath() checkResult {
	if _, err := exec.LookPath("hooksmith"); err != nil {
		return checkResult{
			Name:    "Binary in PATH",
			Status:  checkWarn,
			Message: "hooksmith not found in PATH; installed hooks will be no-ops",
			Hint:    "Add the hooksmith binary to PATH",
		}
	}

	execPath, err := os.Executable()
	if err != nil {
		return checkResult{
			Name:    "Binary in PATH",
			Status:  checkPass,
			Message: "hooksmith found in PATH",
		}
	}
	resolved, resolveErr := filepath.EvalSymlinks(execPath)
	if resolveErr != nil {
		resolved = execPath
	}
	return checkResult{
		Name:    "Binary in PATH",
		Status:  checkPass,
		Message: resolved,
	}
}

// checkConfigValid parses the repo config.
func checkConfigValid() checkResult {
	root, err := git.RepoRoot()
	if err != nil {
		return checkResult{
			Name:    "Config",
			Status:  checkWarn,
			Message: "could not determine repo root: " + err.Error(),
		}
	}

	if _, statErr := os.Stat(filepath.Join(root, config.FileName)); statErr != nil {
		return checkResult{
			Name:    "Config",
			Status:  checkPass,
			Message: config.FileName + " not present (defaults apply)",
		}
	}

	cfg, err := config.Load(root)
	if err != nil {
		return checkResult{
			Name:    "Config",
			Status:  checkFail,
			Message: err.Error(),
			Hint:    "Fix " + config.FileName,
		}
	}

	return checkResult{
		Name:    "Config",
		Status:  checkPass,
		Message: config.FileName + " valid, " + strconv.Itoa(len(cfg.Verify.Steps)) + " verify step(s)",
	}
}

// checkStateDir checks if the .hooksmith/ state directory exists.
func checkStateDir() checkResult {
	root, err := git.RepoRoot()
	if err != nil {
		return checkResult{
			Name:    "State Directory",
			Status:  checkWarn,
			Message: "could not determine repo root: " + err.Error(),
		}
	}

	info, statErr := os.Stat(filepath.Join(root, config.StateDirName))
	if statErr == nil && info.IsDir() {
		return checkResult{
			Name:    "State Directory",
			Status:  checkPass,
			Message: config.StateDirName + "/ directory exists",
		}
	}

	return checkResult{
		Name:    "State Directory",
		Status:  checkWarn,
		Message: config.StateDirName + "/ directory not found",
		Hint:    "Run 'hooksmith init' to initialize",
	}
}

// runHookChecks reports the installation status of each managed hook.
func runHookChecks() []checkResult {
	hooksDir, err := setup.HooksDir()
	if err != nil {
		return []checkResult{{
			Name:    "Git Hooks",
			Status:  checkWarn,
			Message: "could not determine hooks directory",
		}}
	}

	checks := make([]checkResult, 0, len(setup.HookNames))
	for _, name := range setup.HookNames {
		hookPath := setup.HookPath(hooksDir, name)

		if !setup.HookExists(hookPath) {
			checks = append(checks, checkResult{
				Name:    name,
				Status:  checkWarn,
				Message: "not installed",
				Hint:    "Run 'hooksmith hooks install'",
			})
			continue
		}

		status := setup.CheckHookStatus(hookPath)
		switch {
		case status.Installed && status.Chained:
			checks = append(checks, checkResult{
				Name:    name,
				Status:  checkPass,
				Message: "installed (chained to backup)",
			})
		case status.Installed:
			checks = append(checks, checkResult{
				Name:    name,
				Status:  checkPass,
				Message: "installed",
			})
		default:
			checks = append(checks, checkResult{
				Name:    name,
				Status:  checkWarn,
				Message: "hook present but not managed by hooksmith",
				Hint:    "Run 'hooksmith hooks install --chain' to take over",
			})
		}
	}
	return checks
}

// converterTools are the external binaries the conversion catalogue
// shells out to, with install hints.
var converterTools = []struct {
	name string
	hint string
}{
	{"ffmpeg", "Install ffmpeg for audio conversions"},
	{"yq", "Install yq for json/yaml/toml conversions"},
	{"sqlite3", "Install sqlite3 for database dump/restore"},
	{"python3", "Install python3 for csv/dbf conversions"},
}

// runToolChecks reports converter tool availability. Missing tools only
// warn; the affected conversions report unavailable at call time.
func runToolChecks() []checkResult {
	catalogue := convert.Catalogue()
	byTool := map[string]int{}
	for _, c := range catalogue {
		byTool[c.Tool]++
	}

	checks := make([]checkResult, 0, len(converterTools))
	for _, tool := range converterTools {
		if !convert.ToolAvailable(tool.name) {
			checks = append(checks, checkResult{
				Name:    tool.name,
				Status:  checkWarn,
				Message: strconv.Itoa(byTool[tool.name]) + " conversion(s) unavailable",
				Hint:    tool.hint,
			})
			continue
		}
		checks = append(checks, checkResult{
			Name:    tool.name,
			Status:  checkPass,
			Message: strconv.Itoa(byTool[tool.name]) + " conversion(s) available",
		})
	}
	return checks
}
