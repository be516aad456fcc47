// Package main provides the entry point for the hooksmith CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/hooksmith/internal/commitmsg"
	"github.com/gorewood/hooksmith/internal/config"
	"github.com/gorewood/hooksmith/internal/envfile"
	"github.com/gorewood/hooksmith/internal/git"
	"github.com/gorewood/hooksmith/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// useColor resolves the effective color setting from the --color
// persistent flag and TTY detection on the command's writer.
func useColor(cmd *cobra.Command) bool {
	mode := "auto"
	if flag := cmd.Root().PersistentFlags().Lookup("color"); flag != nil {
		mode = flag.Value.String()
	}
	return output.ResolveColorMode(mode, output.IsTTY(cmd.OutOrStdout()))
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the hooksmith CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hooksmith",
		Short: "Git hooks for conventional commits, verification, and tooling",
		Long: `Hooksmith - conventional-commit enforcement and repo tooling behind git hooks.

Hooksmith keeps a repository healthy by:
  - Validating commit subjects against the conventional commit grammar
  - Formatting staged files and running verification steps from git hooks
  - Converting data and media files between formats via external tools
  - Aggregating commit and verification metrics for dashboards

All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// If --json flag is set but no subcommand, output JSON error
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewUserError("no command specified. Run 'hooksmith --help' for usage")
				printer.Error(err)
				return err
			}
			return cmd.Help()
		},
	}

	// Load .env.local (then .env) for tool paths and CI tokens that can't
	// be exported to env. Environment variables always take precedence.
	cmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		loadEnvFiles()
		return nil
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("color", "auto", "Color output: auto, always, never")

	// Configure lipgloss for TTY detection
	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// loadEnvFiles loads env files in priority order. First match for each
// variable wins; environment variables already set always take precedence.
//
// Resolution order:
//  1. $CWD/.env.local   (per-repo override, gitignored)
//  2. $CWD/.env         (per-repo)
//  3. ~/.config/hooksmith/env (global fallback)
func loadEnvFiles() {
	_, _ = envfile.Load(".env.local")
	_, _ = envfile.Load(".env")

	if dir := config.Dir(); dir != "" {
		_, _ = envfile.Load(filepath.Join(dir, "env"))
	}
}

// loadRules builds the effective validation rules from repo config.
// Falls back to the defaults when config cannot be loaded (e.g. outside
// a repo), since rules are still useful for plain subject checks.
func loadRules() commitmsg.Rules {
	rules := commitmsg.DefaultRules()

	root, err := git.RepoRoot()
	if err != nil {
		return rules
	}
	cfg, err := config.Load(root)
	if err != nil {
		return rules
	}
	return applyCommitConfig(rules, cfg.Commit)
}

// applyCommitConfig overlays config onto the default rules.
func applyCommitConfig(rules commitmsg.Rules, cc config.CommitConfig) commitmsg.Rules {
	rules = rules.WithExtraTypes(cc.ExtraTypes...)
	if len(cc.Scopes) > 0 {
		rules.Scopes = append([]string(nil), cc.Scopes...)
	}
	if cc.MaxSubject > 0 {
		rules.MaxSubject = cc.MaxSubject
	}
	return rules
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "convert", Title: "Conversion Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "agent", Title: "Agent Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "admin", Title: "Admin Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	// Core commands: check, verify, metrics
	addGroupedCommand(cmd, newCheckCmd(), "core")
	addGroupedCommand(cmd, newVerifyCmd(), "core")
	addGroupedCommand(cmd, newMetricsCmd(), "core")

	// Conversion commands
	addGroupedCommand(cmd, newConvertCmd(), "convert")

	// Agent commands: serve
	addGroupedCommand(cmd, newServeCmd(), "agent")

	// Admin commands: init, doctor, hooks
	addGroupedCommand(cmd, newInitCmd(), "admin")
	addGroupedCommand(cmd, newDoctorCmd(), "admin")
	addGroupedCommand(cmd, newHooksCmd(), "admin")

	// Hidden internal commands
	cmd.AddCommand(newHookCmd())
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
