// Package main provides the entry point for the hooksmith CLI.
package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gorewood/hooksmith/internal/config"
	"github.com/gorewood/hooksmith/internal/git"
	"github.com/gorewood/hooksmith/internal/metrics"
	"github.com/gorewood/hooksmith/internal/output"
)

// metricsFlags holds the command-line flags for the metrics command.
type metricsFlags struct {
	format     string
	out        string
	maxCommits int
}

// newMetricsCmd creates the metrics command.
func newMetricsCmd() *cobra.Command {
	flags := &metricsFlags{}

	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Load the metrics dashboard data",
		Long: `Aggregate commit and verification metrics for dashboards.

Scans recent commit history, classifying each subject with the
conventional commit parser, and folds in persisted verify run records
from .hooksmith/runs/.

Examples:
  hooksmith metrics                          # JSON to stdout
  hooksmith metrics --format yaml            # YAML instead
  hooksmith metrics --out dashboard.json     # Write to a file
  hooksmith metrics --max-commits 100        # Bound the history scan`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMetrics(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "json", "Output format: json or yaml")
	cmd.Flags().StringVar(&flags.out, "out", "", "Write output to a file instead of stdout")
	cmd.Flags().IntVar(&flags.maxCommits, "max-commits", 0, "Maximum commits to scan (default 500)")

	return cmd
}

// runMetrics executes the metrics command.
func runMetrics(cmd *cobra.Command, flags *metricsFlags) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())

	if flags.format != "json" && flags.format != "yaml" {
		err := output.NewUserError("--format must be json or yaml")
		printer.Error(err)
		return err
	}

	root, err := git.RepoRoot()
	if err != nil {
		printer.Error(err)
		return err
	}

	loader := metrics.NewLoader(root, filepath.Join(root, config.StateDirName), loadRules(), flags.maxCommits)
	dash, err := loader.Load()
	if err != nil {
		printer.Error(err)
		return err
	}

	data, err := encodeDashboard(dash, flags.format)
	if err != nil {
		sysErr := output.NewSystemErrorWithCause("failed to encode dashboard", err)
		printer.Error(sysErr)
		return sysErr
	}

	if flags.out != "" {
		if err := os.WriteFile(flags.out, data, 0o600); err != nil {
			sysErr := output.NewSystemErrorWithCause("failed to write output file", err)
			printer.Error(sysErr)
			return sysErr
		}
		if printer.IsJSON() {
			return printer.Success(map[string]any{"status": "ok", "out": flags.out})
		}
		return printer.Success(map[string]any{"message": "Wrote " + flags.out})
	}

	printer.Print("%s", string(data))
	return nil
}

// encodeDashboard serializes the dashboard in the requested format.
func encodeDashboard(dash *metrics.Dashboard, format string) ([]byte, error) {
	if format == "yaml" {
		return yaml.Marshal(dash)
	}
	data, err := json.MarshalIndent(dash, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
