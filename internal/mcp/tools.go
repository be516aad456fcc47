package mcp

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/hooksmith/internal/commitmsg"
	"github.com/gorewood/hooksmith/internal/config"
	"github.com/gorewood/hooksmith/internal/convert"
	"github.com/gorewood/hooksmith/internal/git"
	"github.com/gorewood/hooksmith/internal/metrics"
	"github.com/gorewood/hooksmith/internal/setup"
	"github.com/gorewood/hooksmith/internal/verify"
)

// CheckCommitInput is the input for the check_commit tool.
type CheckCommitInput struct {
	Subject string `json:"subject" jsonschema:"the commit subject line to validate"`
}

// CheckCommitOutput is the output for the check_commit tool.
type CheckCommitOutput struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
	Type     string `json:"type,omitempty"`
	Scope    string `json:"scope,omitempty"`
}

func handleCheckCommit(rules commitmsg.Rules) mcp.ToolHandlerFor[CheckCommitInput, CheckCommitOutput] {
	return func(ctx context.Context, req *mcp.CallToolRequest, in CheckCommitInput) (*mcp.CallToolResult, CheckCommitOutput, error) {
		res := rules.Validate(in.Subject)
		out := CheckCommitOutput{
			Accepted: res.Accepted,
			Reason:   res.Reason,
		}
		if res.Subject != nil {
			out.Type = res.Subject.Type
			out.Scope = res.Subject.Scope
		}
		return nil, out, nil
	}
}

// HookInfo reports one hook's installation state.
type HookInfo struct {
	Name      string `json:"name"`
	Installed bool   `json:"installed"`
	Chained   bool   `json:"chained"`
}

// HooksStatusOutput is the output for the hooks_status tool.
type HooksStatusOutput struct {
	RepoRoot string     `json:"repo_root"`
	Hooks    []HookInfo `json:"hooks"`
}

func handleHooksStatus() mcp.ToolHandlerFor[struct{}, HooksStatusOutput] {
	return func(ctx context.Context, req *mcp.CallToolRequest, in struct{}) (*mcp.CallToolResult, HooksStatusOutput, error) {
		root, err := git.RepoRoot()
		if err != nil {
			return nil, HooksStatusOutput{}, fmt.Errorf("not inside a git repository: %w", err)
		}
		hooksDir := filepath.Join(root, ".git", "hooks")
		out := HooksStatusOutput{RepoRoot: root}
		for _, name := range setup.HookNames {
			status := setup.CheckHookStatus(setup.HookPath(hooksDir, name))
			out.Hooks = append(out.Hooks, HookInfo{
				Name:      name,
				Installed: status.Installed,
				Chained:   status.Chained,
			})
		}
		return nil, out, nil
	}
}

// ConversionInfo describes one catalogue entry.
type ConversionInfo struct {
	Name      string `json:"name"`
	From      string `json:"from"`
	To        string `json:"to"`
	Tool      string `json:"tool"`
	Available bool   `json:"available"`
}

// ListConversionsOutput is the output for the list_conversions tool.
type ListConversionsOutput struct {
	Conversions []ConversionInfo `json:"conversions"`
}

func handleListConversions() mcp.ToolHandlerFor[struct{}, ListConversionsOutput] {
	return func(ctx context.Context, req *mcp.CallToolRequest, in struct{}) (*mcp.CallToolResult, ListConversionsOutput, error) {
		catalogue := convert.Catalogue()
		var out ListConversionsOutput
		for _, name := range convert.Names() {
			c := catalogue[name]
			out.Conversions = append(out.Conversions, ConversionInfo{
				Name:      c.Name,
				From:      c.From,
				To:        c.To,
				Tool:      c.Tool,
				Available: c.Available(),
			})
		}
		return nil, out, nil
	}
}

// VerifyInput is the input for the verify tool.
type VerifyInput struct {
	Steps []string `json:"steps,omitempty" jsonschema:"optional step IDs to run; runs all configured steps when empty"`
}

// VerifyStepResult reports one step's outcome.
type VerifyStepResult struct {
	Step     string `json:"step"`
	Status   string `json:"status"`
	ExitCode int    `json:"exit_code"`
	Note     string `json:"note,omitempty"`
}

// VerifyOutput is the output for the verify tool.
type VerifyOutput struct {
	RunID  string             `json:"run_id"`
	Passed bool               `json:"passed"`
	Steps  []VerifyStepResult `json:"steps"`
}

func handleVerify(rules commitmsg.Rules) mcp.ToolHandlerFor[VerifyInput, VerifyOutput] {
	return func(ctx context.Context, req *mcp.CallToolRequest, in VerifyInput) (*mcp.CallToolResult, VerifyOutput, error) {
		root, err := git.RepoRoot()
		if err != nil {
			return nil, VerifyOutput{}, fmt.Errorf("not inside a git repository: %w", err)
		}
		cfg, err := config.Load(root)
		if err != nil {
			return nil, VerifyOutput{}, err
		}
		steps := verify.StepsFromConfig(cfg)
		store := verify.NewStateStore(filepath.Join(root, config.StateDirName))
		runner := verify.NewRunner(steps, store, &verify.Deps{RepoRoot: root, Rules: rules})

		var run *verify.Run
		if len(in.Steps) > 0 {
			run, err = runner.RunIDs(ctx, in.Steps)
		} else {
			run, err = runner.RunAll(ctx)
		}
		if err != nil {
			return nil, VerifyOutput{}, err
		}

		out := VerifyOutput{RunID: run.ID, Passed: len(run.Failed()) == 0}
		for _, r := range run.Results {
			out.Steps = append(out.Steps, VerifyStepResult{
				Step:     r.Step,
				Status:   string(r.Status),
				ExitCode: r.ExitCode,
				Note:     r.Note,
			})
		}
		return nil, out, nil
	}
}

// MetricsInput is the input for the metrics tool.
type MetricsInput struct {
	MaxCommits int `json:"max_commits,omitempty" jsonschema:"maximum number of commits to scan; defaults to 500"`
}

func handleMetrics(rules commitmsg.Rules) mcp.ToolHandlerFor[MetricsInput, metrics.Dashboard] {
	return func(ctx context.Context, req *mcp.CallToolRequest, in MetricsInput) (*mcp.CallToolResult, metrics.Dashboard, error) {
		root, err := git.RepoRoot()
		if err != nil {
			return nil, metrics.Dashboard{}, fmt.Errorf("not inside a git repository: %w", err)
		}
		loader := metrics.NewLoader(root, filepath.Join(root, config.StateDirName), rules, in.MaxCommits)
		dash, err := loader.Load()
		if err != nil {
			return nil, metrics.Dashboard{}, err
		}
		return nil, *dash, nil
	}
}
