// Package metrics implements the dashboard data loader: a sequential
// read-and-aggregate pass over the commit history and the persisted
// verification runs. The output is a single Dashboard document encoded
// as JSON or YAML for downstream dashboards.
package metrics

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/gorewood/hooksmith/internal/commitmsg"
	"github.com/gorewood/hooksmith/internal/git"
	"github.com/gorewood/hooksmith/internal/verify"
)

// DefaultMaxCommits bounds how much history the loader reads.
const DefaultMaxCommits = 500

// Dashboard is the aggregate document the loader produces.
type Dashboard struct {
	GeneratedAt time.Time     `json:"generated_at" yaml:"generated_at"`
	Commits     CommitMetrics `json:"commits"      yaml:"commits"`
	Verify      VerifyMetrics `json:"verify"       yaml:"verify"`
}

// CommitMetrics aggregates the harvested commit history.
type CommitMetrics struct {
	Total    int            `json:"total"     yaml:"total"`
	ByType   map[string]int `json:"by_type"   yaml:"by_type"`
	ByAuthor map[string]int `json:"by_author" yaml:"by_author"`
	// ConventionalRatio is the share of commits whose subject parses as
	// a conventional commit or a git-generated merge, in [0, 1].
	ConventionalRatio float64 `json:"conventional_ratio" yaml:"conventional_ratio"`
}

// VerifyMetrics aggregates the persisted verification runs.
type VerifyMetrics struct {
	Runs         int            `json:"runs"                    yaml:"runs"`
	Passed       int            `json:"passed"                  yaml:"passed"`
	Failed       int            `json:"failed"                  yaml:"failed"`
	PassRate     float64        `json:"pass_rate"               yaml:"pass_rate"`
	StepFailures map[string]int `json:"step_failures,omitempty" yaml:"step_failures,omitempty"`
	LastRun      *RunSummary    `json:"last_run,omitempty"      yaml:"last_run,omitempty"`
}

// RunSummary is the dashboard view of a single verification run.
type RunSummary struct {
	ID        string    `json:"id"         yaml:"id"`
	Status    string    `json:"status"     yaml:"status"`
	StartedAt time.Time `json:"started_at" yaml:"started_at"`
	Steps     int       `json:"steps"      yaml:"steps"`
}

// Loader reads and aggregates the metrics sources. All reads are
// sequential; there is no caching.
type Loader struct {
	repoRoot   string
	stateDir   string
	rules      commitmsg.Rules
	maxCommits int
}

// NewLoader creates a loader for the given repository root.
func NewLoader(repoRoot, stateDir string, rules commitmsg.Rules, maxCommits int) *Loader {
	if maxCommits <= 0 {
		maxCommits = DefaultMaxCommits
	}
	return &Loader{
		repoRoot:   repoRoot,
		stateDir:   stateDir,
		rules:      rules,
		maxCommits: maxCommits,
	}
}

// Load builds the dashboard document.
func (l *Loader) Load() (*Dashboard, error) {
	commits, err := l.loadCommitMetrics()
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		GeneratedAt: time.Now().UTC(),
		Commits:     commits,
		Verify:      l.loadVerifyMetrics(),
	}, nil
}

// loadCommitMetrics harvests and classifies the commit history.
func (l *Loader) loadCommitMetrics() (CommitMetrics, error) {
	metrics := CommitMetrics{
		ByType:   map[string]int{},
		ByAuthor: map[string]int{},
	}

	commits, err := git.LogAll(l.maxCommits)
	if err != nil {
		return metrics, err
	}

	conventional := 0
	for _, c := range commits {
		bucket := l.rules.Classify(c.Subject)
		metrics.ByType[bucket]++
		metrics.ByAuthor[c.Author]++
		if bucket != "other" {
			conventional++
		}
	}

	metrics.Total = len(commits)
	if metrics.Total > 0 {
		metrics.ConventionalRatio = float64(conventional) / float64(metrics.Total)
	}
	return metrics, nil
}

// loadVerifyMetrics reads every persisted run record. Malformed records
// are skipped rather than failing the whole load.
func (l *Loader) loadVerifyMetrics() VerifyMetrics {
	metrics := VerifyMetrics{
		StepFailures: map[string]int{},
	}

	pattern := filepath.Join(l.stateDir, "runs", "**", "*.json")
	paths, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return metrics
	}

	var runs []verify.Run
	for _, path := range paths {
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			continue
		}
		var run verify.Run
		if json.Unmarshal(data, &run) != nil {
			continue
		}
		runs = append(runs, run)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.Before(runs[j].StartedAt)
	})

	for _, run := range runs {
		metrics.Runs++
		if run.Status == "pass" {
			metrics.Passed++
		} else {
			metrics.Failed++
		}
		for _, res := range run.Results {
			if res.Status == verify.StatusFail {
				metrics.StepFailures[res.Step]++
			}
		}
	}

	if metrics.Runs > 0 {
		metrics.PassRate = float64(metrics.Passed) / float64(metrics.Runs)
		last := runs[len(runs)-1]
		metrics.LastRun = &RunSummary{
			ID:        last.ID,
			Status:    last.Status,
			StartedAt: last.StartedAt,
			Steps:     len(last.Results),
		}
	}
	if len(metrics.StepFailures) == 0 {
		metrics.StepFailures = nil
	}
	return metrics
}
