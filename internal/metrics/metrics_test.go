package metrics

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorewood/hooksmith/internal/commitmsg"
	"github.com/gorewood/hooksmith/internal/verify"
)

func initRepo(t *testing.T, subjects ...string) string {
	t.Helper()
	dir := t.TempDir()

	origDir, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(origDir) })

	runGit := func(args ...string) {
		cmd := exec.CommandContext(context.Background(), "git", args...)
		cmd.Dir = dir
		out, gitErr := cmd.CombinedOutput()
		require.NoError(t, gitErr, "git %v: %s", args, out)
	}

	runGit("init")
	runGit("config", "user.email", "test@test.com")
	runGit("config", "user.name", "Test User")

	for i, subject := range subjects {
		name := filepath.Join(dir, "file"+string(rune('a'+i))+".txt")
		require.NoError(t, os.WriteFile(name, []byte(subject+"\n"), 0o644))
		runGit("add", ".")
		runGit("commit", "-m", subject)
	}

	require.NoError(t, os.Chdir(dir))
	return dir
}

func TestLoadCommitMetrics(t *testing.T) {
	dir := initRepo(t,
		"feat: add converter",
		"feat(cli): add list command",
		"fix: handle empty input",
		"Merge branch 'topic'",
		"did some things",
	)

	loader := NewLoader(dir, filepath.Join(dir, ".hooksmith"), commitmsg.DefaultRules(), 0)
	dash, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, 5, dash.Commits.Total)
	assert.Equal(t, 2, dash.Commits.ByType["feat"])
	assert.Equal(t, 1, dash.Commits.ByType["fix"])
	assert.Equal(t, 1, dash.Commits.ByType["merge"])
	assert.Equal(t, 1, dash.Commits.ByType["other"])
	assert.Equal(t, 5, dash.Commits.ByAuthor["Test User"])
	assert.InDelta(t, 0.8, dash.Commits.ConventionalRatio, 1e-9)
	assert.False(t, dash.GeneratedAt.IsZero())
}

func TestLoadVerifyMetrics(t *testing.T) {
	dir := initRepo(t, "feat: seed")
	stateDir := filepath.Join(dir, ".hooksmith")
	store := verify.NewStateStore(stateDir)

	runs := []*verify.Run{
		{
			ID:        "run-1",
			StartedAt: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC),
			Status:    "fail",
			Results: []verify.StepResult{
				{Step: "commits", Status: verify.StatusPass},
				{Step: "test:go", Status: verify.StatusFail, ExitCode: 1},
			},
		},
		{
			ID:        "run-2",
			StartedAt: time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC),
			Status:    "pass",
			Results: []verify.StepResult{
				{Step: "commits", Status: verify.StatusPass},
				{Step: "test:go", Status: verify.StatusPass},
			},
		},
	}
	for _, run := range runs {
		require.NoError(t, store.Save(run))
	}

	loader := NewLoader(dir, stateDir, commitmsg.DefaultRules(), 0)
	dash, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, 2, dash.Verify.Runs)
	assert.Equal(t, 1, dash.Verify.Passed)
	assert.Equal(t, 1, dash.Verify.Failed)
	assert.InDelta(t, 0.5, dash.Verify.PassRate, 1e-9)
	assert.Equal(t, map[string]int{"test:go": 1}, dash.Verify.StepFailures)

	require.NotNil(t, dash.Verify.LastRun)
	assert.Equal(t, "run-2", dash.Verify.LastRun.ID)
	assert.Equal(t, "pass", dash.Verify.LastRun.Status)
	assert.Equal(t, 2, dash.Verify.LastRun.Steps)
}

func TestLoadVerifyMetricsSkipsMalformedRecords(t *testing.T) {
	dir := initRepo(t, "feat: seed")
	stateDir := filepath.Join(dir, ".hooksmith")
	runsDir := filepath.Join(stateDir, "runs")
	require.NoError(t, os.MkdirAll(runsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(runsDir, "junk.json"), []byte("{not json"), 0o644))

	store := verify.NewStateStore(stateDir)
	require.NoError(t, store.Save(&verify.Run{ID: "ok", StartedAt: time.Now().UTC(), Status: "pass"}))

	loader := NewLoader(dir, stateDir, commitmsg.DefaultRules(), 0)
	dash, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, 1, dash.Verify.Runs)
}

func TestLoadEmptyState(t *testing.T) {
	dir := initRepo(t, "feat: seed")

	loader := NewLoader(dir, filepath.Join(dir, ".hooksmith"), commitmsg.DefaultRules(), 0)
	dash, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, 0, dash.Verify.Runs)
	assert.Nil(t, dash.Verify.LastRun)
	assert.Zero(t, dash.Verify.PassRate)
}

func TestMaxCommitsCap(t *testing.T) {
	dir := initRepo(t, "feat: one", "feat: two", "feat: three")

	loader := NewLoader(dir, filepath.Join(dir, ".hooksmith"), commitmsg.DefaultRules(), 2)
	dash, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, 2, dash.Commits.Total)
}
