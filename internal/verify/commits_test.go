package verify

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorewood/hooksmith/internal/commitmsg"
)

// initRepo creates a git repository in a temp dir and chdirs into it.
// The git wrapper operates on the working directory.
func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	origDir, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(origDir) })

	for _, args := range [][]string{
		{"init"},
		{"config", "user.email", "test@test.com"},
		{"config", "user.name", "Test User"},
	} {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		out, runErr := cmd.CombinedOutput()
		require.NoError(t, runErr, "git %v: %s", args, out)
	}

	require.NoError(t, os.Chdir(dir))
	return dir
}

func commit(t *testing.T, dir, subject string) {
	t.Helper()
	name := "f-" + subject[:3] + ".txt"
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(subject+"\n"), 0o644))

	for _, args := range [][]string{
		{"add", "."},
		{"commit", "-m", subject},
	} {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, "git %v: %s", args, out)
	}
}

func TestCommitsStepAllValid(t *testing.T) {
	dir := initRepo(t)
	commit(t, dir, "feat: add parser")
	commit(t, dir, "fix(cli): handle empty args")
	commit(t, dir, "Merge branch 'release'")

	step := &CommitsStep{}
	res := step.Run(context.Background(), &Deps{RepoRoot: dir, Rules: commitmsg.DefaultRules()})

	assert.Equal(t, StatusPass, res.Status, "note: %s", res.Note)
}

func TestCommitsStepRejectsBadSubjects(t *testing.T) {
	dir := initRepo(t)
	commit(t, dir, "feat: add parser")
	commit(t, dir, "added some stuff")

	step := &CommitsStep{}
	res := step.Run(context.Background(), &Deps{RepoRoot: dir, Rules: commitmsg.DefaultRules()})

	assert.Equal(t, StatusFail, res.Status)
	assert.Contains(t, res.Note, "added some stuff")
	assert.Contains(t, res.Note, "1 commit(s) with invalid subjects")
}

func TestCommitsStepEmptyRepo(t *testing.T) {
	initRepo(t)

	step := &CommitsStep{}
	res := step.Run(context.Background(), &Deps{Rules: commitmsg.DefaultRules()})

	assert.Equal(t, StatusPass, res.Status)
	assert.Contains(t, res.Note, "no commits yet")
}

func TestCommitsStepHonorsExtraTypes(t *testing.T) {
	dir := initRepo(t)
	commit(t, dir, "deps: bump cobra to v1.10")

	rules := commitmsg.DefaultRules().WithExtraTypes("deps")
	step := &CommitsStep{}

	res := step.Run(context.Background(), &Deps{RepoRoot: dir, Rules: rules})
	assert.Equal(t, StatusPass, res.Status, "note: %s", res.Note)

	res = step.Run(context.Background(), &Deps{RepoRoot: dir, Rules: commitmsg.DefaultRules()})
	assert.Equal(t, StatusFail, res.Status)
}
