package convert

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorewood/hooksmith/internal/output"
)

func TestCatalogueContents(t *testing.T) {
	catalogue := Catalogue()

	wantTools := map[string]string{
		"wav-to-mp3":    "ffmpeg",
		"mp3-to-wav":    "ffmpeg",
		"wav-to-flac":   "ffmpeg",
		"flac-to-wav":   "ffmpeg",
		"wav-to-ogg":    "ffmpeg",
		"ogg-to-wav":    "ffmpeg",
		"json-to-yaml":  "yq",
		"yaml-to-json":  "yq",
		"json-to-toml":  "yq",
		"toml-to-json":  "yq",
		"yaml-to-toml":  "yq",
		"toml-to-yaml":  "yq",
		"csv-to-json":   "python3",
		"json-to-csv":   "python3",
		"dbf-to-csv":    "python3",
		"sqlite-to-sql": "sqlite3",
		"sql-to-sqlite": "sqlite3",
	}

	require.Len(t, catalogue, len(wantTools))
	for name, tool := range wantTools {
		c, ok := catalogue[name]
		require.True(t, ok, "catalogue missing %s", name)
		assert.Equal(t, tool, c.Tool, "%s tool", name)
		assert.Equal(t, name, c.From+"-to-"+c.To, "%s format pair", name)
	}
}

func TestCatalogueIsReversiblePairwise(t *testing.T) {
	catalogue := Catalogue()

	// Every serialization and audio pair has its inverse registered.
	for name, c := range catalogue {
		if c.From == "dbf" {
			continue // dBASE read is one-way
		}
		inverse := c.To + "-to-" + c.From
		assert.Contains(t, catalogue, inverse, "missing inverse for %s", name)
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	require.NotEmpty(t, names)
	assert.IsNonDecreasing(t, names)
	assert.Len(t, names, len(Catalogue()))
}

func TestLookup(t *testing.T) {
	c, err := Lookup("json-to-yaml")
	require.NoError(t, err)
	assert.Equal(t, "json", c.From)
	assert.Equal(t, "yaml", c.To)

	_, err = Lookup("pdf-to-docx")
	assert.ErrorContains(t, err, "unknown conversion")
}

func TestRunMissingInputIsUserError(t *testing.T) {
	c, err := Lookup("json-to-yaml")
	require.NoError(t, err)

	runErr := c.Run(context.Background(), filepath.Join(t.TempDir(), "missing.json"), "out.yaml")
	require.Error(t, runErr)

	var exitErr *output.ExitError
	require.True(t, errors.As(runErr, &exitErr))
	assert.Equal(t, output.ExitUserError, exitErr.Code)
	assert.False(t, IsToolUnavailable(runErr))
}

func TestRunMissingToolIsUnavailable(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(in, []byte("x"), 0o644))

	c := &Conversion{
		Name: "txt-to-txt",
		From: "txt",
		To:   "txt",
		Tool: "hooksmith-no-such-tool",
		args: func(in, out string) []string { return []string{in, out} },
	}

	runErr := c.Run(context.Background(), in, filepath.Join(dir, "out.txt"))
	require.Error(t, runErr)
	assert.True(t, IsToolUnavailable(runErr))

	var tue *ToolUnavailableError
	require.True(t, errors.As(runErr, &tue))
	assert.Equal(t, "hooksmith-no-such-tool", tue.Tool)
}

func TestRunToolFailureIsSystemError(t *testing.T) {
	// `false` ignores arguments and exits 1, standing in for a failing tool.
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(in, []byte("x"), 0o644))

	c := &Conversion{
		Name: "txt-to-txt",
		From: "txt",
		To:   "txt",
		Tool: "false",
		args: func(in, out string) []string { return nil },
	}

	runErr := c.Run(context.Background(), in, filepath.Join(dir, "out.txt"))
	require.Error(t, runErr)
	assert.False(t, IsToolUnavailable(runErr))

	var exitErr *output.ExitError
	require.True(t, errors.As(runErr, &exitErr))
	assert.Equal(t, output.ExitSystemError, exitErr.Code)
}

func TestAvailable(t *testing.T) {
	present := &Conversion{Tool: "sh"}
	assert.True(t, present.Available())

	absent := &Conversion{Tool: "hooksmith-no-such-tool"}
	assert.False(t, absent.Available())
}

// fakeYQ installs a stub yq that prints the given version banner, placed
// first on PATH for the duration of the test.
func fakeYQ(t *testing.T, banner string) {
	t.Helper()
	dir := t.TempDir()
	script := "#!/bin/sh\necho '" + banner + "'\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "yq"), []byte(script), 0o755))
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestToolAvailableYQFlavor(t *testing.T) {
	t.Run("mikefarah yq qualifies", func(t *testing.T) {
		fakeYQ(t, "yq (https://github.com/mikefarah/yq/) version v4.44.1")
		assert.True(t, ToolAvailable("yq"))
	})

	t.Run("jq wrapper flavor does not", func(t *testing.T) {
		fakeYQ(t, "yq 3.4.3")
		assert.False(t, ToolAvailable("yq"))
	})
}

func TestRunWrongYQFlavorIsUnavailable(t *testing.T) {
	fakeYQ(t, "yq 3.4.3")

	dir := t.TempDir()
	in := filepath.Join(dir, "in.json")
	require.NoError(t, os.WriteFile(in, []byte("{}"), 0o644))

	c, err := Lookup("json-to-yaml")
	require.NoError(t, err)

	runErr := c.Run(context.Background(), in, filepath.Join(dir, "out.yaml"))
	require.Error(t, runErr)
	assert.True(t, IsToolUnavailable(runErr))
	assert.ErrorContains(t, runErr, "incompatible")
}
