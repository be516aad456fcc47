package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Verify.PrePush) != 1 || cfg.Verify.PrePush[0] != "commits" {
		t.Errorf("default pre_push = %v, want [commits]", cfg.Verify.PrePush)
	}
	if len(cfg.Watch) == 0 {
		t.Error("default watch globs should not be empty")
	}
}

func TestLoadFullConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
commit:
  extra_types: [deps]
  scopes: [cli, hooks]
  max_subject: 60
format:
  command: gofumpt
  args: [-w]
verify:
  steps:
    - id: "test:go"
      run: [go, test, ./...]
  pre_commit: [commits]
  pre_push: [commits, "test:go"]
watch:
  - "**/*.go"
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Commit.ExtraTypes) != 1 || cfg.Commit.ExtraTypes[0] != "deps" {
		t.Errorf("extra_types = %v", cfg.Commit.ExtraTypes)
	}
	if cfg.Commit.MaxSubject != 60 {
		t.Errorf("max_subject = %d, want 60", cfg.Commit.MaxSubject)
	}
	if cfg.Format.Command != "gofumpt" {
		t.Errorf("format command = %q", cfg.Format.Command)
	}
	if len(cfg.Verify.Steps) != 1 || cfg.Verify.Steps[0].ID != "test:go" {
		t.Errorf("verify steps = %+v", cfg.Verify.Steps)
	}
	if len(cfg.Verify.PrePush) != 2 {
		t.Errorf("pre_push = %v", cfg.Verify.PrePush)
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "commit: [not a map")

	if _, err := Load(dir); err == nil {
		t.Error("Load() should fail on malformed YAML")
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "duplicate step id",
			content: `
verify:
  steps:
    - {id: "a", run: ["true"]}
    - {id: "a", run: ["true"]}
`,
			wantErr: "duplicate",
		},
		{
			name: "step without command",
			content: `
verify:
  steps:
    - id: "a"
`,
			wantErr: "no command",
		},
		{
			name: "unknown step reference",
			content: `
verify:
  pre_push: [nope]
`,
			wantErr: "unknown verify step",
		},
		{
			name: "step shadowing builtin",
			content: `
verify:
  steps:
    - {id: "commits", run: ["true"]}
`,
			wantErr: "duplicate",
		},
		{
			name: "negative max subject",
			content: `
commit:
  max_subject: -1
`,
			wantErr: "max_subject",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)

			_, err := Load(dir)
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestStarterYAMLParses(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, StarterYAML)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("starter config should parse: %v", err)
	}
	if len(cfg.Verify.PreCommit) != 1 || cfg.Verify.PreCommit[0] != "commits" {
		t.Errorf("starter pre_commit = %v", cfg.Verify.PreCommit)
	}
}
