package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the repo-level configuration file, looked up at the
// repository root.
const FileName = ".hooksmith.yaml"

// StateDirName is the repo-level state directory holding verify run
// records.
const StateDirName = ".hooksmith"

// Config is the parsed repo-level configuration. Zero values fall back
// to defaults at the point of use.
type Config struct {
	Commit CommitConfig `yaml:"commit"`
	Format FormatConfig `yaml:"format"`
	Verify VerifyConfig `yaml:"verify"`
	Watch  []string     `yaml:"watch"`
}

// CommitConfig tunes the commit-subject validator.
type CommitConfig struct {
	// ExtraTypes are accepted in addition to the built-in conventional
	// commit types.
	ExtraTypes []string `yaml:"extra_types"`
	// Scopes restricts scopes to an allow-list. Empty allows any
	// well-formed scope.
	Scopes []string `yaml:"scopes"`
	// MaxSubject overrides the 72-character subject limit when positive.
	MaxSubject int `yaml:"max_subject"`
}

// FormatConfig names the formatter the pre-commit hook runs over staged
// files. Empty command disables formatting.
type FormatConfig struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

// VerifyConfig declares verification steps and which of them each hook
// phase runs.
type VerifyConfig struct {
	// Steps are external-command steps available to verify and hooks.
	Steps []StepConfig `yaml:"steps"`
	// PreCommit lists step IDs the pre-commit hook runs.
	PreCommit []string `yaml:"pre_commit"`
	// PrePush lists step IDs the pre-push hook runs. Empty means all
	// known steps.
	PrePush []string `yaml:"pre_push"`
}

// StepConfig is one external-command verification step.
type StepConfig struct {
	ID  string   `yaml:"id"`
	Run []string `yaml:"run"`
}

// Default returns the configuration used when no .hooksmith.yaml exists.
func Default() Config {
	return Config{
		Verify: VerifyConfig{
			PrePush: []string{"commits"},
		},
		Watch: []string{"**/*.go", "**/*.yaml", "**/*.yml"},
	}
}

// Load reads the configuration from the given repository root. A missing
// file yields Default() with no error; a malformed file is an error.
func Load(repoRoot string) (Config, error) {
	path := filepath.Join(repoRoot, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, nil
}

// validate rejects configurations that would misbehave at hook time
// rather than failing late inside a git operation.
func (c Config) validate() error {
	ids := map[string]bool{"commits": true}
	for _, step := range c.Verify.Steps {
		if step.ID == "" {
			return fmt.Errorf("verify step with empty id")
		}
		if ids[step.ID] {
			return fmt.Errorf("duplicate verify step id %q", step.ID)
		}
		if len(step.Run) == 0 {
			return fmt.Errorf("verify step %q has no command", step.ID)
		}
		ids[step.ID] = true
	}

	for _, phase := range [][]string{c.Verify.PreCommit, c.Verify.PrePush} {
		for _, id := range phase {
			if !ids[id] {
				return fmt.Errorf("hook references unknown verify step %q", id)
			}
		}
	}

	if c.Commit.MaxSubject < 0 {
		return fmt.Errorf("commit.max_subject must not be negative")
	}
	return nil
}

// StarterYAML is the annotated configuration written by hooksmith init.
const StarterYAML = `# hooksmith configuration
# Validated commit subjects follow: type(scope): description

commit:
  # extra_types: [deps]
  # scopes: [cli, hooks, convert]
  # max_subject: 72

format:
  # command: gofumpt
  # args: [-w]

verify:
  steps: []
  # steps:
  #   - id: "test:go"
  #     run: [go, test, ./...]
  pre_commit: [commits]
  pre_push: [commits]
`
