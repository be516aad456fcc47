package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDoctorJSON(t *testing.T) {
	dir := initRepo(t)

	runInDir(t, dir, func() {
		out, err := execute(t, "doctor", "--json")
		if err != nil {
			t.Fatalf("doctor failed: %v\nOutput: %s", err, out)
		}

		result := parseJSON(t, out)
		for _, section := range []string{"core", "hooks", "tools", "summary"} {
			if _, ok := result[section]; !ok {
				t.Errorf("doctor output missing %q section", section)
			}
		}

		summary, ok := result["summary"].(map[string]any)
		if !ok {
			t.Fatalf("summary is not an object: %v", result["summary"])
		}
		for _, key := range []string{"passed", "warnings", "failed"} {
			if _, ok := summary[key]; !ok {
				t.Errorf("summary missing %q", key)
			}
		}
	})
}

func TestDoctorHumanOutput(t *testing.T) {
	dir := initRepo(t)

	runInDir(t, dir, func() {
		out, err := execute(t, "doctor")
		if err != nil {
			t.Fatalf("doctor failed: %v", err)
		}

		for _, want := range []string{"CORE", "HOOKS", "TOOLS", "passed", "warnings", "failed"} {
			if !strings.Contains(out, want) {
				t.Errorf("doctor output missing %q\nOutput: %s", want, out)
			}
		}
	})
}

func TestDoctorReportsHooksNotInstalled(t *testing.T) {
	dir := initRepo(t)

	runInDir(t, dir, func() {
		out, err := execute(t, "doctor")
		if err != nil {
			t.Fatalf("doctor failed: %v", err)
		}
		if !strings.Contains(out, "not installed") {
			t.Errorf("doctor should warn about missing hooks\nOutput: %s", out)
		}
	})
}

func TestDoctorFailsOnBrokenConfig(t *testing.T) {
	dir := initRepo(t)

	bad := "verify:\n  steps:\n    - id: dup\n      run: [\"true\"]\n    - id: dup\n      run: [\"true\"]\n"
	if err := os.WriteFile(filepath.Join(dir, ".hooksmith.yaml"), []byte(bad), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	runInDir(t, dir, func() {
		out, err := execute(t, "doctor", "--json")
		if err != nil {
			t.Fatalf("doctor failed: %v", err)
		}

		if !strings.Contains(out, `"fail"`) {
			t.Errorf("doctor should report a failing config check\nOutput: %s", out)
		}
	})
}

func TestDoctorNotARepo(t *testing.T) {
	dir := t.TempDir()

	runInDir(t, dir, func() {
		if _, err := execute(t, "doctor"); err == nil {
			t.Error("expected error outside a git repository")
		}
	})
}
